package types

// FromNillableString unwraps an optional string column for display,
// treating nil as empty.
func FromNillableString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
