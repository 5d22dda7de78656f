package types

// UserFilter filters user queries
type UserFilter struct {
	*QueryFilter
	Role   string `json:"role,omitempty" form:"role"`
	Search string `json:"search,omitempty" form:"search"`
}

// NewUserFilter creates a filter with default pagination
func NewUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the user filter
func (f *UserFilter) Validate() error {
	return f.QueryFilter.Validate()
}
