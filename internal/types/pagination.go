package types

// PaginationResponse echoes the applied limit and offset alongside the
// total row count so clients can page without extra requests.
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse is the envelope for every list endpoint.
type ListResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	return ListResponse[T]{
		Items:      items,
		Pagination: PaginationResponse{Total: total, Limit: limit, Offset: offset},
	}
}
