package domain

// PaginationParams selects one page of a list query.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the 0-based row offset of the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
