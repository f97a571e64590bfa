package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of totalItems split into pages of
// pageSize. From and To are the 1-based item range shown, both 0 when the
// page is empty.
func NewPagination(page, pageSize, totalItems int) *Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(totalPages),
		TotalItems: int64(totalItems),
		HasMore:    page < totalPages,
	}
	if start := (page - 1) * pageSize; page >= 1 && start < totalItems {
		p.From = start + 1
		p.To = min(start+pageSize, totalItems)
	}
	return p
}
