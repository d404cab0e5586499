package pagination

// Defaults match the API the service replaces: 15 items per page, pages
// starting at 1, and a hard ceiling of 50 items per page.
const (
	DefaultPage  = 1
	DefaultLimit = 15
	MaxLimit     = 50
)

// PageRef points at a neighbouring page of the same listing.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination tells the client whether a previous/next page exists.
// Absent links are omitted from the JSON body entirely.
type Pagination struct {
	Previous *PageRef `json:"previous,omitempty"`
	Next     *PageRef `json:"next,omitempty"`
}

// Compute derives the previous/next descriptors for a page of a listing with
// totalCount items. Pure; callers pass validated page >= 1 and limit >= 1.
//
// Previous requires both an earlier page (startIndex > 0) and that the
// requested page is not entirely past the data (startIndex < totalCount), so
// an out-of-range page yields no links at all.
func Compute(page, limit, totalCount int) Pagination {
	startIndex := (page - 1) * limit
	endIndex := page * limit

	var p Pagination
	if startIndex > 0 && startIndex < totalCount {
		p.Previous = &PageRef{Page: page - 1, Limit: limit}
	}
	if endIndex < totalCount {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	return p
}

// Params binds the page/limit query parameters with their defaults.
type Params struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=15" binding:"min=1,max=50"`
}

// Offset converts the params into the store's offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}
