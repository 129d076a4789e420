// Package paging tracks the (page, size, sort) triple the dashboard browses
// with, including the reset rules the backend's page envelope imposes.
package paging

const (
	DefaultSize = 10
	DefaultSort = "id,desc"
)

// Pager is the pagination bookkeeping for one session's order listing.
// Page is zero-based. TotalPages is the last page count reported by the
// backend and bounds every jump.
type Pager struct {
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	Sort       string `json:"sort"`
	TotalPages int    `json:"totalPages"`
}

// New returns a pager at page 0 with the default size and sort.
func New() Pager {
	return Pager{Size: DefaultSize, Sort: DefaultSort}
}

// SetSize changes the page size. Any actual change resets the page to 0.
func (p *Pager) SetSize(size int) {
	if size <= 0 {
		size = DefaultSize
	}
	if size != p.Size {
		p.Size = size
		p.Page = 0
	}
}

// SetSort changes the sort key. Any actual change resets the page to 0.
func (p *Pager) SetSort(sort string) {
	if sort == "" {
		sort = DefaultSort
	}
	if sort != p.Sort {
		p.Sort = sort
		p.Page = 0
	}
}

// JumpTo moves to the given page when it is within the last known bounds.
// Out-of-range jumps are ignored and the current page is kept.
func (p *Pager) JumpTo(page int) bool {
	if page < 0 || page >= p.TotalPages {
		return false
	}
	p.Page = page
	return true
}

// Next advances one page when possible.
func (p *Pager) Next() bool { return p.JumpTo(p.Page + 1) }

// Prev goes back one page when possible.
func (p *Pager) Prev() bool { return p.JumpTo(p.Page - 1) }

// Reload records the page count reported by the latest load and clamps the
// current page into range. A failed load reports zero pages, which snaps the
// pager back to page 0.
func (p *Pager) Reload(totalPages int) {
	if totalPages < 0 {
		totalPages = 0
	}
	p.TotalPages = totalPages
	if p.TotalPages == 0 {
		p.Page = 0
		return
	}
	if p.Page >= p.TotalPages {
		p.Page = p.TotalPages - 1
	}
}
