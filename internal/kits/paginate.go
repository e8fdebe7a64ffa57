package kits

import "github.com/RouterHaus/routerhaus/pkg/models"

// DefaultPageSize matches the catalog page's default results-per-page.
const DefaultPageSize = 12

// Page is one slice of a sorted result set.
type Page struct {
	Items []models.Kit
	// Page is the requested page clamped into [1, PageCount].
	Page      int
	PageCount int
	Total     int
}

// Paginate slices records into the requested page. The page count is
// max(1, ceil(total/pageSize)) and the requested page is clamped before
// slicing, so out-of-range requests return the nearest valid page.
func Paginate(records []models.Kit, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	page = clamp(page, 1, pageCount)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:     records[start:end],
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}
}

// PageButton is one entry of a pagination control: either a page number or
// a gap marker collapsing a run of hidden pages.
type PageButton struct {
	Page int  `json:"page,omitempty"`
	Gap  bool `json:"gap,omitempty"`
}

// PageButtons computes the button row for the current page: the first and
// last pages are always shown, plus a window of two pages either side of
// the current one; runs the window does not reach collapse to one gap.
func PageButtons(current, total int) []PageButton {
	const window = 2

	start := current - window
	if start < 1 {
		start = 1
	}
	end := current + window
	if end > total {
		end = total
	}

	var out []PageButton
	if start > 1 {
		out = append(out, PageButton{Page: 1})
		if start > 2 {
			out = append(out, PageButton{Gap: true})
		}
	}
	for p := start; p <= end; p++ {
		out = append(out, PageButton{Page: p})
	}
	if end < total {
		if end < total-1 {
			out = append(out, PageButton{Gap: true})
		}
		out = append(out, PageButton{Page: total})
	}
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
