package listutil

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int
}

// ListParams combines pagination with the free-text search term.
type ListParams struct {
	PageParams
	Search string
}

// PageInfo carries pagination metadata returned alongside a page of rows.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paging defaults
const (
	DefaultPerPage  = 25
	MaxSearchLength = 64
)

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 25, 50, 100}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseSearch extracts the trimmed search term from "q", cut to MaxSearchLength runes.
func ParseSearch(q url.Values) string {
	s := strings.TrimSpace(q.Get("q"))
	if utf8.RuneCountInString(s) > MaxSearchLength {
		s = string([]rune(s)[:MaxSearchLength])
	}
	return s
}

// ParseListParams parses pagination and search from URL query values.
func ParseListParams(q url.Values) ListParams {
	return ListParams{PageParams: ParsePageParams(q), Search: ParseSearch(q)}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := max((total+perPage-1)/perPage, 1)
	page = min(max(page, 1), totalPages)
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL OFFSET for the current page.
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page, 0 when empty.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns min(Offset+PerPage, Total).
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p PageInfo) HasPrev() bool {
	return p.Page > 1
}

// MarshalJSON adds the row range and navigation flags for list clients.
func (p PageInfo) MarshalJSON() ([]byte, error) {
	type fields PageInfo
	return json.Marshal(struct {
		fields
		StartRow int  `json:"startRow"`
		EndRow   int  `json:"endRow"`
		HasNext  bool `json:"hasNext"`
		HasPrev  bool `json:"hasPrev"`
	}{fields(p), p.StartRow(), p.EndRow(), p.HasNext(), p.HasPrev()})
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
