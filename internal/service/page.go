// Package service contains the application's business rules: feed
// composition, pagination, and the validate-then-persist mutation flows.
package service

import (
	"strconv"

	"quill/internal/models"
)

// Page is one paginated slice of a feed, newest post first.
type Page struct {
	Posts     []*models.Post `json:"posts"`
	Number    int            `json:"number"`
	PageCount int            `json:"page_count"`
	Total     int64          `json:"total"`
	HasNext   bool           `json:"has_next"`
	HasPrev   bool           `json:"has_prev"`
}

// ParsePageNumber interprets a raw page query value. Absent or non-numeric
// values default to page 1; clamping to the last available page happens later,
// once the total is known.
func ParsePageNumber(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pageCount returns the number of pages needed for total records at the given
// size. An empty feed still has one (empty) page.
func pageCount(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clampPage pulls an out-of-range page number back to the last valid page,
// never to an empty page.
func clampPage(requested, pages int) int {
	if requested < 1 {
		return 1
	}
	if requested > pages {
		return pages
	}
	return requested
}
