// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides page arithmetic shared by table views.
//
// # Overview
//
// Pages are 1-indexed. A page number is parsed from the query string, validated
// against the number of available pages, and turned into an offset and a
// [Meta] block delivered to templates and JSON responses alike.
package pagination

import (
	"strconv"
)

const (
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// LastPage is accepted in place of a number and selects the final page.
	LastPage = "last"
)

// # Window Shape

const (
	// windowBody is the number of consecutive pages around the current one.
	windowBody = 10
	// windowTail is the number of pages shown at an end separated by a gap.
	windowTail = 3
	// windowMargin is the smallest run worth eliding next to a tail.
	windowMargin = 2
	// windowPadding is the number of pages kept past the current one when the
	// body merges into a tail.
	windowPadding = 2
)

// Gap marks an elided run of pages inside a [Window].
const Gap = 0

// Meta is the pagination metadata included in responses.
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int   `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
	Window      []int `json:"-"`
}

// NewMeta constructs pagination metadata.
//
// An empty result still has one (empty) page.
func NewMeta(page, limit, total int) Meta {
	totalPages := TotalPages(limit, total)

	return Meta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
		Window:      Window(page, totalPages),
	}
}

// PreviousPage returns the page before the current one.
func (m Meta) PreviousPage() int { return m.Page - 1 }

// NextPage returns the page after the current one.
func (m Meta) NextPage() int { return m.Page + 1 }

// TotalPages returns the number of pages needed for total items, at least one.
func TotalPages(limit, total int) int {
	if limit < 1 || total < 1 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Offset returns the SQL OFFSET of page.
func Offset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}

// ParsePage validates the raw "page" parameter against totalPages.
//
// # Rules
//
// An empty value selects [DefaultPage] and [LastPage] the final page.
// Anything else must be an integer within [1, totalPages]; the second result
// is false otherwise.
func ParsePage(raw string, totalPages int) (int, bool) {
	switch raw {
	case "":
		return DefaultPage, true
	case LastPage:
		return totalPages, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > totalPages {
		return 0, false
	}

	return page, true
}

// Window returns the page numbers to display around current.
//
// A body of consecutive pages is centred on current. When the body comes
// within a tail and a margin of either end it is extended to that end;
// otherwise the end is shown as a tail of pages after a single [Gap].
func Window(current, total int) []int {
	if total < 1 {
		return nil
	}
	current = min(max(current, 1), total)

	low := current - windowBody/2
	high := low + windowBody - 1
	if low < 1 {
		high += 1 - low
		low = 1
	}
	if high > total {
		low -= high - total
		high = total
	}

	leading := low > windowTail+windowMargin
	if !leading {
		high = max(windowBody, min(current+windowPadding, high))
		low = 1
	}

	trailing := high < total-(windowTail+windowMargin)+1
	if !trailing {
		if leading {
			low = min(total-windowBody+1, max(current-windowPadding, low))
		} else {
			low = 1
		}
		high = total
	}

	low, high = max(low, 1), min(high, total)

	var pages []int
	if leading {
		pages = appendRange(pages, 1, windowTail)
		pages = append(pages, Gap)
	}
	pages = appendRange(pages, low, high)
	if trailing {
		pages = append(pages, Gap)
		pages = appendRange(pages, total-windowTail+1, total)
	}

	return pages
}

func appendRange(pages []int, from, to int) []int {
	for page := from; page <= to; page++ {
		pages = append(pages, page)
	}
	return pages
}
