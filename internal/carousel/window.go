// Package carousel computes paged windows over an in-memory list and the
// wraparound page transitions used by the review and testimonial carousels.
//
// Everything here is pure: the current page is owned by the caller and passed
// in, and every transition returns the new page instead of storing it.
package carousel

// TotalPages returns ceil(itemCount / pageSize).
// An empty list or a non-positive page size has no pages.
func TotalPages(itemCount, pageSize int) int {
	if itemCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (itemCount + pageSize - 1) / pageSize
}

// Window returns the items visible on currentPage.
//
// The last page may be shorter than pageSize; it is never padded.
// currentPage is not clamped: a page outside the list yields an empty window
// so that a bad transition shows up instead of being silently corrected.
func Window[T any](items []T, pageSize, currentPage int) []T {
	if pageSize <= 0 || currentPage < 0 {
		return nil
	}
	start := currentPage * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// Next advances one page, wrapping from the last page back to 0.
// With no pages it returns 0; callers should not render navigation then.
func Next(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if currentPage >= totalPages-1 {
		return 0
	}
	return currentPage + 1
}

// Prev goes back one page, wrapping from page 0 to the last page.
func Prev(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if currentPage <= 0 {
		return totalPages - 1
	}
	return currentPage - 1
}

// JumpTo selects page directly. Indicator controls are built in range, so the
// page is returned unchanged; use InRange to validate untrusted input.
func JumpTo(page, totalPages int) int {
	return page
}

// InRange reports whether page is a valid index for totalPages.
func InRange(page, totalPages int) bool {
	return page >= 0 && page < totalPages
}
