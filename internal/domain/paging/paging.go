// Package paging slices ordered result lists into pages.
package paging

import "github.com/okian/coachlens/internal/domain/types"

// Paginate returns items [page*size, (page+1)*size). A page past the end, a
// negative page or a non-positive size yields an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) || start/size != page {
		return []T{}
	}
	end := start + size
	if end > len(items) || end < start {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns the number of pages needed for total items.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Info builds page metadata.
func Info(page, size, total int) types.PageInfo {
	return types.PageInfo{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: PageCount(total, size),
	}
}
