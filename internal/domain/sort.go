package domain

import (
	"slices"
	"strings"
)

// SortByCompletion orders items for display: everything is sorted
// case-insensitively by title, then incomplete items are moved ahead of
// completed ones while preserving the alphabetical order within each group.
// The input slice is not modified. The result is idempotent: sorting an
// already sorted slice yields the same order.
//
// Both lists and todos use this helper; the caller supplies the title and
// completion accessors for the element type.
func SortByCompletion[T any](items []T, title func(T) string, completed func(T) bool) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(strings.ToLower(title(a)), strings.ToLower(title(b)))
	})

	out := make([]T, 0, len(sorted))
	for _, item := range sorted {
		if !completed(item) {
			out = append(out, item)
		}
	}
	for _, item := range sorted {
		if completed(item) {
			out = append(out, item)
		}
	}
	return out
}
