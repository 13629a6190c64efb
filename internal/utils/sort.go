package utils

import (
	"sort"
	"strings"
)

// TypeRank orders manifest version types: lower sorts first.
func TypeRank(t string) int {
	switch strings.ToLower(t) {
	case "release":
		return 0
	case "snapshot":
		return 1
	case "old_beta":
		return 2
	case "old_alpha":
		return 3
	default:
		return 99
	}
}

// SortByType groups xs by TypeRank, keeping input order inside a group.
func SortByType[T any](xs []T, typeOf func(T) string) {
	sort.SliceStable(xs, func(i, j int) bool {
		return TypeRank(typeOf(xs[i])) < TypeRank(typeOf(xs[j]))
	})
}
