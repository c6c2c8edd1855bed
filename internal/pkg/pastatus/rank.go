package pastatus

import "sort"

// UnknownRank sorts unrecognised statuses after every known one.
const UnknownRank = 5

// Lower ranks need attention first. Expired shares the denied rank: both
// block dispensing until a new PA is obtained.
var ranks = map[Status]int{
	RequiredProcessing: 0,
	RequiredDenied:     1,
	Expired:            1,
	RequiredSubmitted:  2,
	RequiredApproved:   3,
	NotRequired:        4,
}

func Rank(s Status) int {
	if rank, ok := ranks[s]; ok {
		return rank
	}
	return UnknownRank
}

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Next cycles none -> asc -> desc -> none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(s) {
	case SortNone, "none":
		return SortNone, true
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return SortNone, false
}

// SortByRank returns a stably sorted copy of items. Equal ranks keep their
// input order in both directions, and SortNone returns the input order.
func SortByRank[T any](items []T, direction SortDirection, rank func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	if direction == SortNone {
		return sorted
	}

	keys := make([]int, len(sorted))
	for i, item := range sorted {
		keys[i] = rank(item)
	}
	index := make([]int, len(sorted))
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(a, b int) bool {
		if direction == SortDesc {
			return keys[index[a]] > keys[index[b]]
		}
		return keys[index[a]] < keys[index[b]]
	})

	result := make([]T, len(sorted))
	for i, j := range index {
		result[i] = sorted[j]
	}
	return result
}
