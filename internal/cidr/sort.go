package cidr

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders dotted quads numerically. Unparseable values sort after
// valid ones and compare as strings among themselves.
func Compare(a, b string) int {
	na, errA := IPToLong(a)
	nb, errB := IPToLong(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func Sort(addrs []string) {
	slices.SortStableFunc(addrs, Compare)
}
