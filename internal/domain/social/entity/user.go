package entity

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// User represents an account known to the social API.
// PostCount is derived locally and never sent upstream.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount *int   `json:"postCount,omitempty"`
}

// Posts returns the derived post count, treating an unknown count as zero
func (u User) Posts() int {
	if u.PostCount == nil {
		return 0
	}
	return *u.PostCount
}

// SortUserIDs orders ids numerically when both sides are numbers, numeric ids
// before the rest, and lexically otherwise
func SortUserIDs(ids []string) {
	slices.SortFunc(ids, func(a, b string) int {
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
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
	})
}
