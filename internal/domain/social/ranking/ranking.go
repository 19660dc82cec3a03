// Package ranking derives ordered views from already aggregated collections.
// Every function sorts a copy with a stable sort; inputs are never modified.
package ranking

import (
	"cmp"
	"slices"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
)

// DefaultTopUsersLimit is used when a non-positive limit is requested
const DefaultTopUsersLimit = 5

// TopUsers returns at most limit users ordered by post count, highest first
func TopUsers(users []entity.User, limit int) []entity.User {
	if limit <= 0 {
		limit = DefaultTopUsersLimit
	}

	out := slices.Clone(users)
	slices.SortStableFunc(out, func(a, b entity.User) int {
		return cmp.Compare(b.Posts(), a.Posts())
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Trending orders posts by comment count, highest first
func Trending(posts []entity.Post) []entity.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b entity.Post) int {
		return cmp.Compare(b.Comments(), a.Comments())
	})
	return out
}

// Feed orders posts by timestamp, most recent first.
// Posts with a missing or unparsable timestamp go last.
func Feed(posts []entity.Post) []entity.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b entity.Post) int {
		ta, okA := a.CreatedAt()
		tb, okB := b.CreatedAt()
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}
