package ranking

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vadim/social-pulse/internal/domain/social/entity"
)

func user(id string, posts int) entity.User {
	return entity.User{ID: id, Name: "u" + id, PostCount: entity.IntPtr(posts)}
}

func userIDs(users []entity.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func postIDs(posts []entity.Post) []int {
	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestTopUsers(t *testing.T) {
	users := []entity.User{
		user("1", 3),
		user("2", 7),
		user("3", 3),
		{ID: "4", Name: "no count"},
		user("5", 9),
		user("6", 1),
		user("7", 7),
	}
	before := userIDs(users)

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"default limit", 0, []string{"5", "2", "7", "1", "3"}},
		{"limit two", 2, []string{"5", "2"}},
		{"limit above size", 50, []string{"5", "2", "7", "1", "3", "6", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := userIDs(TopUsers(users, tt.limit))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TopUsers() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff(before, userIDs(users)); diff != "" {
		t.Errorf("input was mutated (-before +after):\n%s", diff)
	}
}

func TestTrending(t *testing.T) {
	posts := []entity.Post{
		{ID: 1, CommentCount: entity.IntPtr(2)},
		{ID: 2, CommentCount: entity.IntPtr(5)},
		{ID: 3},
		{ID: 4, CommentCount: entity.IntPtr(2)},
		{ID: 5, CommentCount: entity.IntPtr(9)},
	}

	got := Trending(posts)
	if diff := cmp.Diff([]int{5, 2, 1, 4, 3}, postIDs(got)); diff != "" {
		t.Errorf("Trending() mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Comments() > got[i-1].Comments() {
			t.Fatalf("comment counts increase at %d", i)
		}
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, postIDs(posts)); diff != "" {
		t.Errorf("input was mutated:\n%s", diff)
	}
}

func TestFeed(t *testing.T) {
	posts := []entity.Post{
		{ID: 1, Timestamp: "2023-06-15T14:30:00Z"},
		{ID: 2, Timestamp: "not a date"},
		{ID: 3, Timestamp: "2023-06-18T19:30:00Z"},
		{ID: 4, Timestamp: "2023-06-15T14:30:00Z"},
		{ID: 5, Timestamp: "2023-06-16T09:15:00.000Z"},
		{ID: 6},
	}

	got := Feed(posts)
	if diff := cmp.Diff([]int{3, 5, 1, 4, 2, 6}, postIDs(got)); diff != "" {
		t.Errorf("Feed() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, postIDs(posts)); diff != "" {
		t.Errorf("input was mutated:\n%s", diff)
	}
}

func TestFeed_TimestampsWithoutZone(t *testing.T) {
	posts := []entity.Post{
		{ID: 1, Timestamp: "2023-06-15T14:30:00Z"},
		{ID: 2, Timestamp: "2023-06-20T10:00:00"},
		{ID: 3, Timestamp: "2023-06-21"},
		{ID: 4, Timestamp: "2023-06-20T09:59:59.5+00:00"},
	}

	got := Feed(posts)
	if diff := cmp.Diff([]int{3, 2, 4, 1}, postIDs(got)); diff != "" {
		t.Errorf("Feed() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyInputs(t *testing.T) {
	if got := TopUsers(nil, 3); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := Trending(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := Feed(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
