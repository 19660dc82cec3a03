package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPost_CreatedAt(t *testing.T) {
	tests := []struct {
		timestamp string
		want      time.Time
		ok        bool
	}{
		{"2023-06-15T14:30:00Z", time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC), true},
		{"2023-06-15T16:30:00.250+02:00", time.Date(2023, 6, 15, 14, 30, 0, 250_000_000, time.UTC), true},
		{"2023-06-20T10:00:00", time.Date(2023, 6, 20, 10, 0, 0, 0, time.UTC), true},
		{"2023-06-20T10:00:00.123", time.Date(2023, 6, 20, 10, 0, 0, 123_000_000, time.UTC), true},
		{"2023-06-21", time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.timestamp, func(t *testing.T) {
			got, ok := Post{Timestamp: tt.timestamp}.CreatedAt()
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSortUserIDs(t *testing.T) {
	ids := []string{"b", "10", "2", "a", "1"}
	SortUserIDs(ids)
	assert.Equal(t, []string{"1", "2", "10", "a", "b"}, ids)
}
