package repository

import (
	"strings"
	"testing"
	"time"

	"jam/internal/domains/reservation/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildConflictQuery(t *testing.T) {
	interval := model.Interval{
		Start: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		excludeID string
		wantArgs  int
	}{
		{
			name:      "no exclusion binds three parameters",
			excludeID: "",
			wantArgs:  3,
		},
		{
			name:      "exclusion binds the id as a fourth parameter",
			excludeID: "5f4dcc3b-0000-4000-8000-000000000001",
			wantArgs:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildConflictQuery("room-1", interval, tt.excludeID)

			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, "room-1", args[0])
			assert.Equal(t, interval.Start, args[1])
			assert.Equal(t, interval.End, args[2])

			if tt.excludeID == "" {
				// An empty exclude id must not reach the SQL at all; a bare
				// parameter cannot be compared against the uuid column.
				assert.NotContains(t, query, "$4")
			} else {
				assert.Contains(t, query, "id <> $4::uuid")
				assert.Equal(t, tt.excludeID, args[3])
			}

			assert.True(t, strings.HasSuffix(strings.TrimSpace(query), "ORDER BY start_time"))
		})
	}
}
