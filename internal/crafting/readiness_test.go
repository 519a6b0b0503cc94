package crafting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

func at(ms int64) *time.Time {
	t := time.UnixMilli(ms)
	return &t
}

func TestIsReady(t *testing.T) {
	now := time.UnixMilli(1000)

	tests := []struct {
		name    string
		status  domain.CraftingStatus
		readyAt *time.Time
		want    bool
	}{
		{"crafting, due in the past", domain.StatusCrafting, at(500), true},
		{"crafting, due exactly now", domain.StatusCrafting, at(1000), true},
		{"crafting, due in the future", domain.StatusCrafting, at(1001), false},
		{"crafting, no readyAt", domain.StatusCrafting, nil, false},
		{"idle", domain.StatusIdle, at(500), false},
		{"already ready", domain.StatusReady, at(500), false},
		{"collected", domain.StatusCollected, at(500), false},
		{"idle, no readyAt", domain.StatusIdle, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReady(tt.status, tt.readyAt, now))
		})
	}
}

// Scenario B: readyAt=1000 flips exactly at now=1000.
func TestIsReadyBoundary(t *testing.T) {
	readyAt := at(1000)
	assert.False(t, IsReady(domain.StatusCrafting, readyAt, time.UnixMilli(999)))
	assert.True(t, IsReady(domain.StatusCrafting, readyAt, time.UnixMilli(1000)))
	assert.True(t, IsReady(domain.StatusCrafting, readyAt, time.UnixMilli(1001)))
}

func TestIsReadyIdempotent(t *testing.T) {
	readyAt := at(1000)
	now := time.UnixMilli(1000)
	for i := 0; i < 10; i++ {
		assert.True(t, IsReady(domain.StatusCrafting, readyAt, now))
	}
	assert.Equal(t, int64(1000), readyAt.UnixMilli(), "readyAt must not be touched")
}

func TestRemaining(t *testing.T) {
	now := time.UnixMilli(1000)
	assert.Equal(t, 500*time.Millisecond, Remaining(domain.StatusCrafting, at(1500), now))
	assert.Equal(t, time.Duration(0), Remaining(domain.StatusCrafting, at(900), now))
	assert.Equal(t, time.Duration(0), Remaining(domain.StatusIdle, at(1500), now))
	assert.Equal(t, time.Duration(0), Remaining(domain.StatusCrafting, nil, now))
}
