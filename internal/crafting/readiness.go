package crafting

import (
	"time"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

// IsReady reports whether a running craft has reached its completion time.
// Only StatusCrafting can become ready; every other status yields false, as
// does a missing readyAt.
func IsReady(status domain.CraftingStatus, readyAt *time.Time, now time.Time) bool {
	if status != domain.StatusCrafting || readyAt == nil {
		return false
	}
	return !readyAt.After(now)
}

// Remaining returns how long until readyAt, clamped at zero. It is zero for
// anything that is not crafting.
func Remaining(status domain.CraftingStatus, readyAt *time.Time, now time.Time) time.Duration {
	if status != domain.StatusCrafting || readyAt == nil {
		return 0
	}
	if d := readyAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
