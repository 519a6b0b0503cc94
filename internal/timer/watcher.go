// Package timer watches the crafting box and tells the player when a craft
// is about to finish, has finished, and is still waiting to be collected.
package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/craftbox/internal/clock"
	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher checks the game state.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithNotifyCooldown sets the minimum time between collect reminders.
func WithNotifyCooldown(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which the watcher stops nagging.
func WithMaxEscalation(level int) WatcherOption {
	return func(w *Watcher) {
		w.maxEscalation = level
	}
}

// WithAlmostDoneThreshold sets how close to readyAt a craft must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.almostDoneThreshold = d
	}
}

// WithFeatureKey sets the flag that must be on for the watcher to speak.
func WithFeatureKey(key string) WatcherOption {
	return func(w *Watcher) {
		w.featureKey = key
	}
}

// Watcher polls the game state on an interval and re-derives readiness from
// each fresh snapshot. It only keeps notification bookkeeping between ticks.
type Watcher struct {
	source              domain.StateSource
	notifier            domain.Notifier
	clk                 clock.Clock
	log                 *logger.Logger
	interval            time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	almostDoneThreshold time.Duration
	featureKey          string

	track tracking
}

// tracking is what the watcher remembers about the craft identified by readyAt.
type tracking struct {
	readyAt         time.Time
	firstRemaining  time.Duration
	warnedAlmost    bool
	escalationLevel int
	lastNotified    time.Time
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(source domain.StateSource, notifier domain.Notifier, clk clock.Clock, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:              source,
		notifier:            notifier,
		clk:                 clk,
		log:                 log,
		interval:            time.Second,
		notifyCooldown:      30 * time.Second,
		maxEscalation:       3,
		almostDoneThreshold: 10 * time.Second,
		featureKey:          crafting.FeatureCraftingBox,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
// Intended to be called as a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check runs one watcher cycle. Run calls it on every tick.
func (w *Watcher) Check(ctx context.Context) {
	snap, err := w.source.Snapshot(ctx)
	if err != nil {
		w.log.Error("watcher: reading game state: %v", err)
		return
	}

	if !crafting.HasAccess(snap.Flags, w.featureKey) {
		return
	}

	box := snap.CraftingBox
	if box.ReadyAt == nil || box.Status != domain.StatusCrafting {
		w.track = tracking{}
		return
	}

	now := w.clk.Now()
	if !w.track.readyAt.Equal(*box.ReadyAt) {
		w.track = tracking{
			readyAt:        *box.ReadyAt,
			firstRemaining: crafting.Remaining(box.Status, box.ReadyAt, now),
		}
	}

	name := box.Item.Name()
	if name == "" {
		name = "Your craft"
	}

	w.log.Debug("watcher: %s status=%s readyAt=%s escalation=%d",
		name, box.Status, box.ReadyAt.Format(time.TimeOnly), w.track.escalationLevel)

	if crafting.IsReady(box.Status, box.ReadyAt, now) {
		w.remindCollect(ctx, name, now)
		return
	}

	remaining := crafting.Remaining(box.Status, box.ReadyAt, now)
	if !w.track.warnedAlmost && remaining <= w.almostDoneThreshold && w.track.firstRemaining > w.almostDoneThreshold*2 {
		w.track.warnedAlmost = true
		msg := fmt.Sprintf("[Crafting] %s is almost done, %s left.", name, formatRemaining(remaining))
		if err := w.notifier.Notify(ctx, msg); err != nil {
			w.log.Error("watcher: almost-done notify: %v", err)
		}
	}
}

func (w *Watcher) remindCollect(ctx context.Context, name string, now time.Time) {
	if w.track.escalationLevel == 0 {
		msg := w.escalationMessage(name)
		if err := w.notifier.NotifyUrgent(ctx, msg); err != nil {
			w.log.Error("watcher: ready notify: %v", err)
		}
		w.track.escalationLevel = 1
		w.track.lastNotified = now
		return
	}

	if w.track.escalationLevel > w.maxEscalation {
		return // Stop nagging.
	}
	if now.Sub(w.track.lastNotified) < w.notifyCooldown {
		return
	}

	msg := w.escalationMessage(name)
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: collect reminder: %v", err)
	}
	w.track.escalationLevel++
	w.track.lastNotified = now
}

// escalationMessage returns a message based on the escalation level.
func (w *Watcher) escalationMessage(name string) string {
	switch w.track.escalationLevel {
	case 0:
		return fmt.Sprintf("[Crafting] %s is ready. Type 'collect' to take it.", name)
	case 1:
		return fmt.Sprintf("[Crafting] %s is still waiting in the box.", name)
	case 2:
		return fmt.Sprintf("[Crafting] Don't forget your %s.", name)
	default:
		return fmt.Sprintf("[Crafting] %s.", name)
	}
}

// formatRemaining returns a short human duration.
// Rounds to the nearest minute once there's at least 1 minute left.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
