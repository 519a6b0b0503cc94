package display

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/engine"
)

const defaultBarWidth = 80

// StatusBar renders the crafting line pinned above the prompt. It is empty
// while nothing is crafting.
func StatusBar(v *engine.View, width int) string {
	text := statusText(v)
	if text == "" {
		return ""
	}
	if width <= 0 {
		width = defaultBarWidth
	}
	return barStyle.Width(width).Render(" " + text + " ")
}

func statusText(v *engine.View) string {
	switch phase(v) {
	case phaseLocked:
		return disabledStyle.Render("crafting box: coming soon")
	case phaseReady:
		return readyStyle.Render(itemName(v) + ": READY!")
	case phaseCrafting:
		return echoStyle.Render(itemName(v)+": ") + runningStyle.Render(fmtDuration(v.Remaining))
	}
	return ""
}

// titleStr is the terminal window title.
func titleStr(v *engine.View) string {
	const app = "Craftbox"
	if v == nil || v.Active == nil {
		return app
	}
	switch phase(v) {
	case phaseReady:
		return app + " | " + v.Active.Output + ": READY!"
	case phaseCrafting:
		return app + " | " + v.Active.Output + ": " + fmtDuration(v.Remaining)
	}
	return app
}

type barPhase int

const (
	phaseNone barPhase = iota
	phaseLocked
	phaseCrafting
	phaseReady
)

func phase(v *engine.View) barPhase {
	switch {
	case v == nil:
		return phaseNone
	case !v.Access:
		return phaseLocked
	case v.Ready:
		return phaseReady
	case v.Status == domain.StatusCrafting:
		return phaseCrafting
	}
	return phaseNone
}

func itemName(v *engine.View) string {
	if v.Active == nil {
		return "item"
	}
	return v.Active.Output
}

// fmtDuration renders a countdown as 45s or 2m05s.
func fmtDuration(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	mins, secs := int(d/time.Minute), int(d%time.Minute/time.Second)
	if mins == 0 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", mins, secs)
}
