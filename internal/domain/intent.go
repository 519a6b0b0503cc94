package domain

import "time"

// IntentKind is a request the crafting box hands to the game-state owner.
type IntentKind int

const (
	// IntentSave asks the owner to persist now. Sent before the box opens.
	IntentSave IntentKind = iota
	// IntentStartCraft asks the owner to start crafting with Slots.
	IntentStartCraft
	// IntentCollect asks the owner to hand over a finished craft.
	IntentCollect
)

// String returns a human-readable intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentSave:
		return "save"
	case IntentStartCraft:
		return "start_craft"
	case IntentCollect:
		return "collect"
	default:
		return "unknown"
	}
}

// Intent is a fire-and-forget request. The sender never applies it itself.
type Intent struct {
	ID       string
	Kind     IntentKind
	Recipe   string    // output identity, StartCraft only
	Slots    SlotArray // confirmed selection, StartCraft only
	IssuedAt time.Time
}
