package domain

// CommandType classifies what the player typed.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandOpen
	CommandClose
	CommandCraftTab
	CommandRecipesTab
	CommandListRecipes
	CommandUseRecipe // payload: recipe output name
	CommandSetSlot   // payload: "<slot> <item> <qty>"
	CommandClearSlot // payload: "<slot>"
	CommandConfirm
	CommandCollect
	CommandStatus
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandOpen:
		return "open"
	case CommandClose:
		return "close"
	case CommandCraftTab:
		return "craft_tab"
	case CommandRecipesTab:
		return "recipes_tab"
	case CommandListRecipes:
		return "list_recipes"
	case CommandUseRecipe:
		return "use_recipe"
	case CommandSetSlot:
		return "set_slot"
	case CommandClearSlot:
		return "clear_slot"
	case CommandConfirm:
		return "confirm"
	case CommandCollect:
		return "collect"
	case CommandStatus:
		return "status"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed player action.
type Command struct {
	Type    CommandType
	Payload string // optional context, e.g. recipe name for use
}

var commandNames = map[string]CommandType{
	"open":         CommandOpen,
	"close":        CommandClose,
	"craft_tab":    CommandCraftTab,
	"recipes_tab":  CommandRecipesTab,
	"list_recipes": CommandListRecipes,
	"use_recipe":   CommandUseRecipe,
	"set_slot":     CommandSetSlot,
	"clear_slot":   CommandClearSlot,
	"confirm":      CommandConfirm,
	"collect":      CommandCollect,
	"status":       CommandStatus,
	"help":         CommandHelp,
	"quit":         CommandQuit,
	"unknown":      CommandUnknown,
}

// CommandFromString converts a snake_case command name to a CommandType.
// Returns CommandUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CommandUnknown
}
