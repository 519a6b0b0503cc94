// Package conversation provides command parsing and player notification
// implementations for the crafting box REPL.
package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches player input to commands using keywords and simple
// patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
	// payload builds the command payload from the submatches. nil means the
	// command carries none.
	payload func(m []string) string
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regex: regexp.MustCompile(`(?i)^(open|box|craftbox)$`), command: domain.CommandOpen},
		{regex: regexp.MustCompile(`(?i)^(close|shut|back)$`), command: domain.CommandClose},
		{regex: regexp.MustCompile(`(?i)^(craft|tab craft|slots)$`), command: domain.CommandCraftTab},
		{regex: regexp.MustCompile(`(?i)^(recipes|tab recipes|book)$`), command: domain.CommandRecipesTab},
		{regex: regexp.MustCompile(`(?i)^(list|ls|catalog)$`), command: domain.CommandListRecipes},
		{regex: regexp.MustCompile(`(?i)^(confirm|start|go|make)$`), command: domain.CommandConfirm},
		{regex: regexp.MustCompile(`(?i)^(collect|take|grab)$`), command: domain.CommandCollect},
		{regex: regexp.MustCompile(`(?i)^(status|where|progress|info)$`), command: domain.CommandStatus},
		{regex: regexp.MustCompile(`(?i)^(help|h|\?)$`), command: domain.CommandHelp},
		{regex: regexp.MustCompile(`(?i)^(quit|exit|q)$`), command: domain.CommandQuit},
		{
			regex:   regexp.MustCompile(`(?i)^(?:use|apply|pick|select)\s+(.+)$`),
			command: domain.CommandUseRecipe,
			payload: func(m []string) string { return strings.TrimSpace(m[1]) },
		},
		{
			regex:   regexp.MustCompile(`(?i)^(?:set|put)\s+(\d+)\s+(.+?)\s+(\d+)$`),
			command: domain.CommandSetSlot,
			payload: func(m []string) string { return m[1] + " " + strings.TrimSpace(m[2]) + " " + m[3] },
		},
		{
			// Quantity defaults to one.
			regex:   regexp.MustCompile(`(?i)^(?:set|put)\s+(\d+)\s+(.+)$`),
			command: domain.CommandSetSlot,
			payload: func(m []string) string { return m[1] + " " + strings.TrimSpace(m[2]) + " 1" },
		},
		{
			regex:   regexp.MustCompile(`(?i)^(?:clear|empty|remove)\s+(\d+)$`),
			command: domain.CommandClearSlot,
			payload: func(m []string) string { return m[1] },
		},
	}
	return p
}

// Parse converts player input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", rule.command)
		cmd := &domain.Command{Type: rule.command}
		if rule.payload != nil {
			cmd.Payload = rule.payload(m)
		}
		return cmd, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}

// SlotArgs decodes a set-slot payload ("<slot> <item> <qty>") into a
// zero-based slot index and the ingredient to place. Slots are numbered
// from 1 for the player. The index is not range-checked here.
func SlotArgs(payload string) (int, domain.RecipeIngredient, error) {
	fields := strings.Fields(payload)
	if len(fields) < 3 {
		return 0, domain.EmptySlot, fmt.Errorf("want <slot> <item> <qty>, got %q", payload)
	}

	slot, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, domain.EmptySlot, fmt.Errorf("slot %q: %w", fields[0], err)
	}
	qty, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, domain.EmptySlot, fmt.Errorf("quantity %q: %w", fields[len(fields)-1], err)
	}

	item := strings.Join(fields[1:len(fields)-1], " ")
	return slot - 1, domain.RecipeIngredient{Item: titleCase(item), Quantity: qty}, nil
}

// SlotIndex decodes a clear-slot payload into a zero-based index.
func SlotIndex(payload string) (int, error) {
	slot, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return 0, fmt.Errorf("slot %q: %w", payload, err)
	}
	return slot - 1, nil
}

// titleCase upper-cases the first letter of every word so "wood" matches the
// catalog's "Wood".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
