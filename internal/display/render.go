package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/engine"
)

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colBorder).
			Width(12).
			Align(lipgloss.Center)

	emptyCellStyle = cellStyle.Foreground(colBorder)

	tabActiveStyle = lipgloss.NewStyle().Foreground(colInk).Background(colGreen).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(colDim).Padding(0, 1)
	badgeStyle     = lipgloss.NewStyle().Foreground(colInk).Background(colRose).Padding(0, 1)

	comingSoonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colBorder).
			Foreground(colMuted).
			Italic(true).
			Padding(1, 4)
)

const gridColumns = 3

// RenderBox draws the open crafting box: the tab header and the active tab.
// Without access it only shows the "coming soon" placeholder.
func RenderBox(v engine.View) string {
	if !v.Access {
		return comingSoonStyle.Render("Crafting box: coming soon")
	}

	var body string
	switch v.Tab {
	case engine.TabRecipes:
		body = RenderRecipes(v.Recipes)
	default:
		body = renderCraftTab(v)
	}
	return lipgloss.JoinVertical(lipgloss.Left, renderTabs(v), "", body)
}

func renderTabs(v engine.View) string {
	tabs := []engine.Tab{engine.TabCraft, engine.TabRecipes}
	parts := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		label := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == v.Tab {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	if v.Ready {
		parts = append(parts, badgeStyle.Render("Ready"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderCraftTab(v engine.View) string {
	lines := []string{RenderSlots(v.Slots)}

	if target := v.Target(); target != nil {
		lines = append(lines, primaryStyle.Render("Recipe: "+target.Output))
	} else {
		lines = append(lines, secondaryStyle.Render("No recipe. Type 'use <recipe>' to pick one."))
	}
	lines = append(lines, secondaryStyle.Render(ActionHint(v)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderSlots draws the nine slots as a 3x3 grid, numbered from 1.
func RenderSlots(slots domain.SlotArray) string {
	rows := make([]string, 0, domain.SlotCapacity/gridColumns)
	for r := 0; r < domain.SlotCapacity; r += gridColumns {
		cells := make([]string, 0, gridColumns)
		for i := r; i < r+gridColumns; i++ {
			cells = append(cells, renderCell(i, slots[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(index int, ing domain.RecipeIngredient) string {
	if ing.IsEmpty() {
		return emptyCellStyle.Render(fmt.Sprintf("%d\n·", index+1))
	}
	return cellStyle.Render(fmt.Sprintf("%d\n%s x%d", index+1, ing.Item, ing.Quantity))
}

// ActionHint is the one-line status under the grid. Refused actions show
// up here rather than as errors.
func ActionHint(v engine.View) string {
	switch {
	case v.Ready:
		return "Ready! Type 'collect' to take it."
	case v.Status == domain.StatusCrafting:
		return "Crafting... " + fmtDuration(v.Remaining) + " left."
	case v.Target() == nil:
		return "Confirm disabled: no recipe selected."
	case len(v.Shortfall) > 0:
		return "Confirm disabled: missing " + formatMissing(v.Shortfall) + "."
	case v.CanConfirm:
		return "Type 'confirm' to start crafting."
	default:
		return "Confirm disabled."
	}
}

// RenderRecipes lists the catalog, one recipe per line.
func RenderRecipes(recipes []domain.RecipeSummary) string {
	if len(recipes) == 0 {
		return secondaryStyle.Render("No recipes unlocked yet.")
	}
	lines := make([]string, 0, len(recipes))
	for i, r := range recipes {
		line := primaryStyle.Render(fmt.Sprintf("[%d] %s", i+1, r.Output)) +
			secondaryStyle.Render(fmt.Sprintf("  %s, %d ingredients", r.Category, r.Ingredients))
		if r.Description != "" {
			line += "\n    " + secondaryStyle.Render(r.Description)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderInventory lists held items in name order.
func RenderInventory(inv map[string]int) string {
	if len(inv) == 0 {
		return secondaryStyle.Render("Inventory empty.")
	}
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, inv[name]))
	}
	return primaryStyle.Render("Inventory: " + strings.Join(parts, ", "))
}

func formatMissing(missing map[string]int) string {
	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", missing[name], name))
	}
	return strings.Join(parts, ", ")
}
