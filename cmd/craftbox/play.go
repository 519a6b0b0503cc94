package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/craftbox/internal/catalog"
	"github.com/hammamikhairi/craftbox/internal/clock"
	"github.com/hammamikhairi/craftbox/internal/conversation"
	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/display"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/engine"
	"github.com/hammamikhairi/craftbox/internal/game"
	"github.com/hammamikhairi/craftbox/internal/logger"
	"github.com/hammamikhairi/craftbox/internal/storage"
	"github.com/hammamikhairi/craftbox/internal/timer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive crafting box (default)",
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closer := newLogger(cfg)
	defer closer.Close()
	defer log.Sync()

	recipes, err := newCatalog(cfg, log)
	if err != nil {
		return err
	}

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	clk := clock.Real{}
	store := storage.NewMemoryStore(log, &domain.GameState{
		Inventory: cfg.StartingInventory(),
		Flags:     cfg.Flags(),
	})

	// The UI needs the box and the process reports back through the UI, so
	// the hook reaches the UI through a variable set below.
	var ui *display.UI
	proc := game.New(store, clk, log,
		game.WithDefaultDuration(cfg.Craft.DefaultDuration),
		game.WithQueueSize(cfg.Craft.QueueSize),
		game.WithCatalog(recipes, cfg.Catalog.SyncInterval),
		game.WithAppliedHook(func(intent domain.Intent, err error) {
			if err != nil && ui != nil && intent.Kind != domain.IntentSave {
				ui.PrintUrgent(fmt.Sprintf("%s failed: %v", intent.Kind, err))
			}
		}),
	)

	featureKey := crafting.FeatureCraftingBox
	box := engine.New(proc, proc, clk, log, engine.WithFeatureKey(featureKey))
	ui = display.NewUI(box)
	notifier := conversation.NewCLINotifier(log, ui.Printf)
	parser := conversation.NewKeywordParser(log)

	watcher := timer.NewWatcher(proc, notifier, clk, log,
		timer.WithWatchInterval(cfg.Watch.Interval),
		timer.WithNotifyCooldown(cfg.Watch.NotifyCooldown),
		timer.WithAlmostDoneThreshold(cfg.Watch.AlmostDone),
		timer.WithMaxEscalation(cfg.Watch.MaxEscalation),
		timer.WithFeatureKey(featureKey),
	)

	proc.Start(ctx)
	defer proc.Stop()
	go watcher.Run(ctx)

	if cfg.Catalog.Path != "" && cfg.Catalog.Watch {
		fw := catalog.NewFileWatcher(cfg.Catalog.Path, recipes, log)
		go func() {
			if err := fw.Run(ctx); err != nil {
				log.Error("catalog watcher: %v", err)
			}
		}()
	}

	app := &cliApp{
		box:     box,
		recipes: recipes,
		parser:  parser,
		log:     log,
		ui:      ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'open' to open the crafting box, 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	return nil
}

type cliApp struct {
	box     *engine.Box
	recipes *catalog.MemorySource
	parser  domain.CommandParser
	log     *logger.Logger
	ui      *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	inputCh := a.ui.InputChan()
	for {
		var input string
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(in)
		}
		if input == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (payload=%q)", cmd.Type, cmd.Payload)
		if quit := a.handle(ctx, cmd); quit {
			return
		}
	}
}

// handle dispatches one command and reports whether the player quit.
func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandOpen:
		a.open(ctx)
	case domain.CommandClose:
		a.box.Close()
		a.ui.PrintHint("Crafting box closed.")
	case domain.CommandCraftTab:
		a.switchTab(ctx, engine.TabCraft)
	case domain.CommandRecipesTab:
		a.switchTab(ctx, engine.TabRecipes)
	case domain.CommandListRecipes:
		a.listRecipes(ctx)
	case domain.CommandUseRecipe:
		a.useRecipe(ctx, cmd.Payload)
	case domain.CommandSetSlot:
		a.setSlot(ctx, cmd.Payload)
	case domain.CommandClearSlot:
		a.clearSlot(ctx, cmd.Payload)
	case domain.CommandConfirm:
		a.confirm(ctx)
	case domain.CommandCollect:
		a.collect(ctx)
	case domain.CommandStatus:
		a.status(ctx)
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandQuit:
		a.box.Close()
		a.ui.PrintChat("Bye!")
		return true
	default:
		a.ui.PrintChat(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", cmd.Payload))
	}
	return false
}

func (a *cliApp) open(ctx context.Context) {
	v, err := a.box.Open(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.ui.PrintBlock(display.RenderBox(v))
}

func (a *cliApp) switchTab(ctx context.Context, tab engine.Tab) {
	if err := a.box.SetTab(tab); err != nil {
		a.refused(err)
		return
	}
	a.redraw(ctx)
}

func (a *cliApp) listRecipes(ctx context.Context) {
	v, err := a.box.View(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	if !v.Access {
		a.refused(domain.ErrAccessDenied)
		return
	}
	a.ui.PrintHeader("Recipes:")
	a.ui.PrintBlock(display.RenderRecipes(v.Recipes))
}

func (a *cliApp) useRecipe(ctx context.Context, query string) {
	name, ok := a.recipes.Lookup(query)
	if !ok {
		if s := a.recipes.Suggest(query, 3); len(s) > 0 {
			a.ui.PrintHint(fmt.Sprintf("No recipe %q. Did you mean: %s?", query, strings.Join(s, ", ")))
		} else {
			a.ui.PrintHint(fmt.Sprintf("No recipe %q. Type 'list' to see the catalog.", query))
		}
		return
	}
	if _, err := a.box.ApplyRecipe(ctx, name); err != nil {
		a.refused(err)
		return
	}
	a.redraw(ctx)
}

func (a *cliApp) setSlot(ctx context.Context, payload string) {
	idx, ing, err := conversation.SlotArgs(payload)
	if err != nil {
		a.ui.PrintHint("Usage: set <slot 1-9> <item> <qty>")
		return
	}
	if _, err := a.box.SetSlot(ctx, idx, ing); err != nil {
		a.refused(err)
		return
	}
	a.redraw(ctx)
}

func (a *cliApp) clearSlot(ctx context.Context, payload string) {
	idx, err := conversation.SlotIndex(payload)
	if err != nil {
		a.ui.PrintHint("Usage: clear <slot 1-9>")
		return
	}
	if _, err := a.box.ClearSlot(ctx, idx); err != nil {
		a.refused(err)
		return
	}
	a.redraw(ctx)
}

func (a *cliApp) confirm(ctx context.Context) {
	if _, err := a.box.Confirm(ctx); err != nil {
		a.refused(err)
		return
	}
	a.ui.PrintChat("Crafting started.")
}

func (a *cliApp) collect(ctx context.Context) {
	if _, err := a.box.Collect(ctx); err != nil {
		a.refused(err)
		return
	}
	a.ui.PrintChat("Collected!")
}

func (a *cliApp) status(ctx context.Context) {
	v, err := a.box.View(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	if !v.Access {
		a.refused(domain.ErrAccessDenied)
		return
	}

	item := "nothing"
	if v.Active != nil {
		item = v.Active.Output
	}
	a.ui.PrintHeader("Status:")
	a.ui.PrintLine(fmt.Sprintf("Item:    %s", item))
	a.ui.PrintLine(fmt.Sprintf("Status:  %s", v.Status))
	if v.Open {
		a.ui.PrintLine("Box:     open (" + v.Tab.String() + ")")
	} else {
		a.ui.PrintLine("Box:     closed")
	}
	a.ui.PrintHint(display.ActionHint(v))
	a.ui.PrintBlock(display.RenderInventory(v.Inventory))
}

func (a *cliApp) redraw(ctx context.Context) {
	v, err := a.box.View(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
		return
	}
	a.ui.PrintBlock(display.RenderBox(v))
}

// refused shows a rejected action as a hint line, never as an error.
func (a *cliApp) refused(err error) {
	var shortfall *domain.ShortfallError
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		a.ui.PrintHint("Crafting box: coming soon.")
	case errors.Is(err, domain.ErrBoxClosed):
		a.ui.PrintHint("The crafting box is closed. Type 'open' first.")
	case errors.Is(err, domain.ErrInvalidIndex):
		a.ui.PrintHint("Slots are numbered 1 to 9.")
	case errors.Is(err, domain.ErrInvalidIngredient):
		a.ui.PrintHint("Quantities must be at least 1.")
	case errors.As(err, &shortfall):
		a.ui.PrintHint("Confirm disabled: " + shortfall.Error())
	case errors.Is(err, domain.ErrNoActiveRecipe):
		a.ui.PrintHint("Confirm disabled: no recipe selected. Type 'use <recipe>'.")
	case errors.Is(err, domain.ErrCraftInProgress):
		a.ui.PrintHint("Something is already crafting.")
	case errors.Is(err, domain.ErrNotReady):
		a.ui.PrintHint("Nothing is ready to collect yet.")
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintHint("That recipe is not in the catalog.")
	case errors.Is(err, game.ErrQueueFull):
		a.ui.PrintHint("The game is busy, try again.")
	default:
		a.log.Error("command failed: %v", err)
		a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands:")
	a.ui.PrintLine("  open / close             Open or close the crafting box")
	a.ui.PrintLine("  craft / recipes          Switch tab")
	a.ui.PrintLine("  list                     Show the recipe catalog")
	a.ui.PrintLine("  use <recipe>             Fill the slots from a recipe")
	a.ui.PrintLine("  set <slot> <item> <qty>  Put an ingredient in a slot (1-9)")
	a.ui.PrintLine("  clear <slot>             Empty a slot")
	a.ui.PrintLine("  confirm / go             Start crafting")
	a.ui.PrintLine("  collect                  Take a finished craft")
	a.ui.PrintLine("  status                   Show progress and inventory")
	a.ui.PrintLine("  help                     Show this message")
	a.ui.PrintLine("  quit / exit              Exit")
}
