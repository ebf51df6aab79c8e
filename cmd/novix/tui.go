package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renato0307/novix/internal/app"
	"github.com/renato0307/novix/internal/cards"
	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/config"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/workspace"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load(nil)
	if err != nil {
		return err
	}
	log := logging.Named("cli")

	recent, err := opts.loader.LoadRecent()
	if err != nil {
		log.Warn("Ignoring recent list", "error", err)
		recent = nil
	}
	mapper, err := cards.NewMapper()
	if err != nil {
		return fmt.Errorf("failed to load card schemas: %w", err)
	}

	model := app.NewModel(app.Deps{
		Config:   cfg,
		Store:    newStore(cfg),
		Mapper:   mapper,
		Settings: opts.loader,
		Recent:   recent,
	})

	log.Info("Starting UI", "config", opts.loader.ConfigPath(), "theme", cfg.Theme)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

// newStore opens the configured project. Without one the sample project
// is used.
func newStore(cfg *config.Config) workspace.Store {
	if cfg.Project != "" {
		return workspace.NewMemoryStore(cfg.Project)
	}
	return workspace.NewDemoStore()
}

// catalog is the palette catalog over the configured store, together with
// the resolver that previews create and pin commands.
type catalog struct {
	items    []commands.Item
	resolver commands.Resolver
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog, error) {
	store := newStore(cfg)
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	mapper, err := cards.NewMapper()
	if err != nil {
		return nil, fmt.Errorf("failed to load card schemas: %w", err)
	}

	exec := commands.NewExecutor(store, mapper)
	registry := commands.NewRegistry(commands.NewRecent(cfg.RecentLimit, nil), exec)
	env := commands.Env{
		Project:   cfg.Project,
		AutoApply: cfg.AutoApplyPatch,
		Mode:      cfg.Mode,
		Density:   cfg.Density,
	}
	snapshot := func() (workspace.Snapshot, bool) { return snap, true }

	return &catalog{
		items:    registry.Build(snap, env),
		resolver: commands.NewLiveResolver(snapshot, exec),
	}, nil
}

// rank orders the catalog for query the way the palette lists it. preview
// is the resolver's synthetic item, listed above the ranked ones. errMsg is
// the resolver error shown instead of a preview.
func (c *catalog) rank(query string) (preview *commands.Item, ranked []commands.Item, errMsg string) {
	ranked = commands.Rank(c.items, query)
	res := c.resolver.Resolve(query)
	if res == nil {
		return nil, ranked, ""
	}
	return res.Item, ranked, res.Err
}
