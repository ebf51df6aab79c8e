package commands

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/workspace"
)

// Setting keys carried by types.SettingChangedMsg.
const (
	SettingMode      = "mode"
	SettingDensity   = "density"
	SettingAutoApply = "auto_apply_patch"
)

// Env is what Item.When conditions are evaluated against.
type Env struct {
	Project   string `expr:"project"`
	Chapter   string `expr:"chapter"`
	AutoApply bool   `expr:"autoApply"`
	Mode      string `expr:"mode"`
	Density   string `expr:"density"`
}

// Registry assembles the palette catalog from workspace data and settings.
type Registry struct {
	recent *Recent
	exec   *Executor
	log    *logging.Logger

	mu       sync.Mutex
	programs map[string]*vm.Program
}

// NewRegistry creates a registry. recent may be nil.
func NewRegistry(recent *Recent, exec *Executor) *Registry {
	if recent == nil {
		recent = NewRecent(DefaultRecentLimit, nil)
	}
	return &Registry{
		recent:   recent,
		exec:     exec,
		log:      logging.Named("registry"),
		programs: map[string]*vm.Program{},
	}
}

// Recent returns the registry's recent list.
func (r *Registry) Recent() *Recent {
	return r.recent
}

// Build returns the catalog: recent items, static navigation, data
// navigation, actions and help, in that order. Items whose When condition
// is false are left out.
func (r *Registry) Build(snap workspace.Snapshot, env Env) []Item {
	if env.Project == "" {
		env.Project = snap.Project
	}
	if env.Chapter == "" {
		env.Chapter = snap.Chapter
	}

	var all []Item
	all = append(all, staticNavigation()...)
	all = append(all, dataNavigation(snap)...)
	all = append(all, r.actions(env)...)
	all = append(all, HelpItems()...)

	catalog := make([]Item, 0, len(all))
	for _, item := range all {
		if !r.available(item, env) {
			continue
		}
		if item.Group == GroupNavigate {
			item.Execute = tracked(item)
		}
		catalog = append(catalog, item)
	}

	return append(r.recent.Resolve(catalog), catalog...)
}

// available evaluates item.When. A condition that fails to compile or run
// hides the item.
func (r *Registry) available(item Item, env Env) bool {
	if item.When == "" {
		return true
	}
	program, err := r.compile(item.When)
	if err != nil {
		r.log.Warn("Invalid item condition", "item", item.ID, "when", item.When, "error", err)
		return false
	}
	out, err := expr.Run(program, env)
	if err != nil {
		r.log.Warn("Item condition failed", "item", item.ID, "error", err)
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func (r *Registry) compile(condition string) (*vm.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[condition]; ok {
		return p, nil
	}
	p, err := expr.Compile(condition, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile condition: %w", err)
	}
	r.programs[condition] = p
	return p, nil
}

func staticNavigation() []Item {
	return []Item{
		{ID: "nav-characters", Title: "Go to Characters", Subtitle: "Open characters panel", Group: GroupNavigate,
			Execute: NavigationCommand(types.ViewCharacters, "")},
		{ID: "nav-settings", Title: "Settings", Subtitle: "Open settings panel", Group: GroupNavigate,
			Execute: NavigationCommand(types.ViewSettings, "")},
		{ID: "nav-chapter", Title: "Go to Chapter Editor", Group: GroupNavigate, When: `chapter != ""`,
			Execute: NavigationCommand(types.ViewChapter, "")},
		{ID: "nav-canon", Title: "Go to Canon / Proposals", Group: GroupNavigate,
			Execute: NavigationCommand(types.ViewCanon, "")},
		{ID: "nav-world", Title: "Go to World panel", Group: GroupNavigate,
			Execute: NavigationCommand(types.ViewWorld, "")},
		{ID: "nav-techniques", Title: "Go to Techniques", Group: GroupNavigate,
			Execute: NavigationCommand(types.ViewTechniques, "")},
	}
}

func dataNavigation(snap workspace.Snapshot) []Item {
	var items []Item
	for _, c := range snap.Characters {
		title := displayName(c.Title, c.ID)
		items = append(items, Item{
			ID:       "char-" + c.ID,
			Title:    "Open Character: " + title,
			Subtitle: c.ID,
			Group:    GroupNavigate,
			Keywords: []string{c.Title, c.ID, "character"},
			Payload:  map[string]any{"kind": KindCharacter, "id": c.ID},
			Execute:  NavigationCommand(types.ViewCharacters, c.ID),
		})
	}
	for _, bp := range snap.Blueprints {
		items = append(items, Item{
			ID:       "bp-" + bp.ID,
			Title:    "Open Blueprint: " + displayName(bp.Title, bp.ID),
			Subtitle: bp.ID,
			Group:    GroupNavigate,
			Keywords: []string{bp.ID, bp.Title, "blueprint"},
			Payload:  map[string]any{"kind": "blueprint", "id": bp.ID},
			Execute:  NavigationCommand(types.ViewContext, bp.ID),
		})
	}
	for _, ch := range snap.Chapters {
		items = append(items, Item{
			ID:       "chapter-" + ch,
			Title:    "Open Chapter: " + ch,
			Subtitle: "Chapter editor",
			Group:    GroupNavigate,
			Keywords: []string{ch, "chapter"},
			Payload:  map[string]any{"kind": KindChapter, "id": ch},
			Execute:  OpenChapterCommand(ch),
		})
	}
	for _, w := range snap.WorldCards {
		items = append(items, Item{
			ID:       "world-" + w.ID,
			Title:    "Open World Card: " + displayName(w.Title, w.ID),
			Subtitle: w.ID,
			Group:    GroupNavigate,
			Keywords: []string{w.ID, w.Title, "world", "lore", "rule"},
			Payload:  map[string]any{"kind": "world", "id": w.ID},
			Execute:  NavigationCommand(types.ViewWorld, w.ID),
		})
	}
	for _, p := range snap.Proposals {
		status := p.Status
		if status == "" {
			status = "pending"
		}
		items = append(items, Item{
			ID:       "proposal-" + p.ID,
			Title:    "Open Proposal: " + p.ID,
			Subtitle: status,
			Group:    GroupNavigate,
			Keywords: []string{p.ID, p.Name, "proposal", status},
			Payload:  map[string]any{"kind": "proposal", "id": p.ID},
			Execute:  NavigationCommand(types.ViewCanon, p.ID),
		})
	}
	return items
}

func (r *Registry) actions(env Env) []Item {
	nextMode := "light"
	if env.Mode == "light" {
		nextMode = "dark"
	}
	density := env.Density
	if density == "" {
		density = "comfortable"
	}
	nextDensity := "compact"
	if density == "compact" {
		nextDensity = "comfortable"
	}
	autoApply := "Off"
	if env.AutoApply {
		autoApply = "On"
	}

	items := []Item{
		{ID: "act-theme-light", Title: "Toggle Theme: Light", Group: GroupActions,
			Execute: SettingCommand(SettingMode, nextMode)},
		{ID: "act-theme-system", Title: "Toggle Theme: System", Group: GroupActions,
			Execute: SettingCommand(SettingMode, "system")},
		{ID: "act-density", Title: fmt.Sprintf("Toggle Density (%s)", density), Group: GroupActions,
			Execute: SettingCommand(SettingDensity, nextDensity)},
		{ID: "act-auto-apply", Title: fmt.Sprintf("Toggle Auto-Apply Patch (%s)", autoApply), Group: GroupActions,
			Execute: SettingCommand(SettingAutoApply, !env.AutoApply)},
		{ID: "act-refresh-data", Title: "Refresh Data", Subtitle: "Clear palette cache and refetch", Group: GroupActions,
			Execute: RefreshCommand()},
		{ID: "act-copy-examples", Title: "Copy Create Examples", Subtitle: "Command language samples to clipboard", Group: GroupActions,
			Keywords: []string{"help", "clipboard", "create"}, Execute: CopyExamplesCommand()},
		{ID: "act-quit", Title: "Quit", Subtitle: "Exit novix", Group: GroupActions,
			Keywords: []string{"exit"}, Execute: QuitCommand()},
	}
	if r.exec != nil {
		items = append(items, Item{
			ID: "act-list-pinned", Title: "List pinned techniques", Subtitle: env.Chapter, Group: GroupActions,
			When: `chapter != ""`, Keywords: []string{"pin", "technique"},
			Execute: func() tea.Cmd { return r.exec.ListPinned(cmdlang.PinTechnique) },
		})
	}
	return items
}

// HelpItems returns the Help group. Running one only closes the palette.
func HelpItems() []Item {
	return []Item{
		{ID: "help-shortcuts", Title: "Keyboard shortcuts",
			Subtitle: "Ctrl+K opens, Esc closes, Up/Down move, Enter runs, Alt+Enter keeps open", Group: GroupHelp},
		{ID: "help-prefix-actions", Title: "Prefix > shows Actions only", Group: GroupHelp},
		{ID: "help-prefix-char", Title: "Prefix @ shows Characters only", Group: GroupHelp},
		{ID: "help-prefix-chapter", Title: "Prefix # shows Chapters only", Group: GroupHelp},
		{ID: "help-prefix-help", Title: "Prefix ? shows help", Group: GroupHelp},
		{ID: "help-prefix-create", Title: "Prefix + or create enters create mode",
			Subtitle: "+ character Alice --tag 主角", Group: GroupHelp},
	}
}
