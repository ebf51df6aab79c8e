package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/novix/internal/cards"
	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/components"
	"github.com/renato0307/novix/internal/config"
	"github.com/renato0307/novix/internal/keyboard"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/palette"
	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/ui"
	"github.com/renato0307/novix/internal/workspace"
)

const appName = "novix"

// Settings persists what the shell changes at runtime. config.Loader
// implements it.
type Settings interface {
	Set(key string, value any) error
	SaveRecent(entries []commands.RecentEntry) error
}

// Deps are the collaborators of the shell.
type Deps struct {
	Config   *config.Config
	Store    workspace.Store
	Mapper   *cards.Mapper
	Settings Settings // may be nil
	Recent   []commands.RecentEntry
}

// dataLoadedMsg reports a finished workspace reload.
type dataLoadedMsg struct {
	Err    error
	Notify bool
}

// chapterOpenedMsg reports the result of opening a chapter.
type chapterOpenedMsg struct {
	ID  string
	Err error
}

type Model struct {
	cfg      *config.Config
	settings Settings
	store    workspace.Store
	cache    *workspace.Cache
	registry *commands.Registry

	keys    *keyboard.Dispatcher
	quit    key.Binding
	palette *palette.Model

	views   *types.ViewRegistry
	header  *components.Header
	message *components.UserMessage
	layout  *components.Layout
	theme   *ui.Theme

	view   string
	focus  string
	width  int
	height int

	log *logging.Logger
}

// NewModel wires the palette, the workspace cache and the status line.
func NewModel(deps Deps) *Model {
	cfg := deps.Config
	theme := ui.GetTheme(cfg.Theme).WithMode(ui.Mode(cfg.Mode))
	keyMap := cfg.KeyMap()

	cache := workspace.NewCache(deps.Store)
	exec := commands.NewExecutor(deps.Store, deps.Mapper)
	registry := commands.NewRegistry(commands.NewRecent(cfg.RecentLimit, deps.Recent), exec)

	session := palette.NewSession(
		palette.WithResolver(commands.NewLiveResolver(cache.Snapshot, exec)),
		palette.WithPrepare(func(ctx context.Context) error { return cache.Load(ctx, false) }),
		palette.WithKeys(keyMap),
	)

	m := &Model{
		cfg:      cfg,
		settings: deps.Settings,
		store:    deps.Store,
		cache:    cache,
		registry: registry,
		keys:     keyboard.NewDispatcher(),
		quit:     keyMap.Bindings().Quit,
		palette:  palette.NewModel(session, theme),
		views:    newViewRegistry(),
		header:   components.NewHeader(appName, theme),
		message:  components.NewUserMessage(theme),
		layout:   components.NewLayout(80, 24),
		theme:    theme,
		view:     types.ViewCharacters,
		width:    80,
		height:   24,
		log:      logging.Named("app"),
	}

	// The palette sees keys first so its toggle works regardless of what
	// else is focused.
	m.palette.Attach(m.keys)
	m.keys.Subscribe(m.handleGlobalKey)

	m.layout.SetCompact(cfg.Density == "compact")
	m.header.SetProject(cfg.Project)
	m.setView(m.view, "")
	m.rebuildCatalog()
	return m
}

func newViewRegistry() *types.ViewRegistry {
	r := types.NewViewRegistry()
	for _, v := range []types.View{
		{ID: types.ViewProjects, Title: "Projects"},
		{ID: types.ViewCharacters, Title: "Characters"},
		{ID: types.ViewWorld, Title: "World"},
		{ID: types.ViewStyle, Title: "Style"},
		{ID: types.ViewContext, Title: "Context"},
		{ID: types.ViewChapter, Title: "Chapter Editor"},
		{ID: types.ViewCanon, Title: "Canon / Proposals"},
		{ID: types.ViewTechniques, Title: "Techniques"},
		{ID: types.ViewSettings, Title: "Settings"},
	} {
		r.Register(v)
	}
	return r
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(appName), m.reload(false))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.message.SetWidth(msg.Width)
		m.palette.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.keys.DispatchTea(msg); handled {
			return m, cmd
		}
		return m, m.palette.Update(msg)

	case palette.PreparedMsg:
		m.palette.Update(msg)
		if msg.Err == nil {
			m.syncData()
		}
		return m, nil

	case palette.FocusInputMsg, palette.CompositionMsg, tea.MouseMsg:
		return m, m.palette.Update(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return m, tea.Batch(cmd, m.palette.Update(msg))

	case dataLoadedMsg:
		if msg.Err != nil {
			m.log.Warn("Workspace reload failed", "error", msg.Err)
			return m, m.setStatus(types.ErrorStatusMsg(msg.Err.Error()))
		}
		m.syncData()
		if msg.Notify {
			return m, m.setStatus(types.SuccessMsg("Data refreshed"))
		}
		return m, nil

	case types.ViewSwitchMsg:
		m.setView(msg.View, msg.Focus)
		return m, nil

	case types.OpenChapterMsg:
		return m, m.openChapter(msg.ChapterID)

	case chapterOpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus(types.ErrorStatusMsg(fmt.Sprintf("failed to open chapter %s: %v", msg.ID, msg.Err)))
		}
		m.setView(types.ViewChapter, msg.ID)
		return m, m.reload(false)

	case types.CreatedMsg:
		status := types.SuccessMsg("Created " + msg.Label)
		if msg.Notice != "" {
			status = types.WarningMsg(fmt.Sprintf("Created %s (%s)", msg.Label, msg.Notice))
		}
		if msg.View != "" {
			m.setView(msg.View, msg.Focus)
		}
		return m, tea.Batch(m.setStatus(status), m.reload(false))

	case types.SettingChangedMsg:
		return m, m.applySetting(msg)

	case types.RecentUsedMsg:
		m.registry.Recent().Use(commands.RecentEntry{ID: msg.ID, Title: msg.Title, Subtitle: msg.Subtitle})
		if m.settings != nil {
			if err := m.settings.SaveRecent(m.registry.Recent().Entries()); err != nil {
				m.log.Warn("Failed to save recent list", "error", err)
			}
		}
		m.rebuildCatalog()
		return m, nil

	case types.RefreshDataMsg:
		return m, tea.Batch(m.setStatus(types.LoadingMsg("Refreshing data…")), m.reload(true))

	case types.StatusMsg:
		return m, m.setStatus(msg)

	case types.ClearStatusMsg:
		m.message.Clear(msg.MessageID)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleGlobalKey(ev keyboard.Event) (bool, tea.Cmd) {
	if m.quit.Enabled() && slices.Contains(m.quit.Keys(), ev.String()) {
		return true, tea.Quit
	}
	return false, nil
}

func (m *Model) setStatus(msg types.StatusMsg) tea.Cmd {
	return m.message.SetMessage(msg.Message, msg.Type)
}

func (m *Model) setView(id, focus string) {
	view, ok := m.views.Get(id)
	if !ok {
		m.log.Warn("Unknown view", "view", id)
		return
	}
	m.view = id
	m.focus = focus
	m.header.SetViewTitle(view.Title)
}

// reload refetches the workspace snapshot in the background. With force
// the cached snapshot is dropped first and the result is announced.
func (m *Model) reload(force bool) tea.Cmd {
	if force {
		m.cache.Invalidate()
	}
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), palette.DefaultPrepareTimeout)
		defer cancel()
		return dataLoadedMsg{Err: cache.Load(ctx, true), Notify: force}
	}
}

func (m *Model) openChapter(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commands.DefaultStoreTimeout)
		defer cancel()
		return chapterOpenedMsg{ID: id, Err: store.OpenChapter(ctx, id)}
	}
}

// syncData pushes the cached snapshot into the header and the catalog.
func (m *Model) syncData() {
	snap, ok := m.cache.Snapshot()
	if ok {
		m.header.SetProject(snap.Project)
		m.header.SetChapter(snap.Chapter)
		m.header.SetLastRefresh(snap.LoadedAt)
	}
	m.rebuildCatalog()
}

func (m *Model) rebuildCatalog() {
	snap, _ := m.cache.Snapshot()
	env := commands.Env{
		Project:   m.cfg.Project,
		AutoApply: m.cfg.AutoApplyPatch,
		Mode:      m.cfg.Mode,
		Density:   m.cfg.Density,
	}
	m.palette.Session().SetCatalog(m.registry.Build(snap, env))
}

func (m *Model) applySetting(msg types.SettingChangedMsg) tea.Cmd {
	switch msg.Key {
	case commands.SettingMode:
		mode, _ := msg.Value.(string)
		m.cfg.Mode = mode
		m.setTheme(ui.GetTheme(m.cfg.Theme).WithMode(ui.Mode(mode)))
	case commands.SettingDensity:
		density, _ := msg.Value.(string)
		m.cfg.Density = density
		m.layout.SetCompact(density == "compact")
	case commands.SettingAutoApply:
		on, _ := msg.Value.(bool)
		m.cfg.AutoApplyPatch = on
	default:
		m.log.Warn("Unknown setting", "key", msg.Key)
		return nil
	}
	m.rebuildCatalog()

	if m.settings != nil {
		if err := m.settings.Set(msg.Key, msg.Value); err != nil {
			m.log.Error("Failed to save setting", "key", msg.Key, "error", err)
			return m.setStatus(types.ErrorStatusMsg(fmt.Sprintf("failed to save %s: %v", msg.Key, err)))
		}
	}
	return m.setStatus(types.SuccessMsg(fmt.Sprintf("%s set to %v", msg.Key, msg.Value)))
}

func (m *Model) setTheme(theme *ui.Theme) {
	m.theme = theme
	m.header.SetTheme(theme)
	m.message.SetTheme(theme)
	m.palette.SetTheme(theme)
}

func (m *Model) View() string {
	base := m.layout.Render(m.header.View(), m.bodyView(), m.message.View())
	return m.layout.Overlay(base, m.palette.View(), palette.PanelTop)
}
