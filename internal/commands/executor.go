package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/novix/internal/cards"
	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/logging"
	"github.com/renato0307/novix/internal/messages"
	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/workspace"
)

// createViews maps each command type to the view that shows the result.
var createViews = map[cmdlang.Type]string{
	cmdlang.TypeCharacter: types.ViewCharacters,
	cmdlang.TypeStyle:     types.ViewStyle,
	cmdlang.TypeWorld:     types.ViewWorld,
	cmdlang.TypeLore:      types.ViewWorld,
	cmdlang.TypeWorldRule: types.ViewWorld,
	cmdlang.TypeOutline:   types.ViewContext,
	cmdlang.TypeBlueprint: types.ViewContext,
	cmdlang.TypeChapter:   types.ViewChapter,
	cmdlang.TypeProject:   types.ViewProjects,
}

// Executor runs palette actions against the workspace store. Every method
// returns a tea.Cmd; the store is only touched when the command runs.
type Executor struct {
	store   workspace.Store
	mapper  *cards.Mapper
	timeout time.Duration
	log     *logging.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithTimeout bounds each store call. Zero keeps DefaultStoreTimeout.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewExecutor creates an executor over store.
func NewExecutor(store workspace.Store, mapper *cards.Mapper, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:   store,
		mapper:  mapper,
		timeout: DefaultStoreTimeout,
		log:     logging.Named("executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.timeout)
}

// Create runs a parsed create command. A successful run yields a
// types.CreatedMsg whose Notice is the first mapping warning.
func (e *Executor) Create(p *cmdlang.ParsedCommand) tea.Cmd {
	return func() tea.Msg {
		plan, err := e.mapper.Map(p)
		if err != nil {
			e.log.Warn("Create rejected", "error", err)
			return types.ErrorStatusMsg(createError(err, p))
		}

		ctx, cancel := e.storeContext()
		defer cancel()

		created := types.CreatedMsg{
			Label: fmt.Sprintf("%s:%s", plan.Type, p.Title),
			View:  createViews[plan.Type],
		}
		if len(plan.Warnings) > 0 {
			created.Notice = plan.Warnings[0]
		}

		switch {
		case plan.Project != "":
			id, err := e.store.CreateProject(ctx, plan.Project)
			if err != nil {
				return e.failed("create project", err)
			}
			created.Focus = id
		case plan.Blueprint != nil:
			bp, err := e.store.SaveBlueprint(ctx, *plan.Blueprint)
			if err != nil {
				return e.failed("create blueprint", err)
			}
			created.Focus = bp.ID
		case plan.Chapter != nil:
			ch, err := e.store.SaveChapter(ctx, *plan.Chapter)
			if err != nil {
				return e.failed("create chapter", err)
			}
			if err := e.store.OpenChapter(ctx, ch.ID); err != nil {
				return e.failed("open chapter", err)
			}
			created.Focus = ch.ID
		case plan.Card != nil:
			card, err := e.store.SaveCard(ctx, *plan.Card)
			if err != nil {
				return e.failed("create "+string(plan.Type), err)
			}
			created.Focus = card.ID
		}

		e.log.Info("Created", "label", created.Label, "id", created.Focus, "warnings", len(plan.Warnings))
		return created
	}
}

// PinTechnique attaches t to the open chapter.
func (e *Executor) PinTechnique(t workspace.Technique, pc *cmdlang.PinCommand) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.storeContext()
		defer cancel()
		item := pinnedItem(t.ID, pc)
		if err := e.store.PinTechnique(ctx, item); err != nil {
			return e.failed("pin technique", err)
		}
		return types.SuccessMsg(fmt.Sprintf("Pinned %q (%s)", displayName(t.Title, t.ID), item.Intensity))
	}
}

// UnpinTechnique detaches t from the open chapter.
func (e *Executor) UnpinTechnique(t workspace.Technique) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.storeContext()
		defer cancel()
		if err := e.store.UnpinTechnique(ctx, t.ID); err != nil {
			return e.failed("unpin technique", err)
		}
		return types.SuccessMsg(fmt.Sprintf("Unpinned %q", displayName(t.Title, t.ID)))
	}
}

// PinCategory attaches c to the open chapter.
func (e *Executor) PinCategory(c workspace.Category, pc *cmdlang.PinCommand) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.storeContext()
		defer cancel()
		item := pinnedItem(c.ID, pc)
		if err := e.store.PinCategory(ctx, item); err != nil {
			return e.failed("pin category", err)
		}
		return types.SuccessMsg(fmt.Sprintf("Pinned category %q (%s)", displayName(c.Title, c.ID), item.Intensity))
	}
}

// UnpinCategory detaches c from the open chapter.
func (e *Executor) UnpinCategory(c workspace.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.storeContext()
		defer cancel()
		if err := e.store.UnpinCategory(ctx, c.ID); err != nil {
			return e.failed("unpin category", err)
		}
		return types.SuccessMsg(fmt.Sprintf("Unpinned category %q", displayName(c.Title, c.ID)))
	}
}

// ListPinned reports what is pinned to the open chapter.
func (e *Executor) ListPinned(target cmdlang.PinTarget) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.storeContext()
		defer cancel()
		ch, err := e.store.Chapter(ctx)
		if err != nil {
			return e.failed("list pinned", err)
		}
		if target == cmdlang.PinCategory {
			return types.InfoMsg("Pinned categories: " + formatPinned(ch.Categories))
		}
		return types.InfoMsg("Pinned: " + formatPinned(ch.Techniques))
	}
}

func (e *Executor) failed(op string, err error) tea.Msg {
	e.log.Error("Store call failed", "op", op, "error", err)
	if errors.Is(err, workspace.ErrNoChapter) {
		return types.ErrorStatusMsg(workspace.ErrNoChapter.Error())
	}
	return types.ErrorStatusMsg(messages.WrapError(err, "failed to %s", op).Error())
}

// createError prefers the parser's own wording over the wrapped sentinel.
func createError(err error, p *cmdlang.ParsedCommand) string {
	if p != nil && !p.OK() {
		return p.FirstError()
	}
	return err.Error()
}

func pinnedItem(id string, pc *cmdlang.PinCommand) workspace.PinnedItem {
	item := workspace.PinnedItem{ID: id, Intensity: cmdlang.DefaultIntensity}
	if pc == nil {
		return item
	}
	if pc.Intensity != "" {
		item.Intensity = pc.Intensity
	}
	item.Weight = pc.Weight
	item.Notes = pc.Note
	return item
}

func formatPinned(items []workspace.PinnedItem) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		s := fmt.Sprintf("%s (%s", it.ID, it.Intensity)
		if it.Weight != nil {
			s += fmt.Sprintf(", weight %g", *it.Weight)
		}
		parts = append(parts, s+")")
	}
	return strings.Join(parts, ", ")
}

func displayName(title, id string) string {
	if title != "" {
		return title
	}
	return id
}
