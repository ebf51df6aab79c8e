package commands

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/workspace"
)

const noChapterSubtitle = "open chapter first"

// Resolution is the outcome of resolving a live query. Exactly one of Item
// and Err is set.
type Resolution struct {
	Item *Item
	Err  string
}

// Resolver maps the live query to a synthetic item or an error. It returns
// nil when the query is plain search.
type Resolver interface {
	Resolve(query string) *Resolution
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(query string) *Resolution

// Resolve calls f(query).
func (f ResolverFunc) Resolve(query string) *Resolution {
	return f(query)
}

// SnapshotFunc returns the latest loaded workspace data, if any.
type SnapshotFunc func() (workspace.Snapshot, bool)

// LiveResolver resolves pin commands and create commands against the
// workspace. Resolve is called on every keystroke and never touches the
// store; the returned items do when they run.
type LiveResolver struct {
	snapshot SnapshotFunc
	exec     *Executor
}

// NewLiveResolver creates a resolver over snapshot that runs items with exec.
func NewLiveResolver(snapshot SnapshotFunc, exec *Executor) *LiveResolver {
	return &LiveResolver{snapshot: snapshot, exec: exec}
}

// Resolve implements Resolver.
func (r *LiveResolver) Resolve(query string) *Resolution {
	if pc := cmdlang.ParsePin(query); pc != nil {
		return r.resolvePin(pc)
	}
	if !cmdlang.IsCommand(query) {
		return nil
	}
	p := cmdlang.Parse(query)
	if !p.OK() {
		return &Resolution{Err: p.FirstError()}
	}
	item := CreateItem(p, r.exec.Create(p))
	return &Resolution{Item: &item}
}

// CreateItem builds the synthetic item previewing a valid create command.
func CreateItem(p *cmdlang.ParsedCommand, run tea.Cmd) Item {
	title, subtitle, id := p.Title, "Press Enter to create", p.Title
	if title == "" {
		title, subtitle, id = "(title required)", "Missing title", "untitled"
	}
	keywords := []string{string(p.Type), p.Title}
	keywords = append(keywords, p.Tags...)
	keywords = append(keywords, p.Locks...)
	keywords = append(keywords, cmdlang.HelpExamples()...)

	return Item{
		ID:       fmt.Sprintf("create-%s-%s", p.Type, id),
		Title:    fmt.Sprintf("Create %s: %s", p.Type, title),
		Subtitle: subtitle,
		Group:    GroupCreate,
		Keywords: keywords,
		Payload:  map[string]any{"kind": KindCreate, "type": string(p.Type)},
		Execute:  func() tea.Cmd { return run },
	}
}

func (r *LiveResolver) resolvePin(pc *cmdlang.PinCommand) *Resolution {
	snap, _ := r.snapshot()
	subtitle := snap.Chapter
	if subtitle == "" {
		subtitle = noChapterSubtitle
	}

	if pc.Mode == cmdlang.PinModeList {
		plural := "techniques"
		if pc.Target == cmdlang.PinCategory {
			plural = "categories"
		}
		return &Resolution{Item: &Item{
			ID:       "cmd-list-pinned-" + plural,
			Title:    "List pinned " + plural,
			Subtitle: subtitle,
			Group:    GroupActions,
			Execute:  func() tea.Cmd { return r.exec.ListPinned(pc.Target) },
		}}
	}
	if pc.Err != "" {
		return &Resolution{Err: pc.Err}
	}

	item := Item{Subtitle: subtitle, Group: GroupActions}
	if pc.Target == cmdlang.PinCategory {
		c, ok := findCategory(snap, pc.Name)
		if !ok {
			return &Resolution{Err: "category not found: " + pc.Name}
		}
		if pc.Mode == cmdlang.PinModePin {
			item.ID = "pin-cat-" + c.ID
			item.Title = fmt.Sprintf("Pin category %s %s", displayName(c.Title, c.ID), pc.Intensity)
			item.Execute = func() tea.Cmd { return r.exec.PinCategory(c, pc) }
		} else {
			item.ID = "unpin-cat-" + c.ID
			item.Title = "Unpin category " + displayName(c.Title, c.ID)
			item.Execute = func() tea.Cmd { return r.exec.UnpinCategory(c) }
		}
		return &Resolution{Item: &item}
	}

	t, ok := findTechnique(snap, pc.Name)
	if !ok {
		return &Resolution{Err: "technique not found: " + pc.Name}
	}
	if pc.Mode == cmdlang.PinModePin {
		item.ID = "pin-tech-" + t.ID
		item.Title = fmt.Sprintf("Pin technique %s %s", displayName(t.Title, t.ID), pc.Intensity)
		item.Execute = func() tea.Cmd { return r.exec.PinTechnique(t, pc) }
	} else {
		item.ID = "unpin-tech-" + t.ID
		item.Title = "Unpin technique " + displayName(t.Title, t.ID)
		item.Execute = func() tea.Cmd { return r.exec.UnpinTechnique(t) }
	}
	return &Resolution{Item: &item}
}

func findTechnique(snap workspace.Snapshot, name string) (workspace.Technique, bool) {
	keys := make([][]string, len(snap.Techniques))
	for i, t := range snap.Techniques {
		keys[i] = []string{t.ID, t.Title, t.Name}
	}
	i := lookup(name, keys)
	if i < 0 {
		return workspace.Technique{}, false
	}
	return snap.Techniques[i], true
}

func findCategory(snap workspace.Snapshot, name string) (workspace.Category, bool) {
	keys := make([][]string, len(snap.Categories))
	for i, c := range snap.Categories {
		keys[i] = []string{c.ID, c.Title, c.Name, snap.CategoryPath(c)}
	}
	i := lookup(name, keys)
	if i < 0 {
		return workspace.Category{}, false
	}
	return snap.Categories[i], true
}

// lookup returns the index of the first candidate with a key equal to
// query, then the first containing it, then the best fuzzy match. Matching
// ignores case. It returns -1 when nothing matches.
func lookup(query string, candidates [][]string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1
	}
	for i, keys := range candidates {
		for _, k := range keys {
			if k != "" && strings.ToLower(k) == q {
				return i
			}
		}
	}
	for i, keys := range candidates {
		for _, k := range keys {
			if k != "" && strings.Contains(strings.ToLower(k), q) {
				return i
			}
		}
	}

	var data []string
	var owner []int
	for i, keys := range candidates {
		for _, k := range keys {
			if k == "" {
				continue
			}
			data = append(data, strings.ToLower(k))
			owner = append(owner, i)
		}
	}
	matches := fuzzy.Find(q, data)
	if len(matches) == 0 {
		return -1
	}
	return owner[matches[0].Index]
}
