package workspace

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It is the default backend for the TUI
// and the store used by tests.
type MemoryStore struct {
	mu         sync.RWMutex
	project    string
	chapter    string
	cards      []Card
	blueprints []Blueprint
	chapters   map[string]Chapter
	order      []string
	techniques []Technique
	categories []Category
	proposals  []Proposal
	seq        map[string]int
	now        func() time.Time
}

// NewMemoryStore returns an empty store for project.
func NewMemoryStore(project string) *MemoryStore {
	return &MemoryStore{
		project:  project,
		chapters: map[string]Chapter{},
		seq:      map[string]int{},
		now:      time.Now,
	}
}

// NewDemoStore returns a store seeded with a small sample project.
func NewDemoStore() *MemoryStore {
	s := NewMemoryStore("demo")
	s.cards = []Card{
		{ID: "character_001", Type: KindCharacter, Title: "Alice", Tags: []string{"主角", "protagonist"}},
		{ID: "character_002", Type: KindCharacter, Title: "Bob", Tags: []string{"反派", "antagonist"}},
		{ID: "world_001", Type: KindWorld, Title: "Old Town Bridge", Tags: []string{"location"}},
		{ID: "world_rule_001", Type: KindWorldRule, Title: "No magic after dusk"},
		{ID: "style_001", Type: KindStyle, Title: "Cold Realism"},
		{ID: "outline_001", Type: KindOutline, Title: "Main outline"},
	}
	s.blueprints = []Blueprint{{
		ID:          "blueprint_001",
		StoryTypeID: "longform_novel",
		Title:       "Three Act Draft",
		ScenePlan:   ScenePlan(3),
	}}
	s.chapters = map[string]Chapter{
		"ch_001": {ID: "ch_001", Title: "Arrival", Content: "# Arrival\n\n"},
		"ch_002": {ID: "ch_002", Title: "The Bridge", Content: "# The Bridge\n\n"},
	}
	s.order = []string{"ch_001", "ch_002"}
	s.categories = []Category{
		{ID: "technique_category_structure", Title: "Structure", Name: "structure"},
		{ID: "technique_category_expression", Title: "Expression", Name: "expression"},
		{ID: "technique_category_montage", Title: "Montage", Name: "montage", ParentID: "technique_category_structure"},
	}
	s.techniques = []Technique{
		{ID: "technique_iceberg", Title: "Iceberg Theory", Name: "iceberg theory", CategoryID: "technique_category_expression"},
		{ID: "technique_flashback", Title: "Flashback", Name: "flashback", CategoryID: "technique_category_structure"},
		{ID: "technique_foreshadowing", Title: "Foreshadowing", Name: "foreshadowing", CategoryID: "technique_category_structure"},
	}
	s.proposals = []Proposal{{ID: "proposal_001", Name: "Alice's brother", Status: "pending"}}
	s.seq = map[string]int{KindCharacter: 2, KindWorld: 1, KindWorldRule: 1, KindStyle: 1, KindOutline: 1, "blueprint": 1, "ch": 2}
	return s
}

func (s *MemoryStore) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Project:    s.project,
		Chapter:    s.chapter,
		Blueprints: slices.Clone(s.blueprints),
		Chapters:   slices.Clone(s.order),
		Proposals:  slices.Clone(s.proposals),
		Techniques: slices.Clone(s.techniques),
		Categories: slices.Clone(s.categories),
		LoadedAt:   s.now(),
	}
	for _, c := range s.cards {
		switch {
		case c.Type == KindCharacter:
			snap.Characters = append(snap.Characters, c)
		case c.IsWorld():
			snap.WorldCards = append(snap.WorldCards, c)
		case c.Type == KindStyle:
			snap.Styles = append(snap.Styles, c)
		case c.Type == KindOutline:
			snap.Outlines = append(snap.Outlines, c)
		}
	}
	return snap, nil
}

func (s *MemoryStore) CreateProject(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("project title cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project = title
	s.chapter = ""
	s.cards = nil
	s.blueprints = nil
	s.chapters = map[string]Chapter{}
	s.order = nil
	s.proposals = nil
	s.seq = map[string]int{}
	return title, nil
}

func (s *MemoryStore) SaveCard(ctx context.Context, card Card) (Card, error) {
	if card.Type == "" {
		return Card{}, fmt.Errorf("card type cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if card.ID == "" {
		card.ID = s.nextID(card.Type)
	}
	if i := slices.IndexFunc(s.cards, func(c Card) bool { return c.ID == card.ID }); i >= 0 {
		s.cards[i] = card
		return card, nil
	}
	s.cards = append(s.cards, card)
	return card, nil
}

func (s *MemoryStore) SaveBlueprint(ctx context.Context, bp Blueprint) (Blueprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bp.ID == "" {
		bp.ID = s.nextID("blueprint")
	}
	if i := slices.IndexFunc(s.blueprints, func(b Blueprint) bool { return b.ID == bp.ID }); i >= 0 {
		s.blueprints[i] = bp
		return bp, nil
	}
	s.blueprints = append(s.blueprints, bp)
	return bp, nil
}

func (s *MemoryStore) SaveChapter(ctx context.Context, ch Chapter) (Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch.ID == "" {
		ch.ID = s.nextID("ch")
	}
	if _, ok := s.chapters[ch.ID]; !ok {
		s.order = append(s.order, ch.ID)
	}
	s.chapters[ch.ID] = ch
	return ch, nil
}

func (s *MemoryStore) OpenChapter(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chapters[id]; !ok {
		return fmt.Errorf("chapter %s: %w", id, ErrNotFound)
	}
	s.chapter = id
	return nil
}

func (s *MemoryStore) Chapter(ctx context.Context) (Chapter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.chapter == "" {
		return Chapter{}, ErrNoChapter
	}
	return s.chapters[s.chapter], nil
}

func (s *MemoryStore) PinTechnique(ctx context.Context, item PinnedItem) error {
	return s.updateChapter(func(ch *Chapter) {
		ch.Techniques = pinFront(ch.Techniques, item)
	})
}

func (s *MemoryStore) UnpinTechnique(ctx context.Context, id string) error {
	return s.updateChapter(func(ch *Chapter) {
		ch.Techniques = unpin(ch.Techniques, id)
	})
}

func (s *MemoryStore) PinCategory(ctx context.Context, item PinnedItem) error {
	return s.updateChapter(func(ch *Chapter) {
		ch.Categories = pinFront(ch.Categories, item)
	})
}

func (s *MemoryStore) UnpinCategory(ctx context.Context, id string) error {
	return s.updateChapter(func(ch *Chapter) {
		ch.Categories = unpin(ch.Categories, id)
	})
}

// Cards returns the stored cards of kind, sorted by id.
func (s *MemoryStore) Cards(kind string) []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Card
	for _, c := range s.cards {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) updateChapter(fn func(ch *Chapter)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chapter == "" {
		return ErrNoChapter
	}
	ch := s.chapters[s.chapter]
	fn(&ch)
	s.chapters[s.chapter] = ch
	return nil
}

func (s *MemoryStore) nextID(kind string) string {
	s.seq[kind]++
	return fmt.Sprintf("%s_%03d", kind, s.seq[kind])
}

// pinFront puts item first and drops any older entry with the same id.
func pinFront(list []PinnedItem, item PinnedItem) []PinnedItem {
	out := []PinnedItem{item}
	for _, p := range list {
		if p.ID != item.ID {
			out = append(out, p)
		}
	}
	return out
}

func unpin(list []PinnedItem, id string) []PinnedItem {
	out := []PinnedItem{}
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ScenePlan returns a placeholder plan of n scenes. A negative n yields an
// empty plan.
func ScenePlan(n int) []Scene {
	n = max(n, 0)
	plan := make([]Scene, 0, n)
	for i := 1; i <= n; i++ {
		plan = append(plan, Scene{
			ID:           fmt.Sprintf("scene_%d", i),
			Phase:        "setup",
			Purpose:      fmt.Sprintf("Scene %d purpose", i),
			Situation:    fmt.Sprintf("Scene %d situation", i),
			ChoicePoints: []string{"TBD"},
		})
	}
	return plan
}
