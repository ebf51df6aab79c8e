package commands

import (
	"slices"
	"strings"
)

// DefaultRecentLimit caps the recent list.
const DefaultRecentLimit = 20

const (
	recentIDPrefix    = "recent-"
	recentTitlePrefix = "[Recent] "
)

// RecentEntry is one remembered navigation item. The caller persists these.
type RecentEntry struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
}

// Recent is a most-recently-used list of navigation items, newest first.
type Recent struct {
	entries []RecentEntry
	limit   int
}

// NewRecent returns a list seeded with entries and capped at limit.
func NewRecent(limit int, entries []RecentEntry) *Recent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	r := &Recent{limit: limit}
	for i := len(entries) - 1; i >= 0; i-- {
		r.Use(entries[i])
	}
	return r
}

// Track records item if it is a navigation item. It reports whether the
// list changed.
func (r *Recent) Track(item Item) bool {
	if item.Group != GroupNavigate || strings.HasPrefix(item.ID, recentIDPrefix) {
		return false
	}
	r.Use(RecentEntry{ID: item.ID, Title: item.Title, Subtitle: item.Subtitle})
	return true
}

// Use moves entry to the front.
func (r *Recent) Use(entry RecentEntry) {
	if entry.ID == "" {
		return
	}
	r.entries = slices.DeleteFunc(r.entries, func(e RecentEntry) bool { return e.ID == entry.ID })
	r.entries = slices.Insert(r.entries, 0, entry)
	if len(r.entries) > r.limit {
		r.entries = r.entries[:r.limit]
	}
}

// Entries returns a copy of the list, newest first.
func (r *Recent) Entries() []RecentEntry {
	return slices.Clone(r.entries)
}

// Resolve returns one catalog item per entry that still exists in catalog.
// The items get their own ids so they can be ranked alongside the
// originals.
func (r *Recent) Resolve(catalog []Item) []Item {
	out := []Item{}
	for _, e := range r.entries {
		i := slices.IndexFunc(catalog, func(it Item) bool { return it.ID == e.ID })
		if i < 0 {
			continue
		}
		target := catalog[i]
		item := target
		item.ID = recentIDPrefix + target.ID
		item.Title = recentTitlePrefix + target.Title
		item.Group = GroupNavigate
		out = append(out, item)
	}
	return out
}
