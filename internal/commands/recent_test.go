package commands

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent_TrackOnlyNavigation(t *testing.T) {
	r := NewRecent(0, nil)

	assert.True(t, r.Track(Item{ID: "nav-world", Title: "Go to World panel", Group: GroupNavigate}))
	assert.False(t, r.Track(Item{ID: "act-refresh", Group: GroupActions}))
	assert.False(t, r.Track(Item{ID: "recent-nav-world", Group: GroupNavigate}))

	assert.Equal(t, []RecentEntry{{ID: "nav-world", Title: "Go to World panel"}}, r.Entries())
}

func TestRecent_MoveToFrontAndCap(t *testing.T) {
	r := NewRecent(3, nil)
	for i := 1; i <= 4; i++ {
		r.Use(RecentEntry{ID: fmt.Sprintf("n%d", i)})
	}
	r.Use(RecentEntry{ID: "n3"})
	r.Use(RecentEntry{})

	var got []string
	for _, e := range r.Entries() {
		got = append(got, e.ID)
	}
	assert.Equal(t, []string{"n3", "n4", "n2"}, got)
}

func TestNewRecent_KeepsSeedOrder(t *testing.T) {
	seed := []RecentEntry{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}}
	r := NewRecent(DefaultRecentLimit, seed)

	assert.Equal(t, []RecentEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}, r.Entries())
}

func TestRecent_Resolve(t *testing.T) {
	ran := false
	catalog := []Item{
		{ID: "nav-world", Title: "Go to World panel", Group: GroupNavigate},
		{ID: "char-alice", Title: "Open Character: Alice", Subtitle: "character_001", Group: GroupNavigate,
			Payload: map[string]any{"kind": KindCharacter}, Execute: func() tea.Cmd { ran = true; return nil }},
	}
	r := NewRecent(0, []RecentEntry{{ID: "char-alice"}, {ID: "gone"}, {ID: "nav-world"}})

	items := r.Resolve(catalog)
	require.Len(t, items, 2)

	assert.Equal(t, "recent-char-alice", items[0].ID)
	assert.Equal(t, "[Recent] Open Character: Alice", items[0].Title)
	assert.Equal(t, "character_001", items[0].Subtitle)
	assert.Equal(t, KindCharacter, items[0].Kind())
	assert.Equal(t, "recent-nav-world", items[1].ID)

	items[0].Run()
	assert.True(t, ran)
	assert.Equal(t, "char-alice", catalog[1].ID, "catalog is not modified")
}
