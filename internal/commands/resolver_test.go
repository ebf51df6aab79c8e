package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/workspace"
)

func newTestResolver(t *testing.T, store *workspace.MemoryStore) *LiveResolver {
	t.Helper()
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	return NewLiveResolver(func() (workspace.Snapshot, bool) { return snap, true }, newTestExecutor(t, store))
}

func TestResolverFunc(t *testing.T) {
	var r Resolver = ResolverFunc(func(q string) *Resolution { return &Resolution{Err: q} })
	assert.Equal(t, "x", r.Resolve("x").Err)
}

func TestLiveResolver_PlainSearch(t *testing.T) {
	r := newTestResolver(t, workspace.NewDemoStore())

	for _, q := range []string{"", "alice", "pin", "pinned techniques", "pin something else", "created"} {
		assert.Nil(t, r.Resolve(q), q)
	}
}

func TestLiveResolver_Create(t *testing.T) {
	r := newTestResolver(t, workspace.NewDemoStore())

	res := r.Resolve("+ character Carol --tag 主角 --tag hero")
	require.NotNil(t, res)
	require.NotNil(t, res.Item)
	assert.Empty(t, res.Err)

	item := res.Item
	assert.Equal(t, "create-character-Carol", item.ID)
	assert.Equal(t, "Create character: Carol", item.Title)
	assert.Equal(t, "Press Enter to create", item.Subtitle)
	assert.Equal(t, GroupCreate, item.Group)
	assert.Equal(t, KindCreate, item.Kind())
	assert.Equal(t, "character", item.Payload["type"])
	assert.Equal(t, []string{"character", "Carol", "主角", "hero"}, item.Keywords[:4])

	msg := item.Run()()
	created, ok := msg.(types.CreatedMsg)
	require.True(t, ok, "got %#v", msg)
	assert.Equal(t, "character:Carol", created.Label)
}

func TestLiveResolver_CreateErrorShowsFirstOnly(t *testing.T) {
	r := newTestResolver(t, workspace.NewDemoStore())

	res := r.Resolve("+ style Noir --tag dark")
	require.NotNil(t, res)
	assert.Nil(t, res.Item)
	assert.Equal(t, "unknown option --tag", res.Err)
}

func TestCreateItem_Untitled(t *testing.T) {
	p := &cmdlang.ParsedCommand{Type: cmdlang.TypeProject}
	item := CreateItem(p, nil)

	assert.Equal(t, "create-project-untitled", item.ID)
	assert.Equal(t, "Create project: (title required)", item.Title)
	assert.Equal(t, "Missing title", item.Subtitle)
	assert.Nil(t, item.Run())
}

func TestLiveResolver_Pin(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantID   string
		wantText string
		wantErr  string
	}{
		{name: "technique by name", query: "pin tech iceberg theory high", wantID: "pin-tech-technique_iceberg", wantText: "Pin technique Iceberg Theory high"},
		{name: "technique default intensity", query: "pin technique flashback", wantID: "pin-tech-technique_flashback", wantText: "Pin technique Flashback med"},
		{name: "technique by id", query: "unpin tech technique_foreshadowing", wantID: "unpin-tech-technique_foreshadowing", wantText: "Unpin technique Foreshadowing"},
		{name: "technique by substring", query: "pin tech ICE", wantID: "pin-tech-technique_iceberg", wantText: "Pin technique Iceberg Theory med"},
		{name: "technique by fuzzy match", query: "pin tech frshdw", wantID: "pin-tech-technique_foreshadowing", wantText: "Pin technique Foreshadowing med"},
		{name: "category by path", query: "pin cat structure/montage low", wantID: "pin-cat-technique_category_montage", wantText: "Pin category Montage low"},
		{name: "unpin category", query: "unpin category expression", wantID: "unpin-cat-technique_category_expression", wantText: "Unpin category Expression"},
		{name: "missing name", query: "pin tech", wantErr: "missing technique name"},
		{name: "technique not found", query: "pin tech zzzz", wantErr: "technique not found: zzzz"},
		{name: "category not found", query: "unpin cat qqq", wantErr: "category not found: qqq"},
	}

	r := newTestResolver(t, workspace.NewDemoStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.query)
			require.NotNil(t, res)
			if tt.wantErr != "" {
				assert.Nil(t, res.Item)
				assert.Equal(t, tt.wantErr, res.Err)
				return
			}
			require.NotNil(t, res.Item, res.Err)
			assert.Equal(t, tt.wantID, res.Item.ID)
			assert.Equal(t, tt.wantText, res.Item.Title)
			assert.Equal(t, "open chapter first", res.Item.Subtitle)
			assert.Equal(t, GroupActions, res.Item.Group)
		})
	}
}

func TestLiveResolver_PinRuns(t *testing.T) {
	store := workspace.NewDemoStore()
	require.NoError(t, store.OpenChapter(context.Background(), "ch_002"))
	r := newTestResolver(t, store)

	res := r.Resolve("pin tech iceberg high")
	require.NotNil(t, res.Item)
	assert.Equal(t, "ch_002", res.Item.Subtitle)
	assert.Equal(t, types.SuccessMsg(`Pinned "Iceberg Theory" (high)`), res.Item.Run()())

	res = r.Resolve("list pinned techniques")
	require.NotNil(t, res.Item)
	assert.Equal(t, "cmd-list-pinned-techniques", res.Item.ID)
	assert.Equal(t, types.InfoMsg("Pinned: technique_iceberg (high)"), res.Item.Run()())

	res = r.Resolve("List Pinned Categories")
	require.NotNil(t, res.Item)
	assert.Equal(t, "cmd-list-pinned-categories", res.Item.ID)
	assert.Equal(t, "List pinned categories", res.Item.Title)
}

func TestLiveResolver_NoSnapshot(t *testing.T) {
	store := workspace.NewDemoStore()
	r := NewLiveResolver(func() (workspace.Snapshot, bool) { return workspace.Snapshot{}, false }, newTestExecutor(t, store))

	res := r.Resolve("pin tech iceberg")
	require.NotNil(t, res)
	assert.Equal(t, "technique not found: iceberg", res.Err)
}

func TestLookup(t *testing.T) {
	candidates := [][]string{
		{"a1", "Alpha Beta", ""},
		{"b2", "Alphabet", "alpha"},
	}

	assert.Equal(t, 1, lookup("ALPHA", candidates), "exact match wins over an earlier substring")
	assert.Equal(t, 0, lookup("beta", candidates))
	assert.Equal(t, 1, lookup("b2", candidates))
	assert.Equal(t, -1, lookup("", candidates))
	assert.Equal(t, -1, lookup("zz", candidates))
	assert.Equal(t, -1, lookup("x", nil))
}
