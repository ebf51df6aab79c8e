package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/renato0307/novix/internal/cmdlang"
)

func newMapper(t *testing.T) *Mapper {
	t.Helper()
	m, err := NewMapper()
	require.NoError(t, err)
	return m
}

func mustParse(t *testing.T, input string) *cmdlang.ParsedCommand {
	t.Helper()
	p := cmdlang.Parse(input)
	require.NotNil(t, p)
	require.Empty(t, p.Errors)
	return p
}

func TestMapper_HasPath(t *testing.T) {
	m := newMapper(t)

	assert.True(t, m.HasPath("character", "payload.identity"))
	assert.True(t, m.HasPath("style", "payload.injection_policy.max_examples"))
	assert.False(t, m.HasPath("character", "payload.nickname"))
	assert.False(t, m.HasPath("world", "payload.type"))
}

func TestMapper_Character(t *testing.T) {
	m := newMapper(t)
	p := mustParse(t, `+ character Alice --tag 主角 --tag 主角 --age 24 --identity "medical student" --trait calm --trait calm --rel target=Bob,type=rival --arc beat=1 goal=escape`)

	card, warnings, err := m.Card(p)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "character", card.Type)
	assert.Equal(t, "Alice", card.Title)
	assert.Equal(t, []string{"主角", "protagonist"}, card.Tags)

	payload := gjson.ParseBytes(card.Payload)
	assert.Equal(t, "Alice", payload.Get("name").String())
	assert.Equal(t, "medical student", payload.Get("identity").String())
	assert.Equal(t, int64(24), payload.Get("age").Int())
	assert.Equal(t, "protagonist", payload.Get("role").String())
	assert.Equal(t, int64(5), payload.Get("importance").Int())
	assert.Equal(t, `["calm"]`, payload.Get("personality_traits").Raw)
	assert.Equal(t, "Bob", payload.Get("relationships.0.target").String())
	assert.Equal(t, "rival", payload.Get("relationships.0.type").String())
	assert.Equal(t, "escape", payload.Get("arc.0.goal").String())
}

func TestMapper_CharacterExplicitRoleWins(t *testing.T) {
	m := newMapper(t)
	p := mustParse(t, "+ character Bob --tag 反派 --role other --importance 2")

	card, _, err := m.Card(p)
	require.NoError(t, err)

	payload := gjson.ParseBytes(card.Payload)
	assert.Equal(t, "other", payload.Get("role").String())
	assert.Equal(t, int64(2), payload.Get("importance").Int())
	assert.Equal(t, []string{"反派", "antagonist"}, card.Tags)
}

func TestMapper_MissingSchemaPathWarns(t *testing.T) {
	m := NewMapperWithSchemas(map[string][]byte{
		"character": []byte(`{"properties":{"payload":{"properties":{"name":{}}}}}`),
	})
	p := mustParse(t, "+ character Alice --voice dry --age 30")

	card, warnings, err := m.Card(p)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ignored --voice (schema path payload.voice missing)",
		"ignored --age (schema path payload.age missing)",
	}, warnings)
	assert.JSONEq(t, `{"name":"Alice"}`, string(card.Payload))
}

func TestMapper_Style(t *testing.T) {
	m := newMapper(t)
	p := mustParse(t, "+ style Noir --lock pov --lock rhythm --max_examples 5 --max_chars 800")

	card, warnings, err := m.Card(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"ignored --lock rhythm"}, warnings)
	payload := gjson.ParseBytes(card.Payload)
	assert.True(t, payload.Get("locks.pov").Bool())
	assert.False(t, payload.Get("locks.rhythm").Exists())
	assert.Equal(t, int64(5), payload.Get("injection_policy.max_examples").Int())
	assert.Equal(t, int64(800), payload.Get("injection_policy.max_chars_per_example").Int())
}

func TestMapper_World(t *testing.T) {
	m := newMapper(t)

	card, warnings, err := m.Card(mustParse(t, `+ world "Old Town Bridge" --tag location --atmosphere desolate`))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.JSONEq(t, `{"type":"world","atmosphere":"desolate","meta":{"tags":["location"]}}`, string(card.Payload))

	card, _, err = m.Card(mustParse(t, "+ lore Founding --type history --desc long"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"history","description":"long"}`, string(card.Payload))
	assert.Equal(t, []string{}, card.Tags)
}

func TestMapper_Map(t *testing.T) {
	m := newMapper(t)

	plan, err := m.Map(mustParse(t, "+ project MyNovel"))
	require.NoError(t, err)
	assert.Equal(t, "MyNovel", plan.Project)
	assert.Nil(t, plan.Card)

	plan, err = m.Map(mustParse(t, "+ blueprint Heist --scenes 3"))
	require.NoError(t, err)
	require.NotNil(t, plan.Blueprint)
	assert.Equal(t, DefaultStoryType, plan.Blueprint.StoryTypeID)
	assert.Len(t, plan.Blueprint.ScenePlan, 3)
	assert.Equal(t, "scene_3", plan.Blueprint.ScenePlan[2].ID)

	plan, err = m.Map(mustParse(t, "+ chapter Fog --bind blueprint_001 --scene 2 --signals off"))
	require.NoError(t, err)
	require.NotNil(t, plan.Chapter)
	assert.Equal(t, "blueprint_001", plan.Chapter.BlueprintID)
	require.NotNil(t, plan.Chapter.SceneIndex)
	assert.Equal(t, 2, *plan.Chapter.SceneIndex)
	require.NotNil(t, plan.Chapter.Signals)
	assert.False(t, *plan.Chapter.Signals)
	assert.Equal(t, "# Fog\n\n", plan.Chapter.Content)

	plan, err = m.Map(mustParse(t, "+ outline Act1 --note opening"))
	require.NoError(t, err)
	require.NotNil(t, plan.Card)
	assert.JSONEq(t, `{"note":"opening"}`, string(plan.Card.Payload))
}

func TestMapper_MapRejectsInvalid(t *testing.T) {
	m := newMapper(t)

	_, err := m.Map(nil)
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = m.Map(cmdlang.Parse("+ character"))
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Contains(t, err.Error(), "missing title")
}

func TestMapper_SceneBounds(t *testing.T) {
	m := newMapper(t)

	// A grammar without caps lets out-of-range counts reach the mapper.
	g := cmdlang.DefaultGrammar()
	g.Integers = nil
	g.Max = nil

	tests := []struct {
		input string
		want  string
	}{
		{input: "+ blueprint X --scenes 1e19", want: "--scenes must be a whole number from 1 to 500"},
		{input: "+ blueprint X --scenes 1e10", want: "--scenes must be a whole number from 1 to 500"},
		{input: "+ blueprint X --scenes 2.5", want: "--scenes must be a whole number from 1 to 500"},
		{input: "+ chapter C --scene 1e19", want: "--scene must be a whole number from 0 to 500"},
		{input: "+ chapter C --scene 0.5", want: "--scene must be a whole number from 0 to 500"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := cmdlang.ParseWith(g, tt.input)
			require.NotNil(t, p)
			require.True(t, p.OK())

			var err error
			assert.NotPanics(t, func() { _, err = m.Map(p) })
			assert.ErrorIs(t, err, ErrInvalidCommand)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestMapper_DefaultGrammarRejectsHugeScenes(t *testing.T) {
	m := newMapper(t)

	for _, input := range []string{"+ blueprint X --scenes 1e19", "+ blueprint X --scenes 1e10", "+ blueprint X --scenes 2.5"} {
		p := cmdlang.Parse(input)
		require.NotNil(t, p)
		assert.False(t, p.OK(), input)

		var err error
		assert.NotPanics(t, func() { _, err = m.Map(p) })
		assert.ErrorIs(t, err, ErrInvalidCommand)
	}

	plan, err := m.Map(mustParse(t, "+ blueprint X --scenes 500"))
	require.NoError(t, err)
	assert.Len(t, plan.Blueprint.ScenePlan, 500)
}
