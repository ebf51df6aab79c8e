// Package cards turns parsed create commands into the documents the
// workspace stores. Option values are written to dotted schema paths and
// dropped with a warning when the card schema does not declare the path.
package cards

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/renato0307/novix/internal/cmdlang"
	"github.com/renato0307/novix/internal/workspace"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidCommand is returned for commands that carry parse errors.
var ErrInvalidCommand = errors.New("invalid command")

// DefaultStoryType is used for blueprints created without --story_type.
const DefaultStoryType = "longform_novel"

// canonicalRoles maps role tags to the role they imply, in priority order.
var canonicalRoles = []struct {
	tag, role  string
	importance int
}{
	{"主角", "protagonist", 5},
	{"配角", "supporting", 3},
	{"反派", "antagonist", 4},
}

var styleLocks = []string{"pov", "tense", "punctuation", "taboo_words"}

// Plan is what executing a create command will write.
// Exactly one of Card, Blueprint, Chapter or Project is set.
type Plan struct {
	Type      cmdlang.Type
	Card      *workspace.Card
	Blueprint *workspace.Blueprint
	Chapter   *workspace.Chapter
	Project   string
	Warnings  []string
}

// Mapper builds Plans against a set of card JSON schemas keyed by card type.
type Mapper struct {
	schemas map[string][]byte
}

// NewMapper returns a Mapper over the bundled schemas.
func NewMapper() (*Mapper, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read card schemas: %w", err)
	}
	schemas := map[string][]byte{}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", e.Name(), err)
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("schema %s is not valid JSON", e.Name())
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = data
	}
	return NewMapperWithSchemas(schemas), nil
}

// NewMapperWithSchemas returns a Mapper over schemas. A missing schema
// declares no paths.
func NewMapperWithSchemas(schemas map[string][]byte) *Mapper {
	return &Mapper{schemas: schemas}
}

// HasPath reports whether the schema for kind declares the dotted path,
// e.g. "payload.identity".
func (m *Mapper) HasPath(kind, dotted string) bool {
	schema, ok := m.schemas[kind]
	if !ok {
		return false
	}
	parts := strings.Split(dotted, ".")
	query := "properties." + strings.Join(parts, ".properties.")
	return gjson.GetBytes(schema, query).Exists()
}

// Map builds the Plan for p.
func (m *Mapper) Map(p *cmdlang.ParsedCommand) (*Plan, error) {
	if p == nil {
		return nil, ErrInvalidCommand
	}
	if !p.OK() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, p.FirstError())
	}

	plan := &Plan{Type: p.Type, Warnings: slices.Clone(p.Warnings)}
	switch p.Type {
	case cmdlang.TypeProject:
		plan.Project = p.Title
	case cmdlang.TypeBlueprint:
		bp, err := Blueprint(p)
		if err != nil {
			return nil, err
		}
		plan.Blueprint = &bp
	case cmdlang.TypeChapter:
		ch, err := Chapter(p)
		if err != nil {
			return nil, err
		}
		plan.Chapter = &ch
	default:
		card, warnings, err := m.Card(p)
		if err != nil {
			return nil, err
		}
		plan.Card = &card
		plan.Warnings = append(plan.Warnings, warnings...)
	}
	return plan, nil
}

// Card maps a card-producing command. The returned warnings name every
// option that was dropped.
func (m *Mapper) Card(p *cmdlang.ParsedCommand) (workspace.Card, []string, error) {
	b := &builder{kind: string(p.Type), mapper: m, warnings: []string{}}
	b.doc = []byte(`{"tags":[],"links":[],"payload":{}}`)
	b.set("type", string(p.Type))
	b.set("title", p.Title)

	tags := uniq(p.Tags)
	switch p.Type {
	case cmdlang.TypeCharacter:
		tags = m.character(b, p, tags)
	case cmdlang.TypeWorld, cmdlang.TypeLore, cmdlang.TypeWorldRule:
		kind := p.String("type")
		if kind == "" {
			kind = string(p.Type)
		}
		b.set("payload.type", kind)
		b.set("payload.description", p.String("desc"))
		b.set("payload.atmosphere", p.String("atmosphere"))
		if len(p.Tags) > 0 {
			b.set("payload.meta.tags", p.Tags)
		}
	case cmdlang.TypeStyle:
		m.style(b, p)
	case cmdlang.TypeOutline:
		b.set("payload.note", p.String("note"))
	}
	b.set("tags", tags)

	if b.err != nil {
		return workspace.Card{}, nil, fmt.Errorf("failed to build %s card: %w", p.Type, b.err)
	}
	var card workspace.Card
	if err := json.Unmarshal(b.doc, &card); err != nil {
		return workspace.Card{}, nil, fmt.Errorf("failed to decode %s card: %w", p.Type, err)
	}
	return card, b.warnings, nil
}

func (m *Mapper) character(b *builder, p *cmdlang.ParsedCommand, tags []string) []string {
	var role string
	var importance int
	for _, c := range canonicalRoles {
		if slices.Contains(tags, c.tag) {
			if role == "" {
				role, importance = c.role, c.importance
			}
			tags = append(tags, c.role)
		}
	}
	tags = uniq(tags)

	b.checked("name", "payload.name", p.Title)
	b.checked("identity", "payload.identity", p.String("identity"))
	b.checked("appearance", "payload.appearance", p.String("appearance"))
	b.checked("motivation", "payload.core_motivation", p.String("motivation"))
	b.checked("family", "payload.family_background", p.String("family"))
	b.checked("voice", "payload.voice", p.String("voice"))
	b.checked("trait", "payload.personality_traits", uniq(p.List("trait")))
	b.checked("boundary", "payload.boundaries", uniq(p.List("boundary")))
	b.checked("rel", "payload.relationships", records(p.Relations("rel"), "target", "type"))
	b.checked("arc", "payload.arc", records(p.Relations("arc"), "beat", "goal"))

	if explicit := p.String("role"); explicit != "" {
		role = explicit
	}
	b.checked("role", "payload.role", role)
	if n, ok := p.Number("importance"); ok {
		b.checked("importance", "payload.importance", number(n))
	} else if importance > 0 {
		b.checked("importance", "payload.importance", importance)
	}
	if n, ok := p.Number("age"); ok {
		b.checked("age", "payload.age", number(n))
	}
	return tags
}

func (m *Mapper) style(b *builder, p *cmdlang.ParsedCommand) {
	locks := map[string]bool{}
	for _, lock := range p.Locks {
		if slices.Contains(styleLocks, lock) {
			locks[lock] = true
		} else {
			b.warnings = append(b.warnings, fmt.Sprintf("ignored --lock %s", lock))
		}
	}
	if len(locks) > 0 {
		b.checked("lock", "payload.locks", locks)
	}
	if n, ok := p.Number("max_examples"); ok {
		b.checked("max_examples", "payload.injection_policy.max_examples", number(n))
	}
	if n, ok := p.Number("max_chars"); ok {
		b.checked("max_chars", "payload.injection_policy.max_chars_per_example", number(n))
	}
}

// sceneNumber reads a scene count or index. Commands parsed with a
// grammar that does not bound the option are still held to [min, MaxScenes].
func sceneNumber(p *cmdlang.ParsedCommand, key string, lowest int) (int, bool, error) {
	n, ok := p.Number(key)
	if !ok {
		return 0, false, nil
	}
	if n != math.Trunc(n) || n < float64(lowest) || n > cmdlang.MaxScenes {
		return 0, false, fmt.Errorf("%w: --%s must be a whole number from %d to %d, got %v",
			ErrInvalidCommand, key, lowest, cmdlang.MaxScenes, n)
	}
	return int(n), true, nil
}

// Blueprint maps a blueprint command to a plan of --scenes placeholder
// scenes.
func Blueprint(p *cmdlang.ParsedCommand) (workspace.Blueprint, error) {
	scenes, ok, err := sceneNumber(p, "scenes", 1)
	if err != nil {
		return workspace.Blueprint{}, err
	}
	if !ok {
		scenes = 1
	}
	storyType := p.String("story_type")
	if storyType == "" {
		storyType = DefaultStoryType
	}
	return workspace.Blueprint{
		StoryTypeID: storyType,
		Title:       p.Title,
		ScenePlan:   workspace.ScenePlan(scenes),
	}, nil
}

// Chapter maps a chapter command to a new draft and its metadata.
func Chapter(p *cmdlang.ParsedCommand) (workspace.Chapter, error) {
	ch := workspace.Chapter{
		Title:       p.Title,
		Content:     fmt.Sprintf("# %s\n\n", p.Title),
		BlueprintID: p.String("bind"),
		Techniques:  []workspace.PinnedItem{},
		Categories:  []workspace.PinnedItem{},
	}
	scene, ok, err := sceneNumber(p, "scene", 0)
	if err != nil {
		return workspace.Chapter{}, err
	}
	if ok {
		ch.SceneIndex = &scene
	}
	switch {
	case p.Flags["signals"]:
		on := true
		ch.Signals = &on
	case p.Flags["no-signals"]:
		off := false
		ch.Signals = &off
	}
	return ch, nil
}

type builder struct {
	kind     string
	mapper   *Mapper
	doc      []byte
	warnings []string
	err      error
}

// set writes value at dotted unless it is empty.
func (b *builder) set(dotted string, value any) {
	if b.err != nil || isEmpty(value) {
		return
	}
	b.doc, b.err = sjson.SetBytes(b.doc, dotted, value)
}

// checked is set guarded by the schema. option names the flag reported in
// the warning.
func (b *builder) checked(option, dotted string, value any) {
	if isEmpty(value) {
		return
	}
	if !b.mapper.HasPath(b.kind, dotted) {
		b.warnings = append(b.warnings, fmt.Sprintf("ignored --%s (schema path %s missing)", option, dotted))
		return
	}
	b.set(dotted, value)
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []map[string]string:
		return len(v) == 0
	}
	return false
}

// records keeps the named fields of each relation and drops relations that
// have none of them.
func records(rels []cmdlang.Relation, keys ...string) []map[string]string {
	var out []map[string]string
	for _, r := range rels {
		rec := map[string]string{}
		for _, k := range keys {
			if v := r.Get(k); v != "" {
				rec[k] = v
			}
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

// number renders integral values as integers so schema integer fields
// round-trip.
func number(n float64) any {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return int64(n)
	}
	return n
}

func uniq(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
