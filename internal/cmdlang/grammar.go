package cmdlang

import (
	"math"
	"sort"
)

// Type identifies what a create command produces.
type Type string

const (
	TypeCharacter Type = "character"
	TypeWorld     Type = "world"
	TypeStyle     Type = "style"
	TypeOutline   Type = "outline"
	TypeLore      Type = "lore"
	TypeWorldRule Type = "world_rule"
	TypeBlueprint Type = "blueprint"
	TypeChapter   Type = "chapter"
	TypeProject   Type = "project"
)

// Grammar is the closed vocabulary of the command language. It is plain data
// so that Parse stays a pure function of (input, grammar).
type Grammar struct {
	// Options lists the option names each command type accepts. A type with
	// an empty list accepts a title only.
	Options map[Type][]string

	// BoolFlags are accepted by every type and take an optional on/off value.
	BoolFlags []string

	// FlagPairs maps each member of a mutually exclusive pair to the other.
	FlagPairs map[string]string

	// Numeric options must parse as finite numbers.
	Numeric []string

	// NonNegative numeric options additionally reject values below zero.
	NonNegative []string

	// Integers are numeric options that reject fractional values.
	Integers []string

	// Max caps numeric options. A value above the cap is invalid.
	Max map[string]float64

	// TagOption and LockOption append to ParsedCommand.Tags and Locks.
	TagOption  string
	LockOption string

	// Lists accumulate every value under the option's own key.
	Lists []string

	// Relations take comma-joined key=value fragments.
	Relations []string

	// Counts maps multi-step generation types to the option holding their
	// step count. The count defaults to 1 and must be >= 1.
	Counts map[Type]string

	// TitleOptional types skip the missing-title check.
	TitleOptional []Type

	// DefaultType fills ParsedCommand.Type when the type cannot be resolved.
	DefaultType Type
}

// MaxScenes bounds blueprint scene counts and chapter scene indexes.
const MaxScenes = 500

// DefaultGrammar returns the grammar used by the palette.
func DefaultGrammar() Grammar {
	return Grammar{
		Options: map[Type][]string{
			TypeCharacter: {"tag", "age", "importance", "role", "identity", "appearance", "motivation", "trait", "family", "voice", "boundary", "rel", "arc"},
			TypeWorld:     {"tag", "type", "atmosphere", "desc"},
			TypeStyle:     {"lock", "max_examples", "max_chars"},
			TypeOutline:   {"tag", "note"},
			TypeLore:      {"tag", "type", "desc"},
			TypeWorldRule: {"tag", "desc"},
			TypeBlueprint: {"story_type", "scenes"},
			TypeChapter:   {"bind", "scene", "signals", "no-signals"},
			TypeProject:   {},
		},
		BoolFlags: []string{"signals", "no-signals", "auto-apply", "no-auto-apply"},
		FlagPairs: map[string]string{
			"signals":       "no-signals",
			"no-signals":    "signals",
			"auto-apply":    "no-auto-apply",
			"no-auto-apply": "auto-apply",
		},
		Numeric:     []string{"age", "importance", "scenes", "scene", "max_examples", "max_chars"},
		NonNegative: []string{"scenes", "scene"},
		Integers:    []string{"scenes", "scene"},
		Max:         map[string]float64{"scenes": MaxScenes, "scene": MaxScenes},
		TagOption:   "tag",
		LockOption:  "lock",
		Lists:       []string{"trait", "boundary"},
		Relations:   []string{"rel", "arc"},
		Counts:      map[Type]string{TypeBlueprint: "scenes"},
		DefaultType: TypeCharacter,
	}
}

// HasType reports whether name is a known command type.
func (g Grammar) HasType(name string) bool {
	_, ok := g.Options[Type(name)]
	return ok
}

// Types returns the known command types in lexical order.
func (g Grammar) Types() []Type {
	types := make([]Type, 0, len(g.Options))
	for t := range g.Options {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Allows reports whether option may follow a command of type t.
func (g Grammar) Allows(t Type, option string) bool {
	return contains(g.Options[t], option) || g.IsBool(option)
}

// IsBool reports whether option is a boolean flag.
func (g Grammar) IsBool(option string) bool { return contains(g.BoolFlags, option) }

// IsNumeric reports whether option takes a number.
func (g Grammar) IsNumeric(option string) bool { return contains(g.Numeric, option) }

// IsNonNegative reports whether option rejects negative numbers.
func (g Grammar) IsNonNegative(option string) bool { return contains(g.NonNegative, option) }

// ValidNumber reports whether n satisfies the sign, integer and cap rules
// of a numeric option.
func (g Grammar) ValidNumber(option string, n float64) bool {
	if g.IsNonNegative(option) && n < 0 {
		return false
	}
	if contains(g.Integers, option) && n != math.Trunc(n) {
		return false
	}
	if limit, ok := g.Max[option]; ok && n > limit {
		return false
	}
	return true
}

// IsList reports whether option accumulates into a string list.
func (g Grammar) IsList(option string) bool { return contains(g.Lists, option) }

// IsRelation reports whether option takes key=value records.
func (g Grammar) IsRelation(option string) bool { return contains(g.Relations, option) }

// RequiresTitle reports whether commands of type t need a title.
func (g Grammar) RequiresTitle(t Type) bool {
	for _, optional := range g.TitleOptional {
		if optional == t {
			return false
		}
	}
	return true
}

// CanonicalFlag returns the flag key that records option set to value.
// Turning a flag off records its opposite, so "--signals off" is stored as
// "no-signals". Flags without a pair are returned unchanged.
func (g Grammar) CanonicalFlag(option string, value bool) (key string, opposite string) {
	opposite, paired := g.FlagPairs[option]
	if !paired || value {
		return option, opposite
	}
	return opposite, option
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
