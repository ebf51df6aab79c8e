package cmdlang

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	sigil        = "+"
	optionMarker = "--"
)

var createKeyword = regexp.MustCompile(`(?i)^create\s+`)

// ParsedCommand is the structured intent built from one input line.
// A command with Errors must not be executed; Warnings never block.
type ParsedCommand struct {
	Raw      string           `json:"raw"`
	Type     Type             `json:"type"`
	Title    string           `json:"title"`
	Options  map[string]Value `json:"options"`
	Tags     []string         `json:"tags"`
	Locks    []string         `json:"locks"`
	Flags    map[string]bool  `json:"flags"`
	Errors   []string         `json:"errors"`
	Warnings []string         `json:"warnings"`
}

// OK reports whether the command may be executed.
func (p *ParsedCommand) OK() bool {
	return len(p.Errors) == 0
}

// FirstError returns the first collected error, or "".
func (p *ParsedCommand) FirstError() string {
	if len(p.Errors) == 0 {
		return ""
	}
	return p.Errors[0]
}

// String returns the string option key, or "" when absent or not a string.
func (p *ParsedCommand) String(key string) string {
	s, _ := p.Options[key].(String)
	return string(s)
}

// Number returns the numeric option key.
func (p *ParsedCommand) Number(key string) (float64, bool) {
	n, ok := p.Options[key].(Number)
	return float64(n), ok
}

// Bool returns the value given for a boolean flag as typed, before pair
// canonicalization. Flags holds the canonical form.
func (p *ParsedCommand) Bool(key string) (bool, bool) {
	b, ok := p.Options[key].(Bool)
	return bool(b), ok
}

// List returns the values collected for a repeatable option.
func (p *ParsedCommand) List(key string) []string {
	l, _ := p.Options[key].(StringList)
	return l
}

// Relations returns the records collected for a relational option.
func (p *ParsedCommand) Relations(key string) []Relation {
	r, _ := p.Options[key].(RelationList)
	return r
}

// IsCommand reports whether input belongs to the command language.
func IsCommand(input string) bool {
	t := strings.TrimSpace(input)
	return strings.HasPrefix(t, sigil) || createKeyword.MatchString(t)
}

// Parse parses input with DefaultGrammar. It returns nil when input is not
// command language so the caller can fall back to plain search.
func Parse(input string) *ParsedCommand {
	return ParseWith(DefaultGrammar(), input)
}

// ParseWith parses input against g.
func ParseWith(g Grammar, input string) *ParsedCommand {
	if !IsCommand(input) {
		return nil
	}

	p := &ParsedCommand{
		Raw:      input,
		Type:     g.DefaultType,
		Options:  map[string]Value{},
		Tags:     []string{},
		Locks:    []string{},
		Flags:    map[string]bool{},
		Errors:   []string{},
		Warnings: []string{},
	}

	tokens := Tokenize(stripSigil(input))
	if len(tokens) == 0 {
		p.Errors = append(p.Errors, "missing type")
		return p
	}
	if !g.HasType(tokens[0]) {
		p.Errors = append(p.Errors, fmt.Sprintf("unknown type: %s", tokens[0]))
		return p
	}
	p.Type = Type(tokens[0])

	c := &cursor{tokens: tokens[1:]}

	var title []string
	for c.more() && !isOption(c.peek()) {
		title = append(title, c.next())
	}
	p.Title = strings.TrimSpace(strings.Join(title, " "))

	for c.more() {
		tok := c.next()
		if !isOption(tok) {
			p.Errors = append(p.Errors, fmt.Sprintf("unexpected token %s", tok))
			continue
		}
		name := strings.TrimPrefix(tok, optionMarker)
		if !g.Allows(p.Type, name) {
			p.Errors = append(p.Errors, fmt.Sprintf("unknown option --%s", name))
			continue
		}

		if g.IsBool(name) {
			value := c.flagValue()
			p.Options[name] = Bool(value)
			p.setFlag(g, name, value)
			continue
		}

		if !c.more() || isOption(c.peek()) {
			p.Errors = append(p.Errors, fmt.Sprintf("option --%s needs a value", name))
			continue
		}
		val := c.next()

		switch {
		case name == g.TagOption:
			p.Tags = append(p.Tags, val)
		case name == g.LockOption:
			p.Locks = append(p.Locks, val)
		case g.IsList(name):
			list, _ := p.Options[name].(StringList)
			p.Options[name] = append(list, val)
		case g.IsRelation(name):
			parts := []string{val}
			for c.more() && !isOption(c.peek()) && strings.Contains(c.peek(), "=") {
				parts = append(parts, c.next())
			}
			rels, _ := p.Options[name].(RelationList)
			p.Options[name] = append(rels, parseRelation(strings.Join(parts, ",")))
		case g.IsNumeric(name):
			n, ok := parseNumber(val)
			if !ok || !g.ValidNumber(name, n) {
				p.Errors = append(p.Errors, fmt.Sprintf("invalid number for --%s: %s", name, val))
				continue
			}
			p.Options[name] = Number(n)
		default:
			p.Options[name] = String(val)
		}
	}

	if p.Title == "" && g.RequiresTitle(p.Type) {
		if p.Type == TypeProject {
			p.Errors = append(p.Errors, "missing project title")
		} else {
			p.Errors = append(p.Errors, "missing title")
		}
	}

	if opt, ok := g.Counts[p.Type]; ok {
		count := 1.0
		if n, set := p.Number(opt); set {
			count = n
		}
		if math.IsNaN(count) || math.IsInf(count, 0) || count < 1 {
			p.Errors = append(p.Errors, fmt.Sprintf("%s requires --%s >= 1", p.Type, opt))
		}
	}

	return p
}

// setFlag records a boolean flag under its canonical key. The opposite member
// of a pair is cleared so that exactly one key of the pair is ever set.
func (p *ParsedCommand) setFlag(g Grammar, name string, value bool) {
	key, opposite := g.CanonicalFlag(name, value)
	if opposite == "" {
		p.Flags[key] = value
		return
	}
	delete(p.Flags, opposite)
	p.Flags[key] = true
}

type cursor struct {
	tokens []string
	pos    int
}

func (c *cursor) more() bool   { return c.pos < len(c.tokens) }
func (c *cursor) peek() string { return c.tokens[c.pos] }

func (c *cursor) next() string {
	tok := c.tokens[c.pos]
	c.pos++
	return tok
}

// flagValue consumes an explicit on/off token after a boolean flag. Anything
// else is left for the option loop and the flag defaults to true.
func (c *cursor) flagValue() bool {
	if !c.more() || isOption(c.peek()) {
		return true
	}
	switch strings.ToLower(c.peek()) {
	case "on", "true", "1", "yes":
		c.pos++
		return true
	case "off", "false", "0", "no":
		c.pos++
		return false
	}
	return true
}

func isOption(tok string) bool {
	return strings.HasPrefix(tok, optionMarker)
}

func stripSigil(input string) string {
	t := strings.TrimSpace(input)
	if strings.HasPrefix(t, sigil) {
		return strings.TrimSpace(t[len(sigil):])
	}
	return strings.TrimSpace(createKeyword.ReplaceAllString(t, ""))
}

// parseNumber accepts decimal and exponent notation plus 0x/0o/0b integer
// literals. Blank input is zero. NaN and infinities are rejected.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(n), true
		}
	}
	return 0, false
}

func parseRelation(raw string) Relation {
	rel := Relation{Raw: raw, Fields: map[string]string{}}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		rel.Fields[key] = strings.TrimSpace(value)
	}
	return rel
}
