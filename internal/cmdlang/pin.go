package cmdlang

import (
	"regexp"
	"strings"
)

// PinMode is the action requested by a pin command.
type PinMode int

const (
	PinModePin PinMode = iota
	PinModeUnpin
	PinModeList
)

// PinTarget is what a pin command attaches to the open chapter.
type PinTarget int

const (
	PinTechnique PinTarget = iota
	PinCategory
)

// DefaultIntensity is used when a pin command names no intensity.
const DefaultIntensity = "med"

var (
	listPinned  = regexp.MustCompile(`(?i)^list\s+pinned\s+(techniques|categories)$`)
	techniqueKw = regexp.MustCompile(`(?i)^tech(nique)?$`)
	categoryKw  = regexp.MustCompile(`(?i)^cat(egory)?$`)
	pinHead     = regexp.MustCompile(`(?i)^\s*(pin|unpin)\s+(tech(nique)?|cat(egory)?)(\s+|$)`)
	optionSplit = regexp.MustCompile(`\s+--`)
	intensities = []string{"low", "med", "high"}
)

// PinCommand is a parsed "pin", "unpin" or "list pinned" command.
type PinCommand struct {
	Mode      PinMode
	Target    PinTarget
	Name      string
	Intensity string
	Weight    *float64
	Note      string
	// Err is set when the command was recognized but is incomplete.
	Err string
}

// Noun returns the user-facing name of the pin target.
func (c *PinCommand) Noun() string {
	if c.Target == PinCategory {
		return "category"
	}
	return "technique"
}

// ParsePin recognizes
//
//	list pinned techniques|categories
//	pin|unpin tech|technique NAME [low|med|high] [--weight N] [--note TEXT]
//	pin|unpin cat|category NAME [low|med|high] [--weight N] [--note TEXT]
//
// and returns nil for anything else.
func ParsePin(query string) *PinCommand {
	q := strings.TrimSpace(query)

	if m := listPinned.FindStringSubmatch(q); m != nil {
		target := PinTechnique
		if strings.EqualFold(m[1], "categories") {
			target = PinCategory
		}
		return &PinCommand{Mode: PinModeList, Target: target}
	}

	fields := strings.Fields(q)
	if len(fields) < 2 {
		return nil
	}

	cmd := &PinCommand{Intensity: DefaultIntensity}
	switch {
	case strings.EqualFold(fields[0], "pin"):
		cmd.Mode = PinModePin
	case strings.EqualFold(fields[0], "unpin"):
		cmd.Mode = PinModeUnpin
	default:
		return nil
	}
	switch {
	case techniqueKw.MatchString(fields[1]):
		cmd.Target = PinTechnique
	case categoryKw.MatchString(fields[1]):
		cmd.Target = PinCategory
	default:
		return nil
	}

	segments := optionSplit.Split(" "+pinHead.ReplaceAllString(q, ""), -1)
	head := strings.Fields(segments[0])
	if len(head) == 0 {
		cmd.Err = "missing " + cmd.Noun() + " name"
		return cmd
	}

	if cmd.Mode == PinModePin {
		last := strings.ToLower(head[len(head)-1])
		if contains(intensities, last) {
			cmd.Intensity = last
			head = head[:len(head)-1]
		}
	}
	cmd.Name = trimQuotes(strings.Join(head, " "))

	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if v, ok := strings.CutPrefix(seg, "weight "); ok {
			if n, ok := parseNumber(v); ok && strings.TrimSpace(v) != "" {
				cmd.Weight = &n
			}
		}
		if v, ok := strings.CutPrefix(seg, "note "); ok {
			cmd.Note = trimQuotes(strings.TrimSpace(v))
		}
	}

	return cmd
}

func trimQuotes(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
