package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/novix/internal/cmdlang"
)

var (
	errNotCommand = errors.New("not a command: start with + or create, or use pin, unpin or list pinned")
	errHasErrors  = errors.New("input has errors")
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <input...>",
		Short: "Parse a command-language line and print the result",
		Long: `Parse a command-language line the way the palette does and print the
result as YAML. The command fails when the line has errors.

Quote the whole line to keep quoted titles intact.`,
		Example: `  novix parse + character Alice --age 30 --tag hero
  novix parse '+ world "Old Town" --type location'
  novix parse pin tech flashback high --weight 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.load(cmd.ErrOrStderr()); err != nil {
				return err
			}

			out, failed, err := evaluate(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			if failed {
				return errHasErrors
			}
			return nil
		},
	}

	// Options of the command language follow the first word of the input.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// pinView is the printable form of a pin command.
type pinView struct {
	Mode      string   `json:"mode"`
	Target    string   `json:"target"`
	Name      string   `json:"name,omitempty"`
	Intensity string   `json:"intensity,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Note      string   `json:"note,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func newPinView(pc *cmdlang.PinCommand) pinView {
	v := pinView{
		Mode:   "pin",
		Target: pc.Noun(),
		Name:   pc.Name,
		Weight: pc.Weight,
		Note:   pc.Note,
		Error:  pc.Err,
	}
	switch pc.Mode {
	case cmdlang.PinModeUnpin:
		v.Mode = "unpin"
	case cmdlang.PinModeList:
		v.Mode = "list"
	}
	if pc.Mode == cmdlang.PinModePin {
		v.Intensity = pc.Intensity
	}
	return v
}

// evaluate parses one line and renders it as YAML. failed reports whether
// the line carries errors.
func evaluate(input string) (out []byte, failed bool, err error) {
	if pc := cmdlang.ParsePin(input); pc != nil {
		out, err = yaml.Marshal(newPinView(pc))
		if err != nil {
			return nil, false, fmt.Errorf("failed to encode result: %w", err)
		}
		return out, pc.Err != "", nil
	}

	p := cmdlang.Parse(input)
	if p == nil {
		return nil, false, errNotCommand
	}
	out, err = yaml.Marshal(p)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode result: %w", err)
	}
	return out, !p.OK(), nil
}
