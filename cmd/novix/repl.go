package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/renato0307/novix/internal/cmdlang"
)

const replRankLimit = 5

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Try the command language interactively",
		Long: `Read lines interactively and show what the palette would do with them.

Create and pin commands are parsed and printed as YAML. Anything else is
ranked against the palette catalog. Type exit or press ctrl+d to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "novix> ",
				HistoryFile:     opts.loader.HistoryPath(),
				AutoComplete:    newCompleter(cmdlang.DefaultGrammar()),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("failed to start line editor: %w", err)
			}
			defer rl.Close()

			r := &repl{out: rl.Stdout(), catalog: c}
			return r.Run(rl)
		},
	}
}

// repl evaluates lines against the palette catalog.
type repl struct {
	out     io.Writer
	catalog *catalog
}

// Run starts the interactive loop.
func (r *repl) Run(rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if exitRequested(line) {
			return nil
		}
		r.eval(line)
	}
}

// eval prints what the palette would make of one line.
func (r *repl) eval(line string) {
	out, failed, err := evaluate(line)
	switch {
	case errors.Is(err, errNotCommand):
		table, err := renderRanking(r.catalog, line, replRankLimit)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
		fmt.Fprint(r.out, table)
	case err != nil:
		fmt.Fprintf(r.out, "Error: %v\n", err)
	default:
		r.out.Write(out)
		if failed {
			fmt.Fprintln(r.out, "✗ not executable")
		}
	}
}

func exitRequested(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit", ":q":
		return true
	}
	return false
}

// newCompleter completes command types after the create sigil and the pin
// keywords.
func newCompleter(g cmdlang.Grammar) *readline.PrefixCompleter {
	var types []readline.PrefixCompleterInterface
	for _, t := range g.Types() {
		types = append(types, readline.PcItem(string(t)))
	}
	targets := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem("tech"),
			readline.PcItem("cat"),
		}
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("+", types...),
		readline.PcItem("create", types...),
		readline.PcItem("pin", targets()...),
		readline.PcItem("unpin", targets()...),
		readline.PcItem("list",
			readline.PcItem("pinned",
				readline.PcItem("techniques"),
				readline.PcItem("categories"),
			),
		),
		readline.PcItem("exit"),
	)
}
