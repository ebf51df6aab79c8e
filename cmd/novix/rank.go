package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/renato0307/novix/internal/commands"
	"github.com/renato0307/novix/internal/logging"
)

const defaultRankLimit = 20

func newRankCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rank [query...]",
		Short: "Show how the palette ranks a query",
		Long: `Rank the palette catalog of the configured project against a query
and print the result as a table, best match first.

Scope prefixes work as in the palette: > for actions, @ for characters,
# for chapters and ? for help. Create and pin commands show their preview
row on top.`,
		Example: `  novix rank world
  novix rank @ali
  novix rank + character Cara --age 31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			table, err := renderRanking(c, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), table)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultRankLimit, "Maximum number of rows (0 for all)")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// renderRanking renders the ranked catalog as a table. The preview row,
// when there is one, is listed first and has no score.
func renderRanking(c *catalog, query string, limit int) (string, error) {
	timer := logging.Start("rank")
	preview, ranked, resolveErr := c.rank(query)
	logging.EndWithCount(timer, len(ranked))

	var b strings.Builder
	if resolveErr != "" {
		b.WriteString(pterm.Error.Sprintln(resolveErr))
	}
	if preview == nil && len(ranked) == 0 {
		b.WriteString("No matches.\n")
		return b.String(), nil
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	data := pterm.TableData{{"#", "Group", "Title", "Subtitle", "Score", "ID"}}
	row := func(item commands.Item, score string) {
		data = append(data, []string{
			strconv.Itoa(len(data)),
			string(item.Group),
			item.Title,
			item.Subtitle,
			score,
			item.ID,
		})
	}
	if preview != nil {
		row(*preview, "-")
	}
	_, scoped := commands.Scope(nil, query)
	for _, item := range ranked {
		row(item, strconv.Itoa(commands.Score(item, scoped)))
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	b.WriteString(table)
	b.WriteString("\n")
	return b.String(), nil
}
