package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/sorter/internal/enrich"
	"github.com/idilsaglam/sorter/internal/ui"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch the user listing once and print per-group statistics",
		Long: `Fetch the configured user listing, group it by enrich.group_by and print
gender counts, the age range and a color histogram for each group. The board
runs the same fetch in the background and only logs the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Enrich.Timeout)
			defer cancel()

			stats, err := a.enrichClient().Stats(ctx)
			if err != nil {
				a.log.Warn("stats fetch failed", zap.Error(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(statsLines(a.cfg.Enrich.GroupBy, stats)))
			return nil
		},
	}
	return cmd
}

func statsLines(groupBy string, stats []enrich.GroupStats) []string {
	t := ui.Current()
	lines := []string{t.Title.Render("Users by " + groupBy), ""}
	for _, st := range stats {
		lines = append(lines, fmt.Sprintf("%s  %s %d  %s %d  %s %s",
			t.Accent.Render(st.Group),
			t.Muted.Render("male"), st.Male,
			t.Muted.Render("female"), st.Female,
			t.Muted.Render("age"), st.AgeRange,
		))
		lines = append(lines, "    "+formatColors(st.Colors))
	}
	if len(stats) == 0 {
		lines = append(lines, t.Muted.Render("(no users)"))
	}
	return lines
}

func formatColors(colors map[string]int) string {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, colors[k])
	}
	return strings.Join(parts, " ")
}
