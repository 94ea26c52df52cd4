package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/sorter/internal/model"
	"github.com/idilsaglam/sorter/internal/seed"
	"github.com/idilsaglam/sorter/internal/ui"
)

func newSeedCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Show the starting item list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.seedItems()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "yaml":
				b, err := seed.MarshalYAML(items)
				if err != nil {
					return err
				}
				_, err = w.Write(b)
				return err
			case "json":
				b, err := seed.MarshalJSON(items)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(b))
				return err
			case "", "panel":
				fmt.Fprintln(w, ui.Panel(seedLines(items)))
				return nil
			}
			return fmt.Errorf("unknown format %q (panel, yaml, json)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "panel", "output format: panel, yaml, json")
	return cmd
}

func seedLines(items []model.Item) []string {
	t := ui.Current()
	fruits, vegetables := 0, 0
	lines := []string{t.Title.Render("Seed"), ""}
	for i, it := range items {
		tag := t.Success.Render(it.Category.String())
		if it.Category == model.Vegetable {
			vegetables++
		} else {
			fruits++
		}
		lines = append(lines, fmt.Sprintf("%2d. %-14s %s", i+1, it.Name, tag))
	}
	lines = append(lines, "", t.Muted.Render(fmt.Sprintf("%d fruits, %d vegetables", fruits, vegetables)))
	return lines
}
