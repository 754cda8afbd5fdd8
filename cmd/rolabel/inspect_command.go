package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Haoqing-Wu/ro-labeling-tool/config"
	"github.com/Haoqing-Wu/ro-labeling-tool/recording"
	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var dataFolder string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show frame counts and signal coverage of a recording",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			folder := cfg.Paths.DataFolder
			if cmd.Flags().Changed("data_folder") {
				if folder, err = config.ExpandPath(dataFolder); err != nil {
					return fmt.Errorf("--data_folder: %w", err)
				}
			}

			path, err := recording.Discover(folder)
			if err != nil {
				return err
			}
			rec, err := recording.Load(path, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := rec.Table()
			fmt.Fprintf(out, "Recording: %s\n", rec.Path)
			fmt.Fprintf(out, "SHA-256:   %s\n", rec.SHA256)
			fmt.Fprintf(out, "Frames:    %d (usable %d, %.2f s)\n", table.Frames(), table.Len(), float64(table.Len())*signals.TimeStep)
			fmt.Fprintln(out, renderCoverage(coverage(rec, table, recording.DefaultSchema())))
			if len(rec.Ignored) > 0 {
				fmt.Fprintf(out, "Ignored entries: %d\n", len(rec.Ignored))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFolder, "data_folder", "./data/", "Folder holding the recording, or the recording file")
	return cmd
}

type groupCoverage struct {
	Group    string
	Declared int
	Present  int
	Dropped  int
	Missing  int
}

// coverage counts, per schema group, the declared signals that carry data,
// were dropped as all zero, or are absent from the recording.
func coverage(rec *recording.Recording, table *signals.Table, schema *recording.Schema) []groupCoverage {
	out := make([]groupCoverage, 0, len(schema.Groups))
	for _, g := range schema.Groups {
		fields := g.Fields
		if len(fields) == 0 {
			fields = []string{g.Name}
		}
		c := groupCoverage{Group: g.Name, Declared: len(fields)}
		for _, name := range fields {
			_, recorded := rec.Signals[name]
			switch {
			case table.Has(name):
				c.Present++
			case recorded:
				c.Dropped++
			default:
				c.Missing++
			}
		}
		out = append(out, c)
	}
	return out
}

func renderCoverage(rows []groupCoverage) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Group,
			strconv.Itoa(r.Declared),
			strconv.Itoa(r.Present),
			strconv.Itoa(r.Dropped),
			strconv.Itoa(r.Missing),
		})
	}
	return renderTable(
		[]string{"Group", "Declared", "Present", "Dropped", "Missing"},
		cells,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}
