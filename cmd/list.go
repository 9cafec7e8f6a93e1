package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticgokit/tales/internal/trajectory"
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the trajectories in a file",
	Long: `List every trajectory in a file with its key, step count and step range.

A trajectory is the set of records sharing model, environment, level and
run ID. Trajectories are listed in the order they first appear in the file.
The filter flags narrow the listing; unset filters match everything.

Examples:
  tales list runs.json
  tales list runs.json --model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := commandSettings(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		sel := trajectory.AllSelection()
		for _, d := range trajectory.Dimensions {
			if v := settings.Preset.Get(d); v != "" {
				sel = sel.With(d, v)
			}
		}
		res := trajectory.Settle(ds, sel, settings.Mode)
		printGroups(cmd.OutOrStdout(), trajectory.Segments(res.Trajectory), ds.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	addSelectionFlags(listCmd)
}

func printGroups(out io.Writer, groups []trajectory.Group, records int) {
	if len(groups) == 0 {
		fmt.Fprintln(out, color.YellowString("No trajectories match the selected filters."))
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, color.CyanString("%-4s %-20s %-16s %-10s %-24s %6s  %s",
		"#", "Model", "Environment", "Level", "Run ID", "Steps", "Range"))
	fmt.Fprintln(out, strings.Repeat("-", 96))

	steps := 0
	for i, g := range groups {
		steps += g.Steps
		fmt.Fprintf(out, "%-4d %-20s %-16s %-10s %-24s %6d  %s\n",
			i+1,
			cell(g.Key.Model, 20),
			cell(g.Key.Env, 16),
			cell(g.Key.Level, 10),
			cell(g.Key.RunID, 24),
			g.Steps,
			stepRange(g),
		)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d trajectories, %d steps (%d records in file)\n",
		color.GreenString("✓"), len(groups), steps, records)
}

func cell(v string, width int) string {
	if v == "" {
		return "-"
	}
	r := []rune(v)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return v
}

func stepRange(g trajectory.Group) string {
	first := strconv.FormatFloat(g.FirstStep, 'f', -1, 64)
	last := strconv.FormatFloat(g.LastStep, 'f', -1, 64)
	if first == last {
		return first
	}
	return first + ".." + last
}
