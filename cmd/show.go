package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenticgokit/tales/internal/trajectory"
	"github.com/agenticgokit/tales/internal/tui"
	"github.com/agenticgokit/tales/internal/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print one step of the filtered trajectory",
	Long: `Print one step of the filtered trajectory: its key, the observation
before, the action and the observation after.

Steps are numbered from 1 in the same order the viewer walks them.

Examples:
  tales show runs.json --step 3
  tales show runs.json --run run-42 --step 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, _ := cmd.Flags().GetInt("step")
		width, _ := cmd.Flags().GetInt("width")

		settings, err := commandSettings(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		res := trajectory.Settle(ds, settings.InitialSelection(ds), settings.Mode)
		total := len(res.Trajectory)
		if total == 0 {
			return utils.NewUserError(
				"No data available for the selected filters",
				"Run 'tales list' to see the trajectories in the file",
				nil,
			)
		}
		if step < 1 || step > total {
			return utils.NewValidationError("step", fmt.Sprintf("must be between 1 and %d", total))
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStep(res.Trajectory[step-1], step, total, width))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	addSelectionFlags(showCmd)
	showCmd.Flags().Int("step", 1, "step number, starting at 1")
	showCmd.Flags().Int("width", 100, "wrap width of the observation and action panels")
}
