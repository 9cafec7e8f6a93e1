package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenticgokit/tales/internal/config"
	"github.com/agenticgokit/tales/internal/tui"
	"github.com/agenticgokit/tales/internal/utils"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open the interactive trajectory viewer",
	Long: `Open the interactive trajectory viewer.

Without a file the viewer starts empty; press o to open one. The filter
flags set the selection applied once the file is loaded.

Keys:
  ←/→ or h/l   previous / next step
  space        play / pause autoplay
  g            go to a step number
  tab          move between filters, ↑/↓ change the value
  r            reset all filters
  o            open another file
  q            quit

Examples:
  tales view runs.json
  tales view runs.json --model gpt-4o --run all
  tales view runs.json --watch --interval 500ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := commandSettings(cmd)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path, err = utils.ExpandPath(args[0])
			if err != nil {
				return err
			}
		}

		// The TUI owns the terminal, so logs go to a file.
		logPath := viper.GetString(config.KeyLogFile)
		if logPath == "" {
			logPath = utils.DefaultLogFile()
		}
		fileLogger, closer, err := utils.NewFileLogger(logPath, debug)
		if err != nil {
			return err
		}
		defer closer.Close()

		fileLogger.Info().
			Str("file", path).
			Str("options_mode", string(settings.Mode)).
			Dur("interval", settings.Interval).
			Msg("starting viewer")

		model := tui.New(tui.Options{
			Context:  cmd.Context(),
			Path:     path,
			Settings: settings,
			Logger:   fileLogger,
		})
		p := tea.NewProgram(model, tea.WithAltScreen())

		if path != "" && viper.GetBool(config.KeyWatch) {
			w, err := tui.WatchFile(path, p.Send, *fileLogger)
			if err != nil {
				fileLogger.Warn().Err(err).Msg("file watching disabled")
			} else {
				defer w.Close()
			}
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	addSelectionFlags(viewCmd)
	viewCmd.Flags().Bool("watch", false, "reload the file when it changes on disk")
	viewCmd.Flags().String("interval", "", "autoplay interval, e.g. 2s or 500ms (default 2s)")

	_ = viper.BindPFlag(config.KeyWatch, viewCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag(config.KeyAutoplayInterval, viewCmd.Flags().Lookup("interval"))
}
