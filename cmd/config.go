package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenticgokit/tales/internal/config"
	"github.com/agenticgokit/tales/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tales configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Write the default configuration as TOML.

The file goes to $HOME/.tales.toml unless a path is given.

Examples:
  tales config init
  tales config init ./tales.toml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to find home directory: %w", err)
			}
			path = filepath.Join(home, ".tales.toml")
		}
		path, err := utils.ExpandPath(path)
		if err != nil {
			return err
		}

		if err := config.NewGenerator().GenerateConfig(config.Defaults(), path, force); err != nil {
			return err
		}
		color.Green("✓ Configuration written to %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, the config file,
TALES_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := effectiveConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if used := viper.ConfigFileUsed(); used != "" && utils.FileExists(used) {
			fmt.Fprintln(out, color.CyanString("# Config file: %s", used))
		} else {
			fmt.Fprintln(out, color.YellowString("# No config file found, showing defaults"))
		}
		return config.NewGenerator().Encode(out, cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}
