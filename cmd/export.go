package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticgokit/tales/internal/export"
	"github.com/agenticgokit/tales/internal/utils"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the filtered trajectory",
	Long: `Export the filtered trajectory with every step grouped by trajectory.

Formats: json, yaml, markdown, mermaid. Without --format the format is taken
from the --output extension, falling back to json.

Examples:
  tales export runs.json
  tales export runs.json --format markdown --output run.md
  tales export runs.json --run all --output all.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, err := exportFormat(cmd, output)
		if err != nil {
			return err
		}

		doc, err := collectDocument(cmd, args[0])
		if err != nil {
			return err
		}

		return writeDocument(cmd.OutOrStdout(), output, func(w io.Writer) error {
			return export.Write(w, doc, format)
		})
	},
}

var mermaidCmd = &cobra.Command{
	Use:   "mermaid <file>",
	Short: "Generate a Mermaid flowchart of the filtered trajectory",
	Long: `Generate a Mermaid flowchart of the filtered trajectory.

Each trajectory becomes a chain that starts at a node naming its key and
continues through its actions in step order.

Examples:
  tales mermaid runs.json
  tales mermaid runs.json --observations --output flow.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		observations, _ := cmd.Flags().GetBool("observations")
		maxLabel, _ := cmd.Flags().GetInt("max-label")

		doc, err := collectDocument(cmd, args[0])
		if err != nil {
			return err
		}

		chart := export.GenerateMermaid(doc, export.MermaidOptions{
			Observations: observations,
			MaxLabel:     maxLabel,
		})
		return writeDocument(cmd.OutOrStdout(), output, func(w io.Writer) error {
			_, err := io.WriteString(w, chart)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mermaidCmd)

	addSelectionFlags(exportCmd)
	exportCmd.Flags().String("format", "", "export format: json, yaml, markdown, mermaid")
	exportCmd.Flags().String("output", "", "output file (default: stdout)")

	addSelectionFlags(mermaidCmd)
	mermaidCmd.Flags().Bool("observations", false, "add the observation after each action")
	mermaidCmd.Flags().Int("max-label", 60, "truncate node labels to this many characters")
	mermaidCmd.Flags().String("output", "", "output file (default: stdout)")
}

// exportFormat resolves --format, or guesses it from the output extension.
func exportFormat(cmd *cobra.Command, output string) (export.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name != "" {
		return export.ParseFormat(name)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if f, err := export.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return export.FormatJSON, nil
}

// writeDocument renders to stdout, or to output when it is set.
func writeDocument(stdout io.Writer, output string, render func(io.Writer) error) error {
	if output == "" {
		return render(stdout)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	path, err := utils.ExpandPath(output)
	if err != nil {
		return err
	}
	if err := utils.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	color.Green("✓ Written to %s", path)
	return nil
}
