package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/agenticgokit/tales/internal/export"
	"github.com/agenticgokit/tales/internal/trajectory"
	"github.com/agenticgokit/tales/internal/utils"
	"github.com/agenticgokit/tales/internal/viewer"
)

// addSelectionFlags registers the four filter flags on c.
func addSelectionFlags(c *cobra.Command) {
	c.Flags().String("model", "", "model filter (default all)")
	c.Flags().String("env", "", "environment filter (default all)")
	c.Flags().String("level", "", "level filter (default all)")
	c.Flags().String("run", "", "run ID filter (default first run, or \"all\")")
}

// presetFromFlags returns the filter values given on the command line.
// Unset flags stay empty.
func presetFromFlags(c *cobra.Command) trajectory.Selection {
	var sel trajectory.Selection
	for _, d := range trajectory.Dimensions {
		name := d.String()
		if d == trajectory.DimRun {
			name = "run"
		}
		if v, err := c.Flags().GetString(name); err == nil && v != "" {
			sel = sel.With(d, v)
		}
	}
	return sel
}

// commandSettings merges the effective configuration with the filter flags.
func commandSettings(c *cobra.Command) (viewer.Settings, error) {
	cfg, err := effectiveConfig()
	if err != nil {
		return viewer.Settings{}, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return viewer.Settings{}, err
	}
	settings.Preset = presetFromFlags(c)
	return settings, nil
}

// loadDataset expands path and reads it, wrapping failures for display.
func loadDataset(ctx context.Context, path string) (*trajectory.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	abs, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := trajectory.Load(ctx, abs)
	if err != nil {
		return nil, utils.NewLoadError(path, err)
	}
	GetLogger().Debug().
		Str("file", abs).
		Int("records", ds.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("trajectory file loaded")
	return ds, nil
}

// collectDocument loads path and applies the filters the viewer would show
// right after opening it.
func collectDocument(c *cobra.Command, path string) (*export.Document, error) {
	settings, err := commandSettings(c)
	if err != nil {
		return nil, err
	}
	ds, err := loadDataset(c.Context(), path)
	if err != nil {
		return nil, err
	}
	return export.NewCollector(ds, settings.Mode).Collect(settings.InitialSelection(ds))
}
