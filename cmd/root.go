// Package cmd implements the command-line interface for tales.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/agenticgokit/agenticgokit/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenticgokit/tales/internal/config"
	"github.com/agenticgokit/tales/internal/utils"
)

var (
	cfgFile        string
	verbose        bool
	debug          bool
	logFile        string
	optionsMode    string
	trace          bool
	traceExporter  string
	traceEndpoint  string
	traceSample    float64
	tracerShutdown func(context.Context) error
	logger         *zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tales",
	Short: "Step through agent trajectories",
	Long: `tales is a viewer for agent trajectory logs.

A trajectory file is a JSON array of step records, each tagged with the
model, environment, level and run it belongs to. tales groups the records
into trajectories, filters them, and lets you walk through every step with
the observation before, the action taken and the observation after.

Features:
  • Interactive step viewer with autoplay
  • Filters by model, environment, level and run
  • Trajectory listing and single-step printing
  • Export to JSON, YAML, Markdown and Mermaid

Get started with: tales view trajectories.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = utils.NewLogger(debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		zerolog.TimeFieldFormat = time.RFC3339

		trace = viper.GetBool(config.KeyTrace)
		traceExporter = viper.GetString(config.KeyTraceExporter)
		traceEndpoint = viper.GetString(config.KeyTraceEndpoint)
		traceSample = viper.GetFloat64(config.KeyTraceSample)

		if trace {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			runID := generateRunID()
			ctx = observability.WithRunID(ctx, runID)
			ctx = observability.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			cfg := observability.TracerConfig{
				ServiceName:    "tales-cli",
				ServiceVersion: Version,
				Environment:    viper.GetString(config.KeyEnvironment),
				Endpoint:       traceEndpoint,
				Exporter:       traceExporter,
				SampleRate:     traceSample,
				Debug:          debug,
				FilePath:       traceEndpoint,
			}

			tracerShutdown, err = observability.SetupTracer(ctx, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("failed to set up tracer")
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerShutdown != nil {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			_ = tracerShutdown(ctx)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tales.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file used while the viewer owns the terminal (default is $HOME/.tales/tales.log)")
	rootCmd.PersistentFlags().StringVar(&optionsMode, "options-mode", "inclusive", "filter option lists: inclusive|exclusive")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "enable tracing")
	rootCmd.PersistentFlags().StringVar(&traceExporter, "trace-exporter", "console", "trace exporter: console|otlp|file")
	rootCmd.PersistentFlags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP endpoint URL or file path (for file exporter)")
	rootCmd.PersistentFlags().Float64Var(&traceSample, "trace-sample", 1.0, "trace sample rate (0.0-1.0)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag(config.KeyOptionsMode, rootCmd.PersistentFlags().Lookup("options-mode"))
	_ = viper.BindPFlag(config.KeyTrace, rootCmd.PersistentFlags().Lookup("trace"))
	_ = viper.BindPFlag(config.KeyTraceExporter, rootCmd.PersistentFlags().Lookup("trace-exporter"))
	_ = viper.BindPFlag(config.KeyTraceEndpoint, rootCmd.PersistentFlags().Lookup("trace-endpoint"))
	_ = viper.BindPFlag(config.KeyTraceSample, rootCmd.PersistentFlags().Lookup("trace-sample"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".tales")
	}

	viper.SetEnvPrefix("TALES")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetLogger returns the configured logger
func GetLogger() *zerolog.Logger {
	if logger == nil {
		if l, err := utils.NewLogger(false); err == nil {
			logger = l
		} else {
			logger = utils.NewWriterLogger(os.Stderr, false)
		}
	}
	return logger
}

// effectiveConfig reads the merged flag, env and file configuration.
func effectiveConfig() (config.Config, error) {
	return config.FromViper(viper.GetViper())
}

func generateRunID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixNano())
}
