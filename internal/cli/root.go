package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyaoi/thoughtforge/internal/app"
	"github.com/kyaoi/thoughtforge/internal/config"
	"github.com/kyaoi/thoughtforge/internal/logger"
)

type ctxKey string

const viperKey ctxKey = "viper"

// runEditor is swapped in tests so the root command can be exercised
// without a terminal.
var runEditor = app.Run

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		logFile string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:           "thoughtforge [path]",
		Short:         "ThoughtForge: a split-pane markdown editor for the terminal",
		Long:          "Edit markdown with a live preview. PATH may be a directory to browse or a file to open; without it the directory holding the executable is browsed.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), viperKey, v))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := getViper(cmd)
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			settings := config.FromViper(v)

			level, err := logger.ParseLevel(settings.LogLevel)
			if err != nil {
				return err
			}
			if debug {
				level = slog.LevelDebug
			}
			path := settings.LogFile
			if logFile != "" {
				path = logFile
			}
			log, err := logger.Open(path, level)
			if err != nil {
				return err
			}
			defer log.Close()

			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			if err := runEditor(target, settings, log.Logger); err != nil {
				log.Error("editor exited with error", "err", err)
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of the default location")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getViper(cmd *cobra.Command) *viper.Viper {
	if v, ok := cmd.Context().Value(viperKey).(*viper.Viper); ok {
		return v
	}
	v := viper.New()
	_ = config.Load(cmd.Context(), v)
	return v
}
