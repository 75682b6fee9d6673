package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/registry"
	"github.com/matt-g-everett/animatable/stream"
)

type rootFlags struct {
	configPath string
	logLevel   string
	human      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "animatable",
		Short:         "Keyframe animations for an LED strip",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Human readable logs")

	cmd.AddCommand(newStreamCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newServeCmd(flags))

	return cmd
}

// appContext bundles what every config-driven command needs.
type appContext struct {
	cfg stream.Config
	log *logger.Logger
	reg *registry.Registry
}

func loadRuntime(flags *rootFlags) (*appContext, error) {
	cfg, err := stream.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.Human || flags.human})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg, err := registry.NewWithCatalogue(nil)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	return &appContext{cfg: cfg, log: log, reg: reg}, nil
}

// catalogueRegistry loads the builtin catalogue plus the custom animations
// of the config file, when there is one.
func catalogueRegistry(flags *rootFlags) (*registry.Registry, *logger.Logger, error) {
	log, err := logger.New(logger.Options{Level: flags.logLevel, HumanReadable: flags.human})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	reg, err := registry.NewWithCatalogue(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalogue: %w", err)
	}

	if _, err := os.Stat(flags.configPath); err != nil {
		return reg, log, nil
	}
	cfg, err := stream.LoadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := reg.Initialize(cfg.Animations); err != nil {
		return nil, nil, fmt.Errorf("register custom animations: %w", err)
	}
	return reg, log, nil
}
