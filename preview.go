package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/preview"
	"github.com/matt-g-everett/animatable/stream"
	"github.com/matt-g-everett/animatable/tween"
)

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the configured strip in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(flags)
		},
	}
}

func runPreview(flags *rootFlags) error {
	rt, err := loadRuntime(flags)
	if err != nil {
		return err
	}
	// Logs would tear the alt screen.
	quiet, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	if err != nil {
		return err
	}

	driver := tween.NewDriver(time.Now())
	ctrl, err := stream.NewController(rt.cfg, rt.reg, driver, quiet)
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}
	defer ctrl.Stop()

	model := preview.NewModel(ctrl, driver, rt.cfg.FrameInterval())
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
