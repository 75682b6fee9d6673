package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animatable/api"
)

type serveOptions struct {
	addr      string
	staticDir string
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the animation catalogue over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, log, err := catalogueRegistry(flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.NewServer(reg, api.Options{StaticDir: opts.staticDir, Logger: log}).Serve(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringVar(&opts.staticDir, "static", "client/dist", "Static client served at /")

	return cmd
}
