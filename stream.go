package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animatable/api"
	"github.com/matt-g-everett/animatable/stream"
	"github.com/matt-g-everett/animatable/tween"
)

type streamOptions struct {
	serveAddr string
	staticDir string
}

func newStreamCmd(flags *rootFlags) *cobra.Command {
	opts := &streamOptions{}

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream animated frames to an ledrx device over MQTT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(cmd.Context(), flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.serveAddr, "serve", "", "Also serve the catalogue API on this address")
	cmd.Flags().StringVar(&opts.staticDir, "static", "client/dist", "Static client served with --serve")

	return cmd
}

func mqttOptions(cfg stream.Config, onConnect mqtt.OnConnectHandler, onLost mqtt.ConnectionLostHandler) *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(cfg.Mqtt.ClientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(cfg.Mqtt.KeepAlive).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(onConnect).
		SetConnectionLostHandler(onLost)
}

func runStream(ctx context.Context, flags *rootFlags, opts *streamOptions) error {
	rt, err := loadRuntime(flags)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mqtt.ERROR = rt.log.Printer("error")
	mqtt.CRITICAL = rt.log.Printer("error")
	mqtt.WARN = rt.log.Printer("warn")

	mlog := rt.log.With("broker", rt.cfg.Mqtt.URL)
	client := mqtt.NewClient(mqttOptions(rt.cfg,
		func(mqtt.Client) { mlog.Info("connected") },
		func(_ mqtt.Client, err error) { mlog.Error(err, "connection lost") },
	))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", rt.cfg.Mqtt.URL, token.Error())
	}
	defer client.Disconnect(250)

	driver := tween.NewDriver(time.Now())
	ctrl, err := stream.NewController(rt.cfg, rt.reg, driver, rt.log)
	if err != nil {
		return err
	}

	if opts.serveAddr != "" {
		srv := api.NewServer(rt.reg, api.Options{StaticDir: opts.staticDir, Logger: rt.log})
		go func() {
			if err := srv.Serve(ctx, opts.serveAddr); err != nil {
				rt.log.Error(err, "api server stopped")
			}
		}()
	}

	return stream.NewStreamer(rt.cfg, client, rt.log).Run(ctx, ctrl)
}
