// Command simplebar runs a layer-shell status bar: a solid strip reserved at
// a screen edge with an accent sweep that wraps once a minute.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thejerf/suture/v4"

	"github.com/wuliuqii/waywin"
	"github.com/wuliuqii/waywin/wl"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "bar configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logrus.WithField("error", err).Fatalln("simplebar: exited")
	}
}

func run(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	client, err := waywin.Connect(cfg.Socket)
	if err != nil {
		return err
	}
	defer client.Close()

	bar, err := newBar(client, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := suture.New("simplebar", suture.Spec{
		EventHook: func(ev suture.Event) {
			logrus.WithFields(logrus.Fields(ev.Map())).Debugln("simplebar: supervisor event")
		},
	})
	sup.Add(&dispatchService{client: client})
	sup.Add(bar)

	err = sup.Serve(ctx)
	if ctx.Err() != nil {
		// A signal ended the run.
		return nil
	}
	return err
}

// dispatchService pumps compositor events as a supervised service. A dead
// connection terminates the tree instead of restarting, because a fresh
// Dispatch call cannot revive a closed socket.
type dispatchService struct {
	client *wl.Client
}

func (s *dispatchService) String() string { return "dispatch" }

func (s *dispatchService) Serve(ctx context.Context) error {
	err := s.client.Dispatch(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Wrapf(suture.ErrTerminateSupervisorTree, "wayland connection lost: %v", err)
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "simplebar", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "simplebar.yaml"
	}
	return filepath.Join(home, ".config", "simplebar", "config.yaml")
}
