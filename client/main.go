package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"mitosis-arcade/game"
	"mitosis-arcade/internal/config"
	"mitosis-arcade/internal/logging"
	"mitosis-arcade/internal/scores"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: arcade.yaml if present)")
	serverURL := flag.String("server", "", "High score server URL")
	noSound := flag.Bool("no-sound", false, "Disable sound effects")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *serverURL != "" {
		cfg.Client.ServerURL = *serverURL
	}
	if *noSound {
		cfg.Client.Sound = false
	}

	// The terminal belongs to the game; logs go to a file
	cfg.Log.Outputs = []string{cfg.Client.LogPath}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("client stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	sounds := NewSounds()
	if cfg.Client.Sound {
		if err := sounds.Init(); err != nil {
			// Non-fatal, game can run without sound
			log.Warn("audio initialization failed", zap.Error(err))
		}
	}
	defer sounds.Close()

	var signer *scores.Signer
	if cfg.Client.JWTSecret != "" {
		signer = scores.NewSigner(cfg.Client.JWTSecret)
	}
	client := scores.NewClient(cfg.Client.ServerURL, signer)
	sub := newSubmitter(client, log)
	defer func() {
		if !sub.Wait(submitTimeout) {
			log.Warn("exiting with score submissions in flight")
		}
	}()

	host := NewTerminalHost(game.SurfaceWidth, game.SurfaceHeight, HostOptions{
		FrameRate:  cfg.Client.FrameRate,
		HoldWindow: cfg.Client.HoldWindow,
		Log:        log,
	})
	session := game.NewSession(host, cfg.Game,
		game.WithLogger(log),
		game.OnEvent(sounds.Play),
		game.OnEnd(func(r game.Result) {
			host.GameOver(r)
			sub.Submit(r)
		}),
	)

	for {
		action, tuned, err := runMenu(client, session.Config())
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		session.SetConfig(tuned)
		if action == actionQuit {
			return nil
		}
		if err := host.Run(session); err != nil {
			return err
		}
	}
}
