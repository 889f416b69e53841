package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mitosis-arcade/internal/config"
	"mitosis-arcade/internal/logging"
	"mitosis-arcade/internal/scores"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: arcade.yaml if present)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config and PORT)")
	storeKind := flag.String("store", "", "High score backend: file or sqlite")
	storePath := flag.String("path", "", "High score file or database path")
	staticDir := flag.String("static", "", "Directory of static files to serve at /")
	showQR := flag.Bool("qr", false, "Print a QR code of the high score URL at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	overrideString(&cfg.Server.Addr, *addr)
	overrideString(&cfg.Server.Store, *storeKind)
	overrideString(&cfg.Server.Path, *storePath)
	overrideString(&cfg.Server.StaticDir, *staticDir)
	if *showQR {
		cfg.Server.QR = true
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	store, err := openStore(cfg.Server)
	if err != nil {
		return err
	}
	defer store.Close()

	var signer *scores.Signer
	if cfg.Server.JWTSecret != "" {
		signer = scores.NewSigner(cfg.Server.JWTSecret)
	}
	h := NewHighscores(store, signer, log)
	limiter := newRateLimiter(submitRateWindow, cfg.Server.RateLimit)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           SetupRoutes(h, limiter, cfg.Server.StaticDir, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("store", cfg.Server.Store),
			zap.String("path", cfg.Server.Path),
			zap.Bool("signed_submissions", signer.Enabled()),
		)
		if cfg.Server.QR {
			printQR(scoreURL(cfg.Server), log)
		}
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.Server) (Store, error) {
	switch cfg.Store {
	case "sqlite":
		s, err := OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Path, err)
		}
		return s, nil
	case "file", "":
		return NewFileStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// scoreURL is the address players reach the list at
func scoreURL(cfg config.Server) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL + scores.Path
	}
	host, port, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return "http://localhost" + scores.Path
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + scores.Path
}

func printQR(url string, log *zap.Logger) {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		log.Warn("qr code", zap.Error(err))
		return
	}
	fmt.Fprintln(os.Stdout, qr.ToSmallString(false))
	fmt.Fprintln(os.Stdout, url)
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
