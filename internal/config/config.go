// Package config loads settings for the score server and the terminal
// client: built-in defaults, then an optional YAML file, then a .env file,
// then the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mitosis-arcade/game"
	"mitosis-arcade/internal/logging"
)

// DefaultPath is read when no explicit config file is given
const DefaultPath = "arcade.yaml"

// Config is the full settings tree
type Config struct {
	Server Server          `yaml:"server"`
	Client Client          `yaml:"client"`
	Game   game.Config     `yaml:"game"`
	Log    logging.Options `yaml:"log"`
}

// Server configures the score service
type Server struct {
	Addr      string `yaml:"addr"`
	Store     string `yaml:"store"` // "file" or "sqlite"
	Path      string `yaml:"path"`
	JWTSecret string `yaml:"jwt_secret"`
	QR        bool   `yaml:"qr"`
	PublicURL string `yaml:"public_url"` // advertised in the startup QR code
	StaticDir string `yaml:"static_dir"` // optional directory served at /
	RateLimit int    `yaml:"rate_limit"` // submissions per IP per minute, 0 disables
}

// Client configures the terminal game
type Client struct {
	ServerURL  string        `yaml:"server_url"`
	JWTSecret  string        `yaml:"jwt_secret"`
	HoldWindow time.Duration `yaml:"hold_window"` // how long a key counts as held after its last repeat
	FrameRate  int           `yaml:"frame_rate"`
	Sound      bool          `yaml:"sound"`
	LogPath    string        `yaml:"log_path"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Server: Server{
			Addr:      ":3000",
			Store:     "file",
			Path:      "server/highscores.json",
			RateLimit: 30,
		},
		Client: Client{
			ServerURL:  "http://localhost:3000",
			HoldWindow: 300 * time.Millisecond,
			FrameRate:  60,
			Sound:      true,
			LogPath:    "arcade.log",
		},
		Game: game.DefaultConfig(),
		Log: logging.Options{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load builds the configuration. An empty path falls back to DefaultPath
// and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := decodeYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints
func (c Config) Validate() error {
	switch c.Server.Store {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown store %q (want file or sqlite)", c.Server.Store)
	}
	if c.Server.Path == "" {
		return fmt.Errorf("server.path is required")
	}
	if c.Client.FrameRate <= 0 {
		return fmt.Errorf("client.frame_rate must be > 0, got %d", c.Client.FrameRate)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.Game.Validate()
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays environment variables. PORT is honored for parity
// with common hosting platforms.
func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		cfg.Server.Addr = ":" + port
	}
	str("ARCADE_ADDR", &cfg.Server.Addr)
	str("ARCADE_STORE", &cfg.Server.Store)
	str("ARCADE_STORE_PATH", &cfg.Server.Path)
	str("ARCADE_PUBLIC_URL", &cfg.Server.PublicURL)
	str("ARCADE_STATIC_DIR", &cfg.Server.StaticDir)
	str("ARCADE_SERVER_URL", &cfg.Client.ServerURL)
	str("ARCADE_LOG_LEVEL", &cfg.Log.Level)
	str("ARCADE_LOG_ENCODING", &cfg.Log.Encoding)

	// One shared secret serves both ends unless overridden per side.
	if secret := getenv("ARCADE_JWT_SECRET"); secret != "" {
		cfg.Server.JWTSecret = secret
		cfg.Client.JWTSecret = secret
	}

	for key, dst := range map[string]*int{
		"ARCADE_ENEMY_SPEED":           &cfg.Game.EnemySpeed,
		"ARCADE_OBJECT_SPAWN_INTERVAL": &cfg.Game.ObjectSpawnInterval,
		"ARCADE_OBJECT_SPLIT_TIME":     &cfg.Game.ObjectSplitTime,
		"ARCADE_ENEMY_LIFESPAN":        &cfg.Game.EnemyLifespan,
		"ARCADE_OBJECT_MAX_SPLITS":     &cfg.Game.ObjectMaxSplits,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return nil
}
