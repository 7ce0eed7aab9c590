// Package config provides YAML-based configuration loading for vibe-snake.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/vibe-snake/internal/core"
)

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Input   InputConfig   `yaml:"input"`
	Storage StorageConfig `yaml:"storage"`
	Remote  RemoteConfig  `yaml:"remote"`
	Server  ServerConfig  `yaml:"server"`
}

// GameConfig defines board and timing parameters.
type GameConfig struct {
	GridSize int   `yaml:"grid_size"`
	TickMS   int   `yaml:"tick_ms"`
	Seed     int64 `yaml:"seed"` // 0 = seed from the clock
}

// InputConfig defines touch/mouse gesture parameters.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"` // Minimum displacement for a swipe
}

// StorageConfig defines local persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// RemoteConfig locates the shared highscore file on GitHub.
type RemoteConfig struct {
	Enabled       bool   `yaml:"enabled"`
	APIBase       string `yaml:"api_base"`
	Owner         string `yaml:"owner"`
	Repo          string `yaml:"repo"`
	Path          string `yaml:"path"`
	Branch        string `yaml:"branch"`
	TokenEnv      string `yaml:"token_env"` // Name of the env var holding the token
	TimeoutMS     int    `yaml:"timeout_ms"`
	CommitMessage string `yaml:"commit_message"`
}

// ServerConfig defines the listen addresses of `vibesnake serve`.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr"`
	HTTPAddr    string `yaml:"http_addr"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Game.GridSize < 2 {
		return fmt.Errorf("config: game.grid_size must be at least 2, got %d", c.Game.GridSize)
	}
	if c.Game.TickMS <= 0 {
		return fmt.Errorf("config: game.tick_ms must be positive, got %d", c.Game.TickMS)
	}
	if c.Input.SwipeThreshold < 0 {
		return fmt.Errorf("config: input.swipe_threshold must not be negative, got %g", c.Input.SwipeThreshold)
	}
	if c.Remote.Enabled && (c.Remote.Owner == "" || c.Remote.Repo == "" || c.Remote.Path == "") {
		return errors.New("config: remote.owner, remote.repo and remote.path are required when remote is enabled")
	}
	return nil
}

// TickInterval returns the game tick period.
func (g GameConfig) TickInterval() time.Duration {
	return time.Duration(g.TickMS) * time.Millisecond
}

// Runtime converts the game section into the runtime parameters shared by
// all front ends.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.GridSize = c.Game.GridSize
	rc.TickInterval = c.Game.TickInterval()
	rc.Seed = c.Game.Seed
	return rc
}

// Token reads the API token from the configured environment variable.
// It returns "" when remote sync is disabled.
func (r RemoteConfig) Token() string {
	if !r.Enabled || r.TokenEnv == "" {
		return ""
	}
	return os.Getenv(r.TokenEnv)
}

// Timeout returns the per-request timeout for remote calls.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(r.TimeoutMS) * time.Millisecond
}
