package config

import (
	_ "embed"
)

//go:embed defaults/vibesnake.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/vibesnake.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			GridSize: 100,
			TickMS:   100,
			Seed:     0,
		},
		Input: InputConfig{
			SwipeThreshold: 50,
		},
		Storage: StorageConfig{
			DBPath: "~/.vibesnake/vibesnake.db",
		},
		Remote: RemoteConfig{
			Enabled:       true,
			APIBase:       "https://api.github.com",
			Owner:         "T0liver",
			Repo:          "vibe-snake",
			Path:          "public/highscores.json",
			TokenEnv:      "VIBESNAKE_GITHUB_TOKEN",
			TimeoutMS:     10000,
			CommitMessage: "Update highscores from Vibe Snake game",
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HTTPAddr:    ":8080",
			HostKeyPath: ".ssh/vibesnake_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
