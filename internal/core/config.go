package core

import "time"

// RuntimeConfig contains configuration passed to a game session at start.
// Sessions use it to size the board and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	GridSize     int           // Board edge length in cells (N×N, toroidal)
	TickInterval time.Duration // Fixed period between simulation ticks
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		GridSize:     100,
		TickInterval: 100 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}
