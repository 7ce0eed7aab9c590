// vibesnake is a snake game on a wrapping board with a shared top-10
// highscore table.
//
// Usage:
//
//	vibesnake play           - Play in this terminal
//	vibesnake serve          - Serve the game over SSH and WebSocket
//	vibesnake scores         - Show the highscore table
//	vibesnake sync           - Merge the local table with the GitHub copy
//	vibesnake stats          - Show statistics of finished games
//	vibesnake config         - Print the default configuration
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.vibesnake/config.yaml)
//	--db <path>       - Database path (overrides storage.db_path)
//	--seed <value>    - RNG seed for reproducible gameplay
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vibesnake",
	Short: "Vibe Snake - snake on a wrapping board",
	Long: `Vibe Snake is a snake game on a large board whose edges wrap around.
Each food is worth 10 points. The ten best games are kept in a local
highscore table that can be shared through a JSON file on GitHub.

Available commands:
  play     - Play in this terminal
  serve    - Serve the game over SSH and WebSocket
  scores   - Show the highscore table
  sync     - Merge the local table with the GitHub copy
  stats    - Show statistics of finished games
  config   - Print the default configuration

Examples:
  vibesnake play
  vibesnake play --seed 42
  vibesnake serve --ssh :2222 --http :8080
  vibesnake scores --plain
  VIBESNAKE_GITHUB_TOKEN=... vibesnake sync`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then current time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}
