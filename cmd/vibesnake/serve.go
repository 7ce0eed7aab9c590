package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vibe-snake/internal/platform/tui"
	"github.com/vovakirdan/vibe-snake/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH and WebSocket",
	Long: `Start an SSH server and a web server. Every connection plays its own
game; all players share one highscore table.

Addresses default to server.ssh_addr and server.http_addr from the config.
Pass an empty address to disable that server.

Examples:
  vibesnake serve                        # SSH on :23234, web on :8080
  vibesnake serve --ssh :2222            # SSH on port 2222
  vibesnake serve --http ""              # SSH only
  vibesnake serve --host-key ./host_key  # Use a specific host key

Players connect with:
  ssh localhost -p 23234
  http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Web server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Addr() string
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr, "vibesnake")
	if err != nil {
		return err
	}
	defer a.Close()

	sshAddr := a.cfg.Server.SSHAddr
	if cmd.Flags().Changed("ssh") {
		sshAddr = flagSSHAddr
	}
	httpAddr := a.cfg.Server.HTTPAddr
	if cmd.Flags().Changed("http") {
		httpAddr = flagHTTPAddr
	}
	hostKey := a.cfg.Server.HostKeyPath
	if flagHostKey != "" {
		hostKey = flagHostKey
	}

	var servers []server
	if sshAddr != "" {
		srv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:        sshAddr,
			HostKeyPath:    expandHome(hostKey),
			IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
			TickInterval:   a.cfg.Game.TickInterval(),
			GridSize:       a.cfg.Game.GridSize,
			SwipeThreshold: a.cfg.Input.SwipeThreshold,
		}, a.deps(), a.logger.WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("error creating SSH server: %w", err)
		}
		servers = append(servers, srv)
	}
	if httpAddr != "" {
		servers = append(servers, web.NewServer(web.Config{
			Address:        httpAddr,
			TickInterval:   a.cfg.Game.TickInterval(),
			GridSize:       a.cfg.Game.GridSize,
			SwipeThreshold: a.cfg.Input.SwipeThreshold,
		}, a.deps(), a.logger.WithPrefix("web")))
	}
	if len(servers) == 0 {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errs := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			errs <- srv.ListenAndServe()
		}()
	}

	fmt.Println("Press Ctrl+C to stop")

	var serveErr error
	select {
	case <-done:
		a.logger.Info("shutting down...")
	case serveErr = <-errs:
		if serveErr != nil {
			a.logger.Error("server error", "error", serveErr)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Warn("shutdown failed", "address", srv.Addr(), "error", err)
		}
	}
	return serveErr
}
