package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"paddleball/config"
	"paddleball/server"
)

var (
	serveAddr     string
	serveWebDir   string
	serveTickRate int
	serveWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WebSocket game server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, e.g. :8080 (overrides config)")
	serveCmd.Flags().StringVar(&serveWebDir, "web", "", "static web directory (overrides config)")
	serveCmd.Flags().IntVar(&serveTickRate, "tick-rate", 0, "frames per second (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "hot reload the game section when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appCfg
	if serveAddr != "" {
		cfg.Listen = serveAddr
	}
	if serveWebDir != "" {
		cfg.WebDir = serveWebDir
	}
	if serveTickRate > 0 {
		cfg.TickRate = serveTickRate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 优雅退出（Ctrl+C）
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rm := server.NewRoomManager(ctx, cfg.Game, cfg.TickRate, cfg.DefaultRoom)
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom(rm.DefaultRoom()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           rm.Routes(cfg.WebDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		server.Log.Infof("paddleball listening on %s; open http://localhost%s/", cfg.Listen, cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		server.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if serveWatch && configPath != "" {
		w := config.NewWatcher(configPath, server.Log, func(next config.Config) {
			if err := rm.ApplyConfig(next.Game); err != nil {
				server.Log.Warnf("hot reload rejected: %v", err)
			}
		})
		g.Go(func() error { return w.Run(gctx) })
	}

	err := g.Wait()
	stop()
	rm.Wait()
	return err
}
