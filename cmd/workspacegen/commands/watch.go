package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/workspacegen/internal/logfields"
	"git.home.luguber.info/inful/workspacegen/internal/metrics"
	"git.home.luguber.info/inful/workspacegen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9464)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.MetricsAddr != "" {
		cfg.Monitoring.Metrics.Enabled = true
	}
	rt, err := newRuntime(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	regenerate := func(ctx context.Context) error {
		return rt.run(ctx, g.stdout(), rt.gen.Generate)
	}
	reload := func(ctx context.Context) error {
		next, err := loadConfig(root)
		if err != nil {
			slog.Warn("Configuration reload failed, keeping previous", logfields.Error(err))
		} else if err := rt.configure(next, nil); err != nil {
			return err
		}
		return regenerate(ctx)
	}
	if err := regenerate(ctx); err != nil {
		slog.Error("Initial generation failed", logfields.Error(err))
	}

	files := []string{cfg.RecordsPath()}
	if fileExists(root.Config) {
		files = append(files, root.Config)
	}
	watcher, err := watch.New(files, cfg.DebounceDuration(), reload)
	if err != nil {
		return err
	}

	if w.MetricsAddr != "" {
		stop := serveMetrics(w.MetricsAddr, rt.registry)
		defer stop()
	}
	return watcher.Run(ctx)
}

// serveMetrics exposes reg over HTTP until the returned stop func is called.
func serveMetrics(addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

