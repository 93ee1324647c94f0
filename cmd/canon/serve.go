package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/canonui/canon/internal/config"
	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/internal/fixture"
	"github.com/canonui/canon/pkg/vdom"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [fixture.yaml]",
		Short: "Serve metrics and debug endpoints",
		Long: `Start an HTTP server exposing Prometheus metrics and the runtime state.

With a fixture, the behaviours are attached to its document and
POST /reload re-applies the file.

Endpoints:
  GET  /healthz   liveness
  GET  /metrics   Prometheus metrics
  GET  /status    scan totals and component states (?telemetry=true)
  GET  /document  the document as HTML
  GET  /window    visible range (?total=&scroll_top=)
  GET  /tree      flattened fixture tree (?scroll_top=&expand_all=&select=)
  POST /reload    re-apply the fixture`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Metrics.Addr = addr
			}
			cfg.Metrics.Enabled = true

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runServe(cmd.Context(), cfg, path)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default: metrics.addr from canon.yaml)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.Log.NewLogger(os.Stderr)
	srv, err := newServer(cfg, logger, path)
	if err != nil {
		return err
	}
	defer srv.rt.close()
	if err := srv.rt.start(ctx); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", cfg.Metrics.Addr)
		errCh <- httpServer.ListenAndServe()
	}()
	success("Serving on http://%s", cfg.Metrics.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}

// server serves one runtime and, optionally, the fixture it was built from.
type server struct {
	cfg    *config.Config
	logger *slog.Logger
	rt     *runtime
	path   string

	mu sync.Mutex
	fx *fixture.Fixture
}

func newServer(cfg *config.Config, logger *slog.Logger, path string) (*server, error) {
	s := &server{cfg: cfg, logger: logger, path: path}

	doc := vdom.NewDocument()
	if path != "" {
		fx, err := fixture.Load(path)
		if err != nil {
			return nil, err
		}
		s.fx = fx
		doc = fx.Document()
	}
	s.rt = newRuntime(cfg, logger, doc)
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/status", s.handleStatus)
	r.Get("/document", s.handleDocument)
	r.Get("/window", s.handleWindow)
	r.Get("/tree", s.handleTree)
	r.Post("/reload", s.handleReload)

	return r
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	withTelemetry, _ := strconv.ParseBool(r.URL.Query().Get("telemetry"))
	s.writeJSON(w, http.StatusOK, s.rt.status(withTelemetry))
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	html, err := s.rt.render()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *server) handleWindow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	total, err := queryInt(q.Get("total"), 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	scrollTop, err := queryFloat(q.Get("scroll_top"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := s.cfg.Window
	s.mu.Lock()
	if s.fx != nil && s.fx.List != nil && q.Get("total") == "" {
		cfg, total = s.fx.ListConfig(cfg)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, computeWindow(cfg, total, scrollTop))
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fx := s.fx
	s.mu.Unlock()
	if fx == nil || len(fx.Tree) == 0 {
		s.writeError(w, http.StatusNotFound, canonerrors.ElementNotFound("tree").
			WithDetail("The fixture declares no tree."))
		return
	}

	q := r.URL.Query()
	scrollTop, err := queryFloat(q.Get("scroll_top"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	expandAll, _ := strconv.ParseBool(q.Get("expand_all"))

	// Expand flags mutate the nodes, so each request flattens a fresh copy.
	fresh, err := fixture.Load(fx.Path())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	rep, err := flattenTree(fresh.Tree, s.cfg.Window, treeOptions{
		expandAll: expandAll,
		selectID:  q.Get("select"),
		scrollTop: scrollTop,
	})
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.path == "" {
		s.writeError(w, http.StatusConflict, canonerrors.New(canonerrors.CodeConfigNotFound).
			WithDetail("The server was started without a fixture."))
		return
	}
	fx, err := fixture.Load(s.path)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	report, err := s.rt.replace(fx.Apply)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.mu.Lock()
	s.fx = fx
	s.mu.Unlock()

	s.logger.Info("fixture reloaded",
		"path", s.path,
		"attached", report.Attached,
		"failed", report.Failed,
		"request_id", middleware.GetReqID(r.Context()),
	)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]string{"error": err.Error()}
	var be *canonerrors.BehaviorError
	if errors.As(err, &be) && be.Code != "" {
		body["code"] = be.Code
	}
	s.writeJSON(w, status, body)
}

func queryInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, canonerrors.InvalidConfig("expected a non-negative integer, got %q", v)
	}
	return n, nil
}

func queryFloat(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, canonerrors.InvalidConfig("expected a number, got %q", v)
	}
	return f, nil
}
