// Package api exposes costing over HTTP.
// The API only decodes requests, runs the engine and encodes results; it
// performs no cost logic itself.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pottery-cost/adapters/presets"
	"pottery-cost/adapters/storage"
	"pottery-cost/core/cost"
	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

// Config holds server settings
type Config struct {
	Version  string
	Currency types.Currency

	// RequestsPerSecond is the sustained rate per client; 0 disables throttling
	RequestsPerSecond float64
	Burst             int

	Logger *zap.Logger
}

// Server is the API server
type Server struct {
	router   chi.Router
	engine   *cost.Engine
	store    storage.Store
	presets  *presets.Loader
	config   Config
	logger   *zap.Logger
	started  time.Time
	throttle *limiter
}

// NewServer creates a server. store may be nil, which disables the session
// routes; loader may be nil, which serves built-in presets only.
func NewServer(cfg Config, store storage.Store, loader *presets.Loader) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = types.CurrencyUSD
	}
	if loader == nil {
		loader = presets.NewLoader(presets.LoaderConfig{Logger: cfg.Logger})
	}

	s := &Server{
		engine:  cost.NewEngine(cfg.Logger.Named("engine")),
		store:   store,
		presets: loader,
		config:  cfg,
		logger:  cfg.Logger,
		started: time.Now(),
	}
	if cfg.RequestsPerSecond > 0 {
		s.throttle = newLimiter(cfg.RequestsPerSecond, cfg.Burst)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.throttle != nil {
		r.Use(s.throttle.middleware)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Post("/estimate", s.handleEstimate)
	r.Post("/shipping", s.handleShipping)

	r.Get("/presets", s.handleListPresets)
	r.Post("/presets/{form}/apply", s.handleApplyPreset)

	r.Route("/sessions", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleSaveSession)
		r.Get("/{id}", s.handleGetSession)
		r.Put("/{id}", s.handleSaveSession)
		r.Delete("/{id}", s.handleDeleteSession)
		r.Get("/{id}/compare/{other}", s.handleCompareSessions)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
	})
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Network("listen", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// writeJSON encodes data before writing any header, so a value that cannot
// be encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, data interface{}, status int) error {
	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(errorBody(string(errors.TypeInternal), "failed to encode response"))
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
	return err
}

// respond writes a JSON response and logs an encode failure
func (s *Server) respond(w http.ResponseWriter, data interface{}, status int) {
	if err := writeJSON(w, data, status); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func errorBody(code, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}
}

func writeError(w http.ResponseWriter, code, message string, status int) {
	writeJSON(w, errorBody(code, message), status)
}

// writeErr maps a typed error onto a status and error code
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.TypeOf(err))
	switch errors.TypeOf(err) {
	case errors.TypeInput, errors.TypeParsing:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeNetwork:
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, code, err.Error(), status)
}
