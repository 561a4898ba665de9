package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/model"
)

// Harvester runs one budget-bounded crawl. It is implemented by
// crawler.Crawler; the indirection keeps handler tests free of real
// network crawls.
type Harvester interface {
	Harvest(ctx context.Context, inputURL string, budgets config.Budgets) (*model.Result, error)
}

// Server is the HTTP shell around the harvester.
type Server struct {
	harvester Harvester
	logger    *slog.Logger
	version   string
	addr      string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version string echoed in responses.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a Server that serves crawls from harvester on addr.
func NewServer(harvester Harvester, addr string, opts ...Option) *Server {
	s := &Server{
		harvester: harvester,
		addr:      addr,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/harvest", s.handleHarvest).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully. In-flight crawls get a short drain window before the
// listener is torn down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),

		// A harvest request holds the connection open for the whole
		// crawl, so the write timeout must cover a worst-case run.
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// HarvestRequest is the JSON body of POST /api/v1/harvest.
// Only url is required; absent budgets fall back to the defaults, and
// out-of-range budgets are clamped rather than rejected.
type HarvestRequest struct {
	URL         string `json:"url"`
	MaxPages    int    `json:"max_pages,omitempty"`
	MaxEmails   int    `json:"max_emails,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`

	// Fast is a pointer so "absent" (default true) and "explicitly
	// false" can be told apart.
	Fast *bool `json:"fast,omitempty"`
}

// HarvestResponse is the JSON body of a successful harvest.
type HarvestResponse struct {
	Version string        `json:"version"`
	Result  *model.Result `json:"result"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHarvest decodes the request, runs the crawl, and writes the
// result. Request-shape problems are 400; a URL that cannot anchor a
// crawl is 422.
func (s *Server) handleHarvest(w http.ResponseWriter, r *http.Request) {
	var req HarvestRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	fast := true
	if req.Fast != nil {
		fast = *req.Fast
	}
	budgets := config.Budgets{
		MaxPages:    req.MaxPages,
		MaxEmails:   req.MaxEmails,
		Concurrency: req.Concurrency,
		Fast:        fast,
	}

	s.logger.Info("harvest requested", "url", req.URL)

	result, err := s.harvester.Harvest(r.Context(), req.URL, budgets)
	if err != nil {
		// Harvest only fails at construction, before any request is
		// made, so every error here means the URL itself is unusable.
		s.writeError(w, http.StatusUnprocessableEntity, "cannot harvest this url: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, HarvestResponse{
		Version: s.version,
		Result:  result,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to write response", "reason", err)
	}
}

// writeError writes a JSON error response with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
