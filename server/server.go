// Package server is the thin HTTP transport around an FSBI instance. It
// validates requests, delegates to the core's operations, and shapes JSON
// responses; no indexing or scoring logic lives here.
package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	fsbi "github.com/hupe1980/fsbi"
	"github.com/hupe1980/fsbi/codec"
)

// snippetLen is the number of leading characters of stored text returned
// with each query hit. Truncation happens here, not in the core.
const snippetLen = 200

// Options configures a Server.
type Options struct {
	// Codec encodes responses and decodes request bodies. Defaults to
	// codec.Default.
	Codec codec.Codec
	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Registry receives the server's Prometheus collectors. Defaults to a
	// fresh registry.
	Registry *prometheus.Registry
	// RateLimit/RateBurst bound request throughput; RateLimit 0 disables
	// limiting.
	RateLimit float64
	RateBurst int
}

// Server exposes an FSBI instance over HTTP. The instance is injected at
// construction; the server holds no index state of its own.
type Server struct {
	db       *fsbi.FSBI
	codec    codec.Codec
	logger   *slog.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	limiter  *rate.Limiter
}

// New creates a Server around db.
func New(db *fsbi.FSBI, opts Options) *Server {
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Server{
		db:       db,
		codec:    opts.Codec,
		logger:   opts.Logger.With("component", "fsbi-server"),
		metrics:  NewMetrics(opts.Registry),
		registry: opts.Registry,
		limiter:  limiter,
	}
}

// Handler returns the server's routed and instrumented http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /index", s.handleIndex)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /doc/{id}", s.handleGetDoc)
	mux.HandleFunc("DELETE /doc/{id}", s.handleDeleteDoc)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s.rateLimit(s.limiter, s.instrument(mux))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.logger.Error("response encoding failed", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// gzipJSON writes v as JSON, gzip-compressed when the client accepts it.
// Used for snapshot responses, which dominate transfer size.
func (s *Server) gzipJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.logger.Error("response encoding failed", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, _ = gz.Write(data)
		return
	}
	_, _ = w.Write(data)
}

// snippet returns the first snippetLen characters of text, rune-safe.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen])
}
