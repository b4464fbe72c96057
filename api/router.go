package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ludhianaseo/reviewqr/kiosk"
	"github.com/ludhianaseo/reviewqr/metrics"
	"github.com/ludhianaseo/reviewqr/qr"
	"github.com/ludhianaseo/reviewqr/review"
)

// Generator is the generate action the handlers call. QRCode and Review
// produce one half of a Result on their own.
type Generator interface {
	Generate(ctx context.Context) (*kiosk.Result, error)
	QRCode() (*qr.Code, error)
	Review() review.Review
	Business() string
	Payload() string
}

// unmatchedRoute labels metrics for requests no route matched, keeping the
// label set bounded.
const unmatchedRoute = "unmatched"

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Kiosk     Generator
	Registry  *prometheus.Registry
	Log       *slog.Logger
	Version   string
	StartTime time.Time
}

// NewRouter returns a fully configured chi router with all routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.Log))

	// Web UI
	r.Get("/", s.handlePage)

	// Generate action
	r.Get("/generate", s.handleGenerate)
	r.Post("/generate", s.handleGenerate)
	r.Get("/qr.png", s.handleQRImage)
	r.Get("/review", s.handleReviewText)

	// Status & metrics
	r.Get("/status", s.handleStatus)
	if s.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.Registry))
	}

	return r
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

// --- middleware --------------------------------------------------------------

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.ObserveHTTP(route, r.Method, status, time.Since(start))
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", status, "remote", r.RemoteAddr)
		})
	}
}
