package extension

import (
	"net/http"
	"net/http/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// DebugDurationHeader reports how long the handler took to start responding.
const DebugDurationHeader = "X-Debug-Duration"

// DebugToolbar exposes request metrics and runtime profiles for development.
// When disabled it installs no routes and its middleware is a passthrough.
type DebugToolbar struct {
	initialized bool
	enabled     bool
	prefix      string

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewDebugToolbar() *DebugToolbar {
	return &DebugToolbar{}
}

func (d *DebugToolbar) Name() string { return "debug_toolbar" }

// InitApp enables the toolbar when DEBUG_TB_ENABLED or APP_DEBUG is set.
func (d *DebugToolbar) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	d.initialized = true
	d.enabled = cfg.DebugToolbar.Enabled || cfg.App.Debug
	d.prefix = cfg.DebugToolbar.URLPrefix

	if !d.enabled {
		log.Debug().Msg("debug toolbar disabled")
		return nil
	}

	d.registry = prometheus.NewRegistry()
	d.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "app",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)
	d.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "app",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route"},
	)

	d.registry.MustRegister(
		d.requests,
		d.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info().Str("prefix", d.prefix).Msg("debug toolbar enabled")
	return nil
}

// Enabled reports whether the toolbar is active.
func (d *DebugToolbar) Enabled() bool {
	return d.enabled
}

// Registry returns the toolbar's metric registry, or nil when disabled.
func (d *DebugToolbar) Registry() *prometheus.Registry {
	return d.registry
}

func (d *DebugToolbar) Middleware(httperr.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !d.enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			tw := &timingWriter{ResponseWriter: w, start: start}
			ww := middleware.NewWrapResponseWriter(tw, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			d.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			d.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Mount installs /metrics and /pprof/ under DEBUG_TB_URL_PREFIX.
func (d *DebugToolbar) Mount(r chi.Router, _ httperr.Responder) {
	if !d.enabled {
		return
	}

	r.Route(d.prefix, func(r chi.Router) {
		r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

		r.HandleFunc("/pprof", pprofIndex)
		r.HandleFunc("/pprof/", pprofIndex)
		r.HandleFunc("/pprof/cmdline", pprof.Cmdline)
		r.HandleFunc("/pprof/profile", pprof.Profile)
		r.HandleFunc("/pprof/symbol", pprof.Symbol)
		r.HandleFunc("/pprof/trace", pprof.Trace)
		r.Get("/pprof/{profile}", func(w http.ResponseWriter, r *http.Request) {
			pprof.Handler(chi.URLParam(r, "profile")).ServeHTTP(w, r)
		})
	})
}

// pprofIndex serves the profile index under a trailing slash, which its
// relative links need.
func pprofIndex(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}
	pprof.Index(w, r)
}

// timingWriter stamps DebugDurationHeader right before the header is sent.
type timingWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (tw *timingWriter) WriteHeader(code int) {
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.Header().Set(DebugDurationHeader, time.Since(tw.start).String())
	}
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timingWriter) Write(p []byte) (int, error) {
	if !tw.wroteHeader {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(p)
}

func (tw *timingWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}
