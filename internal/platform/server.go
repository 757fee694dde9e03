package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"devstation/internal/messages"
	"devstation/internal/metrics"
	"devstation/internal/runtime"
	"devstation/ui"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerConfig holds HTTP server tunables.
type HTTPServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	EnableTLS    bool   // whether to use HTTPS
	CertFile     string // path to TLS certificate
	KeyFile      string // path to TLS private key
	SessionKey   string // cookie signing key
}

const (
	sessionCookie = "devstation"
	sessionMaxAge = 7 * 24 * time.Hour
)

type sessionCtxKey struct{}

// SessionID returns the id SessionMiddleware stored for this request.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionCtxKey{}).(string)
	return id
}

// sessionID reads the id from the cookie session, minting and saving a new
// one for first-time visitors.
func sessionID(store sessions.Store, w http.ResponseWriter, r *http.Request) string {
	sess, _ := store.Get(r, sessionCookie)
	if id, ok := sess.Values["id"].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values["id"] = id
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if err := sess.Save(r, w); err != nil {
		slog.Warn("session cookie not saved", "err", err)
	}
	return id
}

// SessionMiddleware gives every request a terminal session id.
func SessionMiddleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID(store, w, r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRouter wires every route of the station. js may be nil when only the
// synchronous API is exercised.
func NewRouter(js jetstream.JetStream, te *runtime.TerminalEngine, cfg HTTPServerConfig) *chi.Mux {
	metrics.Init()
	r := chi.NewRouter()
	r.Use(SessionMiddleware(sessions.NewCookieStore([]byte(cfg.SessionKey))))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(chiLogger)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/health", Health(te))

	// browser terminal
	r.Get("/", templ.Handler(ui.Index()).ServeHTTP)
	r.Get("/ui", UIStream(js, te))
	r.Route("/terminal", func(r chi.Router) {
		r.Post("/", TerminalCommandHandler(messages.NewPublisher(js), te))
		r.Post("/complete", TerminalCompleteHandler(te))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", ProcessHandler(te))
		r.Get("/complete", CompleteHandler(te))
	})

	assets, _ := fs.Sub(ui.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
	r.Get("/favicon.svg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(ui.FaviconSVG)
	})
	return r
}

// RunHTTPServer serves the router until ctx is done. The channel receives
// one value: the listen error, the shutdown error, or ctx.Err() after a
// clean shutdown.
func RunHTTPServer(ctx context.Context, p *Platform, cfg HTTPServerConfig) <-chan error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(p.JS, p.Engine, cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	listen := srv.ListenAndServe
	if cfg.EnableTLS {
		listen = func() error { return srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile) }
	}

	result := make(chan error, 2)
	go func() {
		slog.Info("http listening", "addr", srv.Addr, "tls", cfg.EnableTLS)
		if err := listen(); !errors.Is(err, http.ErrServerClosed) {
			result <- fmt.Errorf("http: %w", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			result <- fmt.Errorf("http shutdown: %w", err)
			return
		}
		result <- ctx.Err()
	}()
	return result
}

// chiLogger logs each request and feeds the HTTP metrics by route pattern.
func chiLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		slog.Info("http", "method", r.Method, "path", r.URL.Path, "route", route, "status", status, "duration", elapsed)
	})
}
