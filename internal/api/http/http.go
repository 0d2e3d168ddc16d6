package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/qellagg/qella-waitlist/internal/dependency"
	"github.com/qellagg/qella-waitlist/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	reg     dependency.Registration
	limiter *ratelimit.MultiKeyLimiter
	done    chan struct{}
}

// New creates a new server
func New(config *Config, reg dependency.Registration) *Server {
	return &Server{
		c:       config,
		reg:     reg,
		limiter: ratelimit.NewMultiKeyLimiter(),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)

	r.Route("/api/waitlist", func(r chi.Router) {
		r.Post("/", s.joinWaitlist)
		r.Get("/email", s.checkEmail)
		r.Get("/username", s.checkUsername)
	})

	return r
}

// Start starts the http server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)

	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()

	return nil
}

// Stop shuts the http server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}

// clientIP extracts the caller address for rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
