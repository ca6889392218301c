// Package http serves the investor portal pages.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"investorportal/internal/core"
	"investorportal/internal/log"
	"investorportal/internal/middleware/ratelimit"
	"investorportal/internal/middleware/security"
	"investorportal/internal/middleware/trace"
	"investorportal/internal/portfolio"
	appweb "investorportal/web"
)

// Upstream is the investor data service as seen by the pages.
type Upstream interface {
	portfolio.InvestorLister
	portfolio.CommitmentLister
	portfolio.HealthChecker
}

// Options configures NewServer.
type Options struct {
	Addr   string
	Locale language.Tag
	Logger *log.Logger

	// RateLimitPerMinute caps page requests per client; 0 disables limiting.
	RateLimitPerMinute int
	// TrustedProxies are extra CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

// Server is the portal's HTTP server.
type Server struct {
	http.Server

	templates map[string]*template.Template
	upstream  Upstream
	formatter *core.Formatter
	logger    *log.Logger
	events    *log.StructuredLogger

	detector    *security.Detector
	tracer      *trace.Middleware
	rateLimiter *ratelimit.Limiter

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires the routes.
func NewServer(opts Options, upstream Upstream) (*Server, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	locale := opts.Locale
	if locale == language.Und {
		locale = core.DefaultLocale
	}

	s := &Server{
		upstream:  upstream,
		formatter: core.NewFormatter(locale),
		logger:    logger.WithComponent(log.ComponentHTTP),
		events:    log.NewStructuredLogger(logger),
		detector:  security.NewDetector(),
		started:   time.Now(),
	}

	for _, cidr := range opts.TrustedProxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			return nil, err
		}
	}

	templates, err := parseTemplates(appweb.TemplatesFS, s.templateFuncs())
	if err != nil {
		return nil, err
	}
	s.templates = templates

	if opts.RateLimitPerMinute > 0 {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	handler, err := s.routes(logger)
	if err != nil {
		s.stopBackground()
		return nil, err
	}
	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(logger *log.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(log.Middleware(logger))
	r.Use(log.ComponentMiddleware(log.ComponentHTTP))
	r.Use(s.tracer.Middleware)
	r.Use(log.RequestIDMiddleware(trace.RequestIDFromRequest))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(s.detector.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	r.With(security.StaticAssetMiddleware(3600)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		if s.rateLimiter != nil {
			r.Use(s.rateLimiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited))
		}
		r.Get("/", s.handleLanding)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/investors/commitments/{id}", s.handleCommitments)
	})

	r.NotFound(s.handleNotFound)
	return r, nil
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.stopBackground()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) stopBackground() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
