package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/auburus/expense-splitter/internal/cache"
	"github.com/auburus/expense-splitter/internal/core"
	applog "github.com/auburus/expense-splitter/internal/log"
	"github.com/auburus/expense-splitter/internal/middleware/ratelimit"
	"github.com/auburus/expense-splitter/internal/middleware/security"
	"github.com/auburus/expense-splitter/internal/middleware/trace"
	"github.com/auburus/expense-splitter/internal/services"
)

// EventPublisher announces expenses once they have been split.
type EventPublisher = services.Publisher

// Options carries the server dependencies. Only Formatter is required;
// a nil Publisher disables event publishing.
type Options struct {
	Formatter          *core.CurrencyFormatter
	Publisher          EventPublisher
	Logger             *applog.Logger
	RateLimitPerMinute int
	TrustedProxies     []string
}

type Server struct {
	http.Server
	formatter *core.CurrencyFormatter
	expenses  *services.ExpenseService
	logger    *applog.Logger
	events    *applog.StructuredLogger

	formatters *cache.LRUCache[*core.CurrencyFormatter]
	caches     *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, opts Options) (*Server, error) {
	if opts.Formatter == nil {
		f, err := core.NewCurrencyFormatter()
		if err != nil {
			return nil, err
		}
		opts.Formatter = f
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			return nil, err
		}
	}

	rlCfg := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		rlCfg.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16, // 64KB
		},
		formatter:  opts.Formatter,
		expenses:   services.NewExpenseService(opts.Publisher, opts.Logger),
		logger:     opts.Logger,
		events:     applog.NewStructuredLogger(opts.Logger),
		formatters: cache.NewLRUCache[*core.CurrencyFormatter](64, time.Hour),
		caches:     cache.NewManager(),
		limiter:    ratelimit.NewLimiter(rlCfg),
		detector:   detector,
		tracer:     trace.NewMiddleware(detector.ExtractClientIP),
	}

	s.caches.Register(s.formatters)
	s.caches.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/split", s.handleSplit)
	mux.HandleFunc("/api/format", s.handleFormat)
	mux.HandleFunc("/api/color/{n}", s.handleColor)
	mux.HandleFunc("/api/expenses", s.handleCreateExpense)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("not found").Write(w)
	})

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	// Outermost first: logger, tracing, headers, detection, rate limiting.
	var handler http.Handler = mux
	handler = s.limiter.Middleware(detector.ExtractClientIP, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)(handler)
	handler = detector.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)
	handler = applog.Middleware(s.logger)(handler)
	s.Handler = handler

	return s, nil
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.caches.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Metrics aggregates the middleware counters.
type Metrics struct {
	Trace     trace.Metrics
	RateLimit ratelimit.Metrics
	Security  security.DetectionMetrics
	Formatter cache.Stats
}

func (s *Server) Metrics() Metrics {
	return Metrics{
		Trace:     s.tracer.GetMetrics(),
		RateLimit: s.limiter.GetMetrics(),
		Security:  s.detector.GetMetrics(),
		Formatter: s.formatters.Stats(),
	}
}
