package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
}

// Server runs an http.Server with graceful shutdown, lifecycle hooks and
// structured lifecycle logging. The zero value is not usable; construct
// with New or NewFromConfig.
type Server struct {
	cfg  *config
	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// New returns a Server with the given options applied. Without WithLogger,
// lifecycle events are discarded.
func New(opts ...Option) *Server {
	cfg := &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	cfg.logger = cfg.logger.With(logger.Component("httpserver"))
	return &Server{cfg: cfg}
}

// Run opens the listener and serves until the context is cancelled, an
// interrupt or TERM signal arrives, or serving fails. Start hooks fire once
// the listener is live, so tests and readiness wiring can key off them.
// Startup failures wrap ErrStart; a second Run on the same Server fails
// with ErrAlreadyRunning.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	srv, err := s.arm(handler)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}

	s.cfg.logger.InfoContext(ctx, "listening", slog.String("addr", ln.Addr().String()))
	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		_ = s.Shutdown(context.Background())
		runErr = <-serveErr
	case runErr = <-serveErr:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// arm binds the configuration to the http.Server that Run will serve.
// Settings already present on a caller-supplied server win over options.
func (s *Server) arm(handler http.Handler) (*http.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil, errors.Join(ErrStart, ErrAlreadyRunning)
	}

	srv := s.cfg.server
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = s.cfg.addr
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = s.cfg.readTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = s.cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = s.cfg.idleTimeout
	}
	srv.Handler = handler

	s.srv = srv
	return srv, nil
}

// Shutdown drains in-flight requests within the shutdown timeout. Safe for
// repeated calls; shutdown errors wrap ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		s.cfg.logger.Info("stopped")
		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
