package httpserver_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	srv := httpserver.New(httpserver.WithAddr(addr), httpserver.WithShutdownTimeout(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	}()

	var resp *http.Response
	var err error
	for range 50 {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NoError(t, err, "http get after 50 retries")
	require.NoError(t, resp.Body.Close(), "close body")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown")
}

func TestManualShutdown(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	start := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithStartHook(func(_ *slog.Logger) { close(start) }),
	)

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	}()
	<-start
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown")
	select {
	case err := <-done:
		require.NoError(t, err, "run error")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestStartError(t *testing.T) {
	t.Parallel()
	srv := httpserver.New(httpserver.WithAddr(":invalid"))
	err := srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHooks(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	var started, stopped atomic.Bool
	start := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithStartHook(func(_ *slog.Logger) {
			started.Store(true)
			close(start)
		}),
		httpserver.WithStopHook(func(_ *slog.Logger) { stopped.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, http.NewServeMux()) }()
	<-start
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "run error")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown")

	assert.True(t, started.Load(), "start hook not executed")
	assert.True(t, stopped.Load(), "stop hook not executed")
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithStartHook(func(_ *slog.Logger) { close(started) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Run(ctx, http.NewServeMux()) }()
	<-started

	err := srv.Run(context.Background(), http.NewServeMux())
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
	cancel()
	_ = srv.Shutdown(context.Background())
}

func TestLifecycleLogging(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	var buf bytes.Buffer
	start := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		httpserver.WithStartHook(func(_ *slog.Logger) { close(start) }),
	)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NewServeMux()) }()
	<-start
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown")
	select {
	case err := <-done:
		require.NoError(t, err, "run error")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}

	out := buf.String()
	assert.Contains(t, out, `"component":"httpserver"`)
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, addr)
	assert.Contains(t, out, "stopped")
}

func TestDoubleShutdown(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	start := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithStartHook(func(_ *slog.Logger) { close(start) }),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NewServeMux()) }()
	<-start
	require.NoError(t, srv.Shutdown(context.Background()), "first shutdown")
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown")
	select {
	case err := <-done:
		require.NoError(t, err, "run error")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	hs := &http.Server{}
	start := make(chan struct{})
	srv := httpserver.NewFromConfig(httpserver.Config{
		Addr:            addr,
		ReadTimeout:     time.Second,
		WriteTimeout:    2 * time.Second,
		IdleTimeout:     3 * time.Second,
		ShutdownTimeout: 50 * time.Millisecond,
	},
		httpserver.WithServer(hs),
		httpserver.WithStartHook(func(_ *slog.Logger) { close(start) }),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NewServeMux()) }()
	<-start
	assert.Equal(t, addr, hs.Addr, "addr not applied")
	assert.Equal(t, time.Second, hs.ReadTimeout, "read timeout not applied")
	assert.Equal(t, 2*time.Second, hs.WriteTimeout, "write timeout not applied")
	assert.Equal(t, 3*time.Second, hs.IdleTimeout, "idle timeout not applied")
	_ = srv.Shutdown(context.Background())
	select {
	case err := <-done:
		require.NoError(t, err, "run error")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func()
	}{
		{"addr", func() { httpserver.WithAddr("") }},
		{"read", func() { httpserver.WithReadTimeout(-time.Second) }},
		{"write", func() { httpserver.WithWriteTimeout(-time.Second) }},
		{"idle", func() { httpserver.WithIdleTimeout(-time.Second) }},
		{"shutdown", func() { httpserver.WithShutdownTimeout(-time.Second) }},
		{"server", func() { httpserver.WithServer(nil) }},
		{"start hook", func() { httpserver.WithStartHook(nil) }},
		{"stop hook", func() { httpserver.WithStopHook(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, tt.fn)
		})
	}
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(ctx, log)(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALIVE", w.Body.String())
	})

	t.Run("readiness all probes pass", func(t *testing.T) {
		t.Parallel()
		ok := func(context.Context) error { return nil }
		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(ctx, log, ok, ok)(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "READY", w.Body.String())
	})

	t.Run("readiness probe failure", func(t *testing.T) {
		t.Parallel()
		fail := func(context.Context) error { return errors.New("db down") }
		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(ctx, log, fail)(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "NOT_READY", w.Body.String())
	})
}
