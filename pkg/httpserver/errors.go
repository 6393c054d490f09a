package httpserver

import "errors"

var (
	// ErrStart wraps any failure to bind the listener or serve requests.
	ErrStart = errors.New("httpserver: start failed")
	// ErrShutdown wraps a graceful shutdown failure.
	ErrShutdown = errors.New("httpserver: shutdown failed")
	// ErrAlreadyRunning is returned by Run when the server was started before.
	ErrAlreadyRunning = errors.New("httpserver: already running")
)
