package httpserver

import "errors"

// Run and Shutdown wrap their causes in these with errors.Join.
var (
	ErrStart          = errors.New("httpserver: start failed")
	ErrAlreadyRunning = errors.New("httpserver: already running")
	ErrShutdown       = errors.New("httpserver: graceful shutdown failed")
)
