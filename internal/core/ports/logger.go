package ports

import "io"

// Logger defines the interface for logging.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetOutput redirects log output. Used by tests and by the CLI when
	// stderr is not a terminal.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON records (service mode) and
	// human-readable text (dev mode).
	SetJSON(enable bool)
}
