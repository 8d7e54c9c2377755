package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/petasbytes/letter-blog/internal/console"
	"github.com/petasbytes/letter-blog/internal/provider"
	"github.com/petasbytes/letter-blog/internal/settings"
)

// Option is a functional option for configuring the application.
type Option func(*App)

// WithSettings sets the locations and API parameters.
func WithSettings(s *settings.Settings) Option {
	return func(a *App) {
		a.settings = s
	}
}

// WithConsole sets the human-facing printer.
func WithConsole(c *console.Printer) Option {
	return func(a *App) {
		a.console = c
	}
}

// WithLogger sets the structured diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithInput sets where setup reads the API key from.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		a.in = r
	}
}

// WithClientFactory sets how Anthropic clients are built. A nil factory
// makes generation fail with client_unavailable.
func WithClientFactory(f provider.Factory) Option {
	return func(a *App) {
		a.newClient = f
	}
}

// WithClock overrides time.Now for draft names and the prompt date.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithLookupEnv overrides os.LookupEnv for the environment tier.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(a *App) {
		a.lookupEnv = fn
	}
}
