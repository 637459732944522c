package engine

import (
	"log/slog"

	"github.com/mpyw/pathcheck/internal/syntax"
)

const (
	// DefaultMaxSteps is the number of worklist nodes processed before the
	// exploration gives up.
	DefaultMaxSteps = 5000

	// DefaultMaxBlockVisits is how many times one path may enter the same block.
	DefaultMaxBlockVisits = 2
)

// Options configures an Explorer.
type Options struct {
	// MaxSteps caps the processed nodes. Default: DefaultMaxSteps.
	MaxSteps int

	// MaxBlockVisits caps the entries into one block along one path.
	// Default: DefaultMaxBlockVisits.
	MaxBlockVisits int

	// Resolver maps identifiers to symbols. Default: resolves nothing.
	Resolver syntax.Resolver

	// Logger receives fault warnings and debug traces. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{
		MaxSteps:       DefaultMaxSteps,
		MaxBlockVisits: DefaultMaxBlockVisits,
		Resolver:       syntax.NameResolver{},
		Logger:         slog.Default(),
	}
}

// Option is a functional option for configuring an Explorer.
type Option func(*Options)

// WithMaxSteps sets the step cap. Non-positive values keep the default.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSteps = n
		}
	}
}

// WithMaxBlockVisits sets the per-path block visit cap. Non-positive values
// keep the default.
func WithMaxBlockVisits(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxBlockVisits = n
		}
	}
}

// WithResolver sets the symbol resolver.
func WithResolver(r syntax.Resolver) Option {
	return func(o *Options) {
		if r != nil {
			o.Resolver = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
