package evalkit

import (
	"log/slog"
	"math/rand"
	"time"
)

// Option configures a Synthesizer.
type Option func(*config)

type config struct {
	source rand.Source
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		source: rand.NewSource(time.Now().UnixNano()),
		logger: slog.Default(),
	}
}

// WithSeed makes generation reproducible (default: seeded from the clock).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.source = rand.NewSource(seed)
	}
}

// WithSource sets the random source directly. A nil source is ignored.
func WithSource(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.source = src
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
