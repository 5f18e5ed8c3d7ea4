package mock

import (
	"log/slog"
	"runtime"
	"time"
)

// Option configures a Service.
type Option func(*config)

type config struct {
	seed     int64
	poolSize int
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		seed:     time.Now().UnixNano(),
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithSeed makes the generated data reproducible (default: seeded from the clock).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithPoolSize sets the number of generators (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
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
