package fixedbuf

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures a Buffer or SafeBuffer at construction.
type Option func(*config)

type config struct {
	logger  *zap.Logger
	name    string
	cleanup any // func(*T), checked against the element type in New
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for lifecycle events. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName labels the buffer in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCleanup registers fn to run on every initialized slot when the buffer
// is released, after the element's own Release method if it has one.
// fn runs only from an explicit Release, on the caller's goroutine; a buffer
// dropped without Release never runs it. fn may capture the buffer.
// T must match the buffer's element type or New panics.
func WithCleanup[T any](fn func(*T)) Option {
	return func(c *config) {
		c.cleanup = fn
	}
}

func cleanupFor[T any](c config) func(*T) {
	if c.cleanup == nil {
		return nil
	}
	fn, ok := c.cleanup.(func(*T))
	if !ok {
		panic(fmt.Sprintf("fixedbuf: cleanup %T does not accept %T", c.cleanup, (*T)(nil)))
	}
	return fn
}
