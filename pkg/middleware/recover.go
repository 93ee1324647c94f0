package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/canonui/canon/pkg/behavior"
)

// ErrPanic is wrapped by errors produced from recovered panics.
var ErrPanic = errors.New("behavior panicked")

// Recover converts a panic inside the attach into an error wrapping
// ErrPanic. The stack is logged at debug level on the attach logger.
func Recover() behavior.Middleware {
	return func(ctx behavior.AttachContext, next func() error) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if ctx.Logger != nil {
					ctx.Logger.Debug("recovered panic", "panic", r, "stack", string(debug.Stack()))
				}
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		return next()
	}
}

// Logging logs every attach at debug level and failures at warn level.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) behavior.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx behavior.AttachContext, next func() error) error {
		start := time.Now()
		err := next()
		attrs := []any{
			"element_id", ctx.ElementID,
			"attribute", ctx.Attribute,
			"kind", ctx.Kind.String(),
			"duration", time.Since(start),
		}
		if err != nil {
			logger.Warn("attach failed", append(attrs, "error", err)...)
			return err
		}
		logger.Debug("attached", attrs...)
		return nil
	}
}
