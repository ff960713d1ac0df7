package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// DefaultCommandTimeout bounds one conversion, including the Slack post when
// the command publishes.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the execution context for a command. A nil parent is
// treated as context.Background and a non-positive timeout disables the
// deadline.
func commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// EnsureLogger returns logger, or the no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
