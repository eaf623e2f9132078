package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns the process root context, canceled on
// SIGINT or SIGTERM.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
}
