// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds a charmbracelet/log.Logger writing to w at level,
// timestamped the way the example pack's stacktower CLI does.
//
// Grounded on matzehuels-stacktower's internal/cli/log.go newLogger.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for retrieval by loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger attached by withLogger, or
// log.Default() if none was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
