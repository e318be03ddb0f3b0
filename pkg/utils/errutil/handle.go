package errutil

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err with its goerr values and stack, then reports it to Sentry.
// Reporting is a no-op when Sentry has not been initialized.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	attrs := []any{"error", err}
	var gErr *goerr.Error
	if errors.As(err, &gErr) {
		attrs = append(attrs, "values", gErr.Values())
		attrs = append(attrs, "stack", gErr.Stacks())
	}
	ctxlog.From(ctx).Error(msg, attrs...)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", msg)
	})
	hub.CaptureException(err)
}
