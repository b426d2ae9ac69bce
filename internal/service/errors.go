// Package service implements the board's consistency rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"readable/internal/middleware"
	"readable/internal/models"
	"readable/internal/observability"
)

// internalOr passes AppErrors through and wraps anything else as INTERNAL_ERROR.
func internalOr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

// rejectWrite records a failed write and returns the classified error.
func rejectWrite(ctx context.Context, kind, op string, err error) error {
	err = internalOr(err)
	code := models.ErrorCode(err)
	observability.RejectedWritesTotal.WithLabelValues(kind, code).Inc()
	if code == models.CodeInternal {
		middleware.Logger.ErrorContext(ctx, "write failed",
			slog.String("kind", kind),
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	}
	return err
}

// voteDelta maps a vote option to its score delta.
func voteDelta(option string) (int, error) {
	delta, ok := models.VoteOption(option).Delta()
	if !ok {
		return 0, models.NewValidationError("option must be one of [upVote downVote]")
	}
	return delta, nil
}
