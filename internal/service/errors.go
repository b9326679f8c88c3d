package service

import (
	"context"
	"errors"

	"emphub/internal/domain"
	"emphub/pkg/logger"
	"emphub/pkg/metrics"
)

// classify turns a store error into a tagged domain error. Duplicate-key
// violations become conflicts; anything else untagged is internal.
func classify(err error, conflictMessage string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, domain.ErrDuplicateKey) {
		return domain.NewConflictError(conflictMessage)
	}
	return domain.NewInternalError(err)
}

// report logs and counts an error leaving a service operation.
func report(ctx context.Context, log logger.Logger, operation string, err error) error {
	kind := domain.KindOf(err)
	metrics.RecordServiceError(operation, kind.String())

	fields := map[string]interface{}{"operation": operation, "kind": kind.String(), "error": err.Error()}
	if kind == domain.KindInternal {
		log.ErrorContext(ctx, "Operation failed", fields)
	} else {
		log.DebugContext(ctx, "Operation rejected", fields)
	}
	return err
}
