package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNoData means there is nothing to show: the store returned no rows or
	// could not be read. Callers present it as an informational message.
	ErrNoData           = errors.New("no data available")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrUnknownDimension = errors.New("unknown breakdown dimension")
	ErrUnknownSeries    = errors.New("unknown timeline series")
	ErrUnknownView      = errors.New("unknown export view")
)

// noData logs a failed fetch and folds it into ErrNoData. Context errors are
// kept so the transport can report cancellation.
func noData(logger *zap.Logger, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Error("fetch failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrNoData, op, err)
}
