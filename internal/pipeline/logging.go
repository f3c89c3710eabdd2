package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/eskrenkovic/mediator-go"
	"go.uber.org/zap"
)

var _ mediator.PipelineBehavior = (*PerformanceBehavior)(nil)

// PerformanceBehavior logs the start of every request with its payload,
// measures wall-clock elapsed time around the inner call, and records either
// a success or a failure event. Errors are re-returned unchanged.
type PerformanceBehavior struct {
	Logger *zap.Logger
}

func (b *PerformanceBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	requestName := fmt.Sprintf("%T", request)
	start := time.Now()

	b.Logger.Info("request started",
		zap.String("request", requestName),
		zap.Any("payload", request),
	)

	response, err := next(ctx, request)
	elapsed := time.Since(start)

	if err != nil {
		b.Logger.Error("request failed",
			zap.String("request", requestName),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return response, err
	}

	b.Logger.Info("request completed",
		zap.String("request", requestName),
		zap.Duration("elapsed", elapsed),
	)

	return response, nil
}
