package optimize_week

import (
	"context"

	optimizeWeek "github.com/m04kA/SMC-EventScheduler/internal/usecase/optimize_week"
)

type OptimizeWeekUseCase interface {
	Execute(ctx context.Context, req *optimizeWeek.Request) (*optimizeWeek.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
