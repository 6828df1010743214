package finalize_session

import (
	"context"

	finalizeSession "github.com/m04kA/SMC-StudioService/internal/usecase/finalize_session"
)

type FinalizeSessionUseCase interface {
	Execute(ctx context.Context, req *finalizeSession.Request) (*finalizeSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
