package sessions

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/integrations/notifier"
)

// WarningNotifier получатель предупреждений "осталось 5 минут"
type WarningNotifier interface {
	SessionWarning(w notifier.Warning)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
// Location задает часовой пояс студии (nil - локальный)
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location != nil {
		return time.Now().In(p.Location)
	}
	return time.Now()
}
