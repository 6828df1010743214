package shifts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/ticker"
)

// Service реестр смен сотрудников: машина состояний и учет времени по состояниям.
// Все методы безопасны для конкурентного вызова.
type Service struct {
	mu      sync.Mutex
	records []*domain.ShiftRecord

	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр реестра смен
func NewService(logger Logger) *Service {
	return &Service{
		records:      make([]*domain.ShiftRecord, 0),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run начисляет секунды открытым сменам раз в секунду до отмены контекста.
// Счетчики растут на 1 за тик, поэтому интервал не настраивается.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Shifts: tick driver started")
	ticker.Run(ctx, domain.DefaultTickInterval, s.Tick)
	s.logger.Info("Shifts: tick driver stopped")
}

// StartShift открывает смену сотрудника в состоянии available
// Если открытая смена уже есть, ничего не меняет и возвращает false
func (s *Service) StartShift(staffEmail string) (*domain.ShiftRecord, bool) {
	email := strings.TrimSpace(staffEmail)
	if email == "" {
		s.logger.Warn("StartShift: empty staff email")
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if open := s.findOpen(email); open != nil {
		s.logger.Warn("StartShift: staff=%s already has open shift id=%s", email, open.ID)
		return nil, false
	}

	now := s.timeProvider.Now()
	record := &domain.ShiftRecord{
		ID:         newID(),
		StaffEmail: email,
		StartedAt:  now,
		State:      domain.ShiftAvailable,
		Events: []domain.ShiftEvent{
			{Kind: domain.EventClockIn, At: now},
		},
	}
	s.records = append(s.records, record)

	s.logger.Info("StartShift: opened shift id=%s for staff=%s", record.ID, email)
	return record.Clone(), true
}

// EndShift закрывает открытую смену сотрудника
func (s *Service) EndShift(staffEmail string) (*domain.ShiftRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findOpen(strings.TrimSpace(staffEmail))
	if record == nil {
		s.logger.Warn("EndShift: no open shift for staff=%s", staffEmail)
		return nil, false
	}

	now := s.timeProvider.Now()
	record.EndedAt = &now
	record.State = domain.ShiftOff
	record.Events = append(record.Events, domain.ShiftEvent{Kind: domain.EventClockOut, At: now})

	s.logger.Info("EndShift: closed shift id=%s for staff=%s, worked=%ds, service=%ds",
		record.ID, record.StaffEmail, record.WorkedSeconds(), record.ServiceSeconds)
	return record.Clone(), true
}

// SetState меняет состояние открытой смены и записывает событие перехода
// Без открытой смены, при неизвестном состоянии или off_shift ничего не меняет
func (s *Service) SetState(staffEmail string, state domain.ShiftState) (*domain.ShiftRecord, bool) {
	if !state.IsSettable() {
		s.logger.Warn("SetState: invalid state=%q for staff=%s", state, staffEmail)
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findOpen(strings.TrimSpace(staffEmail))
	if record == nil {
		s.logger.Warn("SetState: no open shift for staff=%s", staffEmail)
		return nil, false
	}

	previous := record.State
	kind := domain.TransitionKind(previous, state)
	record.Events = append(record.Events, domain.ShiftEvent{
		Kind: kind,
		At:   s.timeProvider.Now(),
		Note: fmt.Sprintf("%s -> %s", previous, state),
	})
	record.State = state

	s.logger.Info("SetState: shift id=%s staff=%s %s -> %s (%s)", record.ID, record.StaffEmail, previous, state, kind)
	return record.Clone(), true
}

// OpenFor возвращает открытую смену сотрудника
func (s *Service) OpenFor(staffEmail string) (*domain.ShiftRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findOpen(strings.TrimSpace(staffEmail))
	if record == nil {
		return nil, false
	}
	return record.Clone(), true
}

// List возвращает все смены сотрудника в порядке открытия
func (s *Service) List(staffEmail string) []*domain.ShiftRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.forStaff(strings.TrimSpace(staffEmail))
}

// OpenCount количество открытых смен
func (s *Service) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.records {
		if r.IsOpen() {
			count++
		}
	}
	return count
}

// Tick добавляет одну секунду в счетчик текущего состояния каждой открытой смены
func (s *Service) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		r.Accrue()
	}
}

// StatsFor считает статистику по закрытым сменам сотрудника
func (s *Service) StatsFor(staffEmail string) domain.ShiftStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.TrimSpace(staffEmail)
	return domain.NewShiftStats(email, s.forStaff(email))
}

// Вспомогательные методы (вызываются под блокировкой)

func (s *Service) findOpen(email string) *domain.ShiftRecord {
	for _, r := range s.records {
		if r.IsOpen() && strings.EqualFold(r.StaffEmail, email) {
			return r
		}
	}
	return nil
}

func (s *Service) forStaff(email string) []*domain.ShiftRecord {
	result := make([]*domain.ShiftRecord, 0)
	for _, r := range s.records {
		if strings.EqualFold(r.StaffEmail, email) {
			result = append(result, r.Clone())
		}
	}
	return result
}

// newID генерирует идентификатор на основе времени (UUIDv7)
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
