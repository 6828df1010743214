package sessions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/ticker"
)

// Service реестр сервисов: активные и завершенные сессии, таймеры, биллинг и занятость комнат.
// Все методы безопасны для конкурентного вызова.
type Service struct {
	mu       sync.Mutex
	active   []*domain.ServiceSession
	finished []*domain.ServiceSession

	notifier     WarningNotifier
	timeProvider TimeProvider
	tickInterval time.Duration
	logger       Logger
}

// NewService создает новый экземпляр реестра сервисов
func NewService(
	notifier WarningNotifier,
	tickInterval time.Duration,
	logger Logger,
) *Service {
	if tickInterval <= 0 {
		tickInterval = domain.DefaultTickInterval
	}
	return &Service{
		active:       make([]*domain.ServiceSession, 0),
		finished:     make([]*domain.ServiceSession, 0),
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		tickInterval: tickInterval,
		logger:       logger,
	}
}

// WithLocation задает часовой пояс, в котором считаются итоги за день и месяц
func (s *Service) WithLocation(loc *time.Location) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeProvider = &RealTimeProvider{Location: loc}
	return s
}

// Run пересчитывает таймеры каждые tickInterval до отмены контекста
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Sessions: tick driver started, interval=%s", s.tickInterval)
	ticker.Run(ctx, s.tickInterval, s.Tick)
	s.logger.Info("Sessions: tick driver stopped")
}

// Seed заменяет коллекцию завершенных сервисов загруженной историей.
// Записи не в статусе finished пропускаются.
func (s *Service) Seed(history []*domain.ServiceSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = make([]*domain.ServiceSession, 0, len(history))
	for _, h := range history {
		if h == nil || !h.IsFinished() {
			continue
		}
		s.finished = append(s.finished, h.Clone())
	}

	s.logger.Info("Seed: loaded %d finished sessions", len(s.finished))
}

// Start начинает новый сервис
// Комната и сотрудник не могут одновременно участвовать в двух активных сервисах
func (s *Service) Start(req *models.StartSessionRequest) (*domain.ServiceSession, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("Start: validation failed for staff=%s: %v", req.StaffEmail, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	session := req.ToDomainSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findActiveByStaff(session.StaffEmail); existing != nil {
		s.logger.Warn("Start: staff=%s already has active session id=%s", session.StaffEmail, existing.ID)
		return nil, ErrStaffBusy
	}
	if session.RoomNumber != nil {
		if existing := s.findActiveByRoom(*session.RoomNumber); existing != nil {
			s.logger.Warn("Start: room=%d is occupied by session id=%s", *session.RoomNumber, existing.ID)
			return nil, ErrRoomOccupied
		}
	}

	if !session.DurationCategory.IsKnown() {
		s.logger.Warn("Start: unknown duration category=%q, using %d minutes",
			session.DurationCategory, domain.DefaultDurationMinutes)
	}

	session.ID = newID()
	session.StartedAt = s.timeProvider.Now()
	session.DurationMinutes = session.DurationCategory.Minutes()
	session.RemainingSeconds = session.LimitSeconds()
	session.OvertimeSeconds = 0
	session.Status = domain.SessionActive

	s.active = append(s.active, session)

	s.logger.Info("Start: started session id=%s for staff=%s, duration=%d min",
		session.ID, session.StaffEmail, session.DurationMinutes)
	return session.Clone(), nil
}

// Finalize завершает активный сервис
// Повторный вызов или неизвестный id ничего не меняют и возвращают false
func (s *Service) Finalize(id string, closingNotes string) (*domain.ServiceSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexActive(id)
	if idx < 0 {
		s.logger.Warn("Finalize: active session id=%s not found", id)
		return nil, false
	}

	session := s.active[idx]
	now := s.timeProvider.Now()
	session.EndedAt = &now
	session.Status = domain.SessionFinished
	_, overtime := session.Countdown(now)
	session.RemainingSeconds, session.OvertimeSeconds = 0, overtime
	if notes := strings.TrimSpace(closingNotes); notes != "" {
		session.ClosingNotes = &notes
	}

	s.active = append(s.active[:idx], s.active[idx+1:]...)
	s.finished = append(s.finished, session)

	s.logger.Info("Finalize: finished session id=%s for staff=%s, total=%s",
		session.ID, session.StaffEmail, session.Total())
	return session.Clone(), true
}

// ActiveFor возвращает активный сервис сотрудника
func (s *Service) ActiveFor(staffEmail string) (*domain.ServiceSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findActiveByStaff(strings.TrimSpace(staffEmail))
	if session == nil {
		return nil, false
	}
	return session.Clone(), true
}

// Get возвращает сервис по id из любой коллекции
func (s *Service) Get(id string) (*domain.ServiceSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexActive(id); idx >= 0 {
		return s.active[idx].Clone(), true
	}
	if idx := s.indexFinished(id); idx >= 0 {
		return s.finished[idx].Clone(), true
	}
	return nil, false
}

// Active возвращает копии активных сервисов в порядке начала
func (s *Service) Active() []*domain.ServiceSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(s.active)
}

// Finished возвращает копии завершенных сервисов в порядке завершения
func (s *Service) Finished() []*domain.ServiceSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(s.finished)
}

// ActiveCount количество активных сервисов
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.active)
}

// Tick пересчитывает оставшееся время и переработку всех активных сервисов.
// Значения выводятся из абсолютного времени начала, поэтому пропуск тиков не накапливает ошибку.
// При пересечении порога в 5 минут один раз отправляется предупреждение.
func (s *Service) Tick() {
	s.mu.Lock()
	now := s.timeProvider.Now()
	warnings := make([]notifier.Warning, 0)

	for _, session := range s.active {
		previous := session.RemainingSeconds
		remaining, overtime := session.Countdown(now)
		session.RemainingSeconds = remaining
		session.OvertimeSeconds = overtime

		if remaining > 0 && remaining <= domain.WarningThresholdSeconds && previous > domain.WarningThresholdSeconds {
			var room *int
			if session.RoomNumber != nil {
				r := *session.RoomNumber
				room = &r
			}
			warnings = append(warnings, notifier.Warning{
				SessionID:        session.ID,
				StaffEmail:       session.StaffEmail,
				StaffName:        session.StaffName,
				RoomNumber:       room,
				RemainingSeconds: remaining,
				FiredAt:          now,
			})
		}
	}
	s.mu.Unlock()

	if s.notifier == nil {
		return
	}
	for _, w := range warnings {
		s.notifier.SessionWarning(w)
	}
}

// AddAdditionalTime добавляет оплаченное время к активному сервису и продлевает лимит
// Завершенные и неизвестные сервисы не изменяются
func (s *Service) AddAdditionalTime(id string, req *models.AdditionalTimeRequest) (*domain.ServiceSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexActive(id)
	if idx < 0 {
		s.logger.Warn("AddAdditionalTime: active session id=%s not found", id)
		return nil, false
	}

	now := s.timeProvider.Now()
	session := s.active[idx]
	entry := domain.AdditionalTime{
		Label:   req.Label,
		Cost:    req.Cost,
		Receipt: req.Receipt,
		AddedAt: now,
	}
	session.AdditionalTimes = append(session.AdditionalTimes, entry)
	session.DurationMinutes += entry.Minutes()
	session.RemainingSeconds, session.OvertimeSeconds = session.Countdown(now)

	s.logger.Info("AddAdditionalTime: session id=%s extended by %d min (label=%q), duration=%d min",
		id, entry.Minutes(), req.Label, session.DurationMinutes)
	return session.Clone(), true
}

// AddExtra добавляет дополнительную услугу к активному сервису
func (s *Service) AddExtra(id string, req *models.ExtraRequest) (*domain.ServiceSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexActive(id)
	if idx < 0 {
		s.logger.Warn("AddExtra: active session id=%s not found", id)
		return nil, false
	}

	session := s.active[idx]
	session.Extras = append(session.Extras, domain.Extra{
		Description: req.Description,
		Cost:        req.Cost,
		Receipt:     req.Receipt,
		AddedAt:     s.timeProvider.Now(),
	})

	s.logger.Info("AddExtra: session id=%s, extra=%q, cost=%s", id, req.Description, req.Cost)
	return session.Clone(), true
}

// AddConsumption добавляет позицию потребления к активному сервису
// Позиции с количеством меньше 1 не принимаются
func (s *Service) AddConsumption(id string, req *models.ConsumptionRequest) (*domain.ServiceSession, bool) {
	if req.Quantity < 1 {
		s.logger.Warn("AddConsumption: invalid quantity=%d for session id=%s", req.Quantity, id)
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexActive(id)
	if idx < 0 {
		s.logger.Warn("AddConsumption: active session id=%s not found", id)
		return nil, false
	}

	session := s.active[idx]
	session.Consumptions = append(session.Consumptions, domain.Consumption{
		Description: req.Description,
		UnitCost:    req.UnitCost,
		Quantity:    req.Quantity,
		AddedAt:     s.timeProvider.Now(),
	})

	s.logger.Info("AddConsumption: session id=%s, item=%q x%d", id, req.Description, req.Quantity)
	return session.Clone(), true
}

// EditFinished перезаписывает поля завершенного сервиса и добавляет запись в историю правок
// Без причины правка не выполняется; длительность и таймеры не пересчитываются
func (s *Service) EditFinished(id string, req *models.EditSessionRequest) (*domain.ServiceSession, bool) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("EditFinished: empty reason for session id=%s", id)
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexFinished(id)
	if idx < 0 {
		s.logger.Warn("EditFinished: finished session id=%s not found", id)
		return nil, false
	}

	session := s.finished[idx]
	updated := req.ToDomainValues()
	session.EditHistory = append(session.EditHistory, domain.AdminEdit{
		EditedAt: s.timeProvider.Now(),
		Reason:   reason,
		Previous: session.EditableValues(),
		Updated:  updated,
	})
	session.EditedByAdmin = true
	session.ServiceType = updated.ServiceType
	session.DurationCategory = updated.DurationCategory
	session.BaseCost = updated.BaseCost
	session.AdditionalCost = updated.AdditionalCost
	session.ConsumptionCost = updated.ConsumptionCost

	s.logger.Info("EditFinished: session id=%s edited (%d edits total)", id, len(session.EditHistory))
	return session.Clone(), true
}

// Occupancy возвращает занятость для известных комнат и комнат, на которые ссылаются активные сервисы
func (s *Service) Occupancy(knownRooms []int) []domain.RoomOccupancy {
	s.mu.Lock()
	defer s.mu.Unlock()

	byRoom := make(map[int]*domain.ServiceSession)
	for _, session := range s.active {
		if session.RoomNumber != nil {
			byRoom[*session.RoomNumber] = session
		}
	}

	rooms := make(map[int]struct{}, len(knownRooms)+len(byRoom))
	for _, r := range knownRooms {
		rooms[r] = struct{}{}
	}
	for r := range byRoom {
		rooms[r] = struct{}{}
	}

	numbers := make([]int, 0, len(rooms))
	for r := range rooms {
		numbers = append(numbers, r)
	}
	sort.Ints(numbers)

	result := make([]domain.RoomOccupancy, 0, len(numbers))
	for _, r := range numbers {
		occ := domain.RoomOccupancy{Room: r}
		if session, ok := byRoom[r]; ok {
			id, email := session.ID, session.StaffEmail
			occ.Occupied = true
			occ.SessionID = &id
			occ.StaffEmail = &email
		}
		result = append(result, occ)
	}
	return result
}

// OccupiedCount количество занятых комнат
func (s *Service) OccupiedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, session := range s.active {
		if session.RoomNumber != nil {
			count++
		}
	}
	return count
}

// Aggregates считает количество и выручку завершенных сервисов за сегодня и текущий месяц
func (s *Service) Aggregates() domain.SessionAggregates {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeProvider.Now()
	loc := now.Location()
	year, month, day := now.Date()

	agg := domain.SessionAggregates{
		TodayRevenue: decimal.Zero,
		MonthRevenue: decimal.Zero,
	}
	for _, session := range s.finished {
		if session.EndedAt == nil {
			continue
		}
		y, m, d := session.EndedAt.In(loc).Date()
		if y != year || m != month {
			continue
		}
		total := session.Total()
		agg.MonthCount++
		agg.MonthRevenue = agg.MonthRevenue.Add(total)
		if d == day {
			agg.TodayCount++
			agg.TodayRevenue = agg.TodayRevenue.Add(total)
		}
	}
	return agg
}

// Вспомогательные методы (вызываются под блокировкой)

func (s *Service) findActiveByStaff(email string) *domain.ServiceSession {
	for _, session := range s.active {
		if strings.EqualFold(session.StaffEmail, email) {
			return session
		}
	}
	return nil
}

func (s *Service) findActiveByRoom(room int) *domain.ServiceSession {
	for _, session := range s.active {
		if session.OccupiesRoom(room) {
			return session
		}
	}
	return nil
}

func (s *Service) indexActive(id string) int {
	for i, session := range s.active {
		if session.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexFinished(id string) int {
	for i, session := range s.finished {
		if session.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(sessions []*domain.ServiceSession) []*domain.ServiceSession {
	result := make([]*domain.ServiceSession, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, session.Clone())
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
