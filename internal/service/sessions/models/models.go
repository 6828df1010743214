package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrMissingStaff возвращается, когда не указан сотрудник
	ErrMissingStaff = errors.New("staff email is required")

	// ErrInvalidLocation возвращается при неизвестном месте оказания услуги
	ErrInvalidLocation = errors.New("invalid location")

	// ErrRoomRequired возвращается, когда для сервиса в студии не указана комната
	ErrRoomRequired = errors.New("room number is required for on-premises sessions")

	// ErrRoomNotAllowed возвращается, когда комната указана для выездного сервиса
	ErrRoomNotAllowed = errors.New("room number is only allowed for on-premises sessions")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrNegativeCost возвращается при отрицательной стоимости
	ErrNegativeCost = errors.New("cost must not be negative")

	// ErrInvalidQuantity возвращается при некорректном количестве
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 1000")

	// ErrMissingDescription возвращается, когда не указано описание позиции
	ErrMissingDescription = errors.New("description is required")

	// ErrReasonRequired возвращается, когда не указана причина правки
	ErrReasonRequired = errors.New("edit reason is required")

	// ErrTooLong возвращается при превышении длины текстового поля
	ErrTooLong = errors.New("text is too long")
)

// Request модели

// ClientInfo данные клиента
type ClientInfo struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// StartSessionRequest запрос на начало сервиса
type StartSessionRequest struct {
	StaffEmail       string          `json:"staffEmail"`
	StaffName        string          `json:"staffName"`
	Client           *ClientInfo     `json:"client,omitempty"`
	AppointmentID    *string         `json:"appointmentId,omitempty"`
	ServiceType      string          `json:"serviceType"`
	Location         string          `json:"location"`
	RoomNumber       *int            `json:"roomNumber,omitempty"`
	DurationCategory string          `json:"durationCategory"`
	BaseCost         decimal.Decimal `json:"baseCost"`
	AdditionalCost   decimal.Decimal `json:"additionalCost"`
	ConsumptionCost  decimal.Decimal `json:"consumptionCost"`
	PaymentMethod    string          `json:"paymentMethod"`
	ReceiptImage     *string         `json:"receiptImage,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

// Validate проверяет ограничения на входные данные.
// Неизвестная категория длительности не является ошибкой: используется значение по умолчанию.
func (r *StartSessionRequest) Validate() error {
	if strings.TrimSpace(r.StaffEmail) == "" {
		return ErrMissingStaff
	}

	switch domain.Location(r.Location) {
	case domain.LocationOnPremises:
		if r.RoomNumber == nil || *r.RoomNumber <= 0 {
			return ErrRoomRequired
		}
	case domain.LocationOffSite:
		if r.RoomNumber != nil {
			return ErrRoomNotAllowed
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLocation, r.Location)
	}

	if !domain.PaymentMethod(r.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, r.PaymentMethod)
	}

	if r.BaseCost.IsNegative() || r.AdditionalCost.IsNegative() || r.ConsumptionCost.IsNegative() {
		return ErrNegativeCost
	}

	if r.Notes != nil && len(*r.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes", ErrTooLong)
	}

	return nil
}

// ToDomainSession конвертирует запрос в новую активную сессию без ID и времени начала
func (r *StartSessionRequest) ToDomainSession() *domain.ServiceSession {
	s := &domain.ServiceSession{
		StaffEmail:       strings.TrimSpace(r.StaffEmail),
		StaffName:        r.StaffName,
		AppointmentID:    r.AppointmentID,
		ServiceType:      r.ServiceType,
		Location:         domain.Location(r.Location),
		DurationCategory: domain.DurationCategory(r.DurationCategory),
		BaseCost:         r.BaseCost,
		AdditionalCost:   r.AdditionalCost,
		ConsumptionCost:  r.ConsumptionCost,
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		ReceiptImage:     r.ReceiptImage,
		Notes:            r.Notes,
		Status:           domain.SessionActive,
	}
	if r.RoomNumber != nil {
		room := *r.RoomNumber
		s.RoomNumber = &room
	}
	if r.Client != nil {
		s.Client = &domain.Client{
			ID:    r.Client.ID,
			Name:  r.Client.Name,
			Phone: r.Client.Phone,
			Email: r.Client.Email,
		}
	}
	return s
}

// AdditionalTimeRequest запрос на добавление времени
type AdditionalTimeRequest struct {
	Label   string          `json:"label"`
	Cost    decimal.Decimal `json:"cost"`
	Receipt *string         `json:"receipt,omitempty"`
}

// Validate проверяет запрос. Неизвестная метка дает 30 минут и не является ошибкой.
func (r *AdditionalTimeRequest) Validate() error {
	if r.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

// ExtraRequest запрос на добавление дополнительной услуги
type ExtraRequest struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Receipt     *string         `json:"receipt,omitempty"`
}

// Validate проверяет запрос
func (r *ExtraRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrMissingDescription
	}
	if r.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

// ConsumptionRequest запрос на добавление позиции потребления
type ConsumptionRequest struct {
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
}

// Validate проверяет запрос
func (r *ConsumptionRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrMissingDescription
	}
	if r.UnitCost.IsNegative() {
		return ErrNegativeCost
	}
	if r.Quantity < 1 || r.Quantity > domain.MaxConsumptionQty {
		return ErrInvalidQuantity
	}
	return nil
}

// EditSessionRequest административная правка завершенного сервиса
type EditSessionRequest struct {
	ServiceType      string          `json:"serviceType"`
	DurationCategory string          `json:"durationCategory"`
	BaseCost         decimal.Decimal `json:"baseCost"`
	AdditionalCost   decimal.Decimal `json:"additionalCost"`
	ConsumptionCost  decimal.Decimal `json:"consumptionCost"`
	Reason           string          `json:"reason"`
}

// Validate проверяет запрос: причина правки обязательна
func (r *EditSessionRequest) Validate() error {
	reason := strings.TrimSpace(r.Reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if len(reason) > domain.MaxEditReasonLength {
		return fmt.Errorf("%w: reason", ErrTooLong)
	}
	if r.BaseCost.IsNegative() || r.AdditionalCost.IsNegative() || r.ConsumptionCost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

// ToDomainValues конвертирует запрос в новые значения полей
func (r *EditSessionRequest) ToDomainValues() domain.EditableValues {
	return domain.EditableValues{
		ServiceType:      r.ServiceType,
		DurationCategory: domain.DurationCategory(r.DurationCategory),
		BaseCost:         r.BaseCost,
		AdditionalCost:   r.AdditionalCost,
		ConsumptionCost:  r.ConsumptionCost,
	}
}

// Response модели

// AdditionalTimeResponse добавленное время
type AdditionalTimeResponse struct {
	Label   string          `json:"label"`
	Minutes int             `json:"minutes"`
	Cost    decimal.Decimal `json:"cost"`
	Receipt *string         `json:"receipt,omitempty"`
	AddedAt time.Time       `json:"addedAt"`
}

// ExtraResponse дополнительная услуга
type ExtraResponse struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Receipt     *string         `json:"receipt,omitempty"`
	AddedAt     time.Time       `json:"addedAt"`
}

// ConsumptionResponse позиция потребления
type ConsumptionResponse struct {
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	AddedAt     time.Time       `json:"addedAt"`
}

// EditableValuesResponse снимок полей для аудита
type EditableValuesResponse struct {
	ServiceType      string          `json:"serviceType"`
	DurationCategory string          `json:"durationCategory"`
	BaseCost         decimal.Decimal `json:"baseCost"`
	AdditionalCost   decimal.Decimal `json:"additionalCost"`
	ConsumptionCost  decimal.Decimal `json:"consumptionCost"`
}

// AdminEditResponse запись истории правок
type AdminEditResponse struct {
	EditedAt time.Time              `json:"editedAt"`
	Reason   string                 `json:"reason"`
	Previous EditableValuesResponse `json:"previous"`
	Updated  EditableValuesResponse `json:"updated"`
}

// SessionResponse ответ с данными сервиса
type SessionResponse struct {
	ID            string      `json:"id"`
	StaffEmail    string      `json:"staffEmail"`
	StaffName     string      `json:"staffName"`
	Client        *ClientInfo `json:"client,omitempty"`
	AppointmentID *string     `json:"appointmentId,omitempty"`

	ServiceType      string `json:"serviceType"`
	Location         string `json:"location"`
	RoomNumber       *int   `json:"roomNumber,omitempty"`
	DurationCategory string `json:"durationCategory"`

	BaseCost        decimal.Decimal          `json:"baseCost"`
	AdditionalCost  decimal.Decimal          `json:"additionalCost"`
	ConsumptionCost decimal.Decimal          `json:"consumptionCost"`
	AdditionalTimes []AdditionalTimeResponse `json:"additionalTimes"`
	Extras          []ExtraResponse          `json:"extras"`
	Consumptions    []ConsumptionResponse    `json:"consumptions"`
	Total           decimal.Decimal          `json:"total"`

	PaymentMethod string  `json:"paymentMethod"`
	ReceiptImage  *string `json:"receiptImage,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ClosingNotes  *string `json:"closingNotes,omitempty"`

	StartedAt        time.Time  `json:"startedAt"`
	EndedAt          *time.Time `json:"endedAt,omitempty"`
	DurationMinutes  int        `json:"durationMinutes"`
	RemainingSeconds int64      `json:"remainingSeconds"`
	OvertimeSeconds  int64      `json:"overtimeSeconds"`
	Status           string     `json:"status"`

	EditedByAdmin bool                `json:"editedByAdmin"`
	EditHistory   []AdminEditResponse `json:"editHistory,omitempty"`
}

// SessionListResponse ответ со списком сервисов
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// RoomOccupancyResponse занятость комнаты
type RoomOccupancyResponse struct {
	Room       int     `json:"room"`
	Occupied   bool    `json:"occupied"`
	SessionID  *string `json:"sessionId,omitempty"`
	StaffEmail *string `json:"staffEmail,omitempty"`
}

// OccupancyResponse ответ с занятостью комнат
type OccupancyResponse struct {
	Rooms []RoomOccupancyResponse `json:"rooms"`
}

// AggregatesResponse итоги по завершенным сервисам
type AggregatesResponse struct {
	TodayCount   int             `json:"todayCount"`
	TodayRevenue decimal.Decimal `json:"todayRevenue"`
	MonthCount   int             `json:"monthCount"`
	MonthRevenue decimal.Decimal `json:"monthRevenue"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.ServiceSession) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:               s.ID,
		StaffEmail:       s.StaffEmail,
		StaffName:        s.StaffName,
		AppointmentID:    s.AppointmentID,
		ServiceType:      s.ServiceType,
		Location:         string(s.Location),
		RoomNumber:       s.RoomNumber,
		DurationCategory: string(s.DurationCategory),
		BaseCost:         s.BaseCost,
		AdditionalCost:   s.AdditionalCost,
		ConsumptionCost:  s.ConsumptionCost,
		AdditionalTimes:  make([]AdditionalTimeResponse, 0, len(s.AdditionalTimes)),
		Extras:           make([]ExtraResponse, 0, len(s.Extras)),
		Consumptions:     make([]ConsumptionResponse, 0, len(s.Consumptions)),
		Total:            s.Total(),
		PaymentMethod:    string(s.PaymentMethod),
		ReceiptImage:     s.ReceiptImage,
		Notes:            s.Notes,
		ClosingNotes:     s.ClosingNotes,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
		DurationMinutes:  s.DurationMinutes,
		RemainingSeconds: s.RemainingSeconds,
		OvertimeSeconds:  s.OvertimeSeconds,
		Status:           string(s.Status),
		EditedByAdmin:    s.EditedByAdmin,
	}

	if s.Client != nil {
		resp.Client = &ClientInfo{
			ID:    s.Client.ID,
			Name:  s.Client.Name,
			Phone: s.Client.Phone,
			Email: s.Client.Email,
		}
	}

	for _, a := range s.AdditionalTimes {
		resp.AdditionalTimes = append(resp.AdditionalTimes, AdditionalTimeResponse{
			Label:   a.Label,
			Minutes: a.Minutes(),
			Cost:    a.Cost,
			Receipt: a.Receipt,
			AddedAt: a.AddedAt,
		})
	}
	for _, e := range s.Extras {
		resp.Extras = append(resp.Extras, ExtraResponse{
			Description: e.Description,
			Cost:        e.Cost,
			Receipt:     e.Receipt,
			AddedAt:     e.AddedAt,
		})
	}
	for _, c := range s.Consumptions {
		resp.Consumptions = append(resp.Consumptions, ConsumptionResponse{
			Description: c.Description,
			UnitCost:    c.UnitCost,
			Quantity:    c.Quantity,
			Subtotal:    c.Subtotal(),
			AddedAt:     c.AddedAt,
		})
	}
	for _, e := range s.EditHistory {
		resp.EditHistory = append(resp.EditHistory, AdminEditResponse{
			EditedAt: e.EditedAt,
			Reason:   e.Reason,
			Previous: fromDomainValues(e.Previous),
			Updated:  fromDomainValues(e.Updated),
		})
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.ServiceSession) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if sessionResp := FromDomainSession(s); sessionResp != nil {
			resp.Sessions = append(resp.Sessions, *sessionResp)
		}
	}

	return resp
}

// FromDomainOccupancy конвертирует занятость комнат в DTO
func FromDomainOccupancy(rooms []domain.RoomOccupancy) *OccupancyResponse {
	resp := &OccupancyResponse{
		Rooms: make([]RoomOccupancyResponse, 0, len(rooms)),
	}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, RoomOccupancyResponse{
			Room:       r.Room,
			Occupied:   r.Occupied,
			SessionID:  r.SessionID,
			StaffEmail: r.StaffEmail,
		})
	}
	return resp
}

// FromDomainAggregates конвертирует итоги в DTO
func FromDomainAggregates(a domain.SessionAggregates) *AggregatesResponse {
	return &AggregatesResponse{
		TodayCount:   a.TodayCount,
		TodayRevenue: a.TodayRevenue,
		MonthCount:   a.MonthCount,
		MonthRevenue: a.MonthRevenue,
	}
}

func fromDomainValues(v domain.EditableValues) EditableValuesResponse {
	return EditableValuesResponse{
		ServiceType:      v.ServiceType,
		DurationCategory: string(v.DurationCategory),
		BaseCost:         v.BaseCost,
		AdditionalCost:   v.AdditionalCost,
		ConsumptionCost:  v.ConsumptionCost,
	}
}
