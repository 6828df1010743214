package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ErrInvalidState возвращается при неизвестном состоянии смены
var ErrInvalidState = errors.New("invalid shift state")

// Request модели

// ChangeStateRequest запрос на смену состояния открытой смены
type ChangeStateRequest struct {
	State string `json:"state"`
}

// Validate проверяет, что состояние можно назначить открытой смене (off_shift - только через завершение)
func (r *ChangeStateRequest) Validate() error {
	if !domain.ShiftState(strings.TrimSpace(r.State)).IsSettable() {
		return fmt.Errorf("%w: %q", ErrInvalidState, r.State)
	}
	return nil
}

// ToDomainState конвертирует запрос в состояние смены
func (r *ChangeStateRequest) ToDomainState() domain.ShiftState {
	return domain.ShiftState(strings.TrimSpace(r.State))
}

// Response модели

// ShiftEventResponse запись журнала смены
type ShiftEventResponse struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
	Note string    `json:"note,omitempty"`
}

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID               string               `json:"id"`
	StaffEmail       string               `json:"staffEmail"`
	StartedAt        time.Time            `json:"startedAt"`
	EndedAt          *time.Time           `json:"endedAt,omitempty"`
	State            string               `json:"state"`
	ServiceSeconds   int64                `json:"serviceSeconds"`
	BreakSeconds     int64                `json:"breakSeconds"`
	AvailableSeconds int64                `json:"availableSeconds"`
	Events           []ShiftEventResponse `json:"events"`
}

// ShiftListResponse ответ со списком смен
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// ShiftStatsResponse статистика по закрытым сменам
type ShiftStatsResponse struct {
	StaffEmail        string  `json:"staffEmail"`
	ShiftCount        int     `json:"shiftCount"`
	WorkedSeconds     int64   `json:"workedSeconds"`
	ServiceSeconds    int64   `json:"serviceSeconds"`
	BreakSeconds      int64   `json:"breakSeconds"`
	AvailableSeconds  int64   `json:"availableSeconds"`
	EfficiencyPercent float64 `json:"efficiencyPercent"`
}

// Методы конвертации

// FromDomainShift конвертирует domain модель в DTO
func FromDomainShift(r *domain.ShiftRecord) *ShiftResponse {
	if r == nil {
		return nil
	}

	resp := &ShiftResponse{
		ID:               r.ID,
		StaffEmail:       r.StaffEmail,
		StartedAt:        r.StartedAt,
		EndedAt:          r.EndedAt,
		State:            string(r.State),
		ServiceSeconds:   r.ServiceSeconds,
		BreakSeconds:     r.BreakSeconds,
		AvailableSeconds: r.AvailableSeconds,
		Events:           make([]ShiftEventResponse, 0, len(r.Events)),
	}
	for _, e := range r.Events {
		resp.Events = append(resp.Events, ShiftEventResponse{
			Kind: string(e.Kind),
			At:   e.At,
			Note: e.Note,
		})
	}
	return resp
}

// FromDomainShiftList конвертирует список смен в DTO
func FromDomainShiftList(records []*domain.ShiftRecord) *ShiftListResponse {
	resp := &ShiftListResponse{
		Shifts: make([]ShiftResponse, 0, len(records)),
	}
	for _, r := range records {
		if shiftResp := FromDomainShift(r); shiftResp != nil {
			resp.Shifts = append(resp.Shifts, *shiftResp)
		}
	}
	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s domain.ShiftStats) *ShiftStatsResponse {
	return &ShiftStatsResponse{
		StaffEmail:        s.StaffEmail,
		ShiftCount:        s.ShiftCount,
		WorkedSeconds:     s.WorkedSeconds,
		ServiceSeconds:    s.ServiceSeconds,
		BreakSeconds:      s.BreakSeconds,
		AvailableSeconds:  s.AvailableSeconds,
		EfficiencyPercent: s.EfficiencyPercent,
	}
}
