package domain

import "time"

// ShiftState classifies what a staff member is doing during an open shift
type ShiftState string

const (
	ShiftOff       ShiftState = "off_shift"
	ShiftAvailable ShiftState = "available"
	ShiftInService ShiftState = "in_service"
	ShiftOnBreak   ShiftState = "on_break"
)

// IsValid reports whether the state belongs to the shift state machine
func (s ShiftState) IsValid() bool {
	switch s {
	case ShiftOff, ShiftAvailable, ShiftInService, ShiftOnBreak:
		return true
	}
	return false
}

// IsSettable reports whether an open shift may be moved into the state.
// Off-shift is reached only by ending the shift.
func (s ShiftState) IsSettable() bool {
	return s.IsValid() && s != ShiftOff
}

// ShiftEventKind labels an entry of the shift event log
type ShiftEventKind string

const (
	EventClockIn      ShiftEventKind = "entrada"
	EventClockOut     ShiftEventKind = "salida"
	EventServiceStart ShiftEventKind = "inicio_servicio"
	EventServiceEnd   ShiftEventKind = "fin_servicio"
	EventBreakStart   ShiftEventKind = "inicio_alimentacion"
	EventBreakEnd     ShiftEventKind = "fin_alimentacion"
	EventStateChange  ShiftEventKind = "cambio_estado"
)

// ShiftEvent is one entry of the append-only shift log
type ShiftEvent struct {
	Kind ShiftEventKind
	At   time.Time
	Note string
}

// TransitionKind derives the event kind logged for a state change.
// Entering a state takes priority over leaving one.
func TransitionKind(from, to ShiftState) ShiftEventKind {
	switch {
	case to == ShiftInService:
		return EventServiceStart
	case to == ShiftOnBreak:
		return EventBreakStart
	case from == ShiftInService:
		return EventServiceEnd
	case from == ShiftOnBreak:
		return EventBreakEnd
	default:
		return EventStateChange
	}
}

// ShiftRecord represents one open or closed span of a staff member's work day
type ShiftRecord struct {
	ID         string
	StaffEmail string
	StartedAt  time.Time
	EndedAt    *time.Time
	State      ShiftState

	ServiceSeconds   int64
	BreakSeconds     int64
	AvailableSeconds int64

	Events []ShiftEvent
}

// IsOpen returns true until the shift has been ended
func (r *ShiftRecord) IsOpen() bool {
	return r.EndedAt == nil
}

// Accrue adds one second to the bucket matching the current state.
// Closed shifts and the off-shift state accrue nothing.
func (r *ShiftRecord) Accrue() {
	if !r.IsOpen() {
		return
	}
	switch r.State {
	case ShiftInService:
		r.ServiceSeconds++
	case ShiftOnBreak:
		r.BreakSeconds++
	case ShiftAvailable:
		r.AvailableSeconds++
	}
}

// WorkedSeconds returns EndedAt − StartedAt for closed shifts and 0 for open ones
func (r *ShiftRecord) WorkedSeconds() int64 {
	if r.EndedAt == nil {
		return 0
	}
	worked := int64(r.EndedAt.Sub(r.StartedAt) / time.Second)
	if worked < 0 {
		return 0
	}
	return worked
}

// Clone returns a deep copy of the record
func (r *ShiftRecord) Clone() *ShiftRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.EndedAt != nil {
		ended := *r.EndedAt
		c.EndedAt = &ended
	}
	c.Events = append([]ShiftEvent(nil), r.Events...)
	return &c
}

// ShiftStats aggregates the closed shifts of one staff member
type ShiftStats struct {
	StaffEmail        string
	ShiftCount        int
	WorkedSeconds     int64
	ServiceSeconds    int64
	BreakSeconds      int64
	AvailableSeconds  int64
	EfficiencyPercent float64
}

// NewShiftStats sums closed shifts and computes the service share of worked time
func NewShiftStats(staffEmail string, shifts []*ShiftRecord) ShiftStats {
	stats := ShiftStats{StaffEmail: staffEmail}
	for _, s := range shifts {
		if s.IsOpen() {
			continue
		}
		stats.ShiftCount++
		stats.WorkedSeconds += s.WorkedSeconds()
		stats.ServiceSeconds += s.ServiceSeconds
		stats.BreakSeconds += s.BreakSeconds
		stats.AvailableSeconds += s.AvailableSeconds
	}
	if stats.WorkedSeconds > 0 {
		stats.EfficiencyPercent = float64(stats.ServiceSeconds) / float64(stats.WorkedSeconds) * 100
	}
	return stats
}
