package notifier

import "time"

// Warning событие "осталось 5 минут" для активного сервиса
type Warning struct {
	SessionID        string    `json:"sessionId"`
	StaffEmail       string    `json:"staffEmail"`
	StaffName        string    `json:"staffName"`
	RoomNumber       *int      `json:"roomNumber,omitempty"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	FiredAt          time.Time `json:"firedAt"`
}

// ErrorResponse модель ошибки от получателя вебхука
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
