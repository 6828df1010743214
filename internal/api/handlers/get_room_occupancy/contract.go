package get_room_occupancy

import "github.com/m04kA/SMC-StudioService/internal/domain"

type SessionService interface {
	Occupancy(knownRooms []int) []domain.RoomOccupancy
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
