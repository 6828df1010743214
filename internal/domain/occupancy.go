package domain

import "github.com/shopspring/decimal"

// Room is an entry of the studio room catalog
type Room struct {
	Number int
	Name   string
}

// RoomOccupancy is the derived state of one room
type RoomOccupancy struct {
	Room       int
	Occupied   bool
	SessionID  *string
	StaffEmail *string
}

// SessionAggregates are same-day and same-month totals over finished sessions
type SessionAggregates struct {
	TodayCount   int
	TodayRevenue decimal.Decimal
	MonthCount   int
	MonthRevenue decimal.Decimal
}
