package domain

import "time"

// DurationCategory is the booked length of a service session
type DurationCategory string

const (
	Duration30Minutes    DurationCategory = "30 minutes"
	Duration1Hour        DurationCategory = "1 hour"
	DurationAWhile       DurationCategory = "a while"
	DurationSeveralHours DurationCategory = "several hours"
	DurationOvernight    DurationCategory = "overnight"
)

// Labels accepted when extra time is bought for an active session
const (
	ExtraTime30Minutes = "30 minutes"
	ExtraTime1Hour     = "1 hour"
	ExtraTime2Hours    = "2 hours"
)

// Fallback values for unrecognized enumeration values
const (
	DefaultDurationMinutes  = 60 // unknown duration category
	DefaultExtraTimeMinutes = 30 // unknown extra time label
)

// Timing constants
const (
	WarningThresholdSeconds = 300 // 5 minutes before the limit
	DefaultTickInterval     = time.Second
)

// Business validation constants
const (
	MaxNotesLength      = 1000
	MaxEditReasonLength = 500
	MaxConsumptionQty   = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var durationMinutes = map[DurationCategory]int{
	Duration30Minutes:    30,
	Duration1Hour:        60,
	DurationAWhile:       45,
	DurationSeveralHours: 180,
	DurationOvernight:    480,
}

var extraTimeMinutes = map[string]int{
	ExtraTime30Minutes: 30,
	ExtraTime1Hour:     60,
	ExtraTime2Hours:    120,
}

// DurationCategories lists every known duration category in display order
var DurationCategories = []DurationCategory{
	Duration30Minutes,
	Duration1Hour,
	DurationAWhile,
	DurationSeveralHours,
	DurationOvernight,
}

// Minutes returns the canonical length of the category.
// Unknown categories resolve to DefaultDurationMinutes.
func (c DurationCategory) Minutes() int {
	if m, ok := durationMinutes[c]; ok {
		return m
	}
	return DefaultDurationMinutes
}

// IsKnown reports whether the category belongs to the fixed enumeration
func (c DurationCategory) IsKnown() bool {
	_, ok := durationMinutes[c]
	return ok
}

// ExtraTimeMinutes maps an extra time label to minutes.
// Unknown labels resolve to DefaultExtraTimeMinutes.
func ExtraTimeMinutes(label string) int {
	if m, ok := extraTimeMinutes[label]; ok {
		return m
	}
	return DefaultExtraTimeMinutes
}
