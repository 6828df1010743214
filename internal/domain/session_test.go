package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationCategory_Minutes(t *testing.T) {
	cases := map[DurationCategory]int{
		Duration30Minutes:    30,
		Duration1Hour:        60,
		DurationAWhile:       45,
		DurationSeveralHours: 180,
		DurationOvernight:    480,
		"forever":            DefaultDurationMinutes,
		"":                   DefaultDurationMinutes,
	}
	for category, want := range cases {
		assert.Equal(t, want, category.Minutes(), "category %q", category)
	}
	assert.False(t, DurationCategory("forever").IsKnown())
	assert.True(t, DurationOvernight.IsKnown())
}

func TestExtraTimeMinutes(t *testing.T) {
	assert.Equal(t, 30, ExtraTimeMinutes(ExtraTime30Minutes))
	assert.Equal(t, 60, ExtraTimeMinutes(ExtraTime1Hour))
	assert.Equal(t, 120, ExtraTimeMinutes(ExtraTime2Hours))
	assert.Equal(t, DefaultExtraTimeMinutes, ExtraTimeMinutes("a bit more"))
}

func TestServiceSession_Total(t *testing.T) {
	s := &ServiceSession{
		BaseCost:        decimal.NewFromInt(100000),
		Extras:          []Extra{{Cost: decimal.NewFromInt(20000)}},
		AdditionalTimes: []AdditionalTime{{Cost: decimal.NewFromInt(15000)}},
		Consumptions:    []Consumption{{UnitCost: decimal.NewFromInt(5000), Quantity: 3}},
	}

	assert.True(t, decimal.NewFromInt(150000).Equal(s.Total()), "got %s", s.Total())
}

func TestServiceSession_TotalIncludesLegacyScalars(t *testing.T) {
	s := &ServiceSession{
		BaseCost:        decimal.NewFromInt(100),
		AdditionalCost:  decimal.NewFromInt(10),
		ConsumptionCost: decimal.NewFromInt(5),
	}

	assert.True(t, decimal.NewFromInt(115).Equal(s.Total()))
}

func TestServiceSession_Countdown(t *testing.T) {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	s := &ServiceSession{StartedAt: start, DurationMinutes: 60}

	for _, offset := range []int64{0, 1, 300, 3300, 3599, 3600, 3601, 3700, 10000} {
		now := start.Add(time.Duration(offset) * time.Second)
		remaining, overtime := s.Countdown(now)

		assert.False(t, remaining > 0 && overtime > 0, "offset %d", offset)
		assert.Equal(t, remaining > 0, overtime == 0 && offset < 3600, "offset %d", offset)
		// limit - remaining + overtime always reconstructs elapsed time
		assert.Equal(t, offset, s.LimitSeconds()-remaining+overtime, "offset %d", offset)
	}

	remaining, overtime := s.Countdown(start.Add(3700 * time.Second))
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, int64(100), overtime)
}

func TestServiceSession_CountdownBeforeStart(t *testing.T) {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	s := &ServiceSession{StartedAt: start, DurationMinutes: 30}

	remaining, overtime := s.Countdown(start.Add(-time.Minute))
	assert.Equal(t, int64(1800), remaining)
	assert.Equal(t, int64(0), overtime)
}

func TestServiceSession_CloneIsDeep(t *testing.T) {
	room := 3
	phone := "555"
	s := &ServiceSession{
		RoomNumber: &room,
		Client:     &Client{ID: "c1", Phone: &phone},
		Extras:     []Extra{{Description: "towels"}},
	}

	c := s.Clone()
	*c.RoomNumber = 9
	*c.Client.Phone = "000"
	c.Extras[0].Description = "changed"
	c.Extras = append(c.Extras, Extra{})

	require.NotNil(t, s.RoomNumber)
	assert.Equal(t, 3, *s.RoomNumber)
	assert.Equal(t, "555", *s.Client.Phone)
	assert.Equal(t, "towels", s.Extras[0].Description)
	assert.Len(t, s.Extras, 1)
}

func TestServiceSession_OccupiesRoom(t *testing.T) {
	room := 4
	s := &ServiceSession{RoomNumber: &room, Status: SessionActive}
	assert.True(t, s.OccupiesRoom(4))
	assert.False(t, s.OccupiesRoom(5))

	s.Status = SessionFinished
	assert.False(t, s.OccupiesRoom(4))
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentCard.IsValid())
	assert.False(t, PaymentMethod("bitcoin").IsValid())
}
