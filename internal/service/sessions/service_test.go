package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingNotifier struct {
	mu       sync.Mutex
	warnings []notifier.Warning
}

func (n *recordingNotifier) SessionWarning(w notifier.Warning) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, w)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.warnings)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var t0 = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeClock, *recordingNotifier) {
	clock := &fakeClock{now: t0}
	n := &recordingNotifier{}
	svc := NewService(n, time.Second, nopLogger{})
	svc.timeProvider = clock
	return svc, clock, n
}

func startReq(email string, room *int, category string) *models.StartSessionRequest {
	location := string(domain.LocationOffSite)
	if room != nil {
		location = string(domain.LocationOnPremises)
	}
	return &models.StartSessionRequest{
		StaffEmail:       email,
		StaffName:        "Staff",
		ServiceType:      "massage",
		Location:         location,
		RoomNumber:       room,
		DurationCategory: category,
		BaseCost:         decimal.NewFromInt(100000),
		PaymentMethod:    string(domain.PaymentCash),
	}
}

func TestStart(t *testing.T) {
	svc, _, _ := newTestService()

	session, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(1), string(domain.Duration1Hour)))
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, t0, session.StartedAt)
	assert.Equal(t, 60, session.DurationMinutes)
	assert.Equal(t, int64(3600), session.RemainingSeconds)
	assert.Equal(t, domain.SessionActive, session.Status)
	assert.Equal(t, 1, svc.ActiveCount())

	active, ok := svc.ActiveFor("ana@studio.test")
	require.True(t, ok)
	assert.Equal(t, session.ID, active.ID)
}

func TestStart_UnknownCategoryFallsBackToDefault(t *testing.T) {
	svc, _, _ := newTestService()

	session, err := svc.Start(startReq("ana@studio.test", nil, "all weekend"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationMinutes, session.DurationMinutes)
	assert.Equal(t, domain.DurationCategory("all weekend"), session.DurationCategory)
}

func TestStart_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		req  *models.StartSessionRequest
		want error
	}{
		{
			name: "on premises without room",
			req: func() *models.StartSessionRequest {
				r := startReq("ana@studio.test", nil, string(domain.Duration1Hour))
				r.Location = string(domain.LocationOnPremises)
				return r
			}(),
			want: models.ErrRoomRequired,
		},
		{
			name: "off site with room",
			req: func() *models.StartSessionRequest {
				r := startReq("ana@studio.test", ptr.Ptr(2), string(domain.Duration1Hour))
				r.Location = string(domain.LocationOffSite)
				return r
			}(),
			want: models.ErrRoomNotAllowed,
		},
		{
			name: "missing staff",
			req:  startReq(" ", nil, string(domain.Duration1Hour)),
			want: models.ErrMissingStaff,
		},
		{
			name: "unknown payment method",
			req: func() *models.StartSessionRequest {
				r := startReq("ana@studio.test", nil, string(domain.Duration1Hour))
				r.PaymentMethod = "barter"
				return r
			}(),
			want: models.ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Start(tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, svc.ActiveCount())
}

func TestStart_RejectsOccupiedRoomAndBusyStaff(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(3), string(domain.Duration1Hour)))
	require.NoError(t, err)

	_, err = svc.Start(startReq("eva@studio.test", ptr.Ptr(3), string(domain.Duration1Hour)))
	assert.ErrorIs(t, err, ErrRoomOccupied)

	_, err = svc.Start(startReq("ana@studio.test", ptr.Ptr(4), string(domain.Duration1Hour)))
	assert.ErrorIs(t, err, ErrStaffBusy)

	_, ok := svc.Finalize(first.ID, "")
	require.True(t, ok)

	_, err = svc.Start(startReq("eva@studio.test", ptr.Ptr(3), string(domain.Duration1Hour)))
	assert.NoError(t, err)
}

func TestStart_ConcurrentSameRoom(t *testing.T) {
	svc, _, _ := newTestService()
	emails := []string{"a@s.test", "b@s.test", "c@s.test", "d@s.test", "e@s.test", "f@s.test"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := svc.Start(startReq(email, ptr.Ptr(7), string(domain.Duration30Minutes)))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.True(t, errors.Is(err, ErrRoomOccupied))
			}
		}(email)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	occupied := 0
	for _, r := range svc.Occupancy(nil) {
		if r.Occupied {
			occupied++
		}
	}
	assert.Equal(t, 1, occupied)
}

func TestFinalize_IsIdempotent(t *testing.T) {
	svc, clock, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(1), string(domain.Duration1Hour)))
	require.NoError(t, err)

	clock.Set(t0.Add(40 * time.Minute))
	finished, ok := svc.Finalize(session.ID, "  all good ")
	require.True(t, ok)
	require.NotNil(t, finished.EndedAt)
	assert.Equal(t, t0.Add(40*time.Minute), *finished.EndedAt)
	assert.Equal(t, domain.SessionFinished, finished.Status)
	assert.Equal(t, int64(0), finished.RemainingSeconds)
	require.NotNil(t, finished.ClosingNotes)
	assert.Equal(t, "all good", *finished.ClosingNotes)

	_, ok = svc.Finalize(session.ID, "again")
	assert.False(t, ok)

	assert.Len(t, svc.Active(), 0)
	assert.Len(t, svc.Finished(), 1)

	_, ok = svc.Finalize("missing", "")
	assert.False(t, ok)
}

func TestFinalize_OvertimeAtEndTime(t *testing.T) {
	svc, clock, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration30Minutes)))
	require.NoError(t, err)

	clock.Set(t0.Add(35 * time.Minute))
	svc.Tick()
	clock.Set(t0.Add(35*time.Minute + 800*time.Millisecond + 20*time.Second))

	finished, ok := svc.Finalize(session.ID, "")
	require.True(t, ok)
	assert.Equal(t, int64(0), finished.RemainingSeconds)
	assert.Equal(t, int64(320), finished.OvertimeSeconds, "overtime is measured at the end time, not the last tick")
}

func TestTick_CountdownWarningAndOvertime(t *testing.T) {
	svc, clock, n := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(1), string(domain.Duration1Hour)))
	require.NoError(t, err)

	at := func(offset int) *domain.ServiceSession {
		clock.Set(t0.Add(time.Duration(offset) * time.Second))
		svc.Tick()
		s, ok := svc.Get(session.ID)
		require.True(t, ok)
		return s
	}

	s := at(3299)
	assert.Equal(t, int64(301), s.RemainingSeconds)
	assert.Equal(t, 0, n.count())

	s = at(3300)
	assert.Equal(t, int64(300), s.RemainingSeconds)
	assert.Equal(t, 1, n.count())

	at(3301)
	at(3302)
	assert.Equal(t, 1, n.count())

	s = at(3600)
	assert.Equal(t, int64(0), s.RemainingSeconds)
	assert.Equal(t, int64(0), s.OvertimeSeconds)

	s = at(3700)
	assert.Equal(t, int64(0), s.RemainingSeconds)
	assert.Equal(t, int64(100), s.OvertimeSeconds)
	assert.Equal(t, 1, n.count())

	require.Len(t, n.warnings, 1)
	assert.Equal(t, session.ID, n.warnings[0].SessionID)
	require.NotNil(t, n.warnings[0].RoomNumber)
	assert.Equal(t, 1, *n.warnings[0].RoomNumber)
}

func TestTick_SkippedTicksDoNotDrift(t *testing.T) {
	svc, clock, n := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)

	// a single late tick still lands on the exact value and still warns once
	clock.Set(t0.Add(3450 * time.Second))
	svc.Tick()

	s, _ := svc.Get(session.ID)
	assert.Equal(t, int64(150), s.RemainingSeconds)
	assert.Equal(t, 1, n.count())
}

func TestTick_WarningRearmsAfterAddedTime(t *testing.T) {
	svc, clock, n := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration30Minutes)))
	require.NoError(t, err)

	clock.Set(t0.Add(1550 * time.Second))
	svc.Tick()
	assert.Equal(t, 1, n.count())

	_, ok := svc.AddAdditionalTime(session.ID, &models.AdditionalTimeRequest{Label: domain.ExtraTime30Minutes, Cost: decimal.NewFromInt(1)})
	require.True(t, ok)

	clock.Set(t0.Add(3350 * time.Second))
	svc.Tick()
	assert.Equal(t, 2, n.count())
}

func TestAddAdditionalTime_Labels(t *testing.T) {
	labels := map[string]int{
		domain.ExtraTime30Minutes: 30,
		domain.ExtraTime1Hour:     60,
		domain.ExtraTime2Hours:    120,
		"just a little":           30,
	}

	for label, delta := range labels {
		t.Run(label, func(t *testing.T) {
			svc, _, _ := newTestService()
			session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
			require.NoError(t, err)

			updated, ok := svc.AddAdditionalTime(session.ID, &models.AdditionalTimeRequest{
				Label: label,
				Cost:  decimal.NewFromInt(15000),
			})
			require.True(t, ok)
			assert.Equal(t, 60+delta, updated.DurationMinutes)
			assert.Equal(t, domain.Duration1Hour, updated.DurationCategory)
			assert.Equal(t, int64(60+delta)*60, updated.RemainingSeconds)
			require.Len(t, updated.AdditionalTimes, 1)
			assert.Equal(t, t0, updated.AdditionalTimes[0].AddedAt)
		})
	}
}

func TestAppends_RejectedForFinishedSessions(t *testing.T) {
	svc, _, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)
	_, ok := svc.Finalize(session.ID, "")
	require.True(t, ok)

	_, ok = svc.AddAdditionalTime(session.ID, &models.AdditionalTimeRequest{Label: domain.ExtraTime1Hour})
	assert.False(t, ok)
	_, ok = svc.AddExtra(session.ID, &models.ExtraRequest{Description: "towel"})
	assert.False(t, ok)
	_, ok = svc.AddConsumption(session.ID, &models.ConsumptionRequest{Description: "water", Quantity: 1})
	assert.False(t, ok)

	s, _ := svc.Get(session.ID)
	assert.Equal(t, 60, s.DurationMinutes)
	assert.Empty(t, s.AdditionalTimes)
	assert.Empty(t, s.Extras)
	assert.Empty(t, s.Consumptions)
}

func TestBillingAccumulation(t *testing.T) {
	svc, _, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)

	_, ok := svc.AddExtra(session.ID, &models.ExtraRequest{Description: "aromatherapy", Cost: decimal.NewFromInt(20000)})
	require.True(t, ok)
	_, ok = svc.AddAdditionalTime(session.ID, &models.AdditionalTimeRequest{Label: domain.ExtraTime30Minutes, Cost: decimal.NewFromInt(15000)})
	require.True(t, ok)
	updated, ok := svc.AddConsumption(session.ID, &models.ConsumptionRequest{Description: "juice", UnitCost: decimal.NewFromInt(5000), Quantity: 3})
	require.True(t, ok)

	assert.True(t, decimal.NewFromInt(150000).Equal(updated.Total()), "got %s", updated.Total())
	assert.Equal(t, 90, updated.DurationMinutes)

	_, ok = svc.AddConsumption(session.ID, &models.ConsumptionRequest{Description: "juice", UnitCost: decimal.NewFromInt(5000), Quantity: 0})
	assert.False(t, ok)
}

func TestEditFinished_AppendsAuditHistory(t *testing.T) {
	svc, clock, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)

	_, ok := svc.EditFinished(session.ID, &models.EditSessionRequest{ServiceType: "x", Reason: "typo"})
	assert.False(t, ok, "active sessions cannot be edited")

	_, ok = svc.Finalize(session.ID, "")
	require.True(t, ok)

	_, ok = svc.EditFinished(session.ID, &models.EditSessionRequest{ServiceType: "x", Reason: "   "})
	assert.False(t, ok, "reason is mandatory")

	clock.Set(t0.Add(2 * time.Hour))
	first, ok := svc.EditFinished(session.ID, &models.EditSessionRequest{
		ServiceType:      "deep tissue",
		DurationCategory: string(domain.DurationSeveralHours),
		BaseCost:         decimal.NewFromInt(120000),
		AdditionalCost:   decimal.NewFromInt(1000),
		ConsumptionCost:  decimal.NewFromInt(500),
		Reason:           "wrong service recorded",
	})
	require.True(t, ok)
	require.Len(t, first.EditHistory, 1)
	assert.True(t, first.EditedByAdmin)
	assert.Equal(t, "deep tissue", first.ServiceType)
	assert.Equal(t, 60, first.DurationMinutes, "duration is not recomputed")
	assert.True(t, decimal.NewFromInt(100000).Equal(first.EditHistory[0].Previous.BaseCost))
	assert.True(t, decimal.NewFromInt(120000).Equal(first.EditHistory[0].Updated.BaseCost))
	assert.Equal(t, "massage", first.EditHistory[0].Previous.ServiceType)
	assert.Equal(t, t0.Add(2*time.Hour), first.EditHistory[0].EditedAt)

	second, ok := svc.EditFinished(session.ID, &models.EditSessionRequest{
		ServiceType:      "deep tissue",
		DurationCategory: string(domain.DurationSeveralHours),
		BaseCost:         decimal.NewFromInt(90000),
		Reason:           "discount applied",
	})
	require.True(t, ok)
	require.Len(t, second.EditHistory, 2)
	assert.Equal(t, "wrong service recorded", second.EditHistory[0].Reason)
	assert.Equal(t, "discount applied", second.EditHistory[1].Reason)
	assert.True(t, decimal.NewFromInt(120000).Equal(second.EditHistory[1].Previous.BaseCost))
	assert.True(t, decimal.NewFromInt(90000).Equal(second.EditHistory[1].Updated.BaseCost))
}

func TestOccupancy(t *testing.T) {
	svc, _, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(2), string(domain.Duration1Hour)))
	require.NoError(t, err)
	_, err = svc.Start(startReq("eva@studio.test", ptr.Ptr(9), string(domain.Duration1Hour)))
	require.NoError(t, err)
	_, err = svc.Start(startReq("off@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)

	rooms := svc.Occupancy([]int{3, 1, 2})
	require.Len(t, rooms, 4)
	assert.Equal(t, []int{1, 2, 3, 9}, []int{rooms[0].Room, rooms[1].Room, rooms[2].Room, rooms[3].Room})
	assert.False(t, rooms[0].Occupied)
	assert.True(t, rooms[1].Occupied)
	require.NotNil(t, rooms[1].SessionID)
	assert.Equal(t, session.ID, *rooms[1].SessionID)
	assert.False(t, rooms[2].Occupied)
	assert.True(t, rooms[3].Occupied)
	assert.Equal(t, 2, svc.OccupiedCount())
}

func TestAggregates(t *testing.T) {
	svc, clock, _ := newTestService()

	ended := func(ts time.Time, base int64) *domain.ServiceSession {
		return &domain.ServiceSession{
			ID:       ts.String(),
			Status:   domain.SessionFinished,
			BaseCost: decimal.NewFromInt(base),
			EndedAt:  &ts,
		}
	}
	svc.Seed([]*domain.ServiceSession{
		ended(t0.Add(-time.Hour), 100),               // today
		ended(t0.AddDate(0, 0, -3), 50),              // this month
		ended(t0.AddDate(0, -1, 0), 1000),            // last month
		{ID: "active", Status: domain.SessionActive}, // ignored by Seed
	})
	assert.Len(t, svc.Finished(), 3)

	session, err := svc.Start(startReq("ana@studio.test", nil, string(domain.Duration1Hour)))
	require.NoError(t, err)
	clock.Set(t0.Add(30 * time.Minute))
	_, ok := svc.Finalize(session.ID, "")
	require.True(t, ok)

	agg := svc.Aggregates()
	assert.Equal(t, 2, agg.TodayCount)
	assert.True(t, decimal.NewFromInt(100100).Equal(agg.TodayRevenue), "got %s", agg.TodayRevenue)
	assert.Equal(t, 3, agg.MonthCount)
	assert.True(t, decimal.NewFromInt(100150).Equal(agg.MonthRevenue), "got %s", agg.MonthRevenue)
}

func TestAggregates_UseStudioLocation(t *testing.T) {
	svc, clock, _ := newTestService()
	studio := time.FixedZone("UTC-6", -6*60*60)
	clock.Set(t0.In(studio))

	// 03:00 UTC on the 19th is still the 18th in the studio
	lateEvening := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	svc.Seed([]*domain.ServiceSession{{
		ID:       "late",
		Status:   domain.SessionFinished,
		BaseCost: decimal.NewFromInt(700),
		EndedAt:  &lateEvening,
	}})

	agg := svc.Aggregates()
	assert.Equal(t, 0, agg.TodayCount)
	assert.Equal(t, 1, agg.MonthCount)
	assert.True(t, decimal.NewFromInt(700).Equal(agg.MonthRevenue))
}

func TestWithLocation(t *testing.T) {
	studio := time.FixedZone("UTC-6", -6*60*60)
	svc := NewService(nil, time.Second, nopLogger{}).WithLocation(studio)

	assert.Equal(t, studio, svc.timeProvider.Now().Location())
}

func TestViewsAreCopies(t *testing.T) {
	svc, _, _ := newTestService()
	session, err := svc.Start(startReq("ana@studio.test", ptr.Ptr(5), string(domain.Duration1Hour)))
	require.NoError(t, err)

	session.DurationMinutes = 999
	*session.RoomNumber = 6

	stored, ok := svc.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, 60, stored.DurationMinutes)
	assert.Equal(t, 5, *stored.RoomNumber)
}

func TestRun_StopsOnCancel(t *testing.T) {
	svc := NewService(nil, 5*time.Millisecond, nopLogger{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
