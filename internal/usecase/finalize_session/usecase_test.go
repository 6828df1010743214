package finalize_session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

type stubSessions struct {
	session *domain.ServiceSession
	gotID   string
	gotNote string
}

func (s *stubSessions) Finalize(id string, closingNotes string) (*domain.ServiceSession, bool) {
	s.gotID, s.gotNote = id, closingNotes
	if s.session == nil || s.session.ID != id {
		return nil, false
	}
	return s.session, true
}

type stubShifts struct {
	open    *domain.ShiftRecord
	changes []domain.ShiftState
}

func (s *stubShifts) OpenFor(string) (*domain.ShiftRecord, bool) {
	if s.open == nil {
		return nil, false
	}
	return s.open.Clone(), true
}

func (s *stubShifts) SetState(_ string, state domain.ShiftState) (*domain.ShiftRecord, bool) {
	if s.open == nil {
		return nil, false
	}
	s.changes = append(s.changes, state)
	s.open.State = state
	return s.open.Clone(), true
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func finishedSession() *domain.ServiceSession {
	return &domain.ServiceSession{ID: "s-1", StaffEmail: "ana@studio.test", Status: domain.SessionFinished}
}

func TestExecute_ReturnsShiftToAvailable(t *testing.T) {
	sessionStub := &stubSessions{session: finishedSession()}
	shiftStub := &stubShifts{open: &domain.ShiftRecord{StaffEmail: "ana@studio.test", State: domain.ShiftInService}}
	uc := NewUseCase(sessionStub, shiftStub, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s-1", ClosingNotes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "s-1", resp.Session.ID)
	assert.Equal(t, "ok", sessionStub.gotNote)
	require.NotNil(t, resp.ShiftState)
	assert.Equal(t, domain.ShiftAvailable, *resp.ShiftState)
	assert.Equal(t, []domain.ShiftState{domain.ShiftAvailable}, shiftStub.changes)
}

func TestExecute_NoOpenShift(t *testing.T) {
	uc := NewUseCase(&stubSessions{session: finishedSession()}, &stubShifts{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Nil(t, resp.ShiftState)
}

func TestExecute_NotFound(t *testing.T) {
	shiftStub := &stubShifts{open: &domain.ShiftRecord{State: domain.ShiftInService}}
	uc := NewUseCase(&stubSessions{session: finishedSession()}, shiftStub, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "other"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, shiftStub.changes)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&stubSessions{}, &stubShifts{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
