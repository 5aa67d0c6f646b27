package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/guardian/internal/location"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/service/mocks"
	"github.com/shenikar/guardian/internal/session"
	"github.com/shenikar/guardian/internal/sos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stepScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

type stepTimer struct{}

func (stepTimer) Stop() bool { return true }

func (s *stepScheduler) AfterFunc(_ time.Duration, f func()) sos.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, f)
	return stepTimer{}
}

func (s *stepScheduler) fireLast() {
	s.mu.Lock()
	f := s.funcs[len(s.funcs)-1]
	s.mu.Unlock()
	f()
}

type safetyFixture struct {
	service  SafetyService
	manager  *session.Manager
	relay    *location.Relay
	sched    *stepScheduler
	contacts *mocks.MockContactService
	sink     *mocks.MockFixSink
}

func newSafetyFixture(t *testing.T) *safetyFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := testLogger()

	f := &safetyFixture{
		relay:    location.NewRelay(nil, logger),
		sched:    &stepScheduler{},
		contacts: mocks.NewMockContactService(ctrl),
		sink:     mocks.NewMockFixSink(ctrl),
	}
	f.manager = session.NewManager(session.ManagerConfig{
		Provider:  f.relay,
		Options:   location.DefaultOptions(),
		Threshold: sos.DefaultThreshold,
		Scheduler: f.sched,
	}, logger)
	f.service = NewSafetyService(f.manager, f.contacts, f.sink, logger)
	t.Cleanup(f.manager.CloseAll)
	return f
}

func TestOpenSession_SafeWithPrimaryContact(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	primary := &models.EmergencyContact{ID: "a", Name: "Mom", IsPrimary: true}

	f.contacts.EXPECT().PrimaryContact(ctx, testIdentity).Return(primary, nil).Times(2)

	view, err := f.service.OpenSession(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSafe, view.Status)
	assert.False(t, view.Tracking)
	assert.Equal(t, primary, view.PrimaryContact)

	// повторное открытие возвращает ту же сессию
	_, err = f.service.OpenSession(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 1, f.manager.Len())
}

func TestGetSession_NotOpen(t *testing.T) {
	f := newSafetyFixture(t)

	_, err := f.service.GetSession(context.Background(), testIdentity)

	assert.ErrorIs(t, err, models.ErrNoActiveSession)
}

func TestSafetyService_Unauthenticated(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	anon := models.Identity{}

	_, err := f.service.OpenSession(ctx, anon)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = f.service.StartTracking(ctx, anon)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.ErrorIs(t, f.service.ReportFix(ctx, anon, models.Coordinate{}), models.ErrUnauthenticated)
	assert.ErrorIs(t, f.service.ReportFault(ctx, anon, "denied"), models.ErrUnauthenticated)
	assert.ErrorIs(t, f.service.CloseSession(ctx, anon), models.ErrUnauthenticated)
}

func TestSafetyService_TrackingAndAlert(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	f.contacts.EXPECT().PrimaryContact(ctx, testIdentity).Return(nil, nil).AnyTimes()

	_, err := f.service.OpenSession(ctx, testIdentity)
	require.NoError(t, err)

	view, err := f.service.StartTracking(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMonitoring, view.Status)

	fix := models.Coordinate{Latitude: 55.75, Longitude: 37.61, ObservedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.relay.Push(ctx, "user-1", fix))
	assert.Eventually(t, func() bool {
		v, err := f.service.GetSession(ctx, testIdentity)
		return err == nil && v.Latest != nil && *v.Latest == fix
	}, time.Second, 10*time.Millisecond)

	view, err = f.service.PressBegin(ctx, testIdentity)
	require.NoError(t, err)
	assert.True(t, view.Pressing)

	f.sched.fireLast()

	view, err = f.service.GetSession(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAlert, view.Status)
	assert.NotNil(t, view.AlertedAt)

	// остановка отслеживания не снимает тревогу
	view, err = f.service.StopTracking(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAlert, view.Status)

	view, err = f.service.ResolveAlert(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSafe, view.Status)
	assert.Nil(t, view.AlertedAt)
}

func TestSafetyService_ReleaseBeforeThreshold(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	f.contacts.EXPECT().PrimaryContact(ctx, testIdentity).Return(nil, nil).AnyTimes()

	_, err := f.service.OpenSession(ctx, testIdentity)
	require.NoError(t, err)
	_, err = f.service.PressBegin(ctx, testIdentity)
	require.NoError(t, err)

	view, err := f.service.PressEnd(ctx, testIdentity)
	require.NoError(t, err)
	assert.False(t, view.Pressing)

	f.sched.fireLast()

	view, err = f.service.GetSession(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSafe, view.Status)
}

func TestSafetyService_ViewSurvivesContactFailure(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	f.contacts.EXPECT().PrimaryContact(ctx, testIdentity).Return(nil, models.ErrStorageFailure)

	view, err := f.service.OpenSession(ctx, testIdentity)

	require.NoError(t, err)
	assert.Equal(t, models.StatusSafe, view.Status)
	assert.Nil(t, view.PrimaryContact)
}

func TestCloseSession_DestroysSession(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	f.contacts.EXPECT().PrimaryContact(ctx, testIdentity).Return(nil, nil).AnyTimes()

	_, err := f.service.OpenSession(ctx, testIdentity)
	require.NoError(t, err)
	_, err = f.service.StartTracking(ctx, testIdentity)
	require.NoError(t, err)

	require.NoError(t, f.service.CloseSession(ctx, testIdentity))
	assert.Equal(t, 0, f.manager.Len())

	_, err = f.service.PressBegin(ctx, testIdentity)
	assert.ErrorIs(t, err, models.ErrNoActiveSession)

	// закрытие отсутствующей сессии не ошибка
	assert.NoError(t, f.service.CloseSession(ctx, testIdentity))
}

func TestReportFix_DelegatesToSink(t *testing.T) {
	f := newSafetyFixture(t)
	ctx := context.Background()
	fix := models.Coordinate{Latitude: 1, Longitude: 2}

	f.sink.EXPECT().Push(ctx, "user-1", fix).Return(nil)
	f.sink.EXPECT().PushFault(ctx, "user-1", "permission denied").Return(errors.New("redis down"))

	assert.NoError(t, f.service.ReportFix(ctx, testIdentity, fix))
	assert.Error(t, f.service.ReportFault(ctx, testIdentity, "permission denied"))
}
