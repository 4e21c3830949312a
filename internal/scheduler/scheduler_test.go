package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	closedAt  time.Time
	purgedAt  time.Time
	tokenErr  error
	closed    int64
	tokenRuns int
}

func (f *fakeStore) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	f.closedAt = now
	return f.closed, nil
}

func (f *fakeStore) CleanupExpiredTokens(context.Context) (int64, error) {
	f.tokenRuns++
	return 3, f.tokenErr
}

func (f *fakeStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	f.purgedAt = now
	return 1, nil
}

func newTestScheduler(t *testing.T, store *fakeStore) *Scheduler {
	t.Helper()
	s, err := New(Config{CloseExpiredJobs: "@every 15m", PurgeTokens: "@hourly"}, store, store, store, zerolog.Nop())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestNew_RegistersBothJobs(t *testing.T) {
	s := newTestScheduler(t, &fakeStore{})
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNew_InvalidSchedule(t *testing.T) {
	store := &fakeStore{}
	_, err := New(Config{CloseExpiredJobs: "every now and then", PurgeTokens: "@hourly"}, store, store, store, zerolog.Nop())
	assert.Error(t, err)
}

func TestCloseExpiredJobs_PassesCurrentTime(t *testing.T) {
	store := &fakeStore{closed: 2}
	s := newTestScheduler(t, store)

	require.NoError(t, s.closeExpiredJobs(context.Background()))
	assert.Equal(t, s.now(), store.closedAt)
}

func TestPurgeCredentials_StopsOnTokenError(t *testing.T) {
	store := &fakeStore{tokenErr: errors.New("boom")}
	s := newTestScheduler(t, store)

	err := s.purgeCredentials(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, store.tokenRuns)
	assert.True(t, store.purgedAt.IsZero())
}

func TestPurgeCredentials_PurgesOTPs(t *testing.T) {
	store := &fakeStore{}
	s := newTestScheduler(t, store)

	require.NoError(t, s.purgeCredentials(context.Background()))
	assert.Equal(t, s.now(), store.purgedAt)
}
