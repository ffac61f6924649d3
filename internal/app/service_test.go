package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(opts ...Option) (*Service, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return NewService(opts...), clock
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestService()

	sess := s.Create()

	require.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.X, sess.Game.Next())
	assert.False(t, sess.Created.IsZero())
	assert.Equal(t, sess.Created, sess.Updated)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 1, s.Len())
}

func TestGetUnknownSession(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Get("missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceMarkUpdatesSession(t *testing.T) {
	s, clock := newTestService()
	sess := s.Create()
	clock.Advance(time.Second)

	got, err := s.PlaceMark(sess.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, domain.X, got.Game.Current()[0])
	assert.Equal(t, domain.O, got.Game.Next())
	assert.True(t, got.Updated.After(sess.Updated))

	stored, _ := s.Get(sess.ID)
	assert.Equal(t, 1, stored.Game.Step())
}

func TestPlaceMarkOccupiedIsSilent(t *testing.T) {
	s, _ := newTestService()
	sess := s.Create()
	_, err := s.PlaceMark(sess.ID, 4)
	require.NoError(t, err)

	got, err := s.PlaceMark(sess.ID, 4)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Game.Len())
	assert.Equal(t, 1, got.Game.Step())
}

func TestPlaceMarkRejectsBadInput(t *testing.T) {
	s, _ := newTestService()
	sess := s.Create()

	_, err := s.PlaceMark(sess.ID, 9)
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = s.PlaceMark(sess.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = s.PlaceMark("missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJumpToAndBranch(t *testing.T) {
	s, _ := newTestService()
	sess := s.Create()
	for _, c := range []int{0, 1, 2} {
		_, err := s.PlaceMark(sess.ID, c)
		require.NoError(t, err)
	}

	got, err := s.JumpTo(sess.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Board{}, got.Game.Current())
	assert.Equal(t, domain.X, got.Game.Next())
	assert.Equal(t, 4, got.Game.Len())

	got, err = s.PlaceMark(sess.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Game.Len())
}

func TestJumpToRejectsStepOutsideHistory(t *testing.T) {
	s, _ := newTestService()
	sess := s.Create()

	_, err := s.JumpTo(sess.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = s.JumpTo(sess.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidStep)

	got, _ := s.Get(sess.ID)
	assert.Equal(t, sess.Updated, got.Updated)
}

func TestToggleSortOrder(t *testing.T) {
	s, _ := newTestService()
	sess := s.Create()

	got, err := s.ToggleSortOrder(sess.ID)

	require.NoError(t, err)
	assert.False(t, got.Game.Ascending())
}

func TestSweepDropsIdleSessions(t *testing.T) {
	s, clock := newTestService(WithTTL(time.Minute))
	idle := s.Create()
	clock.Advance(50 * time.Second)
	active := s.Create()
	clock.Advance(20 * time.Second)

	removed := s.Sweep(clock.Now())

	assert.Equal(t, 1, removed)
	_, err := s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(active.ID)
	assert.NoError(t, err)
}

func TestCreateEvictsOldestAtLimit(t *testing.T) {
	s, clock := newTestService(WithMaxSessions(2))
	first := s.Create()
	clock.Advance(time.Second)
	second := s.Create()
	clock.Advance(time.Second)
	// touching the first session makes the second the oldest
	_, err := s.PlaceMark(first.ID, 0)
	require.NoError(t, err)
	clock.Advance(time.Second)

	s.Create()

	assert.Equal(t, 2, s.Len())
	_, err = s.Get(second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(first.ID)
	assert.NoError(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
