package service

import (
	"context"
	"errors"
	"math"
	"testing"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderFixture struct {
	recorder *RouteRecorder
	buffer   *memoryBuffer
	repo     *memoryRepo
	mazes    *MazeSessionManager
	metrics  *fakeMetrics
}

func newRecorderFixture(t *testing.T) *recorderFixture {
	t.Helper()
	f := &recorderFixture{
		buffer:  newMemoryBuffer(),
		repo:    newMemoryRepo(),
		metrics: &fakeMetrics{},
	}
	f.mazes = newTestManager(t, f.metrics)

	r, err := NewRouteRecorder(&RecorderConfig{
		Buffer:            f.buffer,
		Repo:              f.repo,
		Tokenizer:         &fakeTokenizer{},
		Mazes:             f.mazes,
		Metrics:           f.metrics,
		Logger:            nopLogger{},
		MaxFixesPerAppend: 5,
	})
	require.NoError(t, err)
	f.recorder = r
	return f
}

// finishFirstBuffer runs finish before its first Append reaches the buffer.
type finishFirstBuffer struct {
	*memoryBuffer
	finish func()
}

func (b *finishFirstBuffer) Append(ctx context.Context, id uuid.UUID, fixes []maze.Coordinate) (int64, error) {
	if finish := b.finish; finish != nil {
		b.finish = nil
		finish()
	}
	return b.memoryBuffer.Append(ctx, id, fixes)
}

// missFirstRepo runs onMiss after its first lookup that finds nothing.
type missFirstRepo struct {
	*memoryRepo
	onMiss func()
}

func (r *missFirstRepo) ByID(id uuid.UUID) (*dmn.Route, error) {
	route, err := r.memoryRepo.ByID(id)
	if onMiss := r.onMiss; errors.Is(err, dmn.ErrRouteNotFound) && onMiss != nil {
		r.onMiss = nil
		onMiss()
	}
	return route, err
}

func TestNewRouteRecorder(t *testing.T) {
	_, err := NewRouteRecorder(nil)
	assert.Error(t, err)

	_, err = NewRouteRecorder(&RecorderConfig{Logger: nopLogger{}})
	assert.Error(t, err)
}

func TestRouteRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("Start issues a route token", func(t *testing.T) {
		f := newRecorderFixture(t)
		id, token, err := f.recorder.Start(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, "token:"+id.String()+":24h0m0s", token)
	})

	t.Run("Start fails when signing fails", func(t *testing.T) {
		f := newRecorderFixture(t)
		f.recorder.tokenizer = &fakeTokenizer{err: errors.New("no key")}
		_, _, err := f.recorder.Start(ctx)
		assert.Error(t, err)
	})

	t.Run("Record, finish and generate", func(t *testing.T) {
		f := newRecorderFixture(t)
		id, _, err := f.recorder.Start(ctx)
		require.NoError(t, err)

		count, err := f.recorder.Append(ctx, id, walk[:2])
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		count, err = f.recorder.Append(ctx, id, walk[2:])
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.Equal(t, 3, f.metrics.fixes)

		live, err := f.recorder.Route(ctx, id)
		require.NoError(t, err)
		assert.False(t, live.Finished())
		assert.Equal(t, walk, live.Fixes)

		route, err := f.recorder.Finish(ctx, id)
		require.NoError(t, err)
		assert.True(t, route.Finished())
		assert.Equal(t, walk, route.Fixes)
		assert.Empty(t, f.buffer.fixes[id])

		again, err := f.recorder.Finish(ctx, id)
		require.NoError(t, err)
		assert.Same(t, route, again)

		_, err = f.recorder.Append(ctx, id, walk[:1])
		assert.ErrorIs(t, err, ErrRouteFinished)

		s, err := f.recorder.GenerateMaze(ctx, id, walk[0], walk[2], seed(3))
		require.NoError(t, err)
		assert.Equal(t, int64(3), s.Seed)
		current, err := f.mazes.Current()
		require.NoError(t, err)
		assert.Same(t, s, current)
	})

	t.Run("Append validation", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()

		_, err := f.recorder.Append(ctx, id, nil)
		assert.ErrorIs(t, err, ErrNoFixes)

		_, err = f.recorder.Append(ctx, id, make([]maze.Coordinate, 6))
		assert.ErrorIs(t, err, ErrTooManyFixes)

		_, err = f.recorder.Append(ctx, id, []maze.Coordinate{{Lat: math.NaN(), Lon: 0}})
		assert.ErrorIs(t, err, maze.ErrInvalidCoordinate)

		assert.Empty(t, f.buffer.fixes)
	})

	t.Run("Append surfaces repo errors", func(t *testing.T) {
		f := newRecorderFixture(t)
		f.repo.byIDErr = errors.New("mongo down")
		_, err := f.recorder.Append(ctx, uuid.New(), walk)
		assert.EqualError(t, err, "mongo down")
	})

	t.Run("Finish needs two fixes", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk[:1])
		require.NoError(t, err)

		_, err = f.recorder.Finish(ctx, id)
		assert.ErrorIs(t, err, maze.ErrInsufficientData)
		assert.Len(t, f.buffer.fixes[id], 1, "fixes must stay buffered")
	})

	t.Run("Finish unknown route", func(t *testing.T) {
		f := newRecorderFixture(t)
		_, err := f.recorder.Finish(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrRouteNotFound)
	})

	t.Run("Failed archive restores the buffer", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk)
		require.NoError(t, err)

		f.repo.saveErr = errors.New("write conflict")
		_, err = f.recorder.Finish(ctx, id)
		assert.Error(t, err)
		assert.Equal(t, walk, f.buffer.fixes[id])

		f.repo.saveErr = nil
		count, err := f.recorder.Append(ctx, id, walk[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("Append racing a finish is refused", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk[:2])
		require.NoError(t, err)

		f.recorder.buffer = &finishFirstBuffer{memoryBuffer: f.buffer, finish: func() {
			_, err := f.recorder.Finish(ctx, id)
			require.NoError(t, err)
		}}

		_, err = f.recorder.Append(ctx, id, walk[2:])
		assert.ErrorIs(t, err, ErrRouteFinished)

		archived, err := f.repo.ByID(id)
		require.NoError(t, err)
		assert.Equal(t, walk[:2], archived.Fixes)
		assert.Empty(t, f.buffer.fixes[id], "no fixes may be left behind the archive")
	})

	t.Run("Concurrent finish returns the archived route", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk)
		require.NoError(t, err)

		racing := &missFirstRepo{memoryRepo: f.repo}
		var first *dmn.Route
		racing.onMiss = func() {
			var finishErr error
			first, finishErr = f.recorder.Finish(ctx, id)
			require.NoError(t, finishErr)
		}
		f.recorder.repo = racing

		second, err := f.recorder.Finish(ctx, id)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("Finish while another finish is archiving", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk)
		require.NoError(t, err)
		_, err = f.buffer.Drain(ctx, id, 2)
		require.NoError(t, err)

		_, err = f.recorder.Finish(ctx, id)
		assert.ErrorIs(t, err, ErrRouteArchiving)
		assert.ErrorIs(t, err, ErrRouteFinished)
	})

	t.Run("Unknown route", func(t *testing.T) {
		f := newRecorderFixture(t)
		_, err := f.recorder.Route(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrRouteNotFound)

		_, err = f.recorder.GenerateMaze(ctx, uuid.New(), walk[0], walk[1], nil)
		assert.ErrorIs(t, err, dmn.ErrRouteNotFound)
	})

	t.Run("Maze from a live route", func(t *testing.T) {
		f := newRecorderFixture(t)
		id := uuid.New()
		_, err := f.recorder.Append(ctx, id, walk)
		require.NoError(t, err)

		s, err := f.recorder.GenerateMaze(ctx, id, walk[1], walk[1], nil)
		require.NoError(t, err)
		assert.Len(t, s.Route(), 1)
	})
}
