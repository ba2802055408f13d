package generation

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================
// TEST DOUBLES
// =====================================================

type stubRequest struct {
	err error
}

func (r stubRequest) Validate() error { return r.err }

type stubNotifier struct {
	published int32
	bumped    int32
	cursor    int64
}

func (n *stubNotifier) Publish(ctx context.Context, table string) error {
	atomic.AddInt32(&n.published, 1)
	return nil
}

func (n *stubNotifier) Bump(ctx context.Context, ownerID uuid.UUID, table string) (int64, error) {
	atomic.AddInt32(&n.bumped, 1)
	return atomic.AddInt64(&n.cursor, 1), nil
}

type fixture struct {
	ctrl     *Controller
	notifier *stubNotifier
	invokes  *int32
	rows     map[uuid.UUID]json.RawMessage
}

func newFixture(t *testing.T, invokeErr, persistErr error) *fixture {
	t.Helper()

	var invokes int32
	rows := make(map[uuid.UUID]json.RawMessage)
	notifier := &stubNotifier{}

	invoke := func(ctx context.Context, ownerID uuid.UUID, req Request) (json.RawMessage, error) {
		atomic.AddInt32(&invokes, 1)
		if invokeErr != nil {
			return nil, invokeErr
		}
		return json.RawMessage(`{"title":"generated"}`), nil
	}

	persist := func(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
		if persistErr != nil {
			return uuid.Nil, persistErr
		}
		id := uuid.New()
		rows[id] = payload
		return id, nil
	}

	remove := func(ctx context.Context, ownerID, rowID uuid.UUID) error {
		if _, ok := rows[rowID]; !ok {
			return ErrArtifactNotFound
		}
		delete(rows, rowID)
		return nil
	}

	ctrl := NewController(
		"blog_posts",
		NewMemoryPreviewStore(),
		NewMemoryLocker(),
		notifier,
		invoke,
		persist,
		remove,
	)

	return &fixture{ctrl: ctrl, notifier: notifier, invokes: &invokes, rows: rows}
}

// =====================================================
// GENERATE
// =====================================================

func TestGenerate_InvalidInputNeverInvokesProvider(t *testing.T) {
	fx := newFixture(t, nil, nil)

	_, err := fx.ctrl.Generate(context.Background(), uuid.New(), stubRequest{err: errors.New("topic is required")})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "topic is required", vErr.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(fx.invokes))
}

func TestGenerate_OneInvocationPerSubmission(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	p, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(fx.invokes))
	assert.JSONEq(t, `{"title":"generated"}`, string(p.Payload))
	assert.Equal(t, StatePreviewing, fx.ctrl.State(context.Background(), owner))
}

func TestGenerate_ProviderFailureKeepsPriorPreview(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	first, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	// Wire a failing invoker for the second attempt
	failing := NewController(
		"blog_posts",
		fx.ctrl.previews,
		fx.ctrl.locks,
		fx.notifier,
		func(ctx context.Context, ownerID uuid.UUID, req Request) (json.RawMessage, error) {
			return nil, errors.New("rate limit exceeded")
		},
		fx.ctrl.persist,
		fx.ctrl.remove,
	)

	_, err = failing.Generate(context.Background(), owner, stubRequest{})
	var gErr *GenerationError
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, "rate limit exceeded", gErr.Message)

	kept, err := fx.ctrl.previews.Get(context.Background(), "blog_posts", owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, kept.ID)
}

func TestGenerate_RegenerateReplacesPreview(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	first, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	second, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := fx.ctrl.previews.Get(context.Background(), "blog_posts", owner)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestGenerate_RejectsConcurrentSubmission(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	// Simulate an in-flight request by holding the lock externally
	acquired, err := fx.ctrl.locks.TryAcquire(context.Background(), "blog_posts", owner)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	assert.ErrorIs(t, err, ErrRequestInFlight)
	assert.Equal(t, int32(0), atomic.LoadInt32(fx.invokes))
	assert.Equal(t, StateRequesting, fx.ctrl.State(context.Background(), owner))
}

// =====================================================
// SAVE / DISCARD / DELETE
// =====================================================

func TestSave_PersistsAndSignalsRefresh(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	p, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	result, err := fx.ctrl.Save(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, int64(1), result.RefreshCursor)

	assert.JSONEq(t, `{"title":"generated"}`, string(fx.rows[result.ID]))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.notifier.published))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.notifier.bumped))

	// Preview is consumed, cycle back to Idle
	assert.Equal(t, StateIdle, fx.ctrl.State(context.Background(), owner))
	_, err = fx.ctrl.Save(context.Background(), owner, p.ID)
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, ErrCodePreviewNotFound, pErr.Code)
}

func TestSave_StalePreviewIDRejected(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	_, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	_, err = fx.ctrl.Save(context.Background(), owner, uuid.New())
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, ErrCodePreviewMismatch, pErr.Code)
}

func TestSave_FailedWriteKeepsPreview(t *testing.T) {
	fx := newFixture(t, nil, errors.New("connection refused"))
	owner := uuid.New()

	p, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	_, err = fx.ctrl.Save(context.Background(), owner, p.ID)
	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)

	// Still previewing, no refresh signals fired
	assert.Equal(t, StatePreviewing, fx.ctrl.State(context.Background(), owner))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fx.notifier.published))
}

func TestDiscard_DropsPreview(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	_, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)

	require.NoError(t, fx.ctrl.Discard(context.Background(), owner))
	assert.Equal(t, StateIdle, fx.ctrl.State(context.Background(), owner))

	// Discarding with nothing previewed is a no-op
	assert.NoError(t, fx.ctrl.Discard(context.Background(), owner))
}

func TestDelete_RemovesRowAndSignalsRefresh(t *testing.T) {
	fx := newFixture(t, nil, nil)
	owner := uuid.New()

	p, err := fx.ctrl.Generate(context.Background(), owner, stubRequest{})
	require.NoError(t, err)
	result, err := fx.ctrl.Save(context.Background(), owner, p.ID)
	require.NoError(t, err)

	require.NoError(t, fx.ctrl.Delete(context.Background(), owner, result.ID))
	assert.Empty(t, fx.rows)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fx.notifier.published))

	err = fx.ctrl.Delete(context.Background(), owner, result.ID)
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}
