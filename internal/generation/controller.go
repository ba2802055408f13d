package generation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/pkg/logger"
)

// =====================================================
// GENERATION LIFECYCLE CONTROLLER
// =====================================================
// One controller per content domain drives the cycle
//
//	Idle -> Validating -> (Invalid -> Idle)
//	     -> Requesting  -> (Failed -> Idle, error surfaced)
//	                    -> Previewing
//	Previewing -> (Saved -> Idle, list refreshed) | (Discarded -> Idle)
//
// There is no edit-and-resave state: artifacts are generated fresh,
// previewed, then saved or discarded. Failures are terminal for the
// attempt; the user resubmits, the controller never retries.

// State of a user's current cycle in one domain.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StatePreviewing State = "previewing"
)

// Request is a submitted form. Validate runs before any provider call.
type Request interface {
	Validate() error
}

// InvokeFunc issues the provider call(s) for one submission and returns
// the artifact payload. Batch domains loop sequentially inside their
// InvokeFunc so result order matches selection order.
type InvokeFunc func(ctx context.Context, ownerID uuid.UUID, req Request) (json.RawMessage, error)

// PersistFunc writes a previewed payload into the domain's table and
// returns the new row id.
type PersistFunc func(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error)

// DeleteFunc removes one row owned by ownerID.
type DeleteFunc func(ctx context.Context, ownerID, rowID uuid.UUID) error

// Notifier decouples the controller from the change feed. Both signals
// fire on every successful write: the refresh counter for the caller's
// own list and the feed event for everyone else's. They are unordered;
// a double refresh is harmless.
type Notifier interface {
	Publish(ctx context.Context, table string) error
	Bump(ctx context.Context, ownerID uuid.UUID, table string) (int64, error)
}

// SaveResult reports a persisted artifact and the bumped refresh cursor.
type SaveResult struct {
	ID            uuid.UUID `json:"id"`
	RefreshCursor int64     `json:"refresh_cursor"`
}

type Controller struct {
	domain   string // table name; also scopes previews and locks
	previews PreviewStore
	locks    Locker
	notify   Notifier
	invoke   InvokeFunc
	persist  PersistFunc
	remove   DeleteFunc
}

func NewController(
	domain string,
	previews PreviewStore,
	locks Locker,
	notify Notifier,
	invoke InvokeFunc,
	persist PersistFunc,
	remove DeleteFunc,
) *Controller {
	return &Controller{
		domain:   domain,
		previews: previews,
		locks:    locks,
		notify:   notify,
		invoke:   invoke,
		persist:  persist,
		remove:   remove,
	}
}

// Generate runs one cycle up to Previewing.
func (c *Controller) Generate(ctx context.Context, ownerID uuid.UUID, req Request) (*Preview, error) {
	// Step 1: Validate locally - invalid input never reaches the network
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	// Step 2: Guard against double submission
	acquired, err := c.locks.TryAcquire(ctx, c.domain, ownerID)
	if err != nil {
		return nil, NewGenerationError(err)
	}
	if !acquired {
		return nil, ErrRequestInFlight
	}
	defer func() {
		if err := c.locks.Release(ctx, c.domain, ownerID); err != nil {
			logger.Error("failed to release in-flight lock", err)
		}
	}()

	// Step 3: Exactly one invocation; on failure the prior preview
	// (if any) stays untouched
	payload, err := c.invoke(ctx, ownerID, req)
	if err != nil {
		return nil, NewGenerationError(err)
	}

	// Step 4: Stash the artifact as the current preview
	p := &Preview{
		ID:        uuid.New(),
		Domain:    c.domain,
		OwnerID:   ownerID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.previews.Put(ctx, p); err != nil {
		return nil, NewPersistenceError(err)
	}

	return p, nil
}

// Save promotes the current preview to a durable row. The preview is
// kept on failure so the user can retry without regenerating.
func (c *Controller) Save(ctx context.Context, ownerID, previewID uuid.UUID) (*SaveResult, error) {
	// Step 1: Load the current preview
	p, err := c.previews.Get(ctx, c.domain, ownerID)
	if err == ErrPreviewNotFound {
		return nil, NewPreviewNotFoundError()
	}
	if err != nil {
		return nil, NewPersistenceError(err)
	}

	// Step 2: Guard against saving a stale preview
	if p.ID != previewID {
		return nil, NewPreviewMismatchError()
	}

	// Step 3: Persist; the preview survives a failed write
	rowID, err := c.persist(ctx, ownerID, p.Payload)
	if err != nil {
		return nil, NewPersistenceError(err)
	}

	// Step 4: Back to Idle
	if err := c.previews.Delete(ctx, c.domain, ownerID); err != nil {
		logger.Error("failed to drop saved preview", err)
	}

	// Step 5: Trigger refetches - counter and feed event are
	// independent, unordered signals for the same refresh
	cursor := c.signalChange(ctx, ownerID)

	return &SaveResult{ID: rowID, RefreshCursor: cursor}, nil
}

// Discard drops the current preview. Discarding nothing is fine.
func (c *Controller) Discard(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.previews.Delete(ctx, c.domain, ownerID); err != nil {
		return NewPersistenceError(err)
	}
	return nil
}

// Delete removes a persisted artifact and signals a refresh even though
// the change feed also fires for the delete (idempotent double refresh).
func (c *Controller) Delete(ctx context.Context, ownerID, rowID uuid.UUID) error {
	if err := c.remove(ctx, ownerID, rowID); err != nil {
		if err == ErrArtifactNotFound {
			return err
		}
		return NewPersistenceError(err)
	}

	c.signalChange(ctx, ownerID)
	return nil
}

// State derives the user's current cycle state in this domain.
func (c *Controller) State(ctx context.Context, ownerID uuid.UUID) State {
	if held, err := c.locks.Held(ctx, c.domain, ownerID); err == nil && held {
		return StateRequesting
	}

	if _, err := c.previews.Get(ctx, c.domain, ownerID); err == nil {
		return StatePreviewing
	}
	return StateIdle
}

// Cursor exposes the refresh counter for cheap client polling.
func (c *Controller) Cursor(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	type cursorReader interface {
		Cursor(ctx context.Context, ownerID uuid.UUID, table string) (int64, error)
	}
	if r, ok := c.notify.(cursorReader); ok {
		return r.Cursor(ctx, ownerID, c.domain)
	}
	return 0, nil
}

// signalChange fires both refresh triggers; failures are logged, never
// surfaced, because the write itself already succeeded.
func (c *Controller) signalChange(ctx context.Context, ownerID uuid.UUID) int64 {
	cursor, err := c.notify.Bump(ctx, ownerID, c.domain)
	if err != nil {
		logger.Error("failed to bump refresh counter", err)
	}
	if err := c.notify.Publish(ctx, c.domain); err != nil {
		logger.Error("failed to publish change event", err)
	}
	return cursor
}
