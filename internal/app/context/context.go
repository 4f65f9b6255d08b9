// Package appctx provides the context in which one batch of platform events
// is processed.
//
// Processing a batch may need stored component preferences several times and
// may decide to persist changed ones. RequestContext memoizes the loads and
// queues the writes, which run together once every event has been applied:
//
//	rc := appctx.New(ctx)
//
//	// Load stored values once per batch
//	values, err := appctx.GetOrFetch(rc, "prefs:wizard/name", loadPrefs)
//
//	// Stage the write; later loads see the staged values
//	rc.Stage("prefs:wizard/name", changed, savePrefsAction)
//
//	// Run staged actions, rolling back on failure
//	err = rc.Commit(ctx)
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// ErrAlreadyCommitted is returned when AddAction, Stage, or Commit is called
// on a RequestContext that has already been committed.
var ErrAlreadyCommitted = errors.New("appctx: request context already committed")

// ErrNilAction is returned when a nil Action is passed to AddAction or Stage.
var ErrNilAction = errors.New("appctx: nil action")

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T. The same cache key was used with two types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext embeds context.Context and adds memoized fetches and a queue
// of staged actions. Create one per event batch.
//
// The action queue is safe for concurrent use. The fetch cache is not: fetch
// from the goroutine that processes the batch.
type RequestContext struct {
	context.Context
	cache map[string]cacheEntry

	queueMu   sync.Mutex
	actions   []domain.Action
	committed bool
}

// cacheEntry stores a GetOrFetch result. Errors are cached too.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RequestContext wrapping ctx.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cacheEntry),
	}
}

// GetOrFetch returns the cached value for key, or calls fetchFn and caches
// its result. A cached value of another type yields ErrTypeMismatch.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.cache[key]; ok {
		var zero T
		if entry.err != nil {
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)
	rc.cache[key] = cacheEntry{value: val, err: err}
	return val, err
}

// Stage caches entity under key and queues action for Commit, so later
// GetOrFetch calls for key observe the staged entity.
func (rc *RequestContext) Stage(key string, entity any, action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}

	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.cache[key] = cacheEntry{value: entity}
	rc.actions = append(rc.actions, action)
	return nil
}

// Staged reports the number of queued actions.
func (rc *RequestContext) Staged() int {
	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()
	return len(rc.actions)
}
