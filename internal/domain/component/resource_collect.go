package component

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Resource collection property and event names. ReceiveEvent and CancelEvent
// are fired on the control's support for the platform to act on.
const (
	ResourcePathsProperty = "resourcePaths"
	CollectStateProperty  = "collectState"
	ReceiveEvent          = "receive"
	CancelEvent           = "cancel"
)

// Progress reports the transfer of one resource, or of the whole collection
// when Task is empty.
type Progress struct {
	Task        string
	State       domain.TaskState
	Transferred int64
	Total       int64
}

// ResourceCollectControl collects files the user picks on the client and,
// on request, has the client upload them to a destination.
type ResourceCollectControl struct {
	Base
	state *property.Bound[domain.TaskState]

	mu       sync.RWMutex
	paths    []string
	progress property.Listeners[func(Progress)]
}

func NewResourceCollectControl() *ResourceCollectControl {
	c := &ResourceCollectControl{}
	c.init(c, ClassResourceCollectControl)
	c.state = property.NewBound(c.support, CollectStateProperty, domain.TaskStateNone)
	return c
}

// ResourcePaths returns the client paths collected so far.
func (c *ResourceCollectControl) ResourcePaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.paths)
}

// AddResourcePath records a path picked on the client. Paths are ignored
// while the control is disabled or a transfer is running.
func (c *ResourceCollectControl) AddResourcePath(path string) bool {
	if !c.Enabled() || c.State() == domain.TaskStateIncomplete {
		return false
	}
	c.mu.Lock()
	if slices.Contains(c.paths, path) {
		c.mu.Unlock()
		return false
	}
	old := slices.Clone(c.paths)
	c.paths = append(c.paths, path)
	paths := slices.Clone(c.paths)
	c.mu.Unlock()
	c.support.Fire(ResourcePathsProperty, old, paths)
	return true
}

// ClearResourcePaths forgets every collected path.
func (c *ResourceCollectControl) ClearResourcePaths() {
	c.mu.Lock()
	old := c.paths
	c.paths = nil
	c.mu.Unlock()
	if len(old) > 0 {
		c.support.Fire(ResourcePathsProperty, old, []string(nil))
	}
}

func (c *ResourceCollectControl) State() domain.TaskState { return c.state.Get() }

// Receive asks the client to upload the collected resources to destination.
func (c *ResourceCollectControl) Receive(destination string) error {
	if len(c.ResourcePaths()) == 0 {
		return fmt.Errorf("no resources collected: %w", domain.ErrIllegalState)
	}
	if c.State() == domain.TaskStateIncomplete {
		return fmt.Errorf("transfer already running: %w", domain.ErrIllegalState)
	}
	c.state.Set(domain.TaskStateIncomplete)
	c.support.Fire(ReceiveEvent, nil, destination)
	return nil
}

// Cancel stops a running transfer and forgets the collected paths.
func (c *ResourceCollectControl) Cancel() {
	c.support.Fire(CancelEvent, nil, nil)
	c.ClearResourcePaths()
	c.state.Set(domain.TaskStateCanceled)
}

// OnProgress registers fn for transfer progress.
func (c *ResourceCollectControl) OnProgress(fn func(Progress)) *property.Subscription {
	return c.progress.Add(fn)
}

// ReportProgress delivers progress from the client. Progress of the whole
// collection updates the control state; completion forgets the paths.
func (c *ResourceCollectControl) ReportProgress(p Progress) {
	for _, fn := range c.progress.Snapshot() {
		fn(p)
	}
	if p.Task != "" {
		return
	}
	c.state.Set(p.State)
	if p.State == domain.TaskStateComplete {
		c.ClearResourcePaths()
	}
}
