package platform

import (
	"net/url"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// Event is something the browser reports about a depicted object.
type Event interface {
	// Target returns the ID of the object the event is addressed to, or
	// zero for events addressed to the whole page.
	Target() int64
}

// ActionEvent reports that the user activated a control. TargetID names the
// element within the control, and Option the selected option, if any.
type ActionEvent struct {
	ObjectID int64
	TargetID string
	ActionID string
	Option   int
}

// ChangeEvent reports new values of client-side properties.
type ChangeEvent struct {
	ObjectID   int64
	Properties map[string]any
}

// FormEvent carries a form submission. An exhaustive form event contains
// every control of the page, so controls absent from Params, such as
// unchecked check boxes, are cleared.
type FormEvent struct {
	Params     url.Values
	Exhaustive bool
}

// ProgressEvent reports transfer progress. An empty Task reports the
// transfer as a whole.
type ProgressEvent struct {
	ObjectID    int64
	Task        string
	State       domain.TaskState
	Transferred int64
	Total       int64
}

// PollEvent is sent periodically so the server can deliver pending changes.
type PollEvent struct{}

func (e ActionEvent) Target() int64   { return e.ObjectID }
func (e ChangeEvent) Target() int64   { return e.ObjectID }
func (FormEvent) Target() int64       { return 0 }
func (e ProgressEvent) Target() int64 { return e.ObjectID }
func (PollEvent) Target() int64       { return 0 }
