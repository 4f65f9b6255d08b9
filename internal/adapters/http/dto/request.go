package dto

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
)

const (
	msgRequired       = "is required"
	msgInvalidID      = "must be a depict ID"
	msgUnknownType    = "unknown event type"
	msgUnknownState   = "unknown task state"
	msgNegativeOption = "must not be negative"
)

// Event types accepted in an EventRequest.
const (
	EventTypeAction   = "action"
	EventTypeChange   = "change"
	EventTypeForm     = "form"
	EventTypeProgress = "progress"
	EventTypePoll     = "poll"
)

// EventRequest is the JSON body posted by the browser script with the
// events that happened since its last request.
type EventRequest struct {
	Events []EventDTO `json:"events"`
}

// EventDTO is one browser event. Which fields are read depends on Type.
type EventDTO struct {
	Type     string `json:"type"`
	ObjectID string `json:"objectID,omitempty"`

	// action
	TargetID string `json:"targetID,omitempty"`
	ActionID string `json:"actionID,omitempty"`
	Option   int    `json:"option,omitempty"`

	// change
	Properties map[string]any `json:"properties,omitempty"`

	// form
	Params map[string][]string `json:"params,omitempty"`

	// progress
	Task        string `json:"task,omitempty"`
	State       string `json:"state,omitempty"`
	Transferred int64  `json:"transferred,omitempty"`
	Total       int64  `json:"total,omitempty"`
}

// Validate checks every event and reports the problems by position.
// Returns a *domain.ValidationError if any checks fail.
func (r *EventRequest) Validate() error {
	fields := make(map[string]string)
	for i := range r.Events {
		r.Events[i].validate(fmt.Sprintf("events[%d]", i), fields)
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (e *EventDTO) validate(at string, fields map[string]string) {
	switch e.Type {
	case "":
		fields[at+".type"] = msgRequired
		return
	case EventTypeForm, EventTypePoll:
		return
	case EventTypeAction, EventTypeChange:
	case EventTypeProgress:
		if _, ok := domain.ParseTaskState(strings.ToLower(e.State)); !ok {
			fields[at+".state"] = msgUnknownState
		}
	default:
		fields[at+".type"] = msgUnknownType
		return
	}

	if e.ObjectID == "" {
		fields[at+".objectID"] = msgRequired
	} else if _, err := platform.ParseDepictID(e.ObjectID); err != nil {
		fields[at+".objectID"] = msgInvalidID
	}
	if e.Option < 0 {
		fields[at+".option"] = msgNegativeOption
	}
}

// ToEvents converts the validated request into platform events, in order.
func (r *EventRequest) ToEvents() []platform.Event {
	events := make([]platform.Event, 0, len(r.Events))
	for i := range r.Events {
		events = append(events, r.Events[i].toEvent())
	}
	return events
}

func (e *EventDTO) toEvent() platform.Event {
	id, _ := platform.ParseDepictID(e.ObjectID)
	switch e.Type {
	case EventTypeAction:
		return platform.ActionEvent{ObjectID: id, TargetID: e.TargetID, ActionID: e.ActionID, Option: e.Option}
	case EventTypeChange:
		return platform.ChangeEvent{ObjectID: id, Properties: e.Properties}
	case EventTypeForm:
		return platform.FormEvent{Params: url.Values(e.Params)}
	case EventTypeProgress:
		state, _ := domain.ParseTaskState(strings.ToLower(e.State))
		return platform.ProgressEvent{ObjectID: id, Task: e.Task, State: state, Transferred: e.Transferred, Total: e.Total}
	default:
		return platform.PollEvent{}
	}
}
