package dto_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/adapters/http/dto"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
)

func TestEventRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		events     []dto.EventDTO
		wantFields []string
	}{
		{
			name: "valid batch",
			events: []dto.EventDTO{
				{Type: dto.EventTypeAction, ObjectID: "id1f", ActionID: "action"},
				{Type: dto.EventTypeChange, ObjectID: "id2", Properties: map[string]any{"value": "x"}},
				{Type: dto.EventTypeForm, Params: map[string][]string{"id2": {"x"}}},
				{Type: dto.EventTypeProgress, ObjectID: "id3", State: "INCOMPLETE", Transferred: 5, Total: 10},
				{Type: dto.EventTypePoll},
			},
		},
		{
			name:       "missing type",
			events:     []dto.EventDTO{{ObjectID: "id1"}},
			wantFields: []string{"events[0].type"},
		},
		{
			name:       "unknown type",
			events:     []dto.EventDTO{{Type: "hover", ObjectID: "id1"}},
			wantFields: []string{"events[0].type"},
		},
		{
			name: "bad object IDs",
			events: []dto.EventDTO{
				{Type: dto.EventTypePoll},
				{Type: dto.EventTypeAction},
				{Type: dto.EventTypeChange, ObjectID: "42"},
			},
			wantFields: []string{"events[1].objectID", "events[2].objectID"},
		},
		{
			name: "malformed hex",
			events: []dto.EventDTO{
				{Type: dto.EventTypeAction, ObjectID: "id-1", ActionID: "action"},
				{Type: dto.EventTypeChange, ObjectID: "idA"},
			},
			wantFields: []string{"events[0].objectID", "events[1].objectID"},
		},
		{
			name:       "unknown task state",
			events:     []dto.EventDTO{{Type: dto.EventTypeProgress, ObjectID: "id1", State: "sleeping"}},
			wantFields: []string{"events[0].state"},
		},
		{
			name:       "negative option",
			events:     []dto.EventDTO{{Type: dto.EventTypeAction, ObjectID: "id1", Option: -1}},
			wantFields: []string{"events[0].option"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := dto.EventRequest{Events: tt.events}
			err := req.Validate()

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "error = %v", err)
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestEventRequest_ToEvents(t *testing.T) {
	t.Parallel()

	req := dto.EventRequest{Events: []dto.EventDTO{
		{Type: dto.EventTypeAction, ObjectID: "id1f", TargetID: "id1f-next", ActionID: "action", Option: 2},
		{Type: dto.EventTypeChange, ObjectID: "id2", Properties: map[string]any{"value": "x"}},
		{Type: dto.EventTypeForm, Params: map[string][]string{"id2": {"x"}}},
		{Type: dto.EventTypeProgress, ObjectID: "id3", Task: "a.txt", State: "complete", Transferred: 10, Total: 10},
		{Type: dto.EventTypePoll},
	}}
	require.NoError(t, req.Validate())

	want := []platform.Event{
		platform.ActionEvent{ObjectID: 0x1f, TargetID: "id1f-next", ActionID: "action", Option: 2},
		platform.ChangeEvent{ObjectID: 2, Properties: map[string]any{"value": "x"}},
		platform.FormEvent{Params: url.Values{"id2": {"x"}}},
		platform.ProgressEvent{ObjectID: 3, Task: "a.txt", State: domain.TaskStateComplete, Transferred: 10, Total: 10},
		platform.PollEvent{},
	}
	assert.Equal(t, want, req.ToEvents())
}
