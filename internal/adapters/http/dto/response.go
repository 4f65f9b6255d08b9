package dto

import (
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// UpdateResponse tells the browser script what to change after a request.
type UpdateResponse struct {
	Patches       []PatchResponse        `json:"patches"`
	Commands      []platform.Message     `json:"commands"`
	Notifications []NotificationResponse `json:"notifications"`
}

// PatchResponse replaces the element with the given depict ID.
type PatchResponse struct {
	ID     string `json:"id"`
	Markup string `json:"markup"`
}

// NotificationResponse is a notification awaiting acknowledgement.
type NotificationResponse struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ToUpdateResponse converts an update from the page service. The lists are
// never null in the JSON output.
func ToUpdateResponse(u *ports.Update) UpdateResponse {
	resp := UpdateResponse{
		Patches:       make([]PatchResponse, 0, len(u.Patches)),
		Commands:      make([]platform.Message, 0, len(u.Commands)),
		Notifications: ToNotificationResponses(u.Notifications),
	}
	for _, p := range u.Patches {
		resp.Patches = append(resp.Patches, PatchResponse{ID: p.ID, Markup: p.Markup})
	}
	resp.Commands = append(resp.Commands, u.Commands...)
	return resp
}

// ToNotificationResponses converts domain notifications. A notification
// without a message shows its error.
func ToNotificationResponses(notes []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notes))
	for _, n := range notes {
		msg := n.Message
		if msg == "" && n.Err != nil {
			msg = n.Err.Error()
		}
		out = append(out, NotificationResponse{Message: msg, Severity: n.Severity.String()})
	}
	return out
}
