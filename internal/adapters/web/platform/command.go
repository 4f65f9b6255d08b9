package platform

// Command names an instruction sent to the browser.
type Command string

const (
	CommandPollInterval            Command = "POLL_INTERVAL"
	CommandFileBrowse              Command = "FILE_BROWSE"
	CommandFileUpload              Command = "FILE_UPLOAD"
	CommandFileCancel              Command = "FILE_CANCEL"
	CommandResourceCollectReceive  Command = "RESOURCE_COLLECT_RECEIVE"
	CommandResourceCollectComplete Command = "RESOURCE_COLLECT_COMPLETE"
	CommandResourceCollectCancel   Command = "RESOURCE_COLLECT_CANCEL"
)

// Command parameter names.
const (
	ParamInterval       = "interval"
	ParamID             = "id"
	ParamMultiple       = "multiple"
	ParamDestinationURI = "destinationURI"
)

// Message is a command waiting to be delivered. ObjectID is the depict ID of
// the object the command concerns, if any.
type Message struct {
	Command  Command        `json:"command"`
	ObjectID string         `json:"objectID,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}
