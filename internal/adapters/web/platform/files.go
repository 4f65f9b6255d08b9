package platform

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// File is a file the user selected in the browser but has not necessarily
// uploaded yet.
type File struct {
	ID   string
	Name string
	Size int64
}

// FileProgress reports the upload of one file.
type FileProgress struct {
	File        File
	State       domain.TaskState
	Transferred int64
	Total       int64
}

// Change event properties understood by FileCollector.
const (
	PropFileReferences = "fileReferences"
	PropTaskState      = "taskState"
	PropTransferred    = "transferred"
	PropTotal          = "total"
)

// FileCollector tracks the files selected for one depicted object and sends
// the commands that browse for, upload, and cancel them.
type FileCollector struct {
	platform *Platform
	objectID string

	mu    sync.RWMutex
	files []File
}

// NewFileCollector returns a collector for the object with the given ID.
func NewFileCollector(p *Platform, objectID int64) *FileCollector {
	return &FileCollector{platform: p, objectID: FormatDepictID(objectID)}
}

// Browse asks the browser to let the user pick files.
func (c *FileCollector) Browse(multiple bool) {
	c.send(CommandFileBrowse, map[string]any{ParamMultiple: multiple})
}

// Upload asks the browser to upload the file to destination.
func (c *FileCollector) Upload(id, destination string) error {
	if _, ok := c.File(id); !ok {
		return fmt.Errorf("file %q: %w", id, domain.ErrNotFound)
	}
	c.send(CommandFileUpload, map[string]any{ParamID: id, ParamDestinationURI: destination})
	return nil
}

// Cancel asks the browser to stop uploading the file.
func (c *FileCollector) Cancel(id string) error {
	if _, ok := c.File(id); !ok {
		return fmt.Errorf("file %q: %w", id, domain.ErrNotFound)
	}
	c.send(CommandFileCancel, map[string]any{ParamID: id})
	return nil
}

func (c *FileCollector) send(cmd Command, params map[string]any) {
	c.platform.Send(Message{Command: cmd, ObjectID: c.objectID, Params: params})
}

// File returns the selected file with the given browser-assigned ID.
func (c *FileCollector) File(id string) (File, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

// Files returns the selected files in selection order.
func (c *FileCollector) Files() []File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]File(nil), c.files...)
}

// Update applies the properties of a change event. A file reference list
// replaces the selected files; a task state with a transferred count is
// returned as progress of the file named by the "id" property.
func (c *FileCollector) Update(props map[string]any) (*FileProgress, error) {
	if raw, ok := props[PropFileReferences]; ok {
		files, err := parseFileReferences(raw)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.files = files
		c.mu.Unlock()
	}

	stateName, hasState := props[PropTaskState].(string)
	transferred, hasTransferred := asInt64(props[PropTransferred])
	if !hasState || !hasTransferred {
		return nil, nil
	}
	state, ok := domain.ParseTaskState(strings.ToLower(stateName))
	if !ok {
		return nil, fmt.Errorf("task state %q: %w", stateName, domain.ErrInvalidArgument)
	}
	total, ok := asInt64(props[PropTotal])
	if !ok {
		total = -1
	}
	id, _ := props[ParamID].(string)
	f, ok := c.File(id)
	if !ok {
		return nil, nil
	}
	return &FileProgress{File: f, State: state, Transferred: transferred, Total: total}, nil
}

func parseFileReferences(raw any) ([]File, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a list: %w", PropFileReferences, raw, domain.ErrInvalidArgument)
	}
	files := make([]File, 0, len(list))
	for _, item := range list {
		ref, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("file reference is %T: %w", item, domain.ErrInvalidArgument)
		}
		id, _ := ref["id"].(string)
		name, _ := ref["name"].(string)
		size, _ := asInt64(ref["size"])
		if id == "" {
			return nil, fmt.Errorf("file reference without id: %w", domain.ErrInvalidArgument)
		}
		files = append(files, File{ID: id, Name: name, Size: size})
	}
	return files, nil
}

// asInt64 accepts the numeric forms produced by JSON decoding.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
