package component

import (
	"strings"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// Walk visits c and its descendants depth-first, parents before children.
// Returning false from fn skips the component's children.
func Walk(c Component, fn func(Component) bool) {
	if c == nil || !fn(c) {
		return
	}
	if comp, ok := c.(Composite); ok {
		for _, child := range comp.Children() {
			Walk(child, fn)
		}
	}
}

// Find returns the component with the given ID in the tree rooted at root.
func Find(root Component, id int64) (Component, bool) {
	var found Component
	Walk(root, func(c Component) bool {
		if found != nil {
			return false
		}
		if c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Root follows parents up from c.
func Root(c Component) Component {
	for {
		p := c.Parent()
		if p == nil {
			return c
		}
		c = p
	}
}

// Path joins the names of c and its ancestors with "/". Unnamed components
// contribute their class name.
func Path(c Component) string {
	var parts []string
	for cur := c; cur != nil; {
		name := cur.Name()
		if name == "" {
			name = cur.Class().Name()
		}
		parts = append(parts, name)
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Notifications collects the notifications set on c and its descendants.
func Notifications(c Component) []domain.Notification {
	var notes []domain.Notification
	Walk(c, func(cur Component) bool {
		if n := cur.Notification(); n != nil {
			notes = append(notes, *n)
		}
		return true
	})
	return notes
}

type sinkProvider interface {
	NotificationSink() NotificationSink
}

// Notify delivers notes to the sink of the tree c belongs to. Without notes
// or without a sink, then runs immediately.
func Notify(c Component, then func(), notes ...domain.Notification) {
	var sink NotificationSink
	if p, ok := Root(c).(sinkProvider); ok {
		sink = p.NotificationSink()
	}
	if sink == nil || len(notes) == 0 {
		if then != nil {
			then()
		}
		return
	}
	sink.Notify(then, notes...)
}
