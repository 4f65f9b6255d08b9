package depict

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
)

// Page describes the document wrapped around the root component.
type Page struct {
	Title        string
	Stylesheets  []string
	Scripts      []string
	PollInterval time.Duration
	// FormURI receives submissions of the page form.
	FormURI string
	// EventURI receives AJAX events.
	EventURI string
	// AckURI acknowledges the displayed notifications.
	AckURI        string
	Notifications []domain.Notification
}

const xhtmlNamespace = "http://www.w3.org/1999/xhtml"

// RenderPage returns the complete document for the root component and
// forgets all pending changes, since the page reflects them.
func (r *Renderer) RenderPage(p Page) (string, error) {
	r.Prune()
	dc := NewContext(r.indent)
	dc.Raw("<!DOCTYPE html>")
	dc.Start("html", A("xmlns", xhtmlNamespace), A("dir", r.root.Orientation().String()))

	dc.Start("head")
	dc.Empty("meta", A("charset", "utf-8"))
	title := p.Title
	if title == "" {
		if f, ok := r.root.(*component.Frame); ok {
			title = f.Title()
		}
	}
	dc.Element("title", title)
	for _, href := range p.Stylesheets {
		dc.Empty("link", A("rel", "stylesheet"), A("href", r.ResolveURI(href)))
	}
	for _, src := range p.Scripts {
		dc.Element("script", "", A("src", r.ResolveURI(src)))
	}
	dc.End()

	dc.Start("body",
		A("data-event-uri", p.EventURI),
		A("data-ack-uri", p.AckURI),
		A("data-poll-interval", strconv.FormatInt(p.PollInterval.Milliseconds(), 10)))
	if len(p.Notifications) > 0 {
		writeNotifications(dc, p.AckURI, p.Notifications)
	}
	dc.Start("form", A("id", "guise-form"), A("method", "post"), A("action", p.FormURI))
	if err := r.DepictChild(dc, r.root); err != nil {
		return "", fmt.Errorf("depicting page: %w", err)
	}
	dc.End()
	dc.End()
	dc.End()

	r.ClearDirty()
	return dc.String(), nil
}

func writeNotifications(dc *Context, ackURI string, notes []domain.Notification) {
	dc.Start("div", A("class", stylePrefix+"notifications"), A("role", "alertdialog"))
	dc.Start("ul")
	for _, n := range notes {
		dc.Element("li", n.Message, A("class", stylePrefix+"notification-"+n.Severity.String()))
	}
	dc.End()
	dc.Start("form", A("method", "post"), A("action", ackURI))
	dc.Element("button", "OK", A("type", "submit"))
	dc.End()
	dc.End()
}
