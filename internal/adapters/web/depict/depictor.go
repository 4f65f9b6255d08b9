package depict

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
)

// Depictor renders one component and interprets the events addressed to it.
type Depictor interface {
	Install(r *Renderer, c component.Component)
	Uninstall()
	Depict(dc *Context) error
	ProcessEvent(ctx context.Context, ev platform.Event) error
}

// Style classes written in addition to the class ancestry.
const (
	stylePrefix     = "guise-"
	styleInvalid    = "guise-invalid"
	styleDisabled   = "guise-disabled"
	styleSelected   = "guise-selected"
	styleError      = "guise-error"
	styleTaskPrefix = "guise-task-"
)

// classStyles caches the style classes derived from a class ancestry.
var classStyles sync.Map

func ancestryStyle(class *domain.Class) string {
	if s, ok := classStyles.Load(class); ok {
		return s.(string)
	}
	var names []string
	for _, c := range class.Ancestry() {
		if c == domain.ClassObject {
			continue
		}
		names = append(names, stylePrefix+c.Name())
	}
	s := strings.Join(names, " ")
	classStyles.Store(class, s)
	return s
}

// base carries what every depictor shares.
type base struct {
	r    *Renderer
	comp component.Component
}

func (b *base) Install(r *Renderer, c component.Component) {
	b.r = r
	b.comp = c
}

func (b *base) Uninstall() {}

// ProcessEvent accepts and ignores events addressed to the component.
func (b *base) ProcessEvent(_ context.Context, ev platform.Event) error {
	return b.checkTarget(ev)
}

func (b *base) checkTarget(ev platform.Event) error {
	if t := ev.Target(); t != 0 && t != b.comp.ID() {
		return fmt.Errorf("event for %s sent to %s: %w",
			platform.FormatDepictID(t), b.id(), domain.ErrInvalidArgument)
	}
	return nil
}

func (b *base) id() string { return platform.FormatDepictID(b.comp.ID()) }

// styleClasses returns the class attribute of the component element.
func (b *base) styleClasses(extra ...string) string {
	c := b.comp
	classes := []string{ancestryStyle(c.Class())}
	if id := c.StyleID(); id != "" {
		classes = append(classes, id)
	}
	if !c.Valid() {
		classes = append(classes, styleInvalid)
	}
	if !c.Enabled() {
		classes = append(classes, styleDisabled)
	}
	for _, e := range extra {
		if e != "" {
			classes = append(classes, e)
		}
	}
	return strings.Join(classes, " ")
}

// outerStyle returns the style attribute for displayed, visible, color, and
// opacity.
func (b *base) outerStyle() string {
	c := b.comp
	var parts []string
	if !c.Displayed() {
		parts = append(parts, "display:none")
	}
	if !c.Visible() {
		parts = append(parts, "visibility:hidden")
	}
	if color := c.Color(); color != "" {
		parts = append(parts, "color:"+color)
	}
	if o := c.Opacity(); o < 1 {
		parts = append(parts, "opacity:"+strconv.FormatFloat(o, 'f', -1, 64))
	}
	return strings.Join(parts, ";")
}

// attrs returns the attributes common to every component element.
func (b *base) attrs(extraClasses ...string) []Attr {
	return []Attr{
		A("id", b.id()),
		A("class", b.styleClasses(extraClasses...)),
		A("style", b.outerStyle()),
		A("dir", b.comp.Orientation().String()),
	}
}

func (b *base) begin(dc *Context, element string, extraClasses ...string) {
	dc.Start(element, b.attrs(extraClasses...)...)
}

// notification writes the component's notification, if any.
func (b *base) notification(dc *Context) {
	n := b.comp.Notification()
	if n == nil {
		return
	}
	class := stylePrefix + "notification-" + n.Severity.String()
	if n.Severity == domain.SeverityError {
		class = styleError + " " + class
	}
	dc.Element("div", n.Message, A("class", class))
}

func (b *base) label(dc *Context, forID string) {
	if l := b.comp.Label(); l != "" {
		dc.Element("label", l, A("for", forID))
	}
}

func taskStyle(s domain.TaskState) string {
	if s == domain.TaskStateNone {
		return ""
	}
	return styleTaskPrefix + s.String()
}
