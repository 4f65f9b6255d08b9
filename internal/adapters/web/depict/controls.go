package depict

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

type labelDepictor struct{ base }

func (d *labelDepictor) Depict(dc *Context) error {
	dc.Element("span", d.comp.Label(), d.attrs()...)
	return nil
}

type messageDepictor struct{ base }

func (d *messageDepictor) Depict(dc *Context) error {
	m, ok := d.comp.(*component.Message)
	if !ok {
		return nil
	}
	d.begin(dc, "div")
	if m.ContentType() == component.ContentTypeXHTML {
		dc.Raw(m.Message())
	} else {
		dc.Text(m.Message())
	}
	dc.End()
	return nil
}

type buttonDepictor struct{ base }

func (d *buttonDepictor) Depict(dc *Context) error {
	attrs := append(d.attrs(),
		A("type", "submit"),
		A("name", d.id()),
		A("value", "action"),
		Flag("disabled", !d.comp.Enabled()))
	dc.Element("button", d.comp.Label(), attrs...)
	return nil
}

func (d *buttonDepictor) ProcessEvent(ctx context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	b, ok := d.comp.(*component.Button)
	if !ok || d.actionOf(ev) == "" {
		return nil
	}
	b.Perform(ctx)
	return nil
}

// inputID names the form control inside a component element.
func (b *base) inputID() string { return b.id() + "-input" }

// textDepictor writes a text input. The submitted text goes through the
// control's converter and validator; failures end up in the control's
// notification rather than in the returned error.
type textDepictor struct{ base }

func (d *textDepictor) Depict(dc *Context) error {
	t, ok := d.comp.(component.TextEditor)
	if !ok {
		return nil
	}
	inputType := "text"
	if m, ok := d.comp.(interface{ Masked() bool }); ok && m.Masked() {
		inputType = "password"
	}
	d.begin(dc, "div")
	d.label(dc, d.inputID())
	dc.Empty("input",
		A("type", inputType),
		A("id", d.inputID()),
		A("name", d.id()),
		A("value", t.Text()),
		Flag("readonly", !t.Editable()),
		Flag("disabled", !t.Enabled()))
	d.notification(dc)
	dc.End()
	return nil
}

func (d *textDepictor) ProcessEvent(_ context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	t, ok := d.comp.(component.TextEditor)
	if !ok || !t.Enabled() || !t.Editable() {
		return nil
	}
	switch e := ev.(type) {
	case platform.ChangeEvent:
		v, ok := e.Properties["value"]
		if !ok {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("value of %s is %T: %w", d.id(), v, domain.ErrInvalidArgument)
		}
		return ignoreInput(t.SetText(s))
	case platform.FormEvent:
		if vs, ok := e.Params[d.id()]; ok && len(vs) > 0 {
			return ignoreInput(t.SetText(vs[0]))
		}
	}
	return nil
}

// ignoreInput drops errors caused by what the user typed. Those are already
// reported on the component.
func ignoreInput(err error) error {
	if err == nil || errors.Is(err, domain.ErrVetoed) || errors.Is(err, domain.ErrValidation) {
		return nil
	}
	return err
}

type checkDepictor struct{ base }

func (d *checkDepictor) Depict(dc *Context) error {
	c, ok := d.comp.(*component.CheckControl)
	if !ok {
		return nil
	}
	d.begin(dc, "div")
	dc.Empty("input",
		A("type", "checkbox"),
		A("id", d.inputID()),
		A("name", d.id()),
		A("value", "true"),
		Flag("checked", c.Checked()),
		Flag("disabled", !c.Enabled() || !c.Editable()))
	d.label(dc, d.inputID())
	d.notification(dc)
	dc.End()
	return nil
}

// ProcessEvent checks the box when the form carries it and clears it when an
// exhaustive form does not.
func (d *checkDepictor) ProcessEvent(_ context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	c, ok := d.comp.(*component.CheckControl)
	if !ok || !c.Enabled() || !c.Editable() {
		return nil
	}
	switch e := ev.(type) {
	case platform.ChangeEvent:
		if v, ok := e.Properties["value"].(bool); ok {
			c.SetChecked(v)
		}
	case platform.FormEvent:
		if e.Params.Has(d.id()) {
			c.SetChecked(true)
		} else if e.Exhaustive {
			c.SetChecked(false)
		}
	}
	return nil
}

// tabDepictor writes a select control as a list of tabs.
type tabDepictor struct{ base }

func (d *tabDepictor) Depict(dc *Context) error {
	s, ok := d.comp.(component.SelectControl)
	if !ok {
		return nil
	}
	states, _ := d.comp.(component.TaskOptions)
	d.begin(dc, "ol")
	for i := range s.OptionCount() {
		if !s.OptionDisplayed(i) {
			continue
		}
		var classes []string
		if s.OptionSelected(i) {
			classes = append(classes, styleSelected)
		}
		if !s.OptionEnabled(i) {
			classes = append(classes, styleDisabled)
		}
		if states != nil {
			if st, ok := states.OptionState(i); ok && st != domain.TaskStateNone {
				classes = append(classes, taskStyle(st))
			}
		}
		dc.Start("li", A("class", strings.Join(classes, " ")))
		dc.Element("button", s.OptionLabel(i),
			A("type", "submit"),
			A("name", d.id()),
			A("value", strconv.Itoa(i)),
			Flag("disabled", !s.OptionEnabled(i) || !s.Enabled()))
		dc.End()
	}
	dc.End()
	return nil
}

func (d *tabDepictor) ProcessEvent(_ context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	s, ok := d.comp.(component.SelectControl)
	if !ok || !s.Enabled() {
		return nil
	}
	i := -1
	switch e := ev.(type) {
	case platform.ActionEvent:
		i = e.Option
	case platform.FormEvent:
		v := e.Params.Get(d.id())
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("option %q of %s: %w", v, d.id(), domain.ErrInvalidArgument)
		}
		i = n
	default:
		return nil
	}
	return ignoreInput(s.SelectOption(i))
}

// PendingPollInterval is how often the browser polls while an image is
// waiting for its content.
const PendingPollInterval = 2 * time.Second

// imageDepictor writes an image and keeps the browser polling while the image
// is pending.
type imageDepictor struct {
	base
	sub *property.Subscription
}

func (d *imageDepictor) Install(r *Renderer, c component.Component) {
	d.base.Install(r, c)
	img, ok := c.(*component.Image)
	if !ok {
		return
	}
	d.updatePoll(img.Pending())
	d.sub = c.Support().OnAny(func(ev property.Event) {
		if ev.Name == component.PendingProperty {
			d.updatePoll(img.Pending())
		}
	})
}

func (d *imageDepictor) Uninstall() {
	d.sub.Unsubscribe()
	d.r.Platform().DiscontinuePollInterval(d.comp)
}

func (d *imageDepictor) updatePoll(pending bool) {
	if pending {
		// A constant positive interval never fails.
		_, _ = d.r.Platform().RequestPollInterval(d.comp, PendingPollInterval)
		return
	}
	d.r.Platform().DiscontinuePollInterval(d.comp)
}

func (d *imageDepictor) Depict(dc *Context) error {
	img, ok := d.comp.(*component.Image)
	if !ok {
		return nil
	}
	var pending string
	if img.Pending() {
		pending = stylePrefix + "pending"
	}
	d.begin(dc, "div", pending)
	if uri := img.ImageURI(); uri != "" && !img.Pending() {
		alt := img.AltText()
		if alt == "" {
			alt = img.Label()
		}
		dc.Empty("img", A("src", d.r.ResolveURI(uri)), A("alt", alt))
	}
	dc.End()
	return nil
}

// resourceCollectDepictor relays resource collection between the control
// and the browser.
type resourceCollectDepictor struct {
	base
	files *platform.FileCollector
	sub   *property.Subscription
}

func (d *resourceCollectDepictor) Install(r *Renderer, c component.Component) {
	d.base.Install(r, c)
	d.files = platform.NewFileCollector(r.Platform(), c.ID())
	d.sub = c.Support().OnAny(d.relay)
}

func (d *resourceCollectDepictor) Uninstall() { d.sub.Unsubscribe() }

func (d *resourceCollectDepictor) relay(ev property.Event) {
	p := d.r.Platform()
	switch ev.Name {
	case component.ReceiveEvent:
		dest, _ := ev.New.(string)
		p.Send(platform.Message{
			Command:  platform.CommandResourceCollectReceive,
			ObjectID: d.id(),
			Params:   map[string]any{platform.ParamDestinationURI: d.r.ResolveURI(dest)},
		})
	case component.CancelEvent:
		p.Send(platform.Message{Command: platform.CommandResourceCollectCancel, ObjectID: d.id()})
	case component.CollectStateProperty:
		if ev.New == domain.TaskStateComplete {
			p.Send(platform.Message{Command: platform.CommandResourceCollectComplete, ObjectID: d.id()})
		}
	}
}

func (d *resourceCollectDepictor) Depict(dc *Context) error {
	c, ok := d.comp.(*component.ResourceCollectControl)
	if !ok {
		return nil
	}
	d.begin(dc, "div", taskStyle(c.State()))
	d.label(dc, "")
	dc.Element("button", "Browse",
		A("type", "button"),
		A("class", stylePrefix+"action-browse"),
		A("name", d.id()),
		A("value", "browse"),
		Flag("disabled", !c.Enabled()))
	dc.Start("ul")
	for _, path := range c.ResourcePaths() {
		dc.Element("li", path)
	}
	dc.End()
	d.notification(dc)
	dc.End()
	return nil
}

func (d *resourceCollectDepictor) ProcessEvent(_ context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	c, ok := d.comp.(*component.ResourceCollectControl)
	if !ok {
		return nil
	}
	switch e := ev.(type) {
	case platform.ActionEvent:
		if e.ActionID == "browse" && c.Enabled() {
			d.files.Browse(true)
		}
	case platform.ChangeEvent:
		if path, ok := e.Properties["resourcePath"].(string); ok {
			c.AddResourcePath(path)
		}
		progress, err := d.files.Update(e.Properties)
		if err != nil {
			return err
		}
		if progress != nil {
			c.ReportProgress(component.Progress{
				Task:        progress.File.Name,
				State:       progress.State,
				Transferred: progress.Transferred,
				Total:       progress.Total,
			})
		}
	case platform.ProgressEvent:
		c.ReportProgress(component.Progress{
			Task:        e.Task,
			State:       e.State,
			Transferred: e.Transferred,
			Total:       e.Total,
		})
	}
	return nil
}
