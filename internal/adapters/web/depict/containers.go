package depict

import (
	"context"
	"strconv"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/model"
)

// emptyDepictor writes an empty element for components no other depictor
// knows about.
type emptyDepictor struct{ base }

func (d *emptyDepictor) Depict(dc *Context) error {
	d.begin(dc, "div")
	d.notification(dc)
	dc.End()
	return nil
}

// panelDepictor writes a container with its children in order.
type panelDepictor struct{ base }

func (d *panelDepictor) Depict(dc *Context) error {
	var axis string
	if c, ok := d.comp.(interface{ Layout() component.Layout }); ok {
		if fl, ok := c.Layout().(component.FlowLayout); ok {
			axis = stylePrefix + "flow-" + fl.Axis.String()
		}
	}
	d.begin(dc, "div", axis)
	d.label(dc, "")
	if err := d.children(dc); err != nil {
		return err
	}
	d.notification(dc)
	dc.End()
	return nil
}

func (b *base) children(dc *Context) error {
	comp, ok := b.comp.(component.Composite)
	if !ok {
		return nil
	}
	for _, child := range comp.Children() {
		if err := b.r.DepictChild(dc, child); err != nil {
			return err
		}
	}
	return nil
}

// frameDepictor writes a frame with its title.
type frameDepictor struct{ base }

func (d *frameDepictor) Depict(dc *Context) error {
	d.begin(dc, "div")
	if f, ok := d.comp.(*component.Frame); ok && f.Title() != "" {
		dc.Element("h1", f.Title(), A("class", stylePrefix+"frame-title"))
	}
	if err := d.children(dc); err != nil {
		return err
	}
	d.notification(dc)
	dc.End()
	return nil
}

type cardSelector interface {
	component.Composite
	Selected() component.Component
}

// Sequence navigation actions.
const (
	actionPrevious = "previous"
	actionNext     = "next"
	actionFinish   = "finish"
	actionCancel   = "cancel"
	actionFirst    = "first"
	actionLast     = "last"
)

// cardPanelDepictor writes only the selected card of a card panel. A
// sequence card panel also gets its navigation buttons.
type cardPanelDepictor struct{ base }

func (d *cardPanelDepictor) Depict(dc *Context) error {
	p, ok := d.comp.(cardSelector)
	if !ok {
		return nil
	}
	seq, isSeq := d.comp.(*component.SequenceCardPanel)
	var state string
	if isSeq {
		state = taskStyle(seq.State())
	}
	d.begin(dc, "div", state)
	if card := p.Selected(); card != nil {
		if err := d.r.DepictChild(dc, card); err != nil {
			return err
		}
	}
	if isSeq {
		dc.Start("div", A("class", stylePrefix+"sequence-actions"))
		d.action(dc, actionPrevious, seq.PreviousPrototype())
		if seq.HasNext() {
			d.action(dc, actionNext, seq.NextPrototype())
		} else {
			d.action(dc, actionFinish, seq.FinishPrototype())
		}
		d.action(dc, actionCancel, seq.CancelPrototype())
		dc.End()
	}
	d.notification(dc)
	dc.End()
	return nil
}

// action writes a submit button that reports actionID for the component.
func (b *base) action(dc *Context, actionID string, p *model.ActionPrototype) {
	dc.Element("button", p.Label(),
		A("type", "submit"),
		A("class", stylePrefix+"action-"+actionID),
		A("name", b.id()),
		A("value", actionID),
		Flag("disabled", !p.Enabled()))
}

// actionOf returns the action an event requests of the component, if any.
func (b *base) actionOf(ev platform.Event) string {
	switch e := ev.(type) {
	case platform.ActionEvent:
		return e.ActionID
	case platform.FormEvent:
		return e.Params.Get(b.id())
	default:
		return ""
	}
}

func (d *cardPanelDepictor) ProcessEvent(ctx context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	seq, ok := d.comp.(*component.SequenceCardPanel)
	if !ok {
		e, isAction := ev.(platform.ActionEvent)
		if p, ok := d.comp.(*component.CardPanel); ok && isAction {
			p.SetSelectedIndex(e.Option)
		}
		return nil
	}
	switch d.actionOf(ev) {
	case actionPrevious:
		seq.GoPrevious(ctx)
	case actionNext:
		seq.GoNext(ctx)
	case actionFinish:
		seq.GoFinish(ctx)
	case actionCancel:
		seq.GoCancel(ctx)
	}
	return nil
}

// tableDepictor writes the displayed rows of a table with a header of
// column labels and, for paged tables, navigation buttons.
type tableDepictor struct{ base }

func (d *tableDepictor) Depict(dc *Context) error {
	t, ok := d.comp.(*component.Table)
	if !ok {
		return nil
	}
	m := t.Model()
	d.begin(dc, "div")
	dc.Start("table")
	dc.Start("thead")
	dc.Start("tr")
	for _, col := range m.Columns() {
		dc.Element("th", col.Label(), A("class", stylePrefix+"column-"+col.Name()))
	}
	dc.End()
	dc.End()
	dc.Start("tbody")
	start, end := t.DisplayRange()
	for row := start; row < end; row++ {
		dc.Start("tr", A("class", stylePrefix+"row-"+strconv.Itoa(row%2)))
		for _, col := range m.Columns() {
			dc.Start("td")
			cell, err := t.CellComponent(model.Cell{Row: row, Column: col})
			if err != nil {
				return err
			}
			if err := d.r.DepictChild(dc, cell); err != nil {
				return err
			}
			dc.End()
		}
		dc.End()
	}
	dc.End()
	dc.End()
	if t.DisplayRowCount() > 0 {
		dc.Start("div", A("class", stylePrefix+"table-actions"))
		d.action(dc, actionFirst, t.FirstPrototype())
		d.action(dc, actionPrevious, t.PreviousPrototype())
		d.action(dc, actionNext, t.NextPrototype())
		d.action(dc, actionLast, t.LastPrototype())
		dc.End()
	}
	d.notification(dc)
	dc.End()
	return nil
}

func (d *tableDepictor) ProcessEvent(_ context.Context, ev platform.Event) error {
	if err := d.checkTarget(ev); err != nil {
		return err
	}
	t, ok := d.comp.(*component.Table)
	if !ok {
		return nil
	}
	switch d.actionOf(ev) {
	case actionFirst:
		t.GoFirst()
	case actionPrevious:
		t.GoPrevious()
	case actionNext:
		t.GoNext()
	case actionLast:
		t.GoLast()
	}
	return nil
}
