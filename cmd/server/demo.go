package main

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/guise/internal/app"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
	"github.com/jsamuelsen11/guise/internal/platform/config"
)

var demoPlanets = []struct {
	name  string
	moons int
}{
	{"Mercury", 0}, {"Venus", 0}, {"Earth", 1}, {"Mars", 2},
	{"Jupiter", 95}, {"Saturn", 146}, {"Uranus", 28}, {"Neptune", 16},
}

// demoApplication describes the application served by this process: a tab
// control switching between a sign-up wizard and a paged table.
func demoApplication(cfg config.GuiseConfig) *app.Application {
	return &app.Application{
		Name:     cfg.Application,
		BasePath: cfg.BasePath,
		ThemeURI: cfg.ThemeURI,
		NewFrame: newDemoFrame,
	}
}

func newDemoFrame(context.Context) (*component.Frame, error) {
	frame := component.NewFrame("Guise")

	logo := component.NewImage("_guise/resources/logo.svg")
	logo.SetAltText("Guise")
	if err := frame.Add(logo, nil); err != nil {
		return nil, err
	}

	cards := component.NewCardPanel()
	wizard, err := newWizard()
	if err != nil {
		return nil, err
	}
	if err := cards.Add(wizard, component.NewCardConstraints("Sign up")); err != nil {
		return nil, err
	}
	planets, err := newPlanetTable()
	if err != nil {
		return nil, err
	}
	if err := cards.Add(planets, component.NewCardConstraints("Planets")); err != nil {
		return nil, err
	}

	if err := frame.Add(component.NewCardTabControl(cards), nil); err != nil {
		return nil, err
	}
	if err := frame.Add(cards, nil); err != nil {
		return nil, err
	}
	return frame, nil
}

func newWizard() (*component.SequenceCardPanel, error) {
	seq := component.NewSequenceCardPanel()
	seq.SetName("wizard")

	name := component.NewStringControl("Name")
	name.SetName("name")
	name.AddPreferenceProperty(component.TextProperty)
	agree := component.NewCheckControl("I accept the terms", nil)
	summary := component.NewMessage("")

	for _, card := range []struct {
		label string
		child component.Component
	}{
		{"Who", name},
		{"Terms", agree},
		{"Done", summary},
	} {
		panel := component.NewPanel(component.PageAxis)
		if err := panel.Add(card.child, nil); err != nil {
			return nil, err
		}
		if err := seq.Add(panel, component.NewTaskCardConstraints(card.label)); err != nil {
			return nil, err
		}
	}

	seq.OnSelect(func(property.Change[component.Component]) {
		summary.SetMessage(fmt.Sprintf("Ready to sign up %q.", name.Value()))
	})
	seq.SetFinishHandler(func(context.Context) {
		note := domain.NewNotification(fmt.Sprintf("Welcome, %s.", name.Value()))
		if !agree.Checked() {
			note = domain.Notification{Message: "The terms were not accepted.", Severity: domain.SeverityWarn}
		}
		component.Notify(seq, seq.ResetSequence, note)
	})
	seq.SetCancelHandler(func(context.Context) { seq.ResetSequence() })
	return seq, nil
}

func newPlanetTable() (*component.Table, error) {
	nameCol := model.NewColumn("name", model.ClassString)
	nameCol.SetLabel("Planet")
	moonsCol := model.NewColumn("moons", model.ClassInteger)
	moonsCol.SetLabel("Moons")
	moonsCol.SetEditable(true)
	moonsCol.SetValidator(model.Untyped(model.IntRange(0, 1000)))

	m := model.NewTable(nameCol, moonsCol)
	for _, p := range demoPlanets {
		if err := m.AddRow(p.name, p.moons); err != nil {
			return nil, err
		}
	}

	table := component.NewTable(m)
	if err := table.SetDisplayRowCount(3); err != nil {
		return nil, err
	}
	return table, nil
}
