package component

import "github.com/jsamuelsen11/guise/internal/domain"

// Component classes. Depictor lookup, theme rules, and style IDs walk these
// from the most specific class to ClassComponent.
var (
	ClassComponent = domain.NewClass("component", domain.ClassObject)

	ClassContainer         = domain.NewClass("container", ClassComponent)
	ClassFrame             = domain.NewClass("frame", ClassContainer)
	ClassPanel             = domain.NewClass("panel", ClassContainer)
	ClassCardPanel         = domain.NewClass("card-panel", ClassPanel)
	ClassSequenceCardPanel = domain.NewClass("sequence-card-panel", ClassCardPanel)

	ClassLabel   = domain.NewClass("label", ClassComponent)
	ClassMessage = domain.NewClass("message", ClassComponent)
	ClassImage   = domain.NewClass("image", ClassComponent)

	ClassControl                = domain.NewClass("control", ClassComponent)
	ClassActionControl          = domain.NewClass("action-control", ClassControl)
	ClassButton                 = domain.NewClass("button", ClassActionControl)
	ClassValueControl           = domain.NewClass("value-control", ClassControl)
	ClassTextControl            = domain.NewClass("text-control", ClassValueControl)
	ClassCheckControl           = domain.NewClass("check-control", ClassValueControl)
	ClassSelectControl          = domain.NewClass("select-control", ClassControl)
	ClassTabControl             = domain.NewClass("tab-control", ClassSelectControl)
	ClassTable                  = domain.NewClass("table", ClassControl)
	ClassResourceCollectControl = domain.NewClass("resource-collect-control", ClassControl)
)

var classesByName = func() map[string]*domain.Class {
	m := make(map[string]*domain.Class)
	for _, c := range []*domain.Class{
		domain.ClassObject, ClassComponent,
		ClassContainer, ClassFrame, ClassPanel, ClassCardPanel, ClassSequenceCardPanel,
		ClassLabel, ClassMessage, ClassImage,
		ClassControl, ClassActionControl, ClassButton,
		ClassValueControl, ClassTextControl, ClassCheckControl,
		ClassSelectControl, ClassTabControl, ClassTable, ClassResourceCollectControl,
	} {
		m[c.Name()] = c
	}
	return m
}()

// ClassByName looks up a component class by name, as written in theme files.
func ClassByName(name string) (*domain.Class, bool) {
	c, ok := classesByName[name]
	return c, ok
}
