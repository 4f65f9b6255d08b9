package domain

// Class names a kind of component or value together with its more general
// parent kind. Classes stand in for a type hierarchy wherever dispatch must
// walk from the most specific kind to the most general one: cell
// representation strategies, depictor lookup, theme rules, and style IDs.
//
// Classes are compared by identity.
type Class struct {
	name   string
	parent *Class
}

// NewClass returns a class with the given name and parent. A nil parent
// makes a root class.
func NewClass(name string, parent *Class) *Class {
	return &Class{name: name, parent: parent}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class or nil for a root class.
func (c *Class) Parent() *Class { return c.parent }

// Ancestry returns the class followed by each ancestor, most specific first.
func (c *Class) Ancestry() []*Class {
	var chain []*Class
	for cls := c; cls != nil; cls = cls.parent {
		chain = append(chain, cls)
	}
	return chain
}

// Is reports whether c is other or descends from it.
func (c *Class) Is(other *Class) bool {
	for cls := c; cls != nil; cls = cls.parent {
		if cls == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return c.name }

// ClassObject is the root of every value and component class.
var ClassObject = NewClass("object", nil)
