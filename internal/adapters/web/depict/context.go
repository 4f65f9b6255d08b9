package depict

import (
	"html"
	"strings"
)

// Attr is an XHTML attribute. Attributes with an empty value are omitted
// unless Bool is set, in which case the attribute is written with its own
// name as value.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// A returns a valued attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// Flag returns a boolean attribute such as checked or disabled, written only
// when on.
func Flag(name string, on bool) Attr {
	if !on {
		return Attr{Name: name}
	}
	return Attr{Name: name, Value: name, Bool: true}
}

// Context accumulates XHTML for one depiction, tracking nesting for
// indentation.
type Context struct {
	b      strings.Builder
	depth  int
	indent bool
	open   []string
}

// NewContext returns an empty context. Indent formats the output one
// element per line.
func NewContext(indent bool) *Context {
	return &Context{indent: indent}
}

// Start opens element name.
func (c *Context) Start(name string, attrs ...Attr) {
	c.newline()
	c.writeTag(name, attrs)
	c.b.WriteByte('>')
	c.open = append(c.open, name)
	c.depth++
}

// End closes the innermost open element.
func (c *Context) End() {
	if len(c.open) == 0 {
		return
	}
	name := c.open[len(c.open)-1]
	c.open = c.open[:len(c.open)-1]
	c.depth--
	c.newline()
	c.b.WriteString("</")
	c.b.WriteString(name)
	c.b.WriteByte('>')
}

// Empty writes an element with no content.
func (c *Context) Empty(name string, attrs ...Attr) {
	c.newline()
	c.writeTag(name, attrs)
	c.b.WriteString("/>")
}

// Element writes an element containing only text.
func (c *Context) Element(name, text string, attrs ...Attr) {
	c.newline()
	c.writeTag(name, attrs)
	c.b.WriteByte('>')
	c.b.WriteString(html.EscapeString(text))
	c.b.WriteString("</")
	c.b.WriteString(name)
	c.b.WriteByte('>')
}

// Text writes escaped character data.
func (c *Context) Text(s string) {
	c.b.WriteString(html.EscapeString(s))
}

// Raw writes markup as is. The caller guarantees it is well formed.
func (c *Context) Raw(markup string) {
	c.b.WriteString(markup)
}

// String returns the markup written so far.
func (c *Context) String() string { return c.b.String() }

func (c *Context) writeTag(name string, attrs []Attr) {
	c.b.WriteByte('<')
	c.b.WriteString(name)
	for _, a := range attrs {
		if a.Value == "" && !a.Bool {
			continue
		}
		c.b.WriteByte(' ')
		c.b.WriteString(a.Name)
		c.b.WriteString(`="`)
		c.b.WriteString(html.EscapeString(a.Value))
		c.b.WriteByte('"')
	}
}

func (c *Context) newline() {
	if !c.indent || c.b.Len() == 0 {
		return
	}
	c.b.WriteByte('\n')
	c.b.WriteString(strings.Repeat("\t", c.depth))
}
