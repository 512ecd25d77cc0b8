package esi

// Attr is one element attribute. Attributes are kept as a slice because
// some ESI consumers depend on their order.
type Attr struct {
	Name  string
	Value string
}

// Node is either an *Element or a Comment.
type Node interface {
	node()
}

// Comment renders as <!--text--> with the text written verbatim.
type Comment string

func (Comment) node() {}

// Element is one node of the document tree. An element holds either text
// or children, never both.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []Node
}

func (*Element) node() {}

// NewElement creates an element. attrs are name/value pairs.
func NewElement(tag string, attrs ...string) *Element {
	e := &Element{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.Attrs = append(e.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return e
}

// SubElement appends a new child element and returns it.
func (e *Element) SubElement(tag string, attrs ...string) *Element {
	child := NewElement(tag, attrs...)
	e.Children = append(e.Children, child)
	return child
}

// TextElement appends a child element holding only text.
func (e *Element) TextElement(tag, text string, attrs ...string) *Element {
	child := e.SubElement(tag, attrs...)
	child.Text = text
	return child
}

func (e *Element) Append(n Node) *Element {
	e.Children = append(e.Children, n)
	return e
}

func (e *Element) Comment(text string) *Element {
	return e.Append(Comment(text))
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first child element with the given tag.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// FindAll returns every child element with the given tag, in order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			out = append(out, el)
		}
	}
	return out
}

// Comments returns the comment children in order.
func (e *Element) Comments() []string {
	var out []string
	for _, c := range e.Children {
		if cm, ok := c.(Comment); ok {
			out = append(out, string(cm))
		}
	}
	return out
}
