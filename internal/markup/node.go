// Package markup defines the tag/text tree that the formatter works on, and
// builds it from tokenizer events.
package markup

// Node is one of: *Document, *Tag, *CloseTag, *Text, *Spacing, *Decl,
// *Doctype, *ProcInst, *CDATA, or *Comment.
type Node interface {
	// Parent returns the node currently holding this node in its children,
	// nil for the Document or a detached node.
	Parent() Parent
	setParent(Parent)
}

// Parent is implemented by nodes that own an ordered child sequence.
type Parent interface {
	Node
	Children() []Node
	// SetChildren replaces the child sequence, re-linking every child's
	// parent reference to the receiver.
	SetChildren(nodes []Node)
	// Append adds a child at the end, linking its parent reference.
	Append(n Node)
}

type link struct{ parent Parent }

func (l *link) Parent() Parent      { return l.parent }
func (l *link) setParent(p Parent) { l.parent = p }

// Document is the tree root.
type Document struct {
	nodes []Node
}

// Tag is an element; unless SelfClosing, its last child is the matching
// CloseTag once the tree is built.
type Tag struct {
	link
	Name        string
	SelfClosing bool
	Attrs       Attrs
	nodes       []Node
}

// CloseTag terminates its parent Tag.
type CloseTag struct {
	link
	Name string
}

// Text is character data, stored with its original escaping.
type Text struct {
	link
	Text string
}

// Spacing marks a position where a separator may render.
// The flags record whether outward migration has been resolved in each
// direction.
type Spacing struct {
	link
	PropagatedLeft  bool
	PropagatedRight bool
}

// Decl is the <?xml ...?> declaration; empty fields are omitted on output.
type Decl struct {
	link
	Version    string
	Encoding   string
	Standalone string
}

// Doctype is a <!DOCTYPE ...> declaration with its raw body.
type Doctype struct {
	link
	Body string
}

// ProcInst is a <?target body?> processing instruction.
type ProcInst struct {
	link
	Target string
	Body   string
}

// CDATA is a <![CDATA[...]]> section with its raw body.
type CDATA struct {
	link
	Body string
}

// Comment is a <!--...--> comment with its raw body.
type Comment struct {
	link
	Body string
}

func (doc *Document) Parent() Parent   { return nil }
func (doc *Document) setParent(Parent) {}
func (doc *Document) Children() []Node { return doc.nodes }
func (doc *Document) SetChildren(nodes []Node) {
	doc.nodes = nodes
	adopt(doc, nodes)
}
func (doc *Document) Append(n Node) {
	doc.nodes = append(doc.nodes, n)
	n.setParent(doc)
}

func (t *Tag) Children() []Node { return t.nodes }
func (t *Tag) SetChildren(nodes []Node) {
	t.nodes = nodes
	adopt(t, nodes)
}
func (t *Tag) Append(n Node) {
	t.nodes = append(t.nodes, n)
	n.setParent(t)
}

func adopt(p Parent, nodes []Node) {
	for _, n := range nodes {
		n.setParent(p)
	}
}

// Close returns the tag's trailing CloseTag, or nil if it is self closing
// or not yet closed.
func (t *Tag) Close() *CloseTag {
	if n := len(t.nodes); n > 0 {
		ct, _ := t.nodes[n-1].(*CloseTag)
		return ct
	}
	return nil
}

// Clone returns a detached deep copy of n.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Document:
		doc := &Document{}
		for _, c := range n.nodes {
			doc.Append(Clone(c))
		}
		return doc
	case *Tag:
		t := &Tag{Name: n.Name, SelfClosing: n.SelfClosing, Attrs: n.Attrs.Clone()}
		for _, c := range n.nodes {
			t.Append(Clone(c))
		}
		return t
	case *CloseTag:
		return &CloseTag{Name: n.Name}
	case *Text:
		return &Text{Text: n.Text}
	case *Spacing:
		return &Spacing{PropagatedLeft: n.PropagatedLeft, PropagatedRight: n.PropagatedRight}
	case *Decl:
		return &Decl{Version: n.Version, Encoding: n.Encoding, Standalone: n.Standalone}
	case *Doctype:
		return &Doctype{Body: n.Body}
	case *ProcInst:
		return &ProcInst{Target: n.Target, Body: n.Body}
	case *CDATA:
		return &CDATA{Body: n.Body}
	case *Comment:
		return &Comment{Body: n.Body}
	}
	return nil
}

// Equal reports whether a and b are structurally equal trees, ignoring
// parent references and Spacing resolution flags.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Document:
		b, ok := b.(*Document)
		return ok && equalNodes(a.nodes, b.nodes)
	case *Tag:
		b, ok := b.(*Tag)
		return ok && a.Name == b.Name && a.SelfClosing == b.SelfClosing &&
			a.Attrs.Equal(b.Attrs) && equalNodes(a.nodes, b.nodes)
	case *CloseTag:
		b, ok := b.(*CloseTag)
		return ok && a.Name == b.Name
	case *Text:
		b, ok := b.(*Text)
		return ok && a.Text == b.Text
	case *Spacing:
		_, ok := b.(*Spacing)
		return ok
	case *Decl:
		b, ok := b.(*Decl)
		return ok && a.Version == b.Version && a.Encoding == b.Encoding && a.Standalone == b.Standalone
	case *Doctype:
		b, ok := b.(*Doctype)
		return ok && a.Body == b.Body
	case *ProcInst:
		b, ok := b.(*ProcInst)
		return ok && a.Target == b.Target && a.Body == b.Body
	case *CDATA:
		b, ok := b.(*CDATA)
		return ok && a.Body == b.Body
	case *Comment:
		b, ok := b.(*Comment)
		return ok && a.Body == b.Body
	}
	return false
}

func equalNodes(as, bs []Node) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for n and every descendant in document order, iteratively.
// Returning false from fn skips that node's children.
func Walk(n Node, fn func(Node) bool) {
	stack := []Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		if p, ok := n.(Parent); ok {
			kids := p.Children()
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
}
