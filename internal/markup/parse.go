package markup

import (
	"errors"
	"fmt"

	"github.com/jcorbin/xmlfmt/internal/xmltok"
)

// ParseError reports malformed input; no tree is produced alongside it.
type ParseError struct {
	Message string
	Offset  int // byte offset, or -1 when unknown
}

func (err *ParseError) Error() string {
	if err.Offset < 0 {
		return "parse error: " + err.Message
	}
	return fmt.Sprintf("parse error at offset %v: %v", err.Offset, err.Message)
}

// Parse builds a raw tree from src.
func Parse(src string) (*Document, error) {
	var b Builder
	if err := xmltok.Feed(src, &b); err != nil && b.err == nil {
		b.Error(err)
	}
	return b.Done()
}

// Builder is an xmltok.Handler that assembles a Document.
// The zero value is ready to receive events.
type Builder struct {
	doc   *Document
	stack []*Tag
	err   error
}

var _ xmltok.Handler = (*Builder)(nil)

func (b *Builder) top() Parent {
	if b.doc == nil {
		b.doc = &Document{}
	}
	if i := len(b.stack) - 1; i >= 0 {
		return b.stack[i]
	}
	return b.doc
}

func (b *Builder) add(n Node) {
	if b.err == nil {
		b.top().Append(n)
	}
}

// Done returns the built document, or the first error encountered.
func (b *Builder) Done() (*Document, error) {
	if b.err == nil && len(b.stack) > 0 {
		b.fail(fmt.Sprintf("unclosed tag <%v>", b.stack[len(b.stack)-1].Name))
	}
	if b.err != nil {
		return nil, b.err
	}
	doc := b.doc
	if doc == nil {
		doc = &Document{}
	}
	return doc, nil
}

func (b *Builder) fail(msg string) {
	if b.err == nil {
		b.err = &ParseError{Message: msg, Offset: -1}
	}
}

// Error records the first tokenizer error; later events are ignored.
func (b *Builder) Error(err error) {
	if b.err != nil {
		return
	}
	var se *xmltok.SyntaxError
	if errors.As(err, &se) {
		b.err = &ParseError{Message: se.Message, Offset: se.Offset}
		return
	}
	b.err = &ParseError{Message: err.Error(), Offset: -1}
}

func (b *Builder) XMLDecl(d xmltok.Decl) {
	b.add(&Decl{Version: d.Version, Encoding: d.Encoding, Standalone: d.Standalone})
}

func (b *Builder) Doctype(body string)          { b.add(&Doctype{Body: body}) }
func (b *Builder) ProcInst(target, body string) { b.add(&ProcInst{Target: target, Body: body}) }
func (b *Builder) CDATA(body string)            { b.add(&CDATA{Body: body}) }
func (b *Builder) Comment(body string)          { b.add(&Comment{Body: body}) }

func (b *Builder) OpenTag(name string, attrs []xmltok.Attr, selfClosing bool) {
	if b.err != nil {
		return
	}
	t := &Tag{Name: name, SelfClosing: selfClosing}
	for _, a := range attrs {
		t.Attrs.Set(a.Name, a.Value)
	}
	b.add(t)
	if !selfClosing {
		b.stack = append(b.stack, t)
	}
}

func (b *Builder) CloseTag(name string, selfClosing bool) {
	if b.err != nil || selfClosing {
		return
	}
	i := len(b.stack) - 1
	if i < 0 {
		b.fail(fmt.Sprintf("close tag </%v> without open tag", name))
		return
	}
	t := b.stack[i]
	if t.Name != name {
		b.fail(fmt.Sprintf("close tag </%v> does not match <%v>", name, t.Name))
		return
	}
	b.stack = b.stack[:i]
	t.Append(&CloseTag{Name: name})
}

// Text collapses whitespace runs in raw, merging into a preceding Text.
func (b *Builder) Text(raw string) {
	if b.err != nil {
		return
	}
	s := xmltok.Collapse(raw)
	if s == "" {
		return
	}
	p := b.top()
	kids := p.Children()
	if n := len(kids); n > 0 {
		if prior, ok := kids[n-1].(*Text); ok {
			prior.Text = xmltok.Collapse(prior.Text + s)
			return
		}
	}
	p.Append(&Text{Text: s})
}
