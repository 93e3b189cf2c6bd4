// Package whitespace decides where inter-element space is significant: the
// sanitizer turns whitespace into Spacing markers, and the propagator floats
// those markers outward across inline tag boundaries.
package whitespace

import (
	"strings"

	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/markup"
)

// Sanitize returns a new tree in which no Text is blank or padded; every
// space that separated content is instead a Spacing sibling. Space next to
// block level boundaries is dropped. The input tree is not modified.
func Sanitize(doc *markup.Document, d *dialect.Dialect) *markup.Document {
	out := &markup.Document{}
	sc := scope{d: d, top: true, block: true, boundary: true}
	out.SetChildren(sc.run(doc.Children()))
	return out
}

// scope sanitizes one parent's children left to right.
type scope struct {
	d     *dialect.Dialect
	top   bool // document level: every item is a block boundary
	block bool // block level element or document: edges drop space

	out      []markup.Node
	carry    bool // pending space not yet materialized
	boundary bool // at a block edge; pending space is dropped here
}

func (sc *scope) run(nodes []markup.Node) []markup.Node {
	for _, n := range nodes {
		switch n := n.(type) {
		case *markup.Text:
			sc.text(n.Text)

		case *markup.Spacing:
			if !sc.boundary {
				sc.carry = true
			}

		case *markup.Tag:
			t := &markup.Tag{Name: n.Name, SelfClosing: n.SelfClosing, Attrs: n.Attrs.Clone()}
			blockLevel := sc.d.IsBlockLevel(n.Name)
			sc.item(t, blockLevel)
			kids := scope{d: sc.d, block: blockLevel, boundary: blockLevel}
			t.SetChildren(kids.run(n.Children()))

		case *markup.CloseTag:
			if sc.carry && !sc.block {
				sc.space()
			}
			sc.carry = false
			sc.out = append(sc.out, &markup.CloseTag{Name: n.Name})

		default:
			sc.item(markup.Clone(n), false)
		}
	}
	return sc.out
}

// text handles collapsed character data; only single ' ' runs remain.
func (sc *scope) text(s string) {
	body := strings.Trim(s, " ")
	if body == "" {
		if !sc.boundary {
			sc.carry = true
		}
		return
	}
	if sc.top {
		sc.carry = false
		sc.emit(&markup.Text{Text: body})
		sc.boundary = true
		return
	}
	if (sc.carry || strings.HasPrefix(s, " ")) && !sc.boundary {
		sc.space()
	}
	sc.emit(&markup.Text{Text: body})
	sc.carry = strings.HasSuffix(s, " ")
	sc.boundary = false
}

// item handles a tag or an atom.
func (sc *scope) item(n markup.Node, blockLevel bool) {
	if blockLevel || sc.top {
		sc.carry = false
		sc.out = append(sc.out, n)
		sc.boundary = true
		return
	}
	if sc.carry && !sc.boundary {
		sc.space()
	}
	sc.carry = false
	sc.out = append(sc.out, n)
	sc.boundary = false
}

// space appends a Spacing unless one is already last.
func (sc *scope) space() {
	if i := len(sc.out) - 1; i >= 0 {
		if _, ok := sc.out[i].(*markup.Spacing); ok {
			return
		}
	}
	sc.out = append(sc.out, &markup.Spacing{})
}

// emit appends text, merging into a preceding Text.
func (sc *scope) emit(t *markup.Text) {
	if i := len(sc.out) - 1; i >= 0 {
		if prior, ok := sc.out[i].(*markup.Text); ok {
			prior.Text += t.Text
			return
		}
	}
	sc.out = append(sc.out, t)
}
