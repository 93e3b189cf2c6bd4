// Package layout converts a spaced markup tree into a document model for
// rendering.
package layout

import (
	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/doc"
	"github.com/jcorbin/xmlfmt/internal/markup"
)

// Build returns the document model of root. Each top level node is
// followed by a line. Block level elements get their own lines, with block
// elements always breaking inside, and paragraph elements only when they do
// not fit. Inline elements, text and Spacing flow within their parent.
//
// The walk is iterative, so nesting depth is bounded only by memory.
func Build(root *markup.Document, d *dialect.Dialect) *doc.Group {
	var b builder
	top := &doc.Group{Break: true}
	b.push(&frame{top: true, content: top, kids: root.Children()})

	for len(b.stack) > 0 {
		f := b.stack[len(b.stack)-1]
		if f.i >= len(f.kids) {
			f.finish()
			b.stack = b.stack[:len(b.stack)-1]
			continue
		}
		n := f.kids[f.i]
		f.i++

		switch n := n.(type) {
		case *markup.Tag:
			blockLevel := d.IsBlockLevel(n.Name)
			if n.SelfClosing {
				f.add(doc.Text(n.Open()), blockLevel)
				continue
			}
			sub := &frame{kids: n.Children(), shaped: blockLevel}
			if blockLevel {
				sub.outer = &doc.Group{Break: d.Class(n.Name) == dialect.Block}
				sub.outer.Append(doc.Text(n.Open()))
				sub.content = &doc.Group{}
				f.add(sub.outer, true)
			} else {
				sub.content = &doc.Group{}
				sub.content.Append(doc.Text(n.Open()))
				f.add(sub.content, false)
			}
			b.push(sub)

		case *markup.CloseTag:
			f.end = n.End()
			f.i = len(f.kids)

		case *markup.Text:
			f.add(doc.Text(n.Text), false)

		case *markup.Spacing:
			f.add(doc.SpaceOrLine{}, false)

		case markup.Atom:
			f.add(doc.Text(n.Source()), false)
		}
	}
	return top
}

type builder struct {
	stack []*frame
}

func (b *builder) push(f *frame) { b.stack = append(b.stack, f) }

// frame is one element being built.
type frame struct {
	kids []markup.Node
	i    int

	top     bool       // document level
	shaped  bool       // block level: open, indented content, close
	outer   *doc.Group // element group when shaped
	content *doc.Group // insertion target
	end     string     // close tag markup, once seen

	any       bool // content has an item
	prevBlock bool // the last item was block level
}

func (f *frame) add(n doc.Node, blockLevel bool) {
	if f.top {
		f.content.Append(n, doc.Line{})
		return
	}
	if f.any && (blockLevel || f.prevBlock) {
		f.content.Append(doc.Line{})
	}
	if blockLevel {
		f.content.Break = true
	}
	f.content.Append(n)
	f.any, f.prevBlock = true, blockLevel
}

func (f *frame) finish() {
	switch {
	case f.top:
	case f.shaped:
		if f.any {
			f.outer.Append(doc.LineIndent{}, f.content, doc.LineDeindent{})
		}
		if f.end != "" {
			f.outer.Append(doc.Text(f.end))
		}
	default:
		if f.end != "" {
			f.content.Append(doc.Text(f.end))
		}
	}
}
