package markup

import (
	"fmt"
	"io"
	"strings"
)

// Format writes a terse single node form under %v, and an indented dump of
// the whole subtree under %+v.
func (doc *Document) Format(f fmt.State, c rune) { formatNode(f, c, doc) }
func (t *Tag) Format(f fmt.State, c rune)        { formatNode(f, c, t) }
func (ct *CloseTag) Format(f fmt.State, c rune)  { formatNode(f, c, ct) }
func (t *Text) Format(f fmt.State, c rune)       { formatNode(f, c, t) }
func (sp *Spacing) Format(f fmt.State, c rune)   { formatNode(f, c, sp) }
func (d *Decl) Format(f fmt.State, c rune)       { formatNode(f, c, d) }
func (d *Doctype) Format(f fmt.State, c rune)    { formatNode(f, c, d) }
func (pi *ProcInst) Format(f fmt.State, c rune)  { formatNode(f, c, pi) }
func (cd *CDATA) Format(f fmt.State, c rune)     { formatNode(f, c, cd) }
func (cm *Comment) Format(f fmt.State, c rune)   { formatNode(f, c, cm) }

func formatNode(f fmt.State, c rune, n Node) {
	switch c {
	case 'v', 's':
		if f.Flag('+') {
			Dump(f, n)
		} else {
			writeTerse(f, n)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

func writeTerse(w io.Writer, n Node) {
	switch n := n.(type) {
	case *Document:
		fmt.Fprintf(w, "Document[%v]", len(n.nodes))
	case *Tag:
		io.WriteString(w, n.Open())
	case *CloseTag:
		io.WriteString(w, n.End())
	case *Text:
		fmt.Fprintf(w, "%q", n.Text)
	case *Spacing:
		io.WriteString(w, "Spacing")
		if n.PropagatedLeft || n.PropagatedRight {
			io.WriteString(w, "{")
			if n.PropagatedLeft {
				io.WriteString(w, "<")
			}
			if n.PropagatedRight {
				io.WriteString(w, ">")
			}
			io.WriteString(w, "}")
		}
	case Atom:
		io.WriteString(w, n.Source())
	default:
		fmt.Fprintf(w, "!(ERROR unknown node %T)", n)
	}
}

// Dump writes one line per node of the subtree rooted at n, indenting two
// spaces per level.
func Dump(w io.Writer, n Node) {
	type entry struct {
		n     Node
		depth int
	}
	first := true
	stack := []entry{{n, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !first {
			io.WriteString(w, "\n")
		}
		first = false
		io.WriteString(w, strings.Repeat("  ", e.depth))
		writeTerse(w, e.n)
		if p, ok := e.n.(Parent); ok {
			kids := p.Children()
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, entry{kids[i], e.depth + 1})
			}
		}
	}
}
