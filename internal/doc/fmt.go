package doc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func (t Text) String() string       { return strconv.Quote(string(t)) }
func (Line) String() string         { return "Line" }
func (LineIndent) String() string   { return "LineIndent" }
func (LineDeindent) String() string { return "LineDeindent" }
func (SpaceOrLine) String() string  { return "SpaceOrLine" }

// Format writes a one line summary under %v, and an indented dump of the
// whole group under %+v.
func (g *Group) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		if f.Flag('+') {
			Dump(f, g)
		} else {
			writeTerse(f, g, nil)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

func writeTerse(w io.Writer, n Node, memo map[*Group]measure) {
	if g, ok := n.(*Group); ok {
		mark := ""
		if g.Break {
			mark = "!"
		}
		fmt.Fprintf(w, "Group%s[%v] width=%v", mark, len(g.Nodes), measureGroup(g, memo).width)
		return
	}
	fmt.Fprint(w, n)
}

// Dump writes one line per node under n, indenting two spaces per level.
func Dump(w io.Writer, n Node) {
	type entry struct {
		n     Node
		depth int
	}
	memo := make(map[*Group]measure)
	stack := []entry{{n, 0}}
	for first := true; len(stack) > 0; first = false {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !first {
			io.WriteString(w, "\n")
		}
		io.WriteString(w, strings.Repeat("  ", e.depth))
		writeTerse(w, e.n, memo)
		if g, ok := e.n.(*Group); ok {
			for i := len(g.Nodes) - 1; i >= 0; i-- {
				stack = append(stack, entry{g.Nodes[i], e.depth + 1})
			}
		}
	}
}
