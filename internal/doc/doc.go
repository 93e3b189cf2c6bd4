// Package doc is a small pretty printing algebra: groups of literal text and
// line directives, each group deciding on its own whether to break lines.
package doc

import "github.com/rivo/uniseg"

// Node is one of: *Group, Text, Line, LineIndent, LineDeindent, or
// SpaceOrLine.
type Node interface {
	// Width is the flattened width; every break producing node counts 1.
	Width() int
	docNode()
}

// Group renders its nodes under one wrap decision.
type Group struct {
	Nodes []Node
	// Break forces the group, and every group containing it, to wrap.
	Break bool
}

// Text is a literal, written verbatim.
type Text string

// Line is a newline under Wrap, and nothing otherwise.
type Line struct{}

// LineIndent increases the indent, then acts as a Line.
type LineIndent struct{}

// LineDeindent decreases the indent, then acts as a Line.
type LineDeindent struct{}

// SpaceOrLine is a single space under NoWrap, and a Line under Wrap.
type SpaceOrLine struct{}

func (*Group) docNode()       {}
func (Text) docNode()         {}
func (Line) docNode()         {}
func (LineIndent) docNode()   {}
func (LineDeindent) docNode() {}
func (SpaceOrLine) docNode()  {}

// Append adds nodes to the group. Groups cache no measurements, so Nodes
// and Break may be changed at any time before rendering.
func (g *Group) Append(nodes ...Node) {
	g.Nodes = append(g.Nodes, nodes...)
}

// Width returns the sum of the widths of the group's nodes.
func (g *Group) Width() int { return measureGroup(g, nil).width }

// MustWrap reports whether g or any group within it has Break set.
func (g *Group) MustWrap() bool { return measureGroup(g, nil).broken }

type measure struct {
	width  int
	broken bool
}

// measureGroup totals g. A non-nil memo is consulted and filled for g and
// every group within it; it must not outlive changes to those groups.
func measureGroup(g *Group, memo map[*Group]measure) measure {
	if m, ok := memo[g]; ok {
		return m
	}
	m := measure{broken: g.Break}
	for _, n := range g.Nodes {
		if sub, ok := n.(*Group); ok {
			sm := measureGroup(sub, memo)
			m.width += sm.width
			m.broken = m.broken || sm.broken
		} else {
			m.width += n.Width()
		}
	}
	if memo != nil {
		memo[g] = m
	}
	return m
}

// Width returns the terminal display width of the text.
func (t Text) Width() int { return uniseg.StringWidth(string(t)) }

func (Line) Width() int         { return 1 }
func (LineIndent) Width() int   { return 1 }
func (LineDeindent) Width() int { return 1 }
func (SpaceOrLine) Width() int  { return 1 }
