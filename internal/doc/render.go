package doc

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/xmlfmt/internal/fmtutil"
)

// Mode is a group's wrap decision.
type Mode uint8

const (
	// Detect resolves to Wrap or NoWrap by measuring the group.
	Detect Mode = iota
	// Wrap renders line directives as newlines.
	Wrap
	// NoWrap renders line directives as nothing, or a space.
	NoWrap
)

func (m Mode) String() string {
	switch m {
	case Detect:
		return "Detect"
	case Wrap:
		return "Wrap"
	case NoWrap:
		return "NoWrap"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Defaults used by a zero Renderer.
const (
	DefaultMaxWidth = 80
	DefaultIndent   = "\t"
)

// Renderer writes a document model as text.
type Renderer struct {
	MaxWidth int    // DefaultMaxWidth if zero
	Indent   string // DefaultIndent if empty
}

// Render returns the text of n.
func (r Renderer) Render(n Node) string {
	var sb strings.Builder
	r.Fprint(&sb, n)
	return sb.String()
}

// Fprint writes the text of n to w, returning the first write error.
func (r Renderer) Fprint(w io.Writer, n Node) error {
	if r.MaxWidth <= 0 {
		r.MaxWidth = DefaultMaxWidth
	}
	if r.Indent == "" {
		r.Indent = DefaultIndent
	}
	st := renderState{
		Renderer:  r,
		ErrWriter: fmtutil.ErrWriter{Writer: w},
		memo:      make(map[*Group]measure),
	}
	st.render(n, Detect)
	return st.Err
}

// Resolve returns the mode a group takes under a parent in mode m.
func (r Renderer) Resolve(g *Group, m Mode) Mode { return r.resolve(g, m, nil) }

func (r Renderer) resolve(g *Group, m Mode, memo map[*Group]measure) Mode {
	if m == NoWrap {
		return NoWrap
	}
	max := r.MaxWidth
	if max <= 0 {
		max = DefaultMaxWidth
	}
	if gm := measureGroup(g, memo); gm.broken || gm.width > max {
		return Wrap
	}
	return NoWrap
}

type renderState struct {
	Renderer
	fmtutil.ErrWriter
	depth int
	memo  map[*Group]measure
}

func (st *renderState) render(n Node, m Mode) {
	switch n := n.(type) {
	case *Group:
		sub := st.resolve(n, m, st.memo)
		for _, c := range n.Nodes {
			st.render(c, sub)
		}
	case Text:
		st.WriteString(string(n))
	case Line:
		st.line(m)
	case LineIndent:
		st.depth++
		st.line(m)
	case LineDeindent:
		if st.depth > 0 {
			st.depth--
		}
		st.line(m)
	case SpaceOrLine:
		if m == Wrap {
			st.line(m)
		} else {
			st.WriteString(" ")
		}
	}
}

func (st *renderState) line(m Mode) {
	if m != Wrap {
		return
	}
	st.WriteString("\n")
	for i := 0; i < st.depth; i++ {
		st.WriteString(st.Indent)
	}
}
