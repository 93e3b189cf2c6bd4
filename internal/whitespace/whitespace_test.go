package whitespace_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/markup"
	. "github.com/jcorbin/xmlfmt/internal/whitespace"
)

var testDialect = dialect.New("test", []string{"a"}, []string{"p"})

// flat writes a tree back as markup, with _ for each Spacing.
func flat(n markup.Node) string {
	var sb strings.Builder
	markup.Walk(n, func(n markup.Node) bool {
		switch n := n.(type) {
		case *markup.Tag:
			sb.WriteString(n.Open())
		case *markup.CloseTag:
			sb.WriteString(n.End())
		case *markup.Text:
			sb.WriteString(n.Text)
		case *markup.Spacing:
			sb.WriteByte('_')
		case markup.Atom:
			sb.WriteString(n.Source())
		}
		return true
	})
	return sb.String()
}

func mustParse(t *testing.T, src string) *markup.Document {
	doc, err := markup.Parse(src)
	require.NoError(t, err, "must parse %q", src)
	return doc
}

// checkSiblings asserts that no parent holds adjacent Text or adjacent
// Spacing children, and that no Text is blank or padded.
func checkSiblings(t *testing.T, doc *markup.Document) {
	markup.Walk(doc, func(n markup.Node) bool {
		p, ok := n.(markup.Parent)
		if !ok {
			return true
		}
		var prior markup.Node
		for _, kid := range p.Children() {
			switch kid := kid.(type) {
			case *markup.Text:
				_, priorText := prior.(*markup.Text)
				assert.False(t, priorText, "adjacent text under %v", p)
				assert.NotEmpty(t, kid.Text)
				assert.Equal(t, strings.TrimSpace(kid.Text), kid.Text, "padded text under %v", p)
			case *markup.Spacing:
				_, priorSpace := prior.(*markup.Spacing)
				assert.False(t, priorSpace, "adjacent spacing under %v", p)
			}
			prior = kid
		}
		return true
	})
}

func TestSanitize(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"inline sibling space", `<a><b>x</b> <c/></a>`, `<a><b>x</b>_<c/></a>`},
		{"blank between blocks", "<a>\n\t<b/>\n</a>", `<a><b/></a>`},
		{"padded text", `<a> x <b> y </b> z </a>`, `<a>x_<b>_y_</b>_z</a>`},
		{"carry meets leading", `<a><b>x </b> y</a>`, `<a><b>x_</b>_y</a>`},
		{"atoms", `<a>x <!--c--> y</a>`, `<a>x_<!--c-->_y</a>`},
		{"paragraph boundaries", `<a>x <p> y </p> z</a>`, `<a>x<p>y</p>z</a>`},
		{"top level", "<?xml version=\"1.0\"?>\n<!DOCTYPE r>\n <r/> \n", `<?xml version="1.0"?><!DOCTYPE r><r/>`},
		{"top level inline", ` <b> x</b> `, `<b>_x</b>`},
		{"blank inline", `<a>x<b> </b>y</a>`, `<a>x<b>_</b>y</a>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := mustParse(t, tc.in)
			before := flat(raw)
			doc := Sanitize(raw, testDialect)
			assert.Equal(t, tc.out, flat(doc))
			assert.Equal(t, before, flat(raw), "input must not be modified")
			checkSiblings(t, doc)
		})
	}
}

func TestPropagate(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"hop left", `<a>x<b> y</b></a>`, `<a>x_<b>y</b></a>`},
		{"hop right", `<a><b>y </b>z</a>`, `<a><b>y</b>_z</a>`},
		{"hop nested", `<a>x<b><i> y</i></b></a>`, `<a>x_<b><i>y</i></b></a>`},
		{"hop nested right", `<a><b><i>y </i></b>z</a>`, `<a><b><i>y</i></b>_z</a>`},
		{"merge left", `<a>x <b> y</b></a>`, `<a>x_<b>y</b></a>`},
		{"merge right", `<a><b>y </b> <c>z</c></a>`, `<a><b>y</b>_<c>z</c></a>`},
		{"merge both", `<a>w<b>x </b><c> y</c>z</a>`, `<a>w<b>x</b>_<c>y</c>z</a>`},
		{"no left neighbor", `<a><b> y</b></a>`, `<a><b>_y</b></a>`},
		{"block neighbor", `<a><p>x</p><b> y</b></a>`, `<a><p>x</p><b>_y</b></a>`},
		{"block end", `<a>x<b>y </b></a>`, `<a>x<b>y_</b></a>`},
		{"middle stays", `<a><b>x y</b></a>`, `<a><b>x y</b></a>`},
		{"between siblings", `<a><b>x</b> <c/></a>`, `<a><b>x</b>_<c/></a>`},
		{"blank inline", `<a>x<b> </b>y</a>`, `<a>x_<b></b>y</a>`},
		{"inline root", `<r>x<b> y</b></r>`, `<r>x_<b>y</b></r>`},
		{"top level stays", ` <b> x</b> `, `<b>_x</b>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := Sanitize(mustParse(t, tc.in), testDialect)
			out, err := Propagate(doc, testDialect, Options{Strict: true})
			require.NoError(t, err)
			assert.Equal(t, tc.out, flat(out))
			checkSiblings(t, out)

			markup.Walk(out, func(n markup.Node) bool {
				if sp, ok := n.(*markup.Spacing); ok {
					assert.True(t, sp.PropagatedLeft && sp.PropagatedRight, "unresolved %v", sp)
				}
				if p, ok := n.(markup.Parent); ok {
					for _, kid := range p.Children() {
						assert.True(t, kid.Parent() == p, "parent link of %v", kid)
					}
				}
				return true
			})

			again, err := Propagate(out, testDialect, Options{Strict: true})
			require.NoError(t, err)
			assert.Equal(t, tc.out, flat(again), "resolved spacing must not move again")
		})
	}
}

func TestPropagate_invariant(t *testing.T) {
	build := func() *markup.Document {
		b := &markup.Tag{Name: "b"}
		b.Append(&markup.Spacing{}) // missing its close tag
		a := &markup.Tag{Name: "a"}
		a.Append(&markup.Text{Text: "x"})
		a.Append(b)
		a.Append(&markup.CloseTag{Name: "a"})
		doc := &markup.Document{}
		doc.Append(a)
		return doc
	}

	t.Run("strict", func(t *testing.T) {
		out, err := Propagate(build(), testDialect, Options{Strict: true})
		assert.Nil(t, out)
		var ie *InvariantError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "hop left", ie.Op)
	})

	t.Run("lenient", func(t *testing.T) {
		var buf bytes.Buffer
		out, err := Propagate(build(), testDialect, Options{Logger: log.New(&buf, "", 0)})
		require.NoError(t, err)
		assert.Equal(t, `<a>x<b>_</a>`, flat(out), "tree kept as is")
		assert.Contains(t, buf.String(), "spacing invariant violated: hop left")
	})
}
