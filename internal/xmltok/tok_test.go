package xmltok_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlfmt/internal/xmltok"
)

type eventLog []string

func (el *eventLog) add(format string, args ...interface{}) {
	*el = append(*el, fmt.Sprintf(format, args...))
}

func (el *eventLog) XMLDecl(d Decl) {
	el.add("decl %q %q %q", d.Version, d.Encoding, d.Standalone)
}
func (el *eventLog) Doctype(body string)          { el.add("doctype %q", body) }
func (el *eventLog) ProcInst(target, body string) { el.add("pi %q %q", target, body) }
func (el *eventLog) CDATA(body string)            { el.add("cdata %q", body) }
func (el *eventLog) Comment(body string)          { el.add("comment %q", body) }
func (el *eventLog) OpenTag(name string, attrs []Attr, selfClosing bool) {
	var parts []string
	for _, a := range attrs {
		parts = append(parts, a.Name+"="+a.Value)
	}
	el.add("open %v [%v] %v", name, strings.Join(parts, " "), selfClosing)
}
func (el *eventLog) CloseTag(name string, selfClosing bool) { el.add("close %v %v", name, selfClosing) }
func (el *eventLog) Text(raw string)                        { el.add("text %q", raw) }
func (el *eventLog) Error(err error)                        { el.add("error") }

func TestFeed(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "elements",
			in:   `<a x="1" y='two'>hi <b/></a>`,
			out: []string{
				"open a [x=1 y=two] false",
				`text "hi "`,
				"open b [] true",
				"close b true",
				"close a false",
			},
		},
		{
			name: "prolog",
			in:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE TEI>\n<?xml-model href=\"tei.rng\"?><!-- hi --><r><![CDATA[a<b]]></r>",
			out: []string{
				`decl "1.0" "UTF-8" ""`,
				`text "\n"`,
				`doctype "TEI"`,
				`text "\n"`,
				`pi "xml-model" "href=\"tei.rng\""`,
				`comment " hi "`,
				"open r [] false",
				`cdata "a<b"`,
				"close r false",
			},
		},
		{
			name: "processing instruction bodies",
			in:   "<?php echo 'a b'; $x = 1; ?><?render   mode = fast ?><?empty?><?multi\n  line\n?>",
			out: []string{
				`pi "php" "echo 'a b'; $x = 1; "`,
				`pi "render" "  mode = fast "`,
				`pi "empty" ""`,
				`pi "multi" "  line\n"`,
			},
		},
		{
			name: "attribute spacing",
			in:   `<a  k = "v w" ></a >`,
			out: []string{
				"open a [k=v w] false",
				"close a false",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var el eventLog
			require.NoError(t, Feed(tc.in, &el))
			assert.Equal(t, tc.out, []string(el))
		})
	}
}

func TestFeed_unterminated(t *testing.T) {
	var el eventLog
	err := Feed(`<a x="1"`, &el)
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "unterminated tag <a")
	assert.Equal(t, "error", el[len(el)-1], "handler sees the error")
}

func TestFeed_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		msg  string
	}{
		{"stray lt", "<r><</r>", `invalid tag name "</r"`},
		{"empty name", "<>", `invalid tag name ""`},
		{"bad end name", "<r></1r>", `invalid tag name "1r"`},
		{"bad target", "<?1x?>", `invalid processing instruction target "1x"`},
		{"duplicate attribute", `<r a="1" a="2"/>`, "duplicate attribute a on <r>"},
		{"gt in pi", "<?pi a > b?>", "unsupported > inside <?pi"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var el eventLog
			err := Feed(tc.in, &el)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.msg, se.Message)
		})
	}
}

func TestCollapse(t *testing.T) {
	for _, tc := range []struct{ in, out string }{
		{"", ""},
		{"abc", "abc"},
		{"  ", " "},
		{"\n\t a \r\n b\f", " a b "},
		{"café  naïve", "café naïve"},
	} {
		assert.Equal(t, tc.out, Collapse(tc.in), "Collapse(%q)", tc.in)
	}
	assert.True(t, IsSpace(" \n\t"))
	assert.True(t, IsSpace(""))
	assert.False(t, IsSpace(" x "))
}
