// Package xmltok adapts the tdewolff XML lexer into a stream of document
// events, SAX style.
package xmltok

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Attr is an attribute as lexed; Value is unquoted but not unescaped.
type Attr struct {
	Name  string
	Value string
}

// Decl holds the pseudo-attributes of an <?xml ...?> declaration.
type Decl struct {
	Version    string
	Encoding   string
	Standalone string
}

// Handler receives document events in source order.
type Handler interface {
	XMLDecl(d Decl)
	Doctype(body string)
	ProcInst(target, body string)
	CDATA(body string)
	Comment(body string)
	OpenTag(name string, attrs []Attr, selfClosing bool)
	// CloseTag follows every OpenTag; selfClosing is true for the synthetic
	// close of a self closing tag.
	CloseTag(name string, selfClosing bool)
	Text(raw string)
	Error(err error)
}

// SyntaxError is a lexing failure at a byte offset.
type SyntaxError struct {
	Offset  int
	Message string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %v: %v", err.Offset, err.Message)
}

type pendingTag struct {
	name      string
	pi        bool
	attrs     []Attr
	bodyStart int // source offset just past a processing instruction target
}

// Feed lexes all of src, calling h for every event. Lexing stops at the
// first error, which is passed to h.Error and returned.
func Feed(src string, h Handler) error {
	var (
		in     = parse.NewInputString(src)
		l      = xml.NewLexer(in)
		offset int // end of the previous token
		tag    *pendingTag
	)
	fail := func(msg string) error {
		err := &SyntaxError{Offset: offset, Message: msg}
		h.Error(err)
		return err
	}

	for {
		tt, data := l.Next()
		raw := string(data)
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return fail(err.Error())
			}
			if tag != nil {
				return fail(fmt.Sprintf("unterminated tag <%v", tag.name))
			}
			return nil

		case xml.CommentToken:
			h.Comment(trimDelims(raw, "<!--", "-->"))

		case xml.CDATAToken:
			h.CDATA(trimDelims(raw, "<![CDATA[", "]]>"))

		case xml.DOCTYPEToken:
			h.Doctype(strings.TrimSpace(trimDelims(raw, "<!DOCTYPE", ">")))

		case xml.StartTagToken:
			name := string(l.Text())
			if !isName(name) {
				return fail(fmt.Sprintf("invalid tag name %q", strings.TrimPrefix(raw, "<")))
			}
			tag = &pendingTag{name: name}

		case xml.StartTagPIToken:
			name := string(l.Text())
			if !isName(name) {
				return fail(fmt.Sprintf("invalid processing instruction target %q", strings.TrimPrefix(raw, "<?")))
			}
			tag = &pendingTag{name: name, pi: true, bodyStart: in.Offset()}

		case xml.AttributeToken:
			if tag == nil {
				return fail("attribute outside of tag")
			}
			a := splitAttr(strings.TrimSpace(raw))
			if name := l.Text(); len(name) > 0 {
				a.Name = string(name)
				a.Value = ""
				if val := l.AttrVal(); val != nil {
					a.Value = unquote(string(val))
				}
			}
			if !tag.pi {
				for _, prior := range tag.attrs {
					if prior.Name == a.Name {
						return fail(fmt.Sprintf("duplicate attribute %v on <%v>", a.Name, tag.name))
					}
				}
			}
			tag.attrs = append(tag.attrs, a)

		case xml.StartTagCloseToken:
			if tag == nil {
				return fail("unexpected >")
			} else if tag.pi {
				return fail(fmt.Sprintf("unsupported > inside <?%v", tag.name))
			}
			h.OpenTag(tag.name, tag.attrs, false)
			tag = nil

		case xml.StartTagCloseVoidToken:
			if tag == nil {
				return fail("unexpected />")
			} else if tag.pi {
				return fail(fmt.Sprintf("unsupported /> inside <?%v", tag.name))
			}
			h.OpenTag(tag.name, tag.attrs, true)
			h.CloseTag(tag.name, true)
			tag = nil

		case xml.StartTagClosePIToken:
			if tag == nil || !tag.pi {
				return fail("unexpected ?>")
			}
			if tag.name == "xml" {
				h.XMLDecl(declOf(tag.attrs))
			} else {
				h.ProcInst(tag.name, piBody(src[tag.bodyStart:in.Offset()-len("?>")]))
			}
			tag = nil

		case xml.EndTagToken:
			name := strings.TrimSpace(string(l.Text()))
			if !isName(name) {
				return fail(fmt.Sprintf("invalid tag name %q", trimDelims(raw, "</", ">")))
			}
			h.CloseTag(name, false)

		case xml.TextToken:
			h.Text(raw)
		}
		offset = in.Offset()
	}
}

// piBody drops the single separator after a processing instruction target,
// keeping the rest verbatim.
func piBody(s string) string {
	if s != "" && isSpace(s[0]) {
		return s[1:]
	}
	return s
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// isName reports whether s is an XML name: a letter, '_' or ':', followed by
// letters, digits, marks, or any of "-._:".
func isName(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == ':':
		case i > 0 && (unicode.IsDigit(r) || unicode.IsMark(r) || r == '-' || r == '.' || r == '\u00b7'):
		default:
			return false
		}
	}
	return s != ""
}

func trimDelims(s, open, close string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, open), close)
}

// splitAttr splits a `name = "value"` lexeme; a bare word has no value.
func splitAttr(word string) Attr {
	i := strings.IndexByte(word, '=')
	if i < 0 {
		return Attr{Name: word}
	}
	return Attr{
		Name:  strings.TrimSpace(word[:i]),
		Value: unquote(strings.TrimSpace(word[i+1:])),
	}
}

func unquote(val string) string {
	if n := len(val); n >= 2 {
		if q := val[0]; (q == '"' || q == '\'') && val[n-1] == q {
			return val[1 : n-1]
		}
	}
	return val
}

func declOf(attrs []Attr) (d Decl) {
	for _, a := range attrs {
		switch a.Name {
		case "version":
			d.Version = a.Value
		case "encoding":
			d.Encoding = a.Value
		case "standalone":
			d.Standalone = a.Value
		}
	}
	return d
}
