package markup

import "strings"

// Open returns the markup of the tag's start: `<name attrs>`, or
// `<name attrs/>` when self closing.
func (t *Tag) Open() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(t.Name)
	t.Attrs.AppendTo(&sb)
	if t.SelfClosing {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}
	return sb.String()
}

// End returns the markup `</name>`.
func (ct *CloseTag) End() string { return "</" + ct.Name + ">" }

// Source returns the declaration markup, omitting empty pseudo-attributes.
func (d *Decl) Source() string {
	var as Attrs
	if d.Version != "" {
		as.Set("version", d.Version)
	}
	if d.Encoding != "" {
		as.Set("encoding", d.Encoding)
	}
	if d.Standalone != "" {
		as.Set("standalone", d.Standalone)
	}
	var sb strings.Builder
	sb.WriteString("<?xml")
	as.AppendTo(&sb)
	sb.WriteString("?>")
	return sb.String()
}

// Source returns `<!DOCTYPE body>`.
func (d *Doctype) Source() string { return "<!DOCTYPE " + d.Body + ">" }

// Source returns `<?target body?>`.
func (pi *ProcInst) Source() string {
	if pi.Body == "" {
		return "<?" + pi.Target + "?>"
	}
	return "<?" + pi.Target + " " + pi.Body + "?>"
}

// Source returns `<![CDATA[body]]>`.
func (cd *CDATA) Source() string { return "<![CDATA[" + cd.Body + "]]>" }

// Source returns `<!--body-->`.
func (c *Comment) Source() string { return "<!--" + c.Body + "-->" }

// Atom is implemented by the leaves that pass through verbatim.
type Atom interface {
	Node
	Source() string
}

var (
	_ Atom = (*Decl)(nil)
	_ Atom = (*Doctype)(nil)
	_ Atom = (*ProcInst)(nil)
	_ Atom = (*CDATA)(nil)
	_ Atom = (*Comment)(nil)
)
