package markup

import "strings"

// Attr is a single name="value" pair; Value keeps its source escaping.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an insertion-ordered attribute mapping.
type Attrs []Attr

// Get returns the value of the named attribute.
func (as Attrs) Get(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set updates the named attribute in place, or appends it.
func (as *Attrs) Set(name, value string) {
	for i, a := range *as {
		if a.Name == name {
			(*as)[i].Value = value
			return
		}
	}
	*as = append(*as, Attr{name, value})
}

// Clone returns a copy that shares no storage with the receiver.
func (as Attrs) Clone() Attrs {
	if as == nil {
		return nil
	}
	return append(Attrs(make([]Attr, 0, len(as))), as...)
}

// Equal reports whether both hold the same pairs in the same order.
func (as Attrs) Equal(other Attrs) bool {
	if len(as) != len(other) {
		return false
	}
	for i := range as {
		if as[i] != other[i] {
			return false
		}
	}
	return true
}

// AppendTo writes each attribute as ` name="value"` into sb.
// Values containing a double quote are written in single quotes instead.
func (as Attrs) AppendTo(sb *strings.Builder) {
	for _, a := range as {
		q := byte('"')
		if strings.IndexByte(a.Value, '"') >= 0 {
			q = '\''
		}
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteByte('=')
		sb.WriteByte(q)
		sb.WriteString(a.Value)
		sb.WriteByte(q)
	}
}
