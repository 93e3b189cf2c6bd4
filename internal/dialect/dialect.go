// Package dialect classifies element names for layout: block containers,
// paragraph-like blocks, and everything else (inline).
package dialect

import (
	"fmt"
	"sort"
	"strings"
)

// Class is the layout role of an element.
type Class uint8

const (
	// Inline elements flow with surrounding text.
	Inline Class = iota
	// Block elements always break around and inside themselves.
	Block
	// Paragraph elements break around themselves, but keep short content on
	// one line.
	Paragraph
)

func (c Class) String() string {
	switch c {
	case Inline:
		return "inline"
	case Block:
		return "block"
	case Paragraph:
		return "paragraph"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Dialect is a read-only name classification; the zero value and nil
// classify every name as Inline.
type Dialect struct {
	Name    string
	classes map[string]Class
}

// New returns a dialect with the given block and paragraph names. A name
// listed in both ends up a paragraph.
func New(name string, blocks, paras []string) *Dialect {
	d := &Dialect{Name: name, classes: make(map[string]Class, len(blocks)+len(paras))}
	for _, n := range blocks {
		d.classes[n] = Block
	}
	for _, n := range paras {
		d.classes[n] = Paragraph
	}
	return d
}

// Extend returns a copy of d with additional block and paragraph names.
func (d *Dialect) Extend(blocks, paras []string) *Dialect {
	if len(blocks) == 0 && len(paras) == 0 {
		return d
	}
	ext := New(d.name(), nil, nil)
	if d != nil {
		for n, c := range d.classes {
			ext.classes[n] = c
		}
	}
	for _, n := range blocks {
		ext.classes[n] = Block
	}
	for _, n := range paras {
		ext.classes[n] = Paragraph
	}
	return ext
}

func (d *Dialect) name() string {
	if d == nil {
		return ""
	}
	return d.Name
}

// Class returns the classification of an element name.
func (d *Dialect) Class(name string) Class {
	if d == nil {
		return Inline
	}
	return d.classes[name]
}

// IsBlockLevel reports whether name breaks lines around itself.
func (d *Dialect) IsBlockLevel(name string) bool { return d.Class(name) != Inline }

// Names returns the sorted names having class c.
func (d *Dialect) Names(c Class) []string {
	var names []string
	if d != nil {
		for n, nc := range d.classes {
			if nc == c {
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (d *Dialect) String() string {
	return fmt.Sprintf("%v{block: %v, paragraph: %v}",
		d.name(),
		strings.Join(d.Names(Block), " "),
		strings.Join(d.Names(Paragraph), " "))
}

// Generic classifies nothing; every element is inline.
var Generic = New("generic", nil, nil)

// TEI classifies the structural containers of TEI documents.
var TEI = New("tei",
	[]string{
		"TEI", "teiCorpus", "teiHeader", "fileDesc", "titleStmt", "editionStmt",
		"publicationStmt", "sourceDesc", "encodingDesc", "profileDesc",
		"revisionDesc", "text", "front", "body", "back", "group",
		"div", "div1", "div2", "div3", "div4", "div5", "div6", "div7",
		"lg", "list", "listBibl", "table", "row", "figure", "sp", "castList",
		"msDesc", "biblStruct", "facsimile", "surface", "standOff",
	},
	[]string{
		"p", "ab", "head", "l", "item", "cell", "bibl", "speaker", "stage",
		"trailer", "byline", "dateline", "docTitle", "titlePart", "opener",
		"closer", "salute", "signed", "argument", "epigraph", "change",
		"respStmt", "availability", "licence",
	},
)

// Named returns a preset by name.
func Named(name string) (*Dialect, error) {
	switch strings.ToLower(name) {
	case "tei":
		return TEI, nil
	case "generic", "":
		return Generic, nil
	}
	return nil, fmt.Errorf("unknown dialect %q", name)
}
