package xmltok

import (
	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/transform"
)

// Collapser is a transform.Transformer that replaces every run of XML
// whitespace (space, tab, CR, LF, FF) with a single space. Unlike a folder it
// keeps a single leading and trailing space, since those carry meaning across
// tag boundaries.
type Collapser struct {
	// inRun is true while inside a whitespace run whose space was emitted.
	inRun bool
}

// Reset implements transform.Transformer.
func (c *Collapser) Reset() { c.inRun = false }

// Transform implements transform.Transformer.
func (c *Collapser) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if parse.IsWhitespace(b) {
			if !c.inRun {
				if nDst >= len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = ' '
				nDst++
				c.inRun = true
			}
			nSrc++
			continue
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
		c.inRun = false
	}
	return nDst, nSrc, nil
}

// Collapse returns s with every whitespace run replaced by a single space.
func Collapse(s string) string {
	out, _, err := transform.String(&Collapser{}, s)
	if err != nil {
		return s
	}
	return out
}

// IsSpace reports whether s is empty or all XML whitespace.
func IsSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !parse.IsWhitespace(s[i]) {
			return false
		}
	}
	return true
}
