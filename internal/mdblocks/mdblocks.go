// Package mdblocks finds fenced code blocks of a given language inside
// markdown documents, so that their content can be checked or rewritten in
// place.
package mdblocks

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday"
)

// Block is one fenced code block.
type Block struct {
	Info    string // the fence info string, e.g. "xml"
	Literal []byte // block content, through its final newline
	// Offset is the byte offset of Literal within the source, or -1 when
	// the content is not verbatim in the source (e.g. inside a quote).
	Offset int
}

// Find returns the fenced code blocks in src whose info string names lang
// (case insensitive; any further info words are ignored).
func Find(src []byte, lang string) []Block {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.FencedCode))
	root := md.Parse(src)

	var blocks []Block
	cursor := 0
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || n.Type != blackfriday.CodeBlock || !n.IsFenced {
			return blackfriday.GoToNext
		}
		info := string(n.Info)
		if fields := strings.Fields(info); len(fields) == 0 || !strings.EqualFold(fields[0], lang) {
			return blackfriday.GoToNext
		}
		b := Block{Info: info, Literal: n.Literal, Offset: -1}
		if i := bytes.Index(src[cursor:], n.Literal); i >= 0 && len(n.Literal) > 0 {
			b.Offset = cursor + i
			cursor = b.Offset + len(n.Literal)
		}
		blocks = append(blocks, b)
		return blackfriday.GoToNext
	})
	return blocks
}

// Rewrite returns src with each locatable block's content replaced by
// fn's result; blocks without an Offset are left alone. The first error
// from fn stops the rewrite.
func Rewrite(src []byte, blocks []Block, fn func(Block) ([]byte, error)) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))
	last := 0
	for _, b := range blocks {
		if b.Offset < last {
			continue
		}
		repl, err := fn(b)
		if err != nil {
			return nil, err
		}
		out.Write(src[last:b.Offset])
		out.Write(repl)
		last = b.Offset + len(b.Literal)
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}
