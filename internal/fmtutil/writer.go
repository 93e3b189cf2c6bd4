// Package fmtutil holds small IO helpers shared by the xmlfmt command:
// quoted argument scanning, upward file discovery, and line prefixing
// writers.
package fmtutil

import (
	"bytes"
	"io"
)

// ErrWriter wraps a writer, retaining its first error and refusing further
// writes after it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer while Err is nil.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// WriteString passes through to Writer while Err is nil.
func (ew *ErrWriter) WriteString(s string) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = io.WriteString(ew.Writer, s)
	}
	return n, ew.Err
}

// PrefixWriter returns a writer that puts prefix at the start of every line
// written through it. Complete lines are written through as they end; the
// caller should Close it to flush a partial final line.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	return &Prefixer{Prefix: prefix, To: w}
}

// Prefixer is the writer returned by PrefixWriter. Prefix may be changed
// between writes; it applies from the next line start.
type Prefixer struct {
	Prefix string
	To     io.Writer

	buf    bytes.Buffer
	midway bool // last byte buffered was not a newline
}

// Write buffers p with prefixes added, then flushes through the last newline.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if !p.midway {
			p.buf.WriteString(p.Prefix)
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
		}
		p.buf.Write(line)
		n += len(line)
		b = b[len(line):]
		p.midway = line[len(line)-1] != '\n'
	}
	return n, p.flushLines()
}

func (p *Prefixer) flushLines() error {
	data := p.buf.Bytes()
	i := bytes.LastIndexByte(data, '\n')
	if i < 0 {
		return nil
	}
	m, err := p.To.Write(data[:i+1])
	p.buf.Next(m)
	return err
}

// Close writes any buffered partial line.
func (p *Prefixer) Close() error {
	_, err := p.buf.WriteTo(p.To)
	p.midway = false
	return err
}
