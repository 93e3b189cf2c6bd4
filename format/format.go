// Package format reformats XML documents, TEI in particular, into an
// indented layout that respects a maximum line width.
//
// Formatting parses the document into a tag tree, replaces insignificant
// whitespace with spacing markers, floats those markers outward across
// inline tag boundaries, then lays the tree out as nested groups that each
// decide whether to break their lines.
package format

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jcorbin/xmlfmt/internal/doc"
	"github.com/jcorbin/xmlfmt/internal/layout"
	"github.com/jcorbin/xmlfmt/internal/markup"
	"github.com/jcorbin/xmlfmt/internal/whitespace"
)

// ArtifactSink receives named dumps of intermediate passes:
// raw.ast, sanitized.ast, spaced.ast and layout.doc.
type ArtifactSink interface {
	Artifact(name string, data []byte) error
}

// ArtifactFunc adapts a function to ArtifactSink.
type ArtifactFunc func(name string, data []byte) error

// Artifact calls the receiver.
func (f ArtifactFunc) Artifact(name string, data []byte) error { return f(name, data) }

// ParseError is returned for malformed input; see errors.As.
type ParseError = markup.ParseError

// Source returns the formatted form of src.
func Source(src []byte, opts ...Option) ([]byte, error) {
	return SourceContext(context.Background(), src, opts...)
}

// String is Source for strings.
func String(src string, opts ...Option) (string, error) {
	out, err := SourceContext(context.Background(), []byte(src), opts...)
	return string(out), err
}

// SourceContext is Source, checking ctx before each pass.
func SourceContext(ctx context.Context, src []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	run := pass{ctx: ctx, config: cfg}

	if err := run.check("parse"); err != nil {
		return nil, err
	}
	raw, err := markup.Parse(string(src))
	if err != nil {
		return nil, err
	}
	if err := run.dump("raw.ast", raw); err != nil {
		return nil, err
	}

	if err := run.check("sanitize"); err != nil {
		return nil, err
	}
	tree := whitespace.Sanitize(raw, cfg.dialect)
	if err := run.dump("sanitized.ast", tree); err != nil {
		return nil, err
	}

	if err := run.check("propagate"); err != nil {
		return nil, err
	}
	tree, err = whitespace.Propagate(tree, cfg.dialect, whitespace.Options{
		Strict: cfg.strict,
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "propagate")
	}
	if err := run.dump("spaced.ast", tree); err != nil {
		return nil, err
	}

	if err := run.check("layout"); err != nil {
		return nil, err
	}
	model := layout.Build(tree, cfg.dialect)
	if err := run.dump("layout.doc", model); err != nil {
		return nil, err
	}

	if err := run.check("render"); err != nil {
		return nil, err
	}
	r := doc.Renderer{MaxWidth: cfg.width, Indent: cfg.indent}
	return []byte(r.Render(model)), nil
}

type pass struct {
	ctx context.Context
	config
}

func (p pass) check(name string) error {
	if err := p.ctx.Err(); err != nil {
		return errors.Wrapf(err, "before %v", name)
	}
	return nil
}

func (p pass) dump(name string, v interface{}) error {
	if p.artifacts == nil {
		return nil
	}
	if err := p.artifacts.Artifact(name, []byte(fmt.Sprintf("%+v\n", v))); err != nil {
		return errors.Wrapf(err, "artifact %v", name)
	}
	return nil
}
