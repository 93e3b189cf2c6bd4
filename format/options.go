package format

import (
	"log"

	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/doc"
)

// Option configures a format call.
type Option func(*config)

type config struct {
	width     int
	indent    string
	dialect   *dialect.Dialect
	logger    *log.Logger
	strict    bool
	artifacts ArtifactSink
}

func newConfig(opts []Option) config {
	cfg := config{
		width:   doc.DefaultMaxWidth,
		indent:  doc.DefaultIndent,
		dialect: dialect.TEI,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWidth sets the maximum line width; non-positive values keep the
// default of 80.
func WithWidth(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.width = n
		}
	}
}

// WithIndent sets the string written once per indent level; the default is
// a tab.
func WithIndent(s string) Option {
	return func(cfg *config) {
		if s != "" {
			cfg.indent = s
		}
	}
}

// WithDialect sets the element classification; the default is dialect.TEI.
func WithDialect(d *dialect.Dialect) Option {
	return func(cfg *config) {
		if d != nil {
			cfg.dialect = d
		}
	}
}

// WithLogger sets where internal spacing defects are reported when not
// strict.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithStrict makes internal spacing defects fail the call.
func WithStrict(strict bool) Option {
	return func(cfg *config) { cfg.strict = strict }
}

// WithArtifacts sends a dump of every intermediate pass to sink.
func WithArtifacts(sink ArtifactSink) Option {
	return func(cfg *config) { cfg.artifacts = sink }
}

// Dialect classifies element names as block, paragraph or inline.
type Dialect = dialect.Dialect

// Preset dialects.
var (
	TEI     = dialect.TEI
	Generic = dialect.Generic
)

// NewDialect returns a dialect with the given block and paragraph element
// names; all others are inline.
func NewDialect(name string, blocks, paras []string) *Dialect {
	return dialect.New(name, blocks, paras)
}
