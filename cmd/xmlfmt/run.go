package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/jcorbin/xmlfmt/format"
	"github.com/jcorbin/xmlfmt/internal/fmtutil"
	"github.com/jcorbin/xmlfmt/internal/mdblocks"
)

var (
	// errReported is returned once failures have already been logged.
	errReported = errors.New("errors reported")
	// errUsage is returned after the flag set has reported a usage error.
	errUsage = errors.New("usage error")
)

type command struct {
	stdin  io.Reader
	stdout io.Writer
	logOut *fmtutil.Prefixer
	logger *log.Logger

	write    bool
	list     bool
	markdown bool
	strict   bool
	verbose  bool
	debugDir string

	opts []format.Option
}

func (c *command) main(ctx context.Context, args []string) error {
	if c.logger == nil {
		c.logger = log.New(c.logOut, "", 0)
	}

	var (
		configPath string
		fl         struct {
			width           int
			indent, dialect string
			blocks, paras   string
		}
	)
	flags := flag.NewFlagSet("xmlfmt", flag.ContinueOnError)
	flags.SetOutput(c.logOut.To)
	flags.BoolVar(&c.write, "w", false, "write result to the source file instead of stdout")
	flags.BoolVar(&c.list, "l", false, "list files whose formatting differs")
	flags.BoolVar(&c.markdown, "md", false, "format ```xml fenced blocks of every file, not just *.md files")
	flags.BoolVar(&c.strict, "strict", false, "fail on internal spacing defects instead of logging them")
	flags.BoolVar(&c.verbose, "v", false, "enable verbose logging")
	flags.StringVar(&c.debugDir, "debug", "", "write intermediate pass dumps under `dir`")
	flags.StringVar(&configPath, "config", "", "read settings from `file` instead of the nearest "+configName+"; \"none\" for none")
	flags.IntVar(&fl.width, "width", 0, "maximum line width (default 80)")
	flags.StringVar(&fl.indent, "indent", "", "indent string, space count, or \"tab\" (default tab)")
	flags.StringVar(&fl.dialect, "dialect", "", "element classification preset: tei or generic (default tei)")
	flags.StringVar(&fl.blocks, "block", "", "comma separated block element `names` to add to the dialect")
	flags.StringVar(&fl.paras, "para", "", "comma separated paragraph element `names` to add to the dialect")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	s := defaultSettings()
	switch configPath {
	case "none":
	case "":
		path, err := s.loadConfig()
		if err != nil {
			return err
		}
		if path != "" && c.verbose {
			c.logger.Printf("using %v", path)
		}
	default:
		if err := s.readConfigFile(configPath); err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			s.width = fl.width
		case "indent":
			s.indent = parseIndent(fl.indent)
		case "dialect":
			s.dialect = fl.dialect
		case "block":
			s.blocks = commaList(fl.blocks)
		case "para":
			s.paras = commaList(fl.paras)
		}
	})
	if c.verbose {
		c.logger.Printf("settings:\n%v", s)
	}

	opts, err := s.options()
	if err != nil {
		return err
	}
	c.opts = append(opts, format.WithStrict(c.strict), format.WithLogger(c.logger))

	if flags.NArg() == 0 {
		if c.write {
			return errors.New("cannot use -w with standard input")
		}
		src, err := ioutil.ReadAll(c.stdin)
		if err != nil {
			return err
		}
		return c.files(ctx, namedStore{"<stdin>", &memStore{cur: string(src), defined: true}})
	}
	stores := make([]namedStore, 0, flags.NArg())
	for _, name := range flags.Args() {
		stores = append(stores, namedStore{name, &fsStore{filename: name}})
	}
	return c.files(ctx, stores...)
}

type namedStore struct {
	name string
	store
}

// files formats each store in order, stopping early only when ctx is done.
func (c *command) files(ctx context.Context, stores ...namedStore) error {
	failed := false
	for _, ns := range stores {
		if err := c.file(ctx, ns.name, ns.store); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// file formats one named store, logging any error under the name.
func (c *command) file(ctx context.Context, name string, st store) (rerr error) {
	prefix := c.logOut.Prefix
	c.logOut.Prefix = prefix + name + ": "
	defer func() {
		if rerr != nil && !errors.Is(rerr, context.Canceled) {
			c.logger.Print(rerr)
		}
		c.logOut.Prefix = prefix
	}()

	src, err := readStore(st)
	if err != nil {
		return err
	}
	out, err := c.format(ctx, name, src)
	if err != nil {
		return err
	}

	changed := !bytes.Equal(src, out)
	if c.verbose {
		if changed {
			c.logger.Printf("reformatted")
		} else {
			c.logger.Printf("unchanged")
		}
	}
	if c.list && changed {
		if _, err := fmt.Fprintln(c.stdout, name); err != nil {
			return err
		}
	}
	if c.write && changed {
		return writeStore(st, out)
	}
	if !c.list && !c.write {
		_, err := c.stdout.Write(out)
		return err
	}
	return nil
}

func (c *command) format(ctx context.Context, name string, src []byte) ([]byte, error) {
	if !c.markdown && !isMarkdown(name) {
		return format.SourceContext(ctx, src, c.withArtifacts(name)...)
	}

	blocks := mdblocks.Find(src, "xml")
	for i, b := range blocks {
		if b.Offset < 0 && c.verbose {
			c.logger.Printf("xml block %v is not verbatim in the source, skipping", i+1)
		}
	}
	i := 0
	return mdblocks.Rewrite(src, blocks, func(b mdblocks.Block) ([]byte, error) {
		i++
		out, err := format.SourceContext(ctx, b.Literal, c.withArtifacts(fmt.Sprintf("%v.%d", name, i))...)
		return out, pkgerrors.Wrapf(err, "xml block %v", i)
	})
}

func (c *command) withArtifacts(name string) []format.Option {
	if c.debugDir == "" {
		return c.opts
	}
	opts := make([]format.Option, len(c.opts), len(c.opts)+1)
	copy(opts, c.opts)
	return append(opts, format.WithArtifacts(dirSink{c.debugDir}.sub(name)))
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
