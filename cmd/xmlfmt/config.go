package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jcorbin/xmlfmt/format"
	"github.com/jcorbin/xmlfmt/internal/dialect"
	"github.com/jcorbin/xmlfmt/internal/fmtutil"
)

const configName = ".xmlfmt"

// settings are the formatting knobs shared by the config file and flags.
type settings struct {
	width   int
	indent  string
	dialect string
	blocks  []string
	paras   []string
}

func defaultSettings() settings {
	return settings{dialect: "tei"}
}

// loadConfig reads the nearest config file above the working directory into
// s, returning its path; it is not an error for there to be none.
func (s *settings) loadConfig() (string, error) {
	path, err := fmtutil.FindWDFile(configName)
	if err != nil || path == "" {
		return "", err
	}
	return path, s.readConfigFile(path)
}

func (s *settings) readConfigFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.readConfig(path, f)
}

func (s *settings) readConfig(name string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		args, err := fmtutil.SplitArgs(sc.Text())
		if err == nil && len(args) > 0 {
			err = s.set(args[0], args[1:])
		}
		if err != nil {
			return errors.Wrapf(err, "%v:%v", name, n)
		}
	}
	return sc.Err()
}

func (s *settings) set(key string, vals []string) error {
	one := func() (string, error) {
		if len(vals) != 1 {
			return "", errors.Errorf("%v takes one value, got %v", key, len(vals))
		}
		return vals[0], nil
	}
	switch key {
	case "width":
		val, err := one()
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return errors.Errorf("invalid width %q", val)
		}
		s.width = n
	case "indent":
		val, err := one()
		if err != nil {
			return err
		}
		s.indent = parseIndent(val)
	case "dialect":
		val, err := one()
		if err != nil {
			return err
		}
		s.dialect = val
	case "block":
		s.blocks = append(s.blocks, vals...)
	case "para":
		s.paras = append(s.paras, vals...)
	default:
		return errors.Errorf("unknown setting %q", key)
	}
	return nil
}

// parseIndent reads a count as that many spaces, and "tab" as a tab.
func parseIndent(val string) string {
	if val == "tab" {
		return "\t"
	}
	if n, err := strconv.Atoi(val); err == nil && n >= 0 {
		return strings.Repeat(" ", n)
	}
	return val
}

func (s settings) resolveDialect() (*dialect.Dialect, error) {
	d, err := dialect.Named(s.dialect)
	if err != nil {
		return nil, err
	}
	return d.Extend(s.blocks, s.paras), nil
}

func (s settings) options() ([]format.Option, error) {
	d, err := s.resolveDialect()
	if err != nil {
		return nil, err
	}
	return []format.Option{
		format.WithWidth(s.width),
		format.WithIndent(s.indent),
		format.WithDialect(d),
	}, nil
}

// String renders s in config file syntax.
func (s settings) String() string {
	var lines []string
	add := func(args ...string) { lines = append(lines, fmtutil.QuotedArgs(args)) }
	if s.width > 0 {
		add("width", strconv.Itoa(s.width))
	}
	if s.indent != "" {
		add("indent", s.indent)
	}
	add("dialect", s.dialect)
	if len(s.blocks) > 0 {
		add(append([]string{"block"}, s.blocks...)...)
	}
	if len(s.paras) > 0 {
		add(append([]string{"para"}, s.paras...)...)
	}
	return strings.Join(lines, "\n")
}

// commaList splits a flag value like "a,b, c" into names.
func commaList(val string) []string {
	var names []string
	for _, name := range strings.Split(val, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
