package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/xmlfmt/internal/dialect"
)

func Test_settings_readConfig(t *testing.T) {
	s := defaultSettings()
	require.NoError(t, s.readConfig("test", strings.NewReader(`
# project settings
width 100
indent 2
dialect generic
block doc section
block chapter   # more
para para 'title page'
`)))
	assert.Equal(t, settings{
		width:   100,
		indent:  "  ",
		dialect: "generic",
		blocks:  []string{"doc", "section", "chapter"},
		paras:   []string{"para", "title page"},
	}, s)

	d, err := s.resolveDialect()
	require.NoError(t, err)
	assert.Equal(t, dialect.Block, d.Class("section"))
	assert.Equal(t, dialect.Paragraph, d.Class("title page"))
	assert.Equal(t, dialect.Inline, d.Class("p"))

	var back settings
	require.NoError(t, back.readConfig("round trip", strings.NewReader(s.String())))
	assert.Equal(t, s, back)
}

func Test_settings_errors(t *testing.T) {
	for _, tc := range []struct {
		in  string
		err string
	}{
		{"width", "test:1: width takes one value, got 0"},
		{"\nwidth wide", "test:2: invalid width \"wide\""},
		{"width -4", "test:1: invalid width \"-4\""},
		{"indent 1 2", "test:1: indent takes one value, got 2"},
		{"colour red", "test:1: unknown setting \"colour\""},
		{`dialect "tei`, "test:1: invalid syntax"},
	} {
		s := defaultSettings()
		err := s.readConfig("test", strings.NewReader(tc.in))
		assert.EqualError(t, err, tc.err, "reading %q", tc.in)
	}

	s := settings{dialect: "docbook"}
	_, err := s.options()
	assert.EqualError(t, err, `unknown dialect "docbook"`)
}

func Test_parseIndent(t *testing.T) {
	assert.Equal(t, "\t", parseIndent("tab"))
	assert.Equal(t, "    ", parseIndent("4"))
	assert.Equal(t, "", parseIndent("0"))
	assert.Equal(t, "--", parseIndent("--"))
}

func Test_commaList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, commaList("a, b,,c "))
	assert.Nil(t, commaList(""))
}

func Test_loadConfig(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte("width 60\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	t.Cleanup(func() { os.Chdir(wd) })

	s := defaultSettings()
	path, err := s.loadConfig()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, configName))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 60, s.width)
}
