package fmtutil_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlfmt/internal/fmtutil"
)

func TestSplitArgs(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out []string
	}{
		{"", nil},
		{"   ", nil},
		{"width 100", []string{"width", "100"}},
		{`indent "  "`, []string{"indent", "  "}},
		{`block 'a b' c`, []string{"block", "a b", "c"}},
		{`x "say \"hi\""`, []string{"x", `say "hi"`}},
		{"dialect tei # the default", []string{"dialect", "tei"}},
		{"# all comment", nil},
		{"  para\tp  ", []string{"para", "p"}},
	} {
		args, err := SplitArgs(tc.in)
		if assert.NoError(t, err, "SplitArgs(%q)", tc.in) {
			assert.Equal(t, tc.out, args, "SplitArgs(%q)", tc.in)
		}
	}

	_, err := SplitArgs(`width "100`)
	assert.Error(t, err, "unterminated quote")
}

func TestQuotedArgs(t *testing.T) {
	args := []string{"indent", "  ", "plain", "", `q"`}
	s := QuotedArgs(args)
	assert.Equal(t, `indent "  " plain "" "q\""`, s)
	back, err := SplitArgs(s)
	require.NoError(t, err)
	assert.Equal(t, args, back)
}

func TestFindUpFile(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".xmlfmt"), []byte("width 10\n"), 0o644))

	path, err := FindUpFile(deep, ".xmlfmt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", ".xmlfmt"), path)

	path, err = FindUpFile(deep, ".nonesuch-xmlfmt-test")
	require.NoError(t, err)
	assert.Equal(t, "", path)
}

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := PrefixWriter("> ", &out)
	fmt.Fprint(pw, "one\ntw")
	assert.Equal(t, "> one\n", out.String(), "partial line is held")
	fmt.Fprint(pw, "o\n")
	pw.Prefix = ">> "
	fmt.Fprint(pw, "three\nfour")
	require.NoError(t, pw.Close())
	assert.Equal(t, "> one\n> two\n>> three\n>> four", out.String())
}

type failWriter struct{ n int }

func (fw *failWriter) Write(p []byte) (int, error) {
	fw.n++
	return 0, errors.New("nope")
}

func TestErrWriter(t *testing.T) {
	var fw failWriter
	ew := &ErrWriter{Writer: &fw}
	_, err := ew.Write([]byte("a"))
	assert.EqualError(t, err, "nope")
	_, err = ew.WriteString("b")
	assert.EqualError(t, err, "nope")
	assert.Equal(t, 1, fw.n, "no writes after the first error")
}
