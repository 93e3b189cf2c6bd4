package mdblocks_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlfmt/internal/mdblocks"
)

const readme = "# Sample\n" +
	"\n" +
	"Some prose.\n" +
	"\n" +
	"```xml\n" +
	"<a><b/></a>\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"package main\n" +
	"```\n" +
	"\n" +
	"~~~XML title=two\n" +
	"<c/>\n" +
	"~~~\n" +
	"\n" +
	"    <indented>not fenced</indented>\n"

func TestFind(t *testing.T) {
	blocks := Find([]byte(readme), "xml")
	require.Len(t, blocks, 2)

	assert.Equal(t, "xml", blocks[0].Info)
	assert.Equal(t, "<a><b/></a>\n", string(blocks[0].Literal))
	assert.Equal(t, bytes.Index([]byte(readme), []byte("<a><b/>")), blocks[0].Offset)

	assert.True(t, strings.HasPrefix(blocks[1].Info, "XML"), "got info %q", blocks[1].Info)
	assert.Equal(t, "<c/>\n", string(blocks[1].Literal))
	assert.True(t, blocks[1].Offset > blocks[0].Offset)

	assert.Empty(t, Find([]byte("no code here\n"), "xml"))
}

func TestRewrite(t *testing.T) {
	src := []byte(readme)
	blocks := Find(src, "xml")
	out, err := Rewrite(src, blocks, func(b Block) ([]byte, error) {
		return bytes.ToUpper(b.Literal), nil
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "```xml\n<A><B/></A>\n```\n")
	assert.Contains(t, string(out), "~~~XML title=two\n<C/>\n~~~\n")
	assert.Contains(t, string(out), "package main\n", "other blocks untouched")

	_, err = Rewrite(src, blocks, func(b Block) ([]byte, error) {
		return nil, errors.New("bad block")
	})
	assert.EqualError(t, err, "bad block")
}
