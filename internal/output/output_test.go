package output

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestPrinterClasses(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := NewPrinterTo([]Class{Required, Error, Normal}, false, &stdout, &stderr)

	p.Out(Normal, "normal %d\n", 1)
	p.Out(Verbose, "verbose\n")
	p.Out(Error, "error\n")
	p.Warn("careful %s", "now")

	assert.Equal(t, "normal 1\n", stdout.String())
	assert.Equal(t, "error\ncareful now\n", stderr.String())
	assert.True(t, p.Enabled(Normal))
	assert.False(t, p.Enabled(Verbose))
}

func TestPrinterEscapes(t *testing.T) {
	var stderr bytes.Buffer
	p := NewPrinterTo([]Class{Error}, true, &bytes.Buffer{}, &stderr)
	p.Fail("broken")
	assert.Equal(t, "\x1B[31mbroken\x1B[0m\n", stderr.String())
	assert.Equal(t, "\x1B[2mx\x1B[0m", p.Dim("x"))
	assert.Equal(t, "x", Discard().Dim("x"))
	assert.Equal(t, "\x1B[1mx\x1B[0m", p.Bold("x"))
	assert.Equal(t, "x", Discard().Bold("x"))
}

func TestNumberedList(t *testing.T) {
	assert.Equal(t, "1. a\n2. b\n", NumberedList([]string{"a", "b"}))
	assert.Empty(t, NumberedList(nil))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "directory", Plural(1, "directory", "directories"))
	assert.Equal(t, "directories", Plural(0, "directory", "directories"))
	assert.Equal(t, "directories", Plural([]string{"a", "b"}, "directory", "directories"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent(2, "a\nb"))
}

func TestVisualFileTree(t *testing.T) {
	tree := NewVisualFileTree("Beatles")
	tree.InsertDir("Abbey Road")
	tree.InsertPath("Abbey Road/01.mp3", "+ ")
	tree.InsertPath("cover.jpg", "~ ")

	rendered := tree.Render()
	assert.True(t, strings.HasPrefix(rendered, "Beatles\n"))
	assert.Contains(t, rendered, "Abbey Road")
	assert.Contains(t, rendered, "+ 01.mp3")
	assert.Contains(t, rendered, "~ cover.jpg")
	assert.Equal(t, 3, tree.Len())
}
