package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_EmptyInput(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, "", e.Text(nil, "empty.pdf"))
	assert.Equal(t, "", e.Text([]byte{}, "empty.pdf"))
}

func TestText_GarbageInput(t *testing.T) {
	// Not a PDF at all; must degrade to "" rather than error.
	e := NewExtractor()
	assert.Equal(t, "", e.Text([]byte("this is not a pdf"), "garbage.pdf"))
}

func TestText_TruncatedHeader(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, "", e.Text([]byte("%PDF-1.7\n"), "truncated.pdf"))
}
