//go:build !ocr

package textable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/textable/ocr"
)

func TestFromReader_ImageWithoutOCR(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"

	_, _, err := FromReader(strings.NewReader(png), "ps.png").Rows()
	assert.ErrorIs(t, err, ocr.ErrOCRNotEnabled)
	assert.Contains(t, err.Error(), "ps.png")
}
