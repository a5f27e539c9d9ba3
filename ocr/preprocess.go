package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// DefaultScale is the upscaling factor applied before recognition.
// Terminal fonts are small and Tesseract is most accurate on glyphs about
// 30 pixels tall.
const DefaultScale = 3

// Preprocess prepares a terminal screenshot for recognition: the image is
// converted to grayscale, inverted when the background is dark, and
// upscaled by scale. The result is PNG encoded.
func Preprocess(data []byte, scale int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if scale < 1 {
		scale = 1
	}

	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	if darkBackground(gray) {
		for i, v := range gray.Pix {
			gray.Pix[i] = 255 - v
		}
	}

	var out image.Image = gray
	if scale > 1 {
		dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// darkBackground reports whether the mean luminance is below mid gray.
func darkBackground(img *image.Gray) bool {
	if len(img.Pix) == 0 {
		return false
	}
	var sum int
	for _, v := range img.Pix {
		sum += int(v)
	}
	return sum/len(img.Pix) < 128
}
