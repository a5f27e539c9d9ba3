//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
	scale  int
}

// New creates a new OCR client configured for terminal screenshots: one
// uniform block of text with runs of spaces preserved.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set variable: %w", err)
	}
	return &Client{client: client, scale: DefaultScale}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetScale sets the upscaling factor applied before recognition.
func (c *Client) SetScale(scale int) {
	c.scale = scale
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.setImage(imageData); err != nil {
		return "", err
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeLines performs OCR on a terminal screenshot and rebuilds its
// lines with words at their original columns.
func (c *Client) RecognizeLines(imageData []byte) ([]string, error) {
	if err := c.setImage(imageData); err != nil {
		return nil, err
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, len(boxes))
	for i, b := range boxes {
		words[i] = Word{Text: b.Word, Box: b.Box, Confidence: b.Confidence}
	}
	return Layout(words), nil
}

func (c *Client) setImage(imageData []byte) error {
	data, err := Preprocess(imageData, c.scale)
	if err != nil {
		return err
	}
	if err := c.client.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
