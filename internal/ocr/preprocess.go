package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// binarizeLevel is the grayscale cutoff for the OCR threshold pass.
// Plan drawings are near-binary already; 128 separates ink from paper
// without eating thin dimension strokes.
const binarizeLevel = 128

// Preprocess converts an image to high-contrast black and white for OCR:
// grayscale first, then a fixed-level threshold. Dimension text on plans
// is thin and often printed over light fills; binarization keeps the
// strokes and drops the fills.
func Preprocess(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	return segment.Threshold(gray, binarizeLevel)
}
