// Package ocr reads dimension text tokens from a floor-plan image using
// the Tesseract engine.
//
// The primary source of OCR tokens is an external text-detection
// service; this package is the local fallback for when only the image is
// at hand. Tesseract must be installed on the system together with the
// language data for the requested language (e.g. tesseract-ocr-eng).
//
// Recognized words are returned in the same token shape the external
// service delivers — text plus bounding polygon — so the dimension
// interpreter downstream does not care where tokens came from.
package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/roomscan/floorplan-mcp/internal/dimension"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// ReadDimensionTokens runs word-level OCR on an image file and returns
// every recognized word as a text token. Interpretation and plausibility
// filtering are the dimension package's job; this function reports what
// the engine saw, including non-numeric words.
func ReadDimensionTokens(imagePath, language string) ([]dimension.TextToken, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	tokens := make([]dimension.TextToken, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		tokens = append(tokens, tokenFromBox(box.Word, box.Box))
	}
	return tokens, nil
}

// ReadDimensionTokensFromImage binarizes an in-memory image and runs
// word-level OCR on it. Binarization (see Preprocess) noticeably helps
// Tesseract on scanned plans where walls and text share gray tones.
//
// Tesseract needs a file path, so the preprocessed image goes through a
// temporary PNG that is removed before returning.
func ReadDimensionTokensFromImage(img image.Image, language string) ([]dimension.TextToken, error) {
	prepared := Preprocess(img)

	tmp, err := os.CreateTemp("", "floorplan-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, prepared); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmp.Close()

	return ReadDimensionTokens(tmpPath, language)
}

// ReadDimensionTokensFromRegion runs OCR on a rectangular region of an
// image, with token polygons adjusted back to full-image coordinates.
// Useful when the caller already knows which part of the plan carries
// the dimension strings.
func ReadDimensionTokensFromRegion(img image.Image, x1, y1, x2, y2 int, language string) ([]dimension.TextToken, error) {
	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	tokens, err := ReadDimensionTokensFromImage(cropped, language)
	if err != nil {
		return nil, err
	}

	offset := geometry.Point{X: float64(x1), Y: float64(y1)}
	for i := range tokens {
		for j := range tokens[i].Vertices {
			tokens[i].Vertices[j].X += offset.X
			tokens[i].Vertices[j].Y += offset.Y
		}
	}
	return tokens, nil
}

// tokenFromBox converts one Tesseract word box to the external token
// shape: the box corners become the bounding polygon.
func tokenFromBox(word string, box image.Rectangle) dimension.TextToken {
	r := geometry.Rect{
		X: float64(box.Min.X),
		Y: float64(box.Min.Y),
		W: float64(box.Dx()),
		H: float64(box.Dy()),
	}
	return dimension.TextToken{Text: word, Vertices: r.Polygon()}
}
