// Package imaging handles plan image loading, caching, and rendering of
// analysis overlays.
//
// Coordinates are 0-based with the origin at the top-left corner, X
// increasing rightward and Y increasing downward, matching the geometry
// package. PlanCache is safe for concurrent use; the rendering functions
// are stateless.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// PlanCache caches decoded plan images by file path so repeated tool
// calls against the same plan skip disk I/O and decoding.
//
// Entries stay resident until Evict or Clear. A long-running server
// processing many distinct plans should clear between jobs to bound
// memory.
type PlanCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewPlanCache returns an empty cache ready for concurrent use.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image for path, reading and decoding it on
// first use. PNG, JPEG, and GIF are supported.
//
// The exact path string is the cache key, so relative and absolute
// paths to the same file cache separately.
func (c *PlanCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes every cached image.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the cached image for path, if present.
func (c *PlanCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// PlanInfo contains metadata about a loaded plan image.
type PlanInfo struct {
	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", or "unknown". Detection is by
	// file extension, not contents.
	Format string `json:"format"`

	// ColorDepth is the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the on-disk size of the image file.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadPlanInfo loads a plan image into the cache and returns its
// metadata: dimensions, format, color depth, alpha presence, and file
// size.
func LoadPlanInfo(cache *PlanCache, path string) (*PlanInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &PlanInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of a plan image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns an image's pixel dimensions, loading it into
// the cache if needed. Lightweight alternative to LoadPlanInfo when
// only the size matters.
func GetDimensions(cache *PlanCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
