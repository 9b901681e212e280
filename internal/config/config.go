// Package config loads server configuration from an optional YAML file
// with environment-variable overrides. Every value has a working
// default, so the server runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roomscan/floorplan-mcp/internal/floorplan"
)

// DefaultPath is the config file consulted when no path is given.
const DefaultPath = "floorplan.yaml"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "FLOORPLAN_CONFIG"

// Config is the root configuration for the floor-plan server.
type Config struct {
	// Scale is the default physical-units-per-pixel factor applied when
	// a tool call does not provide its own.
	Scale float64 `yaml:"scale"`

	// BatchLimit caps how many plans are analyzed concurrently in batch
	// calls. Zero or negative means unlimited.
	BatchLimit int `yaml:"batch_limit"`

	OCR      OCRConfig      `yaml:"ocr"`
	Classify ClassifyConfig `yaml:"classify"`
	Detect   DetectConfig   `yaml:"detect"`
	Render   RenderConfig   `yaml:"render"`
}

// OCRConfig controls dimension-text reading.
type OCRConfig struct {
	// Language is the Tesseract language code.
	Language string `yaml:"language"`

	// TolerancePx is how far, in pixels, a dimension annotation may sit
	// from a room outline and still be assigned to that room.
	TolerancePx float64 `yaml:"tolerance_px"`

	// PlausibleMinMeters and PlausibleMaxMeters bound the values kept
	// after interpretation; anything outside is discarded as OCR noise.
	PlausibleMinMeters float64 `yaml:"plausible_min_meters"`
	PlausibleMaxMeters float64 `yaml:"plausible_max_meters"`
}

// ClassifyConfig holds the geometry thresholds for room classification.
// Area cutoffs are in squared physical units; the defaults assume
// square feet.
type ClassifyConfig struct {
	HallwayAspect float64 `yaml:"hallway_aspect"`
	DiningAspect  float64 `yaml:"dining_aspect"`
	AreaCloset    float64 `yaml:"area_closet"`
	AreaBathroom  float64 `yaml:"area_bathroom"`
	AreaBedroom   float64 `yaml:"area_bedroom"`
	AreaMidSize   float64 `yaml:"area_mid_size"`
}

// DetectConfig tunes the fallback room detector.
type DetectConfig struct {
	// MinRoomArea is the minimum bounding-box area in square pixels.
	MinRoomArea int `yaml:"min_room_area"`

	// MinRectangularity is the contour rectangularity cutoff, 0 to 1.
	MinRectangularity float64 `yaml:"min_rectangularity"`
}

// RenderConfig tunes overlay rendering.
type RenderConfig struct {
	FillOpacity float64 `yaml:"fill_opacity"`

	// MaxWidth, when positive, downscales rendered overlays.
	MaxWidth int `yaml:"max_width"`
}

// Load reads the config file at path, falling back to $FLOORPLAN_CONFIG
// and then DefaultPath. A missing file is not an error; defaults and
// environment overrides provide all configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := envOverrideFloat(&cfg.Scale, "FLOORPLAN_SCALE"); err != nil {
		return nil, err
	}
	if err := envOverrideInt(&cfg.BatchLimit, "FLOORPLAN_BATCH_LIMIT"); err != nil {
		return nil, err
	}
	envOverride(&cfg.OCR.Language, "FLOORPLAN_OCR_LANGUAGE")
	if err := envOverrideFloat(&cfg.OCR.TolerancePx, "FLOORPLAN_OCR_TOLERANCE_PX"); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.BatchLimit == 0 {
		c.BatchLimit = 4
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.OCR.TolerancePx == 0 {
		c.OCR.TolerancePx = 20
	}
	if c.OCR.PlausibleMinMeters == 0 {
		c.OCR.PlausibleMinMeters = 0.1
	}
	if c.OCR.PlausibleMaxMeters == 0 {
		c.OCR.PlausibleMaxMeters = 50
	}
	if c.Classify.HallwayAspect == 0 {
		c.Classify.HallwayAspect = 0.4
	}
	if c.Classify.DiningAspect == 0 {
		c.Classify.DiningAspect = 0.85
	}
	if c.Classify.AreaCloset == 0 {
		c.Classify.AreaCloset = 30
	}
	if c.Classify.AreaBathroom == 0 {
		c.Classify.AreaBathroom = 80
	}
	if c.Classify.AreaBedroom == 0 {
		c.Classify.AreaBedroom = 150
	}
	if c.Classify.AreaMidSize == 0 {
		c.Classify.AreaMidSize = 250
	}
	if c.Detect.MinRoomArea == 0 {
		c.Detect.MinRoomArea = 500
	}
	if c.Detect.MinRectangularity == 0 {
		c.Detect.MinRectangularity = 0.5
	}
	if c.Render.FillOpacity == 0 {
		c.Render.FillOpacity = 0.35
	}
}

func (c *Config) validate() error {
	if c.Scale < 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.OCR.TolerancePx < 0 {
		return fmt.Errorf("ocr.tolerance_px must not be negative, got %v", c.OCR.TolerancePx)
	}
	if c.OCR.PlausibleMinMeters >= c.OCR.PlausibleMaxMeters {
		return fmt.Errorf("ocr plausible range is empty: min %v >= max %v",
			c.OCR.PlausibleMinMeters, c.OCR.PlausibleMaxMeters)
	}
	if !(c.Classify.AreaCloset < c.Classify.AreaBathroom &&
		c.Classify.AreaBathroom < c.Classify.AreaBedroom &&
		c.Classify.AreaBedroom < c.Classify.AreaMidSize) {
		return fmt.Errorf("classify area cutoffs must be strictly increasing")
	}
	if c.Render.FillOpacity < 0 || c.Render.FillOpacity > 1 {
		return fmt.Errorf("render.fill_opacity must be in [0,1], got %v", c.Render.FillOpacity)
	}
	if c.Detect.MinRectangularity < 0 || c.Detect.MinRectangularity > 1 {
		return fmt.Errorf("detect.min_rectangularity must be in [0,1], got %v", c.Detect.MinRectangularity)
	}
	return nil
}

// Classifier builds a room classifier from the configured thresholds.
func (c *Config) Classifier() *floorplan.Classifier {
	return &floorplan.Classifier{
		HallwayAspect: c.Classify.HallwayAspect,
		DiningAspect:  c.Classify.DiningAspect,
		AreaCloset:    c.Classify.AreaCloset,
		AreaBathroom:  c.Classify.AreaBathroom,
		AreaBedroom:   c.Classify.AreaBedroom,
		AreaMidSize:   c.Classify.AreaMidSize,
	}
}

func envOverride(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

func envOverrideInt(field *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*field = parsed
	return nil
}

func envOverrideFloat(field *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*field = parsed
	return nil
}
