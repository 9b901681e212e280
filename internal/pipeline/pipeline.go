// Package pipeline composes the analysis stages into a single run over
// one floor-plan image's detections: classify rooms, assign furniture,
// refine room types from furniture, and optionally overlay OCR-derived
// dimensions.
//
// A run is a pure function of its input. The pipeline holds no state
// between runs, so independent runs for different images may execute
// concurrently without coordination; AnalyzeBatch does exactly that.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roomscan/floorplan-mcp/internal/dimension"
	"github.com/roomscan/floorplan-mcp/internal/floorplan"
)

// Input is everything one run needs: the raw detections from the
// external recognition service, the externally calibrated scale factor,
// and optionally the OCR text tokens for the dimension overlay.
type Input struct {
	Rooms     []floorplan.RawDetection `json:"rooms"`
	Furniture []floorplan.RawDetection `json:"furniture"`
	Tokens    []dimension.TextToken    `json:"ocr_tokens,omitempty"`

	// Scale is the physical length represented by one pixel. Calibration
	// is the caller's job; a non-positive scale is a caller error.
	Scale float64 `json:"scale"`
}

// Result is the enriched model produced by one run.
type Result struct {
	Rooms     []*floorplan.Room          `json:"rooms"`
	Furniture []*floorplan.FurnitureItem `json:"furniture"`
}

// Pipeline bundles the tunables shared by every run.
type Pipeline struct {
	Classifier *floorplan.Classifier

	// DimensionTolerancePx gates how far outside a room outline a
	// dimension label may sit and still be assigned to the room.
	DimensionTolerancePx float64

	// BatchLimit bounds AnalyzeBatch concurrency. Zero means one
	// goroutine per input.
	BatchLimit int
}

// New returns a pipeline with default classifier thresholds and
// dimension tolerance.
func New() *Pipeline {
	return &Pipeline{
		Classifier:           floorplan.NewClassifier(),
		DimensionTolerancePx: dimension.DefaultTolerancePx,
	}
}

// Run executes the full stage sequence on one input and returns the
// enriched collections. Inputs are not mutated; rooms and furniture are
// freshly constructed each run.
func (p *Pipeline) Run(in Input) Result {
	rooms := p.Classifier.ClassifyAll(in.Rooms, in.Scale)
	items := floorplan.ClassifyFurniture(in.Furniture)

	floorplan.AssignFurniture(items, rooms)
	floorplan.ReclassifyRooms(rooms, floorplan.BuildFurnitureIndex(items))

	if len(in.Tokens) > 0 {
		dimension.Overlay(in.Tokens, rooms, p.DimensionTolerancePx)
	}

	return Result{Rooms: rooms, Furniture: items}
}

// AnalyzeBatch runs the pipeline over several independent inputs
// concurrently, preserving input order in the results. The context only
// bounds scheduling of not-yet-started runs; a run in flight is
// CPU-bound and short.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if p.BatchLimit > 0 {
		g.SetLimit(p.BatchLimit)
	}

	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Run(inputs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
