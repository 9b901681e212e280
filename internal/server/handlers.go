package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roomscan/floorplan-mcp/internal/detect"
	"github.com/roomscan/floorplan-mcp/internal/dimension"
	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/imaging"
	"github.com/roomscan/floorplan-mcp/internal/ocr"
	"github.com/roomscan/floorplan-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "floorplan_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Plan Image Information
	case "floorplan_image_load":
		return s.handleImageLoad(args)
	case "floorplan_image_dimensions":
		return s.handleImageDimensions(args)

	// Classification Stages
	case "floorplan_classify_rooms":
		return s.handleClassifyRooms(args)
	case "floorplan_assign_furniture":
		return s.handleAssignFurniture(args)
	case "floorplan_refine_room_types":
		return s.handleRefineRoomTypes(args)
	case "floorplan_analyze":
		return s.handleAnalyze(args)
	case "floorplan_analyze_batch":
		return s.handleAnalyzeBatch(args)

	// Local Fallbacks
	case "floorplan_detect_rooms":
		return s.handleDetectRooms(args)
	case "floorplan_read_dimensions":
		return s.handleReadDimensions(args)

	// Rendering
	case "floorplan_render_overlay":
		return s.handleRenderOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// scaleOrDefault substitutes the configured scale for an absent one.
func (s *Server) scaleOrDefault(scale float64) float64 {
	if scale > 0 {
		return scale
	}
	return s.cfg.Scale
}

// === Plan Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadPlanInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Classification Stage Handlers ===

type classifyRoomsArgs struct {
	Rooms []floorplan.RawDetection `json:"rooms"`
	Scale float64                  `json:"scale"`
}

// ClassifyRoomsResult contains the classified rooms.
type ClassifyRoomsResult struct {
	Rooms []*floorplan.Room `json:"rooms"`
	Count int               `json:"count"`
}

func (s *Server) handleClassifyRooms(args json.RawMessage) (interface{}, error) {
	var a classifyRoomsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rooms := s.pipe.Classifier.ClassifyAll(a.Rooms, s.scaleOrDefault(a.Scale))
	return &ClassifyRoomsResult{Rooms: rooms, Count: len(rooms)}, nil
}

type detectionsArgs struct {
	Rooms     []floorplan.RawDetection `json:"rooms"`
	Furniture []floorplan.RawDetection `json:"furniture"`
	Scale     float64                  `json:"scale"`
}

// AssignFurnitureResult contains furniture items with their room links,
// plus the rooms used for the assignment.
type AssignFurnitureResult struct {
	Rooms     []*floorplan.Room          `json:"rooms"`
	Furniture []*floorplan.FurnitureItem `json:"furniture"`

	// AssignedCount is how many items found a containing room.
	AssignedCount int `json:"assigned_count"`
}

func (s *Server) handleAssignFurniture(args json.RawMessage) (interface{}, error) {
	var a detectionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rooms := s.pipe.Classifier.ClassifyAll(a.Rooms, s.scaleOrDefault(a.Scale))
	items := floorplan.ClassifyFurniture(a.Furniture)
	floorplan.AssignFurniture(items, rooms)

	assigned := 0
	for _, item := range items {
		if item.AssignedRoomID != "" {
			assigned++
		}
	}
	return &AssignFurnitureResult{Rooms: rooms, Furniture: items, AssignedCount: assigned}, nil
}

// RefineResult contains rooms after the furniture refinement pass.
type RefineResult struct {
	Rooms     []*floorplan.Room          `json:"rooms"`
	Furniture []*floorplan.FurnitureItem `json:"furniture"`

	// RefinedCount is how many rooms got their type from furniture.
	RefinedCount int `json:"refined_count"`
}

func (s *Server) handleRefineRoomTypes(args json.RawMessage) (interface{}, error) {
	var a detectionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rooms := s.pipe.Classifier.ClassifyAll(a.Rooms, s.scaleOrDefault(a.Scale))
	items := floorplan.ClassifyFurniture(a.Furniture)
	floorplan.AssignFurniture(items, rooms)
	floorplan.ReclassifyRooms(rooms, floorplan.BuildFurnitureIndex(items))

	refined := 0
	for _, room := range rooms {
		if room.Source == floorplan.SourceFurniture {
			refined++
		}
	}
	return &RefineResult{Rooms: rooms, Furniture: items, RefinedCount: refined}, nil
}

type analyzeArgs struct {
	Rooms     []floorplan.RawDetection `json:"rooms"`
	Furniture []floorplan.RawDetection `json:"furniture"`
	Tokens    []dimension.TextToken    `json:"ocr_tokens"`
	Scale     float64                  `json:"scale"`
}

func (a analyzeArgs) input(defaultScale float64) pipeline.Input {
	scale := a.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	return pipeline.Input{
		Rooms:     a.Rooms,
		Furniture: a.Furniture,
		Tokens:    a.Tokens,
		Scale:     scale,
	}
}

func (s *Server) handleAnalyze(args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.pipe.Run(a.input(s.cfg.Scale)), nil
}

type analyzeBatchArgs struct {
	Inputs []analyzeArgs `json:"inputs"`
}

// AnalyzeBatchResult contains per-plan results in input order.
type AnalyzeBatchResult struct {
	Results []pipeline.Result `json:"results"`
	Count   int               `json:"count"`
}

func (s *Server) handleAnalyzeBatch(args json.RawMessage) (interface{}, error) {
	var a analyzeBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	inputs := make([]pipeline.Input, len(a.Inputs))
	for i, in := range a.Inputs {
		inputs[i] = in.input(s.cfg.Scale)
	}

	results, err := s.pipe.AnalyzeBatch(context.Background(), inputs)
	if err != nil {
		return nil, err
	}
	return &AnalyzeBatchResult{Results: results, Count: len(results)}, nil
}

// === Local Fallback Handlers ===

type detectRoomsArgs struct {
	Path              string  `json:"path"`
	MinArea           int     `json:"min_area"`
	MinRectangularity float64 `json:"min_rectangularity"`
}

func (s *Server) handleDetectRooms(args json.RawMessage) (interface{}, error) {
	var a detectRoomsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinArea == 0 {
		a.MinArea = s.cfg.Detect.MinRoomArea
	}
	if a.MinRectangularity == 0 {
		a.MinRectangularity = s.cfg.Detect.MinRectangularity
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detect.DetectRoomCandidates(img, a.MinArea, a.MinRectangularity)
}

type readDimensionsArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Region   *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

// ReadDimensionsResult contains the OCR tokens and the dimension
// annotations interpreted from them.
type ReadDimensionsResult struct {
	Tokens      []dimension.TextToken  `json:"tokens"`
	Annotations []dimension.Annotation `json:"annotations"`

	// TokenCount counts every word OCR saw; AnnotationCount counts the
	// subset that parsed as a plausible dimension.
	TokenCount      int `json:"token_count"`
	AnnotationCount int `json:"annotation_count"`
}

func (s *Server) handleReadDimensions(args json.RawMessage) (interface{}, error) {
	var a readDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCR.Language
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var tokens []dimension.TextToken
	if a.Region != nil {
		tokens, err = ocr.ReadDimensionTokensFromRegion(img, a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2, a.Language)
	} else {
		tokens, err = ocr.ReadDimensionTokensFromImage(img, a.Language)
	}
	if err != nil {
		return nil, err
	}

	anns := dimension.TokensToAnnotationsRange(tokens, s.cfg.OCR.PlausibleMinMeters, s.cfg.OCR.PlausibleMaxMeters)
	return &ReadDimensionsResult{
		Tokens:          tokens,
		Annotations:     anns,
		TokenCount:      len(tokens),
		AnnotationCount: len(anns),
	}, nil
}

// === Rendering Handlers ===

type renderOverlayArgs struct {
	Path          string                    `json:"path"`
	Rooms         []floorplan.Room          `json:"rooms"`
	Furniture     []floorplan.FurnitureItem `json:"furniture"`
	FillOpacity   float64                   `json:"fill_opacity"`
	DrawFurniture *bool                     `json:"draw_furniture"`
	DrawLabels    *bool                     `json:"draw_labels"`
	MaxWidth      int                       `json:"max_width"`
}

func (s *Server) handleRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a renderOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := imaging.OverlayOptions{
		FillOpacity:   a.FillOpacity,
		DrawFurniture: true,
		DrawLabels:    true,
		MaxWidth:      a.MaxWidth,
	}
	if opts.FillOpacity == 0 {
		opts.FillOpacity = s.cfg.Render.FillOpacity
	}
	if opts.MaxWidth == 0 {
		opts.MaxWidth = s.cfg.Render.MaxWidth
	}
	if a.DrawFurniture != nil {
		opts.DrawFurniture = *a.DrawFurniture
	}
	if a.DrawLabels != nil {
		opts.DrawLabels = *a.DrawLabels
	}

	return imaging.RenderOverlay(img, a.Rooms, a.Furniture, opts)
}
