package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// detectionSchema is the JSON schema fragment for one raw detection:
// a bounding box, an optional outline polygon, a class label, and a
// confidence score.
func detectionSchema(what string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": what,
		"properties": map[string]interface{}{
			"bounding_box": map[string]interface{}{
				"type":        "object",
				"description": "Axis-aligned bounding box in pixels",
				"properties": map[string]interface{}{
					"x":      map[string]interface{}{"type": "number"},
					"y":      map[string]interface{}{"type": "number"},
					"width":  map[string]interface{}{"type": "number"},
					"height": map[string]interface{}{"type": "number"},
				},
				"required": []string{"x", "y", "width", "height"},
			},
			"polygon": map[string]interface{}{
				"type":        "array",
				"description": "Optional outline polygon; falls back to the box corners",
				"items":       pointSchema(),
			},
			"class_label": map[string]interface{}{
				"type":        "string",
				"description": "Detector class label, e.g. 'kitchen' or 'bed'",
			},
			"confidence": map[string]interface{}{
				"type":        "number",
				"description": "Detector confidence, 0 to 1",
			},
		},
		"required": []string{"bounding_box"},
	}
}

func pointSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "number"},
			"y": map[string]interface{}{"type": "number"},
		},
		"required": []string{"x", "y"},
	}
}

func tokenSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "One OCR text token with its bounding polygon",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{"type": "string"},
			"vertices": map[string]interface{}{
				"type":  "array",
				"items": pointSchema(),
			},
		},
		"required": []string{"text", "vertices"},
	}
}

func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Physical length of one pixel. Defaults to the server's configured scale.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Plan Image Information
		{
			Name:        "floorplan_image_load",
			Description: "Load a floor-plan image file and return its dimensions, format, and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_image_dimensions",
			Description: "Get the width and height of a floor-plan image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Classification Stages
		{
			Name:        "floorplan_classify_rooms",
			Description: "Classify raw room detections into typed rooms with pixel and physical dimensions. Label-bearing detections keep their label's type; the rest are typed from shape and size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rooms": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw room detection"),
					},
					"scale": scaleProperty(),
				},
				"required": []string{"rooms"},
			},
		},
		{
			Name:        "floorplan_assign_furniture",
			Description: "Classify furniture detections and assign each item to the room containing it. Items whose center lies in no room fall back to a corner-majority vote.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rooms": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw room detection"),
					},
					"furniture": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw furniture detection"),
					},
					"scale": scaleProperty(),
				},
				"required": []string{"rooms", "furniture"},
			},
		},
		{
			Name:        "floorplan_refine_room_types",
			Description: "Re-type unknown rooms from the furniture assigned to them: a bed implies a bedroom, a toilet a bathroom, a dining set a dining room. Rooms already typed are never overridden.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rooms": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw room detection"),
					},
					"furniture": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw furniture detection"),
					},
					"scale": scaleProperty(),
				},
				"required": []string{"rooms", "furniture"},
			},
		},
		{
			Name:        "floorplan_analyze",
			Description: "Run the full analysis pipeline on one plan's detections: classify rooms, classify and assign furniture, refine room types from furniture, and overlay OCR-derived dimensions if text tokens are provided.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rooms": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw room detection"),
					},
					"furniture": map[string]interface{}{
						"type":  "array",
						"items": detectionSchema("One raw furniture detection"),
					},
					"ocr_tokens": map[string]interface{}{
						"type":  "array",
						"items": tokenSchema(),
					},
					"scale": scaleProperty(),
				},
				"required": []string{"rooms"},
			},
		},
		{
			Name:        "floorplan_analyze_batch",
			Description: "Run the full analysis pipeline over several independent plans concurrently. Results preserve input order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"inputs": map[string]interface{}{
						"type":        "array",
						"description": "One entry per plan, shaped like floorplan_analyze arguments",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"rooms": map[string]interface{}{
									"type":  "array",
									"items": detectionSchema("One raw room detection"),
								},
								"furniture": map[string]interface{}{
									"type":  "array",
									"items": detectionSchema("One raw furniture detection"),
								},
								"ocr_tokens": map[string]interface{}{
									"type":  "array",
									"items": tokenSchema(),
								},
								"scale": scaleProperty(),
							},
							"required": []string{"rooms"},
						},
					},
				},
				"required": []string{"inputs"},
			},
		},

		// Local Fallbacks
		{
			Name:        "floorplan_detect_rooms",
			Description: "Detect room candidates directly from a plan image, for when no external detection output is available. Tuned for clean drawings with solid wall lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum bounding-box area in square pixels (default 500)",
						"default":     500,
					},
					"min_rectangularity": map[string]interface{}{
						"type":        "number",
						"description": "How closely a contour must match its bounding-box perimeter, 0 to 1 (default 0.5)",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_read_dimensions",
			Description: "Read dimension text from a plan image with OCR and interpret it: parses values like '3.5m', '12ft', or bare millimeter counts, and drops implausible readings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "OCR language hint (default from server config)",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional rectangular region to read. If omitted, reads the whole image.",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"path"},
			},
		},

		// Rendering
		{
			Name:        "floorplan_render_overlay",
			Description: "Render analysis results over a plan image: room fills in type colors, furniture outlines, and room-type labels. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"rooms": map[string]interface{}{
						"type":        "array",
						"description": "Rooms from a previous analyze call",
						"items":       map[string]interface{}{"type": "object"},
					},
					"furniture": map[string]interface{}{
						"type":        "array",
						"description": "Furniture items from a previous analyze call",
						"items":       map[string]interface{}{"type": "object"},
					},
					"fill_opacity": map[string]interface{}{
						"type":        "number",
						"description": "Room fill strength, 0 to 1 (default from server config)",
					},
					"draw_furniture": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw furniture box outlines (default true)",
						"default":     true,
					},
					"draw_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Write room types at polygon centroids (default true)",
						"default":     true,
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the result to at most this width (default from server config)",
					},
				},
				"required": []string{"path", "rooms"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
