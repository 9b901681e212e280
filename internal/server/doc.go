// Package server implements the MCP (Model Context Protocol) server for
// floor-plan analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the analysis
// pipeline through the MCP protocol, so MCP-compatible clients can turn
// raw floor-plan detections into classified, dimensioned room models.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Plan Image Information:
//   - floorplan_image_load: Load a plan image and get metadata
//   - floorplan_image_dimensions: Get width and height
//
// Classification Stages:
//   - floorplan_classify_rooms: Type rooms from labels and geometry
//   - floorplan_assign_furniture: Link furniture to containing rooms
//   - floorplan_refine_room_types: Re-type unknown rooms from furniture
//   - floorplan_analyze: Run the full pipeline on one plan
//   - floorplan_analyze_batch: Run the pipeline over several plans
//
// Local Fallbacks (for when external recognition output is unavailable):
//   - floorplan_detect_rooms: Find room candidates from wall lines
//   - floorplan_read_dimensions: OCR and interpret dimension text
//
// Rendering:
//   - floorplan_render_overlay: Draw results over the plan as PNG
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded plan images, keyed
// by path and reused across tool calls for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
