// Package server implements the MCP (Model Context Protocol) front end of the
// pixel picker.
//
// The server owns one picker session and translates tool calls into the
// pointer, keyboard and button events an interactive front end would send.
// Session state (loaded image, cursor, selection, slots) persists between
// calls for the lifetime of the process.
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
// Image and surface:
//   - picker_load: Attach an image from a path or base64 bytes
//   - picker_surface: Set the display size used for coordinate scaling
//   - picker_to_display: Image -> display coordinates
//
// Cursor and sampling:
//   - picker_pointer_move: Display offset -> cursor, hover color, magnifier
//   - picker_cursor: Set, nudge or center the cursor
//   - picker_crosshair: Toggle crosshair (magnifier) mode
//   - picker_sample: Exact color of one pixel
//   - picker_magnify: 25x25 neighborhood at 6x as PNG
//
// Region selection:
//   - picker_select: start / update / end / clear / preview a drag
//   - picker_autopick: Toggle or re-run the 5x2 grid sampling
//   - picker_region_crop: Nearest-neighbor preview of the region
//
// Slots and export:
//   - picker_slot: Manage the 10 color slots
//   - picker_export: Script or colors text from auto or slot colors
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Out-of-range coordinates are not errors; they are clamped by the core.
// Export with nothing to export succeeds with empty text.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
