package server

import "github.com/ironsheep/pixel-picker-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image and surface
		{
			Name:        "picker_load",
			Description: "Load an image as the picking surface, from a file path or base64 data. Clears the selection and centers the cursor; saved slots are kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if this path was loaded before (use after the file changed on disk)",
					},
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes (PNG, JPEG, GIF, BMP, TIFF or WebP). Used when path is empty.",
					},
				},
			},
		},
		{
			Name:        "picker_surface",
			Description: "Set the rendered size of the display surface. Pointer offsets are scaled by image size / surface size, independently on each axis.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  numberProp("Rendered width in display units"),
					"height": numberProp("Rendered height in display units"),
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "picker_to_display",
			Description: "Convert an image pixel coordinate to display coordinates (unrounded) for overlay positioning.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": intProp("Image X coordinate"),
					"y": intProp("Image Y coordinate"),
				},
				"required": []string{"x", "y"},
			},
		},

		// Cursor and sampling
		{
			Name:        "picker_pointer_move",
			Description: "Report a pointer position in display space. Moves the cursor to the pixel underneath and returns its color; includes the magnifier when crosshair mode is on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"offset_x": numberProp("Pointer X offset in display units"),
					"offset_y": numberProp("Pointer Y offset in display units"),
				},
				"required": []string{"offset_x", "offset_y"},
			},
		},
		{
			Name:        "picker_cursor",
			Description: "Move the image-space cursor: set it, nudge it by a delta (arrow keys), or reset it to the image center (which enables crosshair mode).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"set", "nudge", "center"},
						"description": "Cursor operation (default set)",
					},
					"x": intProp("Target X for set, delta X for nudge"),
					"y": intProp("Target Y for set, delta Y for nudge"),
				},
			},
		},
		{
			Name:        "picker_crosshair",
			Description: "Turn crosshair mode on or off. While on, pointer moves also return the magnifier.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"enabled"},
			},
		},
		{
			Name:        "picker_sample",
			Description: "Get the exact color of an image pixel. Out-of-range coordinates are clamped to the nearest edge pixel. Without coordinates, samples the cursor.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": intProp("X coordinate (0-based, from left)"),
					"y": intProp("Y coordinate (0-based, from top)"),
				},
			},
		},
		{
			Name:        "picker_magnify",
			Description: "Render a 25x25 pixel neighborhood enlarged 6x as a base64 PNG, with the center pixel outlined.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": intProp("Center X (default: cursor)"),
					"y": intProp("Center Y (default: cursor)"),
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file path to also write the PNG to",
					},
				},
			},
		},

		// Region selection
		{
			Name:        "picker_select",
			Description: "Drive a rectangular drag selection in image space. A region commits on end only when both sides exceed 3 pixels; committing samples a 5x2 grid of colors when auto-pick is on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"start", "update", "end", "clear", "preview", "status"},
						"description": "Selection operation",
					},
					"x": intProp("Image X coordinate (start/update/end)"),
					"y": intProp("Image Y coordinate (start/update/end)"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "picker_autopick",
			Description: "Enable or disable auto-sampling on region commit, or re-run it on the committed region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "New auto-pick setting; omit to leave unchanged",
					},
					"resample": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-sample the committed region now",
					},
				},
			},
		},
		{
			Name:        "picker_region_crop",
			Description: "Return the committed region as a base64 PNG enlarged with nearest-neighbor scaling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer enlargement factor (default 1). The enlarged image may be at most 8192 pixels on a side.",
						"default":     1,
						"minimum":     1,
						"maximum":     imaging.MaxCropScale,
					},
				},
			},
		},

		// Slots and export
		{
			Name:        "picker_slot",
			Description: "Manage the 10 color slots: save the hover color, copy an auto-sampled color, set a color by hex, clear one or all, or list them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"save_hover", "save_auto", "set", "clear", "clear_all", "list"},
						"description": "Slot operation",
					},
					"slot":       intProp("Slot index 0-9"),
					"auto_index": intProp("Index into the auto-sampled colors (save_auto)"),
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as #RRGGBB (set)",
					},
					"x": intProp("Image X recorded with the color (set)"),
					"y": intProp("Image Y recorded with the color (set)"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "picker_export",
			Description: "Serialize colors into the delta-encoded script text. 'script' emits region corners, anchor BGR hex, dx|dy|BGR offsets and fixed trailer; 'colors' emits only the two color lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"script", "colors"},
						"description": "Output layout (default script)",
					},
					"source": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"auto", "slots"},
						"description": "Auto-sampled colors or filled slots (default auto)",
					},
				},
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
