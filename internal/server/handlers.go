package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/pixel-picker-mcp/internal/imaging"
	"github.com/ironsheep/pixel-picker-mcp/internal/picker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "picker_load", "picker_export").
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
	if s.debug {
		log.Printf("tools/call %s", params.Name)
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image and surface
	case "picker_load":
		return s.handlePickerLoad(args)
	case "picker_surface":
		return s.handlePickerSurface(args)
	case "picker_to_display":
		return s.handlePickerToDisplay(args)

	// Cursor and sampling
	case "picker_pointer_move":
		return s.handlePickerPointerMove(args)
	case "picker_cursor":
		return s.handlePickerCursor(args)
	case "picker_crosshair":
		return s.handlePickerCrosshair(args)
	case "picker_sample":
		return s.handlePickerSample(args)
	case "picker_magnify":
		return s.handlePickerMagnify(args)

	// Region selection
	case "picker_select":
		return s.handlePickerSelect(args)
	case "picker_autopick":
		return s.handlePickerAutopick(args)
	case "picker_region_crop":
		return s.handlePickerRegionCrop(args)

	// Slots and export
	case "picker_slot":
		return s.handlePickerSlot(args)
	case "picker_export":
		return s.handlePickerExport(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// requireImage fails tool calls that need a raster before one is loaded.
func (s *Server) requireImage() error {
	if s.session.Raster() == nil {
		return fmt.Errorf("no image loaded: call picker_load first")
	}
	return nil
}

// cursorResult is the common reply for tools that move the cursor.
type cursorResult struct {
	X         int                      `json:"x"`
	Y         int                      `json:"y"`
	Crosshair bool                     `json:"crosshair"`
	Color     *imaging.PixelColor      `json:"color,omitempty"`
	Magnifier *imaging.MagnifierResult `json:"magnifier,omitempty"`
}

func (s *Server) cursorReply(withMagnifier bool) (*cursorResult, error) {
	p := s.session.Cursor()
	res := &cursorResult{X: p.X, Y: p.Y, Crosshair: s.session.Crosshair()}
	if c, ok := s.session.Hover(); ok {
		res.Color = &c
	}
	if withMagnifier && s.session.Crosshair() {
		mag, err := imaging.Magnify(s.session.Raster(), p.X, p.Y, "")
		if err != nil {
			return nil, err
		}
		res.Magnifier = mag
	}
	return res, nil
}

// === Image and surface handlers ===

type pickerLoadArgs struct {
	Path       string `json:"path"`
	DataBase64 string `json:"data_base64"`
	Reload     bool   `json:"reload"`
}

func (s *Server) handlePickerLoad(args json.RawMessage) (interface{}, error) {
	var a pickerLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		raster *imaging.Raster
		info   *imaging.ImageInfo
		err    error
	)
	switch {
	case a.Path != "":
		if a.Reload {
			s.cache.Evict(a.Path)
		}
		raster, info, err = imaging.LoadImageInfo(s.cache, a.Path)
		if err != nil {
			return nil, err
		}
	case a.DataBase64 != "":
		data, derr := base64.StdEncoding.DecodeString(a.DataBase64)
		if derr != nil {
			return nil, fmt.Errorf("invalid base64 image data: %w", derr)
		}
		raster, err = imaging.DecodeBytes(data)
		if err != nil {
			return nil, err
		}
		info = imaging.Info(raster, "", int64(len(data)))
	default:
		return nil, fmt.Errorf("either path or data_base64 is required")
	}

	s.session.Attach(raster)
	return info, nil
}

type pickerSurfaceArgs struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handlePickerSurface(args json.RawMessage) (interface{}, error) {
	var a pickerSurfaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("surface size must be positive, got %gx%g", a.Width, a.Height)
	}
	s.session.SetSurface(a.Width, a.Height)
	w, h := s.session.Surface()
	return map[string]interface{}{"width": w, "height": h}, nil
}

type pointArgs struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func (a pointArgs) values(defX, defY int) (int, int) {
	x, y := defX, defY
	if a.X != nil {
		x = *a.X
	}
	if a.Y != nil {
		y = *a.Y
	}
	return x, y
}

func (s *Server) handlePickerToDisplay(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	x, y := a.values(0, 0)
	dx, dy := s.session.Mapper().ToDisplaySpace(x, y)
	return map[string]interface{}{"display_x": dx, "display_y": dy}, nil
}

// === Cursor and sampling handlers ===

type pickerPointerMoveArgs struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

func (s *Server) handlePickerPointerMove(args json.RawMessage) (interface{}, error) {
	var a pickerPointerMoveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	s.session.PointerMove(a.OffsetX, a.OffsetY)
	return s.cursorReply(true)
}

type pickerCursorArgs struct {
	Action string `json:"action"`
	pointArgs
}

func (s *Server) handlePickerCursor(args json.RawMessage) (interface{}, error) {
	var a pickerCursorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	switch a.Action {
	case "", "set":
		p := s.session.Cursor()
		s.session.SetCursor(a.values(p.X, p.Y))
	case "nudge":
		s.session.NudgeCursor(a.values(0, 0))
	case "center":
		s.session.ResetCursorToCenter()
	default:
		return nil, fmt.Errorf("unknown cursor action: %s", a.Action)
	}
	return s.cursorReply(true)
}

type pickerCrosshairArgs struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handlePickerCrosshair(args json.RawMessage) (interface{}, error) {
	var a pickerCrosshairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.session.SetCrosshair(a.Enabled)
	return map[string]interface{}{"crosshair": s.session.Crosshair()}, nil
}

func (s *Server) handlePickerSample(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	p := s.session.Cursor()
	c, _ := s.session.Sample(a.values(p.X, p.Y))
	return c, nil
}

type pickerMagnifyArgs struct {
	pointArgs
	SavePath string `json:"save_path"`
}

func (s *Server) handlePickerMagnify(args json.RawMessage) (interface{}, error) {
	var a pickerMagnifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	p := s.session.Cursor()
	x, y := a.values(p.X, p.Y)
	return imaging.Magnify(s.session.Raster(), x, y, a.SavePath)
}

// === Region selection handlers ===

type pickerSelectArgs struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type selectionResult struct {
	Selecting bool                 `json:"selecting"`
	Preview   *imaging.Region      `json:"preview,omitempty"`
	Region    *imaging.Region      `json:"region,omitempty"`
	AutoPick  bool                 `json:"auto_pick"`
	Colors    []imaging.PixelColor `json:"colors"`
}

func (s *Server) selectionReply() *selectionResult {
	res := &selectionResult{
		Selecting: s.session.Selecting(),
		AutoPick:  s.session.AutoPick(),
		Colors:    s.session.AutoColors(),
	}
	if p, ok := s.session.Preview(); ok {
		res.Preview = &p
	}
	if r, ok := s.session.Region(); ok {
		res.Region = &r
	}
	if res.Colors == nil {
		res.Colors = []imaging.PixelColor{}
	}
	return res
}

func (s *Server) handlePickerSelect(args json.RawMessage) (interface{}, error) {
	var a pickerSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	switch a.Action {
	case "start":
		s.session.StartSelection(a.X, a.Y)
	case "update":
		s.session.UpdateSelection(a.X, a.Y)
	case "end":
		s.session.EndSelection(a.X, a.Y)
	case "clear":
		s.session.ClearSelection()
	case "preview", "status":
	default:
		return nil, fmt.Errorf("unknown selection action: %s", a.Action)
	}
	return s.selectionReply(), nil
}

type pickerAutopickArgs struct {
	Enabled  *bool `json:"enabled"`
	Resample bool  `json:"resample"`
}

func (s *Server) handlePickerAutopick(args json.RawMessage) (interface{}, error) {
	var a pickerAutopickArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Enabled != nil {
		s.session.SetAutoPick(*a.Enabled)
	}
	if a.Resample {
		if _, ok := s.session.Region(); !ok {
			return nil, fmt.Errorf("no region selected")
		}
		s.session.AutoSample()
	}
	return s.selectionReply(), nil
}

type pickerRegionCropArgs struct {
	Scale int `json:"scale"`
}

func (s *Server) handlePickerRegionCrop(args json.RawMessage) (interface{}, error) {
	var a pickerRegionCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	region, ok := s.session.Region()
	if !ok {
		return nil, fmt.Errorf("no region selected")
	}
	return imaging.CropRegion(s.session.Raster(), region, a.Scale)
}

// === Slot and export handlers ===

type pickerSlotArgs struct {
	Action    string `json:"action"`
	Slot      int    `json:"slot"`
	AutoIndex int    `json:"auto_index"`
	Hex       string `json:"hex"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

func (s *Server) handlePickerSlot(args json.RawMessage) (interface{}, error) {
	var a pickerSlotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	needsSlot := a.Action != "list" && a.Action != "clear_all"
	if needsSlot && (a.Slot < 0 || a.Slot >= picker.SlotCount) {
		return nil, fmt.Errorf("slot %d out of range 0-%d", a.Slot, picker.SlotCount-1)
	}

	switch a.Action {
	case "save_hover":
		if !s.session.SaveHoverToSlot(a.Slot) {
			return nil, fmt.Errorf("no image loaded: call picker_load first")
		}
	case "save_auto":
		if !s.session.SaveAutoToSlot(a.AutoIndex, a.Slot) {
			return nil, fmt.Errorf("no auto-sampled color at index %d", a.AutoIndex)
		}
	case "set":
		r, g, b, err := imaging.ParseHex(a.Hex)
		if err != nil {
			return nil, err
		}
		s.session.SaveColorToSlot(imaging.NewPixelColor(a.X, a.Y, r, g, b), a.Slot)
	case "clear":
		s.session.ClearSlot(a.Slot)
	case "clear_all":
		s.session.ClearSlots()
	case "list":
	default:
		return nil, fmt.Errorf("unknown slot action: %s", a.Action)
	}
	return map[string]interface{}{"slots": s.session.Slots()}, nil
}

type pickerExportArgs struct {
	Format string `json:"format"`
	Source string `json:"source"`
}

type exportResult struct {
	Format string `json:"format"`
	Source string `json:"source"`
	Text   string `json:"text"`
	Empty  bool   `json:"empty"`
}

func (s *Server) handlePickerExport(args json.RawMessage) (interface{}, error) {
	var a pickerExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := picker.ParseSource(a.Source)
	if err != nil {
		return nil, err
	}
	if a.Source == "" {
		a.Source = "auto"
	}

	var text string
	switch a.Format {
	case "", "script":
		a.Format = "script"
		text = s.session.ScriptText(src)
	case "colors":
		text = s.session.ColorsText(src)
	default:
		return nil, fmt.Errorf("unknown export format: %s", a.Format)
	}

	return &exportResult{
		Format: a.Format,
		Source: a.Source,
		Text:   text,
		Empty:  text == "",
	}, nil
}
