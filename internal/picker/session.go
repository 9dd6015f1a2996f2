// Package picker holds the state of one pixel-picking session: the attached
// raster, display geometry, cursor, crosshair mode, color slots and region
// selection. Every mutating call is followed by a change notification so a
// front end can re-render without watching state itself.
package picker

import (
	"fmt"
	"image"

	"github.com/ironsheep/pixel-picker-mcp/internal/export"
	"github.com/ironsheep/pixel-picker-mcp/internal/imaging"
	"github.com/ironsheep/pixel-picker-mcp/internal/selection"
)

// Change identifies which part of the session a mutation touched.
type Change int

const (
	ChangeImage Change = iota
	ChangeSurface
	ChangeCursor
	ChangeSlots
	ChangeSelection
)

func (c Change) String() string {
	switch c {
	case ChangeImage:
		return "image"
	case ChangeSurface:
		return "surface"
	case ChangeCursor:
		return "cursor"
	case ChangeSlots:
		return "slots"
	case ChangeSelection:
		return "selection"
	default:
		return fmt.Sprintf("change(%d)", int(c))
	}
}

// Source selects which colors feed the exporter.
type Source int

const (
	// SourceAuto uses the colors auto-sampled from the committed region.
	SourceAuto Source = iota
	// SourceSlots uses the non-empty slots in slot order.
	SourceSlots
)

// ParseSource maps "auto" and "slots" to a Source. An empty string means
// SourceAuto.
func ParseSource(s string) (Source, error) {
	switch s {
	case "", "auto":
		return SourceAuto, nil
	case "slots":
		return SourceSlots, nil
	default:
		return SourceAuto, fmt.Errorf("unknown color source: %s", s)
	}
}

// Session is the mutable state behind the picker. It is meant to be driven
// from a single event loop and is not safe for concurrent use.
type Session struct {
	raster   *imaging.Raster
	displayW float64
	displayH float64

	cursor    image.Point
	crosshair bool

	palette  Palette
	selector *selection.Selector

	listeners []func(Change)
}

// NewSession returns an empty session with no raster attached.
func NewSession() *Session {
	s := &Session{}
	s.selector = selection.New(selection.BufferSampler(s.raster))
	return s
}

// OnChange registers fn to be called after every mutation.
func (s *Session) OnChange(fn func(Change)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *Session) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Attach makes r the current raster. The selection is cleared and the cursor
// moves to the image center; slots are kept. When no display size has been
// set yet the surface defaults to the raster size.
func (s *Session) Attach(r *imaging.Raster) {
	s.raster = r
	s.selector.SetSampler(selection.BufferSampler(r))
	s.selector.Clear()
	if s.displayW <= 0 || s.displayH <= 0 {
		s.displayW = float64(r.Width())
		s.displayH = float64(r.Height())
	}
	s.cursor = image.Pt(r.Width()/2, r.Height()/2)
	s.notify(ChangeImage)
}

// Raster returns the attached raster, or nil.
func (s *Session) Raster() *imaging.Raster {
	return s.raster
}

// SetSurface records the rendered size of the display surface.
func (s *Session) SetSurface(width, height float64) {
	s.displayW = width
	s.displayH = height
	s.notify(ChangeSurface)
}

// Surface returns the display surface size.
func (s *Session) Surface() (width, height float64) {
	return s.displayW, s.displayH
}

// Mapper returns a coordinate mapper for the current raster and surface.
func (s *Session) Mapper() imaging.Mapper {
	return imaging.NewMapper(s.raster, s.displayW, s.displayH)
}

// PointerMove moves the cursor to the pixel under a display-space offset and
// returns that pixel's color. Reports false when no raster is attached.
func (s *Session) PointerMove(displayX, displayY float64) (imaging.PixelColor, bool) {
	if s.raster.Width() == 0 {
		return imaging.PixelColor{}, false
	}
	x, y := s.Mapper().ToImageSpace(displayX, displayY)
	s.SetCursor(x, y)
	return s.Hover()
}

// Cursor returns the current image-space cursor.
func (s *Session) Cursor() image.Point {
	return s.cursor
}

// SetCursor moves the cursor, clamped to the raster when one is attached.
func (s *Session) SetCursor(x, y int) {
	if w, h := s.raster.Width(), s.raster.Height(); w > 0 && h > 0 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
	}
	s.cursor = image.Pt(x, y)
	s.notify(ChangeCursor)
}

// NudgeCursor moves the cursor by (dx, dy) pixels, as arrow keys do.
func (s *Session) NudgeCursor(dx, dy int) {
	s.SetCursor(s.cursor.X+dx, s.cursor.Y+dy)
}

// ResetCursorToCenter moves the cursor to the raster center and turns the
// crosshair on. Does nothing without a raster.
func (s *Session) ResetCursorToCenter() {
	if s.raster.Width() == 0 {
		return
	}
	s.crosshair = true
	s.SetCursor(s.raster.Width()/2, s.raster.Height()/2)
}

// Crosshair reports whether crosshair (magnifier) mode is on.
func (s *Session) Crosshair() bool {
	return s.crosshair
}

// SetCrosshair turns crosshair mode on or off.
func (s *Session) SetCrosshair(on bool) {
	s.crosshair = on
	s.notify(ChangeCursor)
}

// Hover samples the pixel under the cursor.
func (s *Session) Hover() (imaging.PixelColor, bool) {
	return imaging.SamplePixel(s.raster, s.cursor.X, s.cursor.Y)
}

// Sample samples an arbitrary image-space pixel, clamped to the raster.
func (s *Session) Sample(x, y int) (imaging.PixelColor, bool) {
	return imaging.SamplePixel(s.raster, x, y)
}

// Magnifier renders the magnifier around the cursor. Returns nil without a
// raster.
func (s *Session) Magnifier() *image.RGBA {
	return imaging.RenderMagnifier(s.raster, s.cursor.X, s.cursor.Y)
}

// === Slots ===

// SaveHoverToSlot copies the color under the cursor into slot i.
func (s *Session) SaveHoverToSlot(i int) bool {
	c, ok := s.Hover()
	if !ok {
		return false
	}
	return s.SaveColorToSlot(c, i)
}

// SaveColorToSlot stores a copy of c in slot i.
func (s *Session) SaveColorToSlot(c imaging.PixelColor, i int) bool {
	if !s.palette.Set(i, c) {
		return false
	}
	s.notify(ChangeSlots)
	return true
}

// SaveAutoToSlot copies auto-sampled color n into slot i.
func (s *Session) SaveAutoToSlot(n, i int) bool {
	colors := s.selector.Colors()
	if n < 0 || n >= len(colors) {
		return false
	}
	return s.SaveColorToSlot(colors[n], i)
}

// ClearSlot empties slot i.
func (s *Session) ClearSlot(i int) bool {
	if !s.palette.Clear(i) {
		return false
	}
	s.notify(ChangeSlots)
	return true
}

// ClearSlots empties every slot.
func (s *Session) ClearSlots() {
	s.palette.Reset()
	s.notify(ChangeSlots)
}

// Slots returns a snapshot of all slots; empty slots are nil.
func (s *Session) Slots() []*imaging.PixelColor {
	return s.palette.Slots()
}

// === Selection ===

// StartSelection begins a drag at image coordinates (x, y).
func (s *Session) StartSelection(x, y int) {
	s.selector.Start(x, y)
	s.notify(ChangeSelection)
}

// UpdateSelection moves the live end of the drag.
func (s *Session) UpdateSelection(x, y int) {
	if !s.selector.Selecting() {
		return
	}
	s.selector.Update(x, y)
	s.notify(ChangeSelection)
}

// EndSelection finishes the drag; see selection.Selector.End.
func (s *Session) EndSelection(x, y int) (imaging.Region, bool) {
	wasSelecting := s.selector.Selecting()
	r, ok := s.selector.End(x, y)
	if wasSelecting {
		s.notify(ChangeSelection)
	}
	return r, ok
}

// ClearSelection drops the drag, region and auto-sampled colors.
func (s *Session) ClearSelection() {
	s.selector.Clear()
	s.notify(ChangeSelection)
}

// Selecting reports whether a drag is in progress.
func (s *Session) Selecting() bool {
	return s.selector.Selecting()
}

// Preview returns the live drag rectangle.
func (s *Session) Preview() (imaging.Region, bool) {
	return s.selector.Preview()
}

// Region returns the committed region.
func (s *Session) Region() (imaging.Region, bool) {
	return s.selector.Region()
}

// AutoColors returns the auto-sampled colors.
func (s *Session) AutoColors() []imaging.PixelColor {
	return s.selector.Colors()
}

// AutoPick reports whether committing a region samples it.
func (s *Session) AutoPick() bool {
	return s.selector.AutoPick()
}

// SetAutoPick enables or disables auto-sampling on commit.
func (s *Session) SetAutoPick(enabled bool) {
	s.selector.SetAutoPick(enabled)
	s.notify(ChangeSelection)
}

// AutoSample re-samples the committed region.
func (s *Session) AutoSample() []imaging.PixelColor {
	colors := s.selector.AutoSample()
	s.notify(ChangeSelection)
	return colors
}

// === Export ===

// Colors returns the ordered colors src would export.
func (s *Session) Colors(src Source) []imaging.PixelColor {
	if src == SourceSlots {
		return s.palette.Filled()
	}
	return s.selector.Colors()
}

// ScriptText serializes the committed region and the colors from src. Returns
// "" when there is no region or no colors.
func (s *Session) ScriptText(src Source) string {
	var region *imaging.Region
	if r, ok := s.selector.Region(); ok {
		region = &r
	}
	return export.Script(region, s.Colors(src))
}

// ColorsText serializes only the colors from src. Returns "" when there are
// none.
func (s *Session) ColorsText(src Source) string {
	return export.Colors(s.Colors(src))
}

// CanExport reports whether ScriptText(src) would produce output.
func (s *Session) CanExport(src Source) bool {
	_, ok := s.selector.Region()
	return ok && len(s.Colors(src)) > 0
}
