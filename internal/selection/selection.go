// Package selection tracks rectangular drag selections in image space and
// samples a fixed grid of colors inside each committed region.
package selection

import (
	"image"
	"math"

	"github.com/ironsheep/pixel-picker-mcp/internal/imaging"
)

const (
	// MinSize is the size a drag must exceed, in both directions, to commit.
	MinSize = 3

	// GridColumns and GridRows define the auto-sample grid.
	GridColumns = 5
	GridRows    = 2
)

// SampleFunc reads the color of an image-space pixel. It reports false when
// no raster is attached.
type SampleFunc func(x, y int) (imaging.PixelColor, bool)

// BufferSampler adapts a raster to a SampleFunc using imaging.SamplePixel.
func BufferSampler(buf imaging.Buffer) SampleFunc {
	return func(x, y int) (imaging.PixelColor, bool) {
		return imaging.SamplePixel(buf, x, y)
	}
}

// Selector is the Idle -> Selecting -> Idle state machine behind a drag.
//
// A Selector is not safe for concurrent use.
type Selector struct {
	sample SampleFunc

	selecting bool
	start     image.Point
	current   image.Point

	region   *imaging.Region
	colors   []imaging.PixelColor
	autoPick bool
}

// New returns an idle selector with auto-sampling enabled.
func New(sample SampleFunc) *Selector {
	return &Selector{sample: sample, autoPick: true}
}

// SetSampler replaces the sampling function, e.g. after a new image loads.
func (s *Selector) SetSampler(sample SampleFunc) {
	s.sample = sample
}

// Start begins a new drag at (x, y). Any committed region and sampled colors
// are discarded; a drag already in progress is abandoned.
func (s *Selector) Start(x, y int) {
	s.selecting = true
	s.start = image.Pt(x, y)
	s.current = s.start
	s.region = nil
	s.colors = nil
}

// Update moves the live end point. It does nothing when no drag is active.
func (s *Selector) Update(x, y int) {
	if !s.selecting {
		return
	}
	s.current = image.Pt(x, y)
}

// End finishes the drag at (x, y). The region commits only when both sides
// are larger than MinSize; otherwise the selection is cleared. Returns the
// committed region, if any. Calling End without a drag in progress is a no-op
// that returns the current region.
func (s *Selector) End(x, y int) (imaging.Region, bool) {
	if !s.selecting {
		return s.Region()
	}
	s.selecting = false
	s.current = image.Pt(x, y)

	r := imaging.NewRegion(s.start.X, s.start.Y, x, y)
	if r.Width() > MinSize && r.Height() > MinSize {
		s.region = &r
		s.colors = nil
		if s.autoPick {
			s.AutoSample()
		}
		return r, true
	}

	s.region = nil
	s.colors = nil
	return imaging.Region{}, false
}

// Clear returns to Idle and drops the region and sampled colors.
func (s *Selector) Clear() {
	s.selecting = false
	s.region = nil
	s.colors = nil
}

// Selecting reports whether a drag is in progress.
func (s *Selector) Selecting() bool {
	return s.selecting
}

// Preview returns the normalized rectangle between the drag anchor and the
// live end point. It is only available while selecting.
func (s *Selector) Preview() (imaging.Region, bool) {
	if !s.selecting {
		return imaging.Region{}, false
	}
	return imaging.NewRegion(s.start.X, s.start.Y, s.current.X, s.current.Y), true
}

// Region returns the committed region.
func (s *Selector) Region() (imaging.Region, bool) {
	if s.region == nil {
		return imaging.Region{}, false
	}
	return *s.region, true
}

// Colors returns a copy of the auto-sampled colors in grid order.
func (s *Selector) Colors() []imaging.PixelColor {
	if len(s.colors) == 0 {
		return nil
	}
	out := make([]imaging.PixelColor, len(s.colors))
	copy(out, s.colors)
	return out
}

// AutoPick reports whether committing a region samples it automatically.
func (s *Selector) AutoPick() bool {
	return s.autoPick
}

// SetAutoPick enables or disables sampling on commit. It does not touch
// colors that were already sampled.
func (s *Selector) SetAutoPick(enabled bool) {
	s.autoPick = enabled
}

// AutoSample samples the grid points of the committed region and replaces the
// stored colors. Points the sampler cannot read are skipped. Returns the new
// colors; with no committed region it returns nil and changes nothing.
func (s *Selector) AutoSample() []imaging.PixelColor {
	if s.region == nil {
		return nil
	}

	points := GridPoints(*s.region)
	colors := make([]imaging.PixelColor, 0, len(points))
	if s.sample != nil {
		for _, p := range points {
			if c, ok := s.sample(p.X, p.Y); ok {
				colors = append(colors, c)
			}
		}
	}
	s.colors = colors
	return s.Colors()
}

// GridPoints returns the GridColumns x GridRows sample points of r in
// row-major order. Point (c, r) sits at the center of its grid cell, rounded
// half up:
//
//	px = round(x1 + (c + 0.5) * width / 5)
//	py = round(y1 + (r + 0.5) * height / 2)
//
// Coincident points are kept; the result always has GridColumns*GridRows
// entries.
func GridPoints(r imaging.Region) []image.Point {
	w := float64(r.Width())
	h := float64(r.Height())

	points := make([]image.Point, 0, GridColumns*GridRows)
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridColumns; col++ {
			px := roundHalfUp(float64(r.X1) + (float64(col)+0.5)*w/GridColumns)
			py := roundHalfUp(float64(r.Y1) + (float64(row)+0.5)*h/GridRows)
			points = append(points, image.Pt(px, py))
		}
	}
	return points
}

// roundHalfUp rounds .5 toward positive infinity for negative values too,
// unlike math.Round.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
