package imaging

import "math"

// floorTolerance absorbs float error when a display coordinate produced by
// ToDisplaySpace is mapped back; without it 6.999999999 would floor to 6.
const floorTolerance = 1e-9

// Mapper converts between display space (the possibly scaled surface that
// pointer events are reported in) and image space (integer raster indices).
//
// X and Y scale independently because layout may stretch the surface
// non-uniformly.
//
// ToDisplaySpace(ToImageSpace(p)) is not an exact round trip: flooring drops
// the sub-pixel part of p. The other direction is exact for integer scale
// factors.
type Mapper struct {
	buf           Buffer
	displayWidth  float64
	displayHeight float64
}

// NewMapper returns a mapper for buf rendered at displayWidth x displayHeight.
func NewMapper(buf Buffer, displayWidth, displayHeight float64) Mapper {
	return Mapper{buf: buf, displayWidth: displayWidth, displayHeight: displayHeight}
}

// Ready reports whether both the raster and the display geometry are known.
func (m Mapper) Ready() bool {
	return attached(m.buf) && m.displayWidth > 0 && m.displayHeight > 0
}

// ToImageSpace maps a display offset to the pixel under it. Returns (0,0)
// when the mapper is not ready.
func (m Mapper) ToImageSpace(displayX, displayY float64) (int, int) {
	if !m.Ready() {
		return 0, 0
	}
	x := displayX * float64(m.buf.Width()) / m.displayWidth
	y := displayY * float64(m.buf.Height()) / m.displayHeight
	return int(math.Floor(x + floorTolerance)), int(math.Floor(y + floorTolerance))
}

// ToDisplaySpace maps the top-left corner of pixel (x, y) to display space.
// The result is not rounded; fractional positions are valid overlay offsets.
// Returns (0,0) when the mapper is not ready.
func (m Mapper) ToDisplaySpace(x, y int) (float64, float64) {
	if !m.Ready() {
		return 0, 0
	}
	dx := float64(x) * m.displayWidth / float64(m.buf.Width())
	dy := float64(y) * m.displayHeight / float64(m.buf.Height())
	return dx, dy
}
