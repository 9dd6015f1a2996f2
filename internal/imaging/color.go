package imaging

import (
	"fmt"
	"image"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PixelColor is a single sampled pixel in image space.
//
// Hex and BGRHex are always derived from R, G and B by NewPixelColor; callers
// should treat a PixelColor as an immutable value and copy it rather than
// editing its fields.
type PixelColor struct {
	X      int    `json:"x"`       // Image-space column (0-based)
	Y      int    `json:"y"`       // Image-space row (0-based)
	R      uint8  `json:"r"`       // Red component (0-255)
	G      uint8  `json:"g"`       // Green component (0-255)
	B      uint8  `json:"b"`       // Blue component (0-255)
	Hex    string `json:"hex"`     // Uppercase "#RRGGBB"
	BGRHex string `json:"bgr_hex"` // Uppercase "#BBGGRR" for tools that expect BGR order
}

// NewPixelColor builds a PixelColor and computes both hex encodings.
func NewPixelColor(x, y int, r, g, b uint8) PixelColor {
	return PixelColor{
		X:      x,
		Y:      y,
		R:      r,
		G:      g,
		B:      b,
		Hex:    HexRGB(r, g, b),
		BGRHex: HexBGR(r, g, b),
	}
}

// HexRGB formats a color as uppercase "#RRGGBB".
func HexRGB(r, g, b uint8) string {
	return strings.ToUpper(toColorful(r, g, b).Hex())
}

// HexBGR formats a color as uppercase "#BBGGRR", the channel order reversed.
func HexBGR(r, g, b uint8) string {
	return strings.ToUpper(toColorful(b, g, r).Hex())
}

// ParseHex parses "#RRGGBB" (or "RRGGBB", or the 3-digit short form) into
// 8-bit components. Case is ignored.
func ParseHex(hex string) (r, g, b uint8, err error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return 0, 0, 0, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// SamplePixel reads the color of one pixel.
//
// Parameters:
//   - buf: The raster to read from. May be nil.
//   - x, y: Image-space coordinates. Values outside the raster are clamped to
//     the nearest edge pixel, so out-of-range requests never fail.
//
// Returns the sampled color (with the clamped coordinates) and true, or a zero
// PixelColor and false when buf is nil or has no pixels. Alpha is ignored.
func SamplePixel(buf Buffer, x, y int) (PixelColor, bool) {
	if !attached(buf) {
		return PixelColor{}, false
	}
	x = clamp(x, 0, buf.Width()-1)
	y = clamp(y, 0, buf.Height()-1)

	px := buf.ReadPixels(x, y, 1, 1)
	if len(px) < 4 {
		return NewPixelColor(x, y, 0, 0, 0), true
	}
	return NewPixelColor(x, y, px[0], px[1], px[2]), true
}

// Block is the result of a batch read. Rect is the clamped rectangle that was
// actually read, in image space; Pix holds its RGBA bytes row-major.
type Block struct {
	Rect image.Rectangle
	Pix  []byte
}

// Empty reports whether the read produced no data.
func (b Block) Empty() bool {
	return b.Rect.Empty() || len(b.Pix) < b.Rect.Dx()*b.Rect.Dy()*4
}

// RGB returns the color of image-space pixel (x, y). The coordinates are
// clamped into Rect first, so lookups never index outside Pix. An empty block
// reads as black everywhere.
func (b Block) RGB(x, y int) (r, g, bl uint8) {
	if b.Empty() {
		return 0, 0, 0
	}
	lx := clamp(x, b.Rect.Min.X, b.Rect.Max.X-1) - b.Rect.Min.X
	ly := clamp(y, b.Rect.Min.Y, b.Rect.Max.Y-1) - b.Rect.Min.Y
	i := (ly*b.Rect.Dx() + lx) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// SampleBlock batch-reads the rectangle (x, y, w, h) after clamping it to the
// raster bounds. Callers must locate pixels through Block.RGB, which indexes
// relative to the clamped rectangle rather than the requested one. When the
// clamped rectangle has no area, or buf is nil, the returned Block is empty.
func SampleBlock(buf Buffer, x, y, w, h int) Block {
	if !attached(buf) {
		return Block{}
	}
	x0 := max(0, x)
	y0 := max(0, y)
	x1 := min(buf.Width(), x+w)
	y1 := min(buf.Height(), y+h)
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return Block{}
	}
	rect := image.Rect(x0, y0, x1, y1)
	return Block{Rect: rect, Pix: buf.ReadPixels(x0, y0, rect.Dx(), rect.Dy())}
}

// Region is an axis-aligned rectangle in image space with X1 <= X2 and
// Y1 <= Y2. Use NewRegion to build one from unordered corner points.
type Region struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// NewRegion normalizes two corner points, given in any order, into a Region.
func NewRegion(ax, ay, bx, by int) Region {
	return Region{
		X1: min(ax, bx),
		Y1: min(ay, by),
		X2: max(ax, bx),
		Y2: max(ay, by),
	}
}

// Width returns X2 - X1.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Region) Height() int { return r.Y2 - r.Y1 }

func attached(buf Buffer) bool {
	if buf == nil {
		return false
	}
	// A nil *Raster inside the interface reports zero size.
	return buf.Width() > 0 && buf.Height() > 0
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
