package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is the read side of a decoded image surface.
//
// ReadPixels returns w*h*4 bytes of non-premultiplied RGBA data, row-major,
// for the rectangle with top-left (x, y). Pixels outside the surface read as
// transparent black. Implementations never mutate the surface.
type Buffer interface {
	Width() int
	Height() int
	ReadPixels(x, y, w, h int) []byte
}

// Raster is an immutable, zero-origin NRGBA copy of a decoded image.
//
// Whatever concrete type the decoder produced (*image.YCbCr for JPEG,
// *image.Paletted for GIF, 16-bit PNGs, ...), the raster always stores
// 8-bit non-premultiplied channels so that sampled values match what a
// browser canvas would report.
type Raster struct {
	img    *image.NRGBA
	format string
}

// NewRaster copies src into a new raster. The copy is rebased so that the
// top-left pixel is always (0,0).
func NewRaster(src image.Image) *Raster {
	return &Raster{img: imaging.Clone(src)}
}

// Width returns the raster width in pixels. A nil raster has width 0.
func (r *Raster) Width() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Bounds().Dx()
}

// Height returns the raster height in pixels. A nil raster has height 0.
func (r *Raster) Height() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Bounds().Dy()
}

// Format returns the name of the decoder that produced the raster ("png",
// "jpeg", ...), or "" for rasters built directly from an image.Image.
func (r *Raster) Format() string {
	if r == nil {
		return ""
	}
	return r.format
}

// Image exposes the backing image for read-only use (cropping, encoding).
func (r *Raster) Image() *image.NRGBA {
	if r == nil {
		return nil
	}
	return r.img
}

// ReadPixels implements Buffer.
func (r *Raster) ReadPixels(x, y, w, h int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]byte, w*h*4)
	if r == nil || r.img == nil {
		return out
	}

	want := image.Rect(x, y, x+w, y+h)
	live := want.Intersect(r.img.Bounds())
	if live.Empty() {
		return out
	}

	rowBytes := live.Dx() * 4
	for py := live.Min.Y; py < live.Max.Y; py++ {
		src := r.img.PixOffset(live.Min.X, py)
		dst := ((py-y)*w + (live.Min.X - x)) * 4
		copy(out[dst:dst+rowBytes], r.img.Pix[src:src+rowBytes])
	}
	return out
}
