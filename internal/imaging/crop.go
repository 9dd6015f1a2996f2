package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Limits on the enlarged crop. Larger requests are rejected rather than
// allocated.
const (
	MaxCropScale = 32
	MaxCropSide  = 8192
)

// CropResult contains the cropped region preview
type CropResult struct {
	Region      Region `json:"region"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropRegion extracts a region from the raster and enlarges it by an integer
// factor. Enlargement uses nearest-neighbor so every source pixel becomes a
// solid scale x scale block; no smoothing is applied.
//
// The region is intersected with the raster bounds; X2 and Y2 are treated as
// exclusive. A scale below 1 is treated as 1. Scales above MaxCropScale, or
// results wider or taller than MaxCropSide, are errors.
func CropRegion(r *Raster, region Region, scale int) (*CropResult, error) {
	if r.Width() == 0 || r.Height() == 0 {
		return nil, fmt.Errorf("no image loaded")
	}
	if scale < 1 {
		scale = 1
	}
	if scale > MaxCropScale {
		return nil, fmt.Errorf("scale %d exceeds maximum %d", scale, MaxCropScale)
	}

	rect := image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(r.Image().Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) does not overlap the image",
			region.X1, region.Y1, region.X2, region.Y2)
	}

	if w, h := rect.Dx()*scale, rect.Dy()*scale; w > MaxCropSide || h > MaxCropSide {
		return nil, fmt.Errorf("cropped image %dx%d exceeds maximum side %d", w, h, MaxCropSide)
	}

	cropped := imaging.Crop(r.Image(), rect)
	if scale != 1 {
		cropped = imaging.Resize(cropped, rect.Dx()*scale, rect.Dy()*scale, imaging.NearestNeighbor)
	}

	encoded, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Region:      Region{X1: rect.Min.X, Y1: rect.Min.Y, X2: rect.Max.X, Y2: rect.Max.Y},
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		Scale:       scale,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
