package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestNewRaster_Dimensions(t *testing.T) {
	r := NewRaster(createInMemoryImage(40, 30, color.RGBA{1, 2, 3, 255}))
	if r.Width() != 40 || r.Height() != 30 {
		t.Errorf("size: got %dx%d, want 40x30", r.Width(), r.Height())
	}
}

func TestNewRaster_RebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 20, 20))
	src.Set(10, 10, color.RGBA{9, 8, 7, 255})

	r := NewRaster(src)
	if b := r.Image().Bounds(); b.Min != (image.Point{}) {
		t.Fatalf("raster origin: got %v, want (0,0)", b.Min)
	}
	c, _ := SamplePixel(r, 0, 0)
	if c.Hex != "#090807" {
		t.Errorf("top-left pixel: got %s, want #090807", c.Hex)
	}
}

func TestRaster_NilSafe(t *testing.T) {
	var r *Raster
	if r.Width() != 0 || r.Height() != 0 {
		t.Error("nil raster should have zero size")
	}
	if r.Image() != nil {
		t.Error("nil raster should have no image")
	}
	if r.Format() != "" {
		t.Error("nil raster should have no format")
	}
	if px := r.ReadPixels(0, 0, 2, 2); len(px) != 16 {
		t.Errorf("ReadPixels length: got %d, want 16", len(px))
	}
}

func TestRaster_ReadPixels(t *testing.T) {
	r := NewRaster(createCoordImage(10, 10))

	px := r.ReadPixels(8, 8, 4, 4)
	if len(px) != 4*4*4 {
		t.Fatalf("length: got %d, want 64", len(px))
	}

	// (0,0) of the read is image pixel (8,8).
	if px[0] != 8 || px[1] != 8 || px[2] != 7 || px[3] != 255 {
		t.Errorf("first pixel: got %v, want [8 8 7 255]", px[:4])
	}

	// (2,0) of the read is image pixel (10,8): outside, transparent black.
	i := 2 * 4
	if px[i] != 0 || px[i+1] != 0 || px[i+2] != 0 || px[i+3] != 0 {
		t.Errorf("outside pixel: got %v, want zeros", px[i:i+4])
	}

	// (1,1) of the read is image pixel (9,9).
	i = (1*4 + 1) * 4
	if px[i] != 9 || px[i+1] != 9 {
		t.Errorf("pixel (9,9): got %v", px[i:i+4])
	}
}

func TestRaster_ReadPixelsInvalidSize(t *testing.T) {
	r := NewRaster(createCoordImage(10, 10))
	if px := r.ReadPixels(0, 0, 0, 5); px != nil {
		t.Error("zero width should return nil")
	}
	if px := r.ReadPixels(0, 0, 5, -1); px != nil {
		t.Error("negative height should return nil")
	}
}
