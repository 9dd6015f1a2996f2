package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// createCoordImage encodes each pixel's position in its color: R=x, G=y, B=7.
func createCoordImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 7, 255})
		}
	}
	return img
}

func TestSamplePixel(t *testing.T) {
	r := NewRaster(createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255}))

	c, ok := SamplePixel(r, 50, 50)
	if !ok {
		t.Fatal("SamplePixel reported no raster")
	}

	if c.X != 50 || c.Y != 50 {
		t.Errorf("coords: got (%d,%d), want (50,50)", c.X, c.Y)
	}
	if c.R != 255 || c.G != 128 || c.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", c.R, c.G, c.B)
	}
	if c.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", c.Hex)
	}
	if c.BGRHex != "#4080FF" {
		t.Errorf("BGRHex: got %s, want #4080FF", c.BGRHex)
	}
}

func TestSamplePixel_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantBGR string
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", "#0000FF"},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", "#00FF00"},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", "#FF0000"},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", "#FFFFFF"},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", "#000000"},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080", "#808080"},
		{"mixed", color.RGBA{0x12, 0xAB, 0x0F, 255}, "#12AB0F", "#0FAB12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRaster(createInMemoryImage(10, 10, tt.color))
			c, ok := SamplePixel(r, 5, 5)
			if !ok {
				t.Fatal("SamplePixel reported no raster")
			}
			if c.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", c.Hex, tt.wantHex)
			}
			if c.BGRHex != tt.wantBGR {
				t.Errorf("BGRHex: got %s, want %s", c.BGRHex, tt.wantBGR)
			}
		})
	}
}

func TestSamplePixel_ClampsOutOfBounds(t *testing.T) {
	r := NewRaster(createPatternImage(100, 100))

	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
		wantHex      string
	}{
		{"above left", -5, -5, 0, 0, "#FF0000"},
		{"above right", 150, -5, 99, 0, "#00FF00"},
		{"below left", -5, 150, 0, 99, "#0000FF"},
		{"below right", 150, 150, 99, 99, "#FFFFFF"},
		{"left only", -1, 10, 0, 10, "#FF0000"},
		{"right only", 100, 10, 99, 10, "#00FF00"},
		{"top only", 80, -100, 80, 0, "#00FF00"},
		{"bottom only", 10, 100, 10, 99, "#0000FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := SamplePixel(r, tt.x, tt.y)
			if !ok {
				t.Fatal("SamplePixel should clamp, not fail")
			}
			if c.X != tt.wantX || c.Y != tt.wantY {
				t.Errorf("coords: got (%d,%d), want (%d,%d)", c.X, c.Y, tt.wantX, tt.wantY)
			}
			if c.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", c.Hex, tt.wantHex)
			}
		})
	}
}

func TestSamplePixel_NoRaster(t *testing.T) {
	if _, ok := SamplePixel(nil, 0, 0); ok {
		t.Error("nil buffer should report false")
	}

	var r *Raster
	if _, ok := SamplePixel(r, 0, 0); ok {
		t.Error("nil *Raster should report false")
	}
}

func TestSamplePixel_IgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{200, 100, 50, 10})
	r := NewRaster(img)

	c, _ := SamplePixel(r, 1, 1)
	if c.Hex != "#C86432" {
		t.Errorf("Hex: got %s, want #C86432", c.Hex)
	}
}

func TestSampleBlock(t *testing.T) {
	r := NewRaster(createCoordImage(100, 100))

	tests := []struct {
		name       string
		x, y, w, h int
		want       image.Rectangle
	}{
		{"inside", 10, 20, 5, 6, image.Rect(10, 20, 15, 26)},
		{"clipped top-left", -10, -10, 25, 25, image.Rect(0, 0, 15, 15)},
		{"clipped bottom-right", 90, 90, 25, 25, image.Rect(90, 90, 100, 100)},
		{"larger than image", -5, -5, 200, 200, image.Rect(0, 0, 100, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := SampleBlock(r, tt.x, tt.y, tt.w, tt.h)
			if b.Rect != tt.want {
				t.Fatalf("Rect: got %v, want %v", b.Rect, tt.want)
			}
			if len(b.Pix) != tt.want.Dx()*tt.want.Dy()*4 {
				t.Fatalf("Pix length: got %d, want %d", len(b.Pix), tt.want.Dx()*tt.want.Dy()*4)
			}
			// Lookups use image coordinates, relative to the clamped rect.
			cr, cg, cb := b.RGB(tt.want.Min.X, tt.want.Max.Y-1)
			if int(cr) != tt.want.Min.X || int(cg) != tt.want.Max.Y-1 || cb != 7 {
				t.Errorf("RGB: got (%d,%d,%d), want (%d,%d,7)", cr, cg, cb, tt.want.Min.X, tt.want.Max.Y-1)
			}
		})
	}
}

func TestSampleBlock_Empty(t *testing.T) {
	r := NewRaster(createCoordImage(100, 100))

	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"right of image", 200, 10, 25, 25},
		{"below image", 10, 200, 25, 25},
		{"left of image", -50, 10, 25, 25},
		{"zero width", 10, 10, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := SampleBlock(r, tt.x, tt.y, tt.w, tt.h)
			if !b.Empty() {
				t.Fatalf("expected empty block, got %v", b.Rect)
			}
			if cr, cg, cb := b.RGB(10, 10); cr != 0 || cg != 0 || cb != 0 {
				t.Errorf("empty block should read black, got (%d,%d,%d)", cr, cg, cb)
			}
		})
	}

	if b := SampleBlock(nil, 0, 0, 5, 5); !b.Empty() {
		t.Error("nil buffer should give an empty block")
	}
}

func TestBlockRGB_ClampsIntoRect(t *testing.T) {
	r := NewRaster(createCoordImage(20, 20))
	b := SampleBlock(r, 5, 5, 4, 4)

	cr, cg, _ := b.RGB(0, 100)
	if cr != 5 || cg != 8 {
		t.Errorf("got (%d,%d), want (5,8)", cr, cg)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"ff8040", 255, 128, 64, false},
		{"#0fab12", 15, 171, 18, false},
		{"#FFF", 255, 255, 255, false},
		{"", 0, 0, 0, true},
		{"#GG0000", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex failed: %v", err)
			}
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestNewRegion_Normalizes(t *testing.T) {
	tests := []struct {
		name           string
		ax, ay, bx, by int
	}{
		{"top-left to bottom-right", 10, 20, 30, 40},
		{"bottom-right to top-left", 30, 40, 10, 20},
		{"top-right to bottom-left", 30, 20, 10, 40},
		{"bottom-left to top-right", 10, 40, 30, 20},
	}

	want := Region{X1: 10, Y1: 20, X2: 30, Y2: 40}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRegion(tt.ax, tt.ay, tt.bx, tt.by)
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
			if got.Width() != 20 || got.Height() != 20 {
				t.Errorf("size: got %dx%d, want 20x20", got.Width(), got.Height())
			}
		})
	}
}
