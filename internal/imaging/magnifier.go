package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"
)

const (
	// MagnifierPixels is the side of the sampled neighborhood. It is odd so
	// there is a single center cell.
	MagnifierPixels = 25

	// MagnifierScale is the side of the square each source pixel is drawn as.
	MagnifierScale = 6

	// MagnifierSize is the side of the rendered canvas.
	MagnifierSize = MagnifierPixels * MagnifierScale
)

// Overlay colors for the magnifier.
var (
	MagnifierGridColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 38}  // white, 15%
	MagnifierOuterColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 230} // white, 90%
	MagnifierCenterColor = color.NRGBA{R: 255, G: 0, B: 0, A: 204}     // red, 80%
)

// RenderMagnifier draws the MagnifierPixels x MagnifierPixels neighborhood
// centered on (cx, cy), each pixel enlarged to a MagnifierScale square.
//
// The neighborhood is read with a single SampleBlock call. Cells whose source
// pixel lies outside the raster repeat the nearest edge pixel; if the block
// read returns nothing the cells are black. A translucent grid is drawn over
// the cells, then the center cell is outlined.
//
// Returns nil when buf is nil or empty. The function keeps no state, so equal
// inputs always produce identical images.
func RenderMagnifier(buf Buffer, cx, cy int) *image.RGBA {
	if !attached(buf) {
		return nil
	}

	const (
		size  = MagnifierPixels
		scale = MagnifierScale
		half  = size / 2
	)

	dst := image.NewRGBA(image.Rect(0, 0, MagnifierSize, MagnifierSize))
	block := SampleBlock(buf, cx-half, cy-half, size, size)
	maxX, maxY := buf.Width()-1, buf.Height()-1

	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			sx := clamp(cx-half+dx, 0, maxX)
			sy := clamp(cy-half+dy, 0, maxY)
			r, g, b := block.RGB(sx, sy)

			cell := image.Rect(dx*scale, dy*scale, (dx+1)*scale, (dy+1)*scale)
			draw.Draw(dst, cell, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}), image.Point{}, draw.Src)
		}
	}

	grid := image.NewUniform(MagnifierGridColor)
	for i := 1; i < size; i++ {
		draw.Draw(dst, image.Rect(i*scale, 0, i*scale+1, MagnifierSize), grid, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(0, i*scale, MagnifierSize, i*scale+1), grid, image.Point{}, draw.Over)
	}

	center := image.Rect(half*scale, half*scale, (half+1)*scale, (half+1)*scale)
	strokeRect(dst, center.Inset(1), MagnifierOuterColor)
	strokeRect(dst, center, MagnifierCenterColor)

	return dst
}

// strokeRect draws a one pixel outline just inside r. Corners are painted
// once so translucent colors blend evenly.
func strokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Over)
	if r.Dy() > 1 {
		draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
	}
	if r.Dy() > 2 {
		draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), src, image.Point{}, draw.Over)
		if r.Dx() > 1 {
			draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), src, image.Point{}, draw.Over)
		}
	}
}

// MagnifierResult is a rendered magnifier encoded for transport.
type MagnifierResult struct {
	Center      PixelColor `json:"center"`       // Color under the center cell
	Pixels      int        `json:"pixels"`       // Neighborhood side in source pixels
	Scale       int        `json:"scale"`        // Display size of one source pixel
	Width       int        `json:"width"`        // Canvas width
	Height      int        `json:"height"`       // Canvas height
	ImageBase64 string     `json:"image_base64"` // PNG, base64 encoded
	MimeType    string     `json:"mime_type"`
	SavedTo     string     `json:"saved_to,omitempty"`
}

// Magnify renders the magnifier at (cx, cy) and encodes it as PNG. When
// savePath is not empty the PNG is also written to that file.
func Magnify(buf Buffer, cx, cy int, savePath string) (*MagnifierResult, error) {
	img := RenderMagnifier(buf, cx, cy)
	if img == nil {
		return nil, fmt.Errorf("no image loaded")
	}
	center, _ := SamplePixel(buf, cx, cy)

	encoded, err := EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	if savePath != "" {
		if err := imgio.Save(savePath, img, imgio.PNGEncoder()); err != nil {
			return nil, fmt.Errorf("failed to save magnifier: %w", err)
		}
	}

	return &MagnifierResult{
		Center:      center,
		Pixels:      MagnifierPixels,
		Scale:       MagnifierScale,
		Width:       MagnifierSize,
		Height:      MagnifierSize,
		ImageBase64: encoded,
		MimeType:    "image/png",
		SavedTo:     savePath,
	}, nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
