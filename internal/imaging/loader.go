package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode reads an encoded image and returns it as a Raster.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. Decoding is
// synchronous; the caller only ever sees a fully decoded raster or an error.
func Decode(r io.Reader) (*Raster, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	raster := NewRaster(img)
	raster.format = format
	return raster, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (*Raster, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image: empty input")
	}
	return Decode(bytes.NewReader(data))
}

// ImageCache provides thread-safe caching of decoded rasters to avoid redundant disk reads.
//
// Rasters are keyed by the exact path string passed to Load. Different paths to
// the same file (relative vs absolute) produce separate entries.
//
// Cached rasters remain in memory until explicitly removed via Evict(); a
// reload request evicts the path before loading it again.
type ImageCache struct {
	mu      sync.RWMutex
	rasters map[string]*Raster
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		rasters: make(map[string]*Raster),
	}
}

// Load retrieves a raster from the cache or decodes it from disk if not cached.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
func (c *ImageCache) Load(path string) (*Raster, error) {
	c.mu.RLock()
	if r, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rasters[path] = r
	c.mu.Unlock()

	return r, nil
}

// Evict removes a specific raster from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.rasters, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded raster.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "bmp", "tiff", "webp".
	Format string `json:"format"`

	// HasAlpha is true when at least one pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// Path is the source file, empty for rasters decoded from memory.
	Path string `json:"path,omitempty"`

	// FileSizeBytes is the size of the source file or buffer in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info describes r. path and size are reported as given.
func Info(r *Raster, path string, size int64) *ImageInfo {
	hasAlpha := false
	if img := r.Image(); img != nil {
		hasAlpha = !img.Opaque()
	}
	return &ImageInfo{
		Width:         r.Width(),
		Height:        r.Height(),
		Format:        r.Format(),
		HasAlpha:      hasAlpha,
		Path:          path,
		FileSizeBytes: size,
	}
}

// LoadImageInfo loads an image through the cache and returns its raster with
// metadata.
func LoadImageInfo(cache *ImageCache, path string) (*Raster, *ImageInfo, error) {
	r, err := cache.Load(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r, Info(r, path, stat.Size()), nil
}
