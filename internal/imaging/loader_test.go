package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImage writes a solid PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	if err := os.WriteFile(path, encodePNG(t, createInMemoryImage(width, height, c)), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func TestDecodeBytes(t *testing.T) {
	data := encodePNG(t, createPatternImage(30, 20))

	r, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if r.Width() != 30 || r.Height() != 20 {
		t.Errorf("size: got %dx%d, want 30x20", r.Width(), r.Height())
	}
	if r.Format() != "png" {
		t.Errorf("format: got %q, want png", r.Format())
	}

	c, _ := SamplePixel(r, 29, 19)
	if c.Hex != "#FFFFFF" {
		t.Errorf("bottom-right: got %s, want #FFFFFF", c.Hex)
	}
}

func TestDecodeBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"garbage", []byte("not an image")},
		{"truncated png", encodePNG(t, createPatternImage(10, 10))[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBytes(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	r1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r1.Width() != 100 || r1.Height() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", r1.Width(), r1.Height())
	}

	// Second load should return cached raster
	r2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if r1 != r2 {
		t.Error("second Load did not return cached raster")
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}

	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	first, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(imgPath)
	cache.mu.RLock()
	_, exists := cache.rasters[imgPath]
	cache.mu.RUnlock()
	if exists {
		t.Error("Evict did not remove raster from cache")
	}

	second, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if first == second {
		t.Error("reload after Evict should decode again")
	}

	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_EvictPicksUpChangedFile(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 10, 10, color.RGBA{255, 0, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := os.WriteFile(imgPath, encodePNG(t, createInMemoryImage(20, 5, color.RGBA{0, 0, 255, 255})), 0o644); err != nil {
		t.Fatal(err)
	}

	stale, _ := cache.Load(imgPath)
	if stale.Width() != 10 {
		t.Fatalf("cached load: got width %d, want the cached 10", stale.Width())
	}

	cache.Evict(imgPath)
	fresh, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if fresh.Width() != 20 || fresh.Height() != 5 {
		t.Errorf("size after Evict: got %dx%d, want 20x5", fresh.Width(), fresh.Height())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errors := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	r, info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if r == nil {
		t.Fatal("LoadImageInfo returned nil raster")
	}

	stat, _ := os.Stat(imgPath)
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes != stat.Size() {
		t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, stat.Size())
	}
	if info.Path != imgPath {
		t.Errorf("Path: got %s, want %s", info.Path, imgPath)
	}
	if info.HasAlpha {
		t.Error("opaque image reported alpha")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	if _, _, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestInfo_HasAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{10, 10, 10, 255})
		}
	}
	img.SetNRGBA(2, 2, color.NRGBA{10, 10, 10, 100})

	r, err := DecodeBytes(encodePNG(t, img))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	info := Info(r, "", 42)
	if !info.HasAlpha {
		t.Error("translucent pixel not reported as alpha")
	}
	if info.FileSizeBytes != 42 || info.Path != "" {
		t.Errorf("path/size: got %q/%d", info.Path, info.FileSizeBytes)
	}
}
