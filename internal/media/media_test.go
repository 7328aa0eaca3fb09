package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, G: 50, B: 120, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessServiceImageDownscales(t *testing.T) {
	t.Parallel()

	out, err := ProcessServiceImage(bytes.NewReader(pngOf(t, 2048, 1024)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 512 {
		t.Fatalf("size = %dx%d, want 1024x512", cfg.Width, cfg.Height)
	}
}

func TestProcessServiceImageKeepsSmallImages(t *testing.T) {
	t.Parallel()

	out, err := ProcessServiceImage(bytes.NewReader(pngOf(t, 300, 200)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Fatalf("size = %dx%d, want 300x200", cfg.Width, cfg.Height)
	}
}

func TestProcessServiceImageRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ProcessServiceImage(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestServiceImageKey(t *testing.T) {
	t.Parallel()

	key := ServiceImageKey(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	pattern := regexp.MustCompile(`^services/20250310-[0-9a-f-]{36}\.webp$`)
	if !pattern.MatchString(key) {
		t.Fatalf("unexpected key %q", key)
	}
}
