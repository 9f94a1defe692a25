package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ContentType is the MIME type of rendered images.
const ContentType = "image/png"

// encoder is shared so every render uses the same configuration; identical
// inputs must produce byte-identical output.
var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Renderer produces flat-color PNG buffers. Rendered output for a given
// (width, height, color) never changes, so encoded buffers are cached.
type Renderer struct {
	cache *gocache.Cache
}

// NewRenderer constructs a Renderer with a bounded-lifetime render cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: gocache.New(time.Hour, 10*time.Minute)}
}

// Render returns a width×height PNG filled with the given RGBA quadruple.
// Callers must not mutate the returned slice; it may be shared via the cache.
func (r *Renderer) Render(width, height int, rgba [4]uint8) ([]byte, error) {
	key := fmt.Sprintf("%dx%d:%02x%02x%02x%02x", width, height, rgba[0], rgba[1], rgba[2], rgba[3])
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = rgba[0]
		img.Pix[i+1] = rgba[1]
		img.Pix[i+2] = rgba[2]
		img.Pix[i+3] = rgba[3]
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	out := buf.Bytes()
	r.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}
