package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// SpriteSettings bounds the processed sprite size.
type SpriteSettings struct {
	MaxWidth  int
	MaxHeight int
	// Upscale lets small sprites grow to the bounds. Pixel art is scaled
	// with nearest neighbour so it stays crisp.
	Upscale bool
}

var DefaultSpriteSettings = SpriteSettings{MaxWidth: 192, MaxHeight: 192, Upscale: true}

type SpriteProcessor struct {
	settings SpriteSettings
}

func NewSpriteProcessor(settings SpriteSettings) *SpriteProcessor {
	return &SpriteProcessor{settings: settings}
}

func (p *SpriteProcessor) Decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Process decodes a sprite, trims its transparent border, fits it into the
// configured bounds and re-encodes it as PNG.
func (p *SpriteProcessor) Process(raw []byte) ([]byte, error) {
	img, err := p.Decode(raw)
	if err != nil {
		return nil, err
	}
	img = Trim(img)

	bounds := img.Bounds()
	width, height := p.calculateDimensions(bounds.Dx(), bounds.Dy())
	if width != bounds.Dx() || height != bounds.Dy() {
		img = Resize(img, width, height)
	}
	return p.encode(img)
}

// calculateDimensions keeps the aspect ratio while fitting the bounds.
func (p *SpriteProcessor) calculateDimensions(width, height int) (int, int) {
	if width == 0 || height == 0 {
		return width, height
	}
	fits := width <= p.settings.MaxWidth && height <= p.settings.MaxHeight
	if fits && !p.settings.Upscale {
		return width, height
	}

	scale := min(
		float64(p.settings.MaxWidth)/float64(width),
		float64(p.settings.MaxHeight)/float64(height),
	)
	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

func (p *SpriteProcessor) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Resize scales img to width x height. Downscaling uses CatmullRom,
// upscaling nearest neighbour.
func Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	var scaler draw.Scaler = draw.CatmullRom
	if width > img.Bounds().Dx() {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Trim crops img to the smallest rectangle holding a visible pixel. A fully
// transparent image is returned unchanged.
func Trim(img image.Image) image.Image {
	bounds := img.Bounds()
	crop := image.Rectangle{Min: bounds.Max, Max: bounds.Min}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			crop.Min.X = min(crop.Min.X, x)
			crop.Min.Y = min(crop.Min.Y, y)
			crop.Max.X = max(crop.Max.X, x+1)
			crop.Max.Y = max(crop.Max.Y, y+1)
		}
	}
	if crop.Empty() || crop == bounds {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Copy(dst, image.Point{}, img, crop, draw.Src, nil)
	return dst
}
