package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/GuusDeKroon/VRCprintutils/pkg/frame"
	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
)

// Processor handles image decoding and encoding around the transforms
type Processor struct {
	options SaveOptions
}

// SaveOptions controls output encoding
type SaveOptions struct {
	JPEGQuality  int
	WebPLossless bool
	WebPQuality  int
}

// DefaultSaveOptions keeps WebP lossless and JPEG close to the source
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		JPEGQuality:  95,
		WebPLossless: true,
		WebPQuality:  90,
	}
}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{options: DefaultSaveOptions()}
}

// NewProcessorWithOptions creates a processor with custom save options
func NewProcessorWithOptions(opts SaveOptions) *Processor {
	return &Processor{options: opts}
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := p.decodeImageFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// decodeImageFromBytes decodes an image from byte data with WebP support
func (p *Processor) decodeImageFromBytes(data []byte) (image.Image, error) {
	// Try standard image.Decode first
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	// Try WebP decode
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// SaveImage writes img as opaque RGB, choosing the encoder from the file extension
func (p *Processor) SaveImage(img image.Image, path string) error {
	flat := Opaque(img)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		opts := &webp.Options{Lossless: p.options.WebPLossless, Quality: float32(p.options.WebPQuality)}
		if err := webp.Encode(f, flat, opts); err != nil {
			f.Close()
			return fmt.Errorf("encode webp: %w", err)
		}
		return f.Close()
	case ".jpg", ".jpeg":
		return imaging.Save(flat, path, imaging.JPEGQuality(p.options.JPEGQuality))
	default:
		return imaging.Save(flat, path)
	}
}

// Opaque copies img into a new NRGBA at the origin with every alpha set to 255.
// Color channels are kept as they are, like a plain RGB conversion.
func Opaque(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// CreateDebugOverlay outlines the photo rectangle and marks the brightness
// sample point of a recognized screenshot
func (p *Processor) CreateDebugOverlay(img image.Image, g geometry.Geometry) image.Image {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	// Colors
	green := color.NRGBA{0, 255, 0, 255} // photo rect
	gold := color.NRGBA{255, 204, 0, 255} // caption bar
	red := color.NRGBA{255, 0, 0, 255}    // sample point
	stroke := int(math.Max(2, 0.002*float64(minInt(w, h))))
	cross := int(math.Max(6, 0.01*float64(minInt(w, h))))

	drawRect(nrgba, g.PhotoRect, green, stroke)
	drawRect(nrgba, g.CaptionRect(), gold, stroke)

	s := frame.SamplePoint
	drawHLine(nrgba, s.Y, s.X-cross, s.X+cross, red)
	drawVLine(nrgba, s.X, s.Y-cross, s.Y+cross, red)

	return nrgba
}

// Helper functions
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func drawRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, r.Min.Y+s, r.Min.X, r.Max.X, c)
		drawHLine(img, r.Max.Y-1-s, r.Min.X, r.Max.X, c)
		drawVLine(img, r.Min.X+s, r.Min.Y, r.Max.Y, c)
		drawVLine(img, r.Max.X-1-s, r.Min.Y, r.Max.Y, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
