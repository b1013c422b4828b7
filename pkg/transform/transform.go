package transform

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/GuusDeKroon/VRCprintutils/pkg/frame"
	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
	"github.com/GuusDeKroon/VRCprintutils/pkg/processing"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// Transformer rebuilds framed screenshots
type Transformer struct {
	config Config
}

// Config holds configuration for frame transforms
type Config struct {
	// Resampler scales the caption bar between geometries.
	Resampler imaging.ResampleFilter
	// LightCaption inverts the caption bar of a dark source frame during
	// recomposition so it matches the white borders.
	LightCaption bool
}

// DefaultConfig uses bicubic (Catmull-Rom) caption scaling and keeps the
// caption colors as they are.
func DefaultConfig() Config {
	return Config{
		Resampler:    imaging.CatmullRom,
		LightCaption: false,
	}
}

// New creates a new Transformer with default configuration
func New() *Transformer {
	return &Transformer{config: DefaultConfig()}
}

// NewWithConfig creates a new Transformer with custom configuration
func NewWithConfig(config Config) *Transformer {
	return &Transformer{config: config}
}

var resamplers = map[string]imaging.ResampleFilter{
	"catmullrom":        imaging.CatmullRom,
	"bicubic":           imaging.CatmullRom,
	"mitchellnetravali": imaging.MitchellNetravali,
	"lanczos":           imaging.Lanczos,
	"linear":            imaging.Linear,
	"box":               imaging.Box,
	"nearest":           imaging.NearestNeighbor,
}

// ResamplerByName resolves a config name such as "bicubic" or "lanczos"
func ResamplerByName(name string) (imaging.ResampleFilter, error) {
	f, ok := resamplers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resampler: %q", name)
	}
	return f, nil
}

// ErrDimensionMismatch matches any *DimensionMismatchError
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError reports a photo that does not fit the target photo rectangle
type DimensionMismatchError struct {
	Target geometry.Geometry
	Width  int
	Height int
}

func (e *DimensionMismatchError) Error() string {
	want := e.Target.PhotoSize()
	return fmt.Sprintf("photo is %dx%d, %s photo area needs %dx%d",
		e.Width, e.Height, e.Target.Kind, want.X, want.Y)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Recompose builds a complete framed image of the target geometry around
// photo. Side and top borders are always white; the caption bar is taken
// from the bottom of source and scaled to the target width.
func (t *Transformer) Recompose(photo image.Image, target geometry.Geometry, source image.Image) (*image.NRGBA, error) {
	size := photo.Bounds().Size()
	if size != target.PhotoSize() {
		return nil, &DimensionMismatchError{Target: target, Width: size.X, Height: size.Y}
	}

	srcGeom, err := geometry.Detect(source)
	if err != nil {
		return nil, fmt.Errorf("source frame: %w", err)
	}

	canvas := imaging.New(target.Width, target.Height, color.White)
	canvas = imaging.Paste(canvas, photo, target.PhotoRect.Min)

	caption := imaging.Crop(source, srcGeom.CaptionRect().Add(source.Bounds().Min))
	if t.config.LightCaption && frame.ClassifyBrightness(source) == types.Dark {
		caption = imaging.Invert(caption)
	}
	caption = imaging.Resize(caption, target.Width, target.CaptionHeight, t.config.Resampler)
	return imaging.Paste(canvas, caption, target.CaptionRect().Min), nil
}

// Rotate turns the embedded photo 90 degrees in dir and rebuilds it inside
// the frame of the opposite geometry. img must have geometry g.
func (t *Transformer) Rotate(img image.Image, g geometry.Geometry, dir types.Direction) (*image.NRGBA, error) {
	photo := frame.ExtractPhoto(img, g)

	var turned *image.NRGBA
	switch dir {
	case types.Clockwise:
		turned = imaging.Rotate270(photo)
	case types.CounterClockwise:
		turned = imaging.Rotate90(photo)
	default:
		return nil, fmt.Errorf("unknown direction: %q", dir)
	}

	return t.Recompose(turned, g.Opposite(), img)
}

// InvertFrame inverts the colors of every pixel outside the photo
// rectangle and reports the mode the frame ends up in.
func (t *Transformer) InvertFrame(img image.Image) (*image.NRGBA, types.Mode, error) {
	g, err := geometry.Detect(img)
	if err != nil {
		return nil, "", err
	}

	out := processing.Opaque(img)
	inverted := imaging.Invert(out)
	draw.DrawMask(out, out.Bounds(), inverted, image.Point{}, frame.Mask(g), image.Point{}, draw.Over)

	return out, frame.ClassifyBrightness(out), nil
}
