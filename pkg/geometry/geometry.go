// Package geometry describes the two frame layouts the producer writes and
// classifies images into one of them.
package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Producer constants for the native landscape layout.
const (
	LandscapeWidth         = 2048
	LandscapeHeight        = 1440
	LandscapeSideBorder    = 64
	LandscapeTopBorder     = 69
	LandscapeCaptionHeight = 291

	// Portrait scales the landscape borders by PortraitPhotoWidth/LandscapePhotoWidth.
	PortraitPhotoWidth  = 1080
	PortraitPhotoHeight = 1920
)

// Kind names one of the supported layouts.
type Kind int

const (
	Landscape Kind = iota
	Portrait
)

func (k Kind) String() string {
	switch k {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Opposite returns the layout of the other orientation.
func (k Kind) Opposite() Kind {
	if k == Landscape {
		return Portrait
	}
	return Landscape
}

// Geometry holds the pixel layout of one frame kind.
type Geometry struct {
	Kind          Kind
	Width         int
	Height        int
	SideBorder    int
	TopBorder     int
	CaptionHeight int
	PhotoRect     image.Rectangle
}

// Size returns the total image size.
func (g Geometry) Size() image.Point {
	return image.Pt(g.Width, g.Height)
}

// PhotoSize returns the size of the embedded photo.
func (g Geometry) PhotoSize() image.Point {
	return g.PhotoRect.Size()
}

// CaptionRect is the full-width strip at the bottom of the frame.
func (g Geometry) CaptionRect() image.Rectangle {
	return image.Rect(0, g.Height-g.CaptionHeight, g.Width, g.Height)
}

// Opposite returns the geometry of the other orientation.
func (g Geometry) Opposite() Geometry {
	return ForKind(g.Kind.Opposite())
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s (%dx%d)", g.Kind, g.Width, g.Height)
}

var landscape, portrait = buildGeometries()

func buildGeometries() (Geometry, Geometry) {
	photoW := LandscapeWidth - 2*LandscapeSideBorder
	photoH := LandscapeHeight - LandscapeTopBorder - LandscapeCaptionHeight
	l := Geometry{
		Kind:          Landscape,
		Width:         LandscapeWidth,
		Height:        LandscapeHeight,
		SideBorder:    LandscapeSideBorder,
		TopBorder:     LandscapeTopBorder,
		CaptionHeight: LandscapeCaptionHeight,
		PhotoRect: image.Rect(LandscapeSideBorder, LandscapeTopBorder,
			LandscapeSideBorder+photoW, LandscapeTopBorder+photoH),
	}

	scale := float64(PortraitPhotoWidth) / float64(photoW)
	side := scaled(LandscapeSideBorder, scale)
	top := scaled(LandscapeTopBorder, scale)
	caption := scaled(LandscapeCaptionHeight, scale)
	p := Geometry{
		Kind:          Portrait,
		Width:         PortraitPhotoWidth + 2*side,
		Height:        PortraitPhotoHeight + top + caption,
		SideBorder:    side,
		TopBorder:     top,
		CaptionHeight: caption,
		PhotoRect:     image.Rect(side, top, side+PortraitPhotoWidth, top+PortraitPhotoHeight),
	}
	return l, p
}

func scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

// LandscapeGeometry returns the native producer layout.
func LandscapeGeometry() Geometry { return landscape }

// PortraitGeometry returns the scaled portrait layout.
func PortraitGeometry() Geometry { return portrait }

// ForKind returns the geometry for k.
func ForKind(k Kind) Geometry {
	if k == Portrait {
		return portrait
	}
	return landscape
}

// All lists the supported geometries.
func All() []Geometry {
	return []Geometry{landscape, portrait}
}

// ErrUnsupportedGeometry matches any *UnsupportedGeometryError.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// UnsupportedGeometryError reports image dimensions that match neither layout.
type UnsupportedGeometryError struct {
	Width  int
	Height int
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("unsupported size %dx%d, expected %dx%d or %dx%d",
		e.Width, e.Height, landscape.Width, landscape.Height, portrait.Width, portrait.Height)
}

func (e *UnsupportedGeometryError) Is(target error) bool {
	return target == ErrUnsupportedGeometry
}

// DetectSize classifies exact pixel dimensions.
func DetectSize(width, height int) (Geometry, error) {
	for _, g := range All() {
		if width == g.Width && height == g.Height {
			return g, nil
		}
	}
	return Geometry{}, &UnsupportedGeometryError{Width: width, Height: height}
}

// Detect classifies img by its bounds.
func Detect(img image.Image) (Geometry, error) {
	b := img.Bounds()
	return DetectSize(b.Dx(), b.Dy())
}
