package analyzer

import (
	"fmt"
	"image"

	"github.com/GuusDeKroon/VRCprintutils/pkg/frame"
	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// ImageAnalyzer reports what a screenshot looks like before it is edited
type ImageAnalyzer struct{}

// New creates a new ImageAnalyzer
func New() *ImageAnalyzer {
	return &ImageAnalyzer{}
}

// ImageInfo contains basic image metadata plus the recognized frame layout
type ImageInfo struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	AspectRatio float64         `json:"aspect_ratio"`
	Supported   bool            `json:"supported"`
	Geometry    geometry.Kind   `json:"-"`
	Layout      string          `json:"layout,omitempty"`
	PhotoRect   image.Rectangle `json:"photo_rect"`
	Mode        types.Mode      `json:"mode,omitempty"`
}

// GetImageInfo returns size information and, for recognized screenshots,
// the geometry, photo rectangle and current frame mode
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}

	g, err := geometry.Detect(img)
	if err != nil {
		return info
	}
	info.Supported = true
	info.Geometry = g.Kind
	info.Layout = g.Kind.String()
	info.PhotoRect = g.PhotoRect
	info.Mode = frame.ClassifyBrightness(img)
	return info
}

// ValidateImage checks that the image is a recognized screenshot
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	if _, err := geometry.Detect(img); err != nil {
		return fmt.Errorf("image validation failed: %w", err)
	}
	return nil
}
