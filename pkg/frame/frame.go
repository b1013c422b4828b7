// Package frame reads the decorative frame around an embedded photo: it cuts
// the photo out, samples the frame brightness and builds the frame mask.
package frame

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// SamplePoint is where the frame brightness is read, one pixel in from the
// corner to stay clear of edge artifacts.
var SamplePoint = image.Pt(1, 1)

// LightThreshold is the luma above which a frame counts as light.
const LightThreshold = 127

// ExtractPhoto crops the photo rectangle of g out of img. The size of img is
// not checked against g.
func ExtractPhoto(img image.Image, g geometry.Geometry) *image.NRGBA {
	rect := g.PhotoRect.Add(img.Bounds().Min)
	return imaging.Crop(img, rect)
}

// Luma returns the Rec. 709 luma of c on the 0..255 scale.
func Luma(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return 0.2126*float64(n.R) + 0.7152*float64(n.G) + 0.0722*float64(n.B)
}

// ClassifyBrightness reports whether the frame of img looks light or dark.
func ClassifyBrightness(img image.Image) types.Mode {
	p := SamplePoint.Add(img.Bounds().Min)
	if Luma(img.At(p.X, p.Y)) > LightThreshold {
		return types.Light
	}
	return types.Dark
}

// Mask returns an alpha mask of g's size that is opaque over the frame and
// transparent over the photo rectangle.
func Mask(g geometry.Geometry) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	r := g.PhotoRect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Pix[mask.PixOffset(r.Min.X, y):mask.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
	return mask
}
