package vrcprintutils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

var (
	frameColor = color.NRGBA{200, 200, 200, 255}
	photoColor = color.NRGBA{128, 128, 128, 255}
)

// createTestImage builds a light-framed screenshot with a mid-gray photo
func createTestImage(g geometry.Geometry) *image.NRGBA {
	img := imaging.New(g.Width, g.Height, frameColor)
	photo := imaging.New(g.PhotoRect.Dx(), g.PhotoRect.Dy(), photoColor)
	return imaging.Paste(img, photo, g.PhotoRect.Min)
}

func quietEngine(opts ...Option) *Engine {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return New(append([]Option{WithLogger(log)}, opts...)...)
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.NotNil(t, e.transformer)
	assert.NotNil(t, e.processor)
	assert.NotNil(t, e.analyzer)
	assert.NotNil(t, e.log)
}

func TestProcessModeOnly(t *testing.T) {
	e := quietEngine()
	l := geometry.LandscapeGeometry()

	res, err := e.Process(createTestImage(l), Request{Actions: []types.Action{types.ActionMode}})
	require.NoError(t, err)

	assert.Equal(t, types.Dark, res.Mode)
	assert.Equal(t, []string{"darkmode"}, res.Tokens)
	assert.Equal(t, geometry.Landscape, res.Geometry.Kind)
	assert.Equal(t, color.NRGBA{55, 55, 55, 255}, res.Image.NRGBAAt(1, 1))
	assert.Equal(t, photoColor, res.Image.NRGBAAt(l.PhotoRect.Min.X, l.PhotoRect.Min.Y))
}

func TestProcessOrientationThenMode(t *testing.T) {
	e := quietEngine()

	// selection order does not matter, orientation always runs first
	res, err := e.Process(createTestImage(geometry.LandscapeGeometry()), Request{
		Actions:   []types.Action{types.ActionMode, types.ActionOrientation},
		Direction: types.Clockwise,
	})
	require.NoError(t, err)

	p := geometry.PortraitGeometry()
	assert.Equal(t, []string{"orientation", "darkmode"}, res.Tokens)
	assert.Equal(t, geometry.Portrait, res.Geometry.Kind)
	assert.Equal(t, p.Size(), res.Image.Bounds().Size())

	// white borders from the rebuild become black after inversion
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, res.Image.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{55, 55, 55, 255}, res.Image.NRGBAAt(p.Width/2, p.Height-1))
	assert.Equal(t, photoColor, res.Image.NRGBAAt(p.PhotoRect.Min.X, p.PhotoRect.Min.Y))
}

func TestProcessOrientationOnly(t *testing.T) {
	e := quietEngine()

	res, err := e.Process(createTestImage(geometry.PortraitGeometry()), Request{
		Actions:   []types.Action{types.ActionOrientation},
		Direction: types.CounterClockwise,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"orientation"}, res.Tokens)
	assert.Equal(t, image.Pt(2048, 1440), res.Image.Bounds().Size())
	assert.Equal(t, types.Mode(""), res.Mode)
}

func TestProcessErrors(t *testing.T) {
	e := quietEngine()
	img := createTestImage(geometry.LandscapeGeometry())

	_, err := e.Process(img, Request{})
	assert.True(t, errors.Is(err, ErrNoActions))

	_, err = e.Process(img, Request{Actions: []types.Action{types.ActionOrientation}})
	assert.Error(t, err)

	_, err = e.Process(imaging.New(300, 200, frameColor), Request{Actions: []types.Action{types.ActionMode}})
	assert.True(t, errors.Is(err, geometry.ErrUnsupportedGeometry))
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "VRChat_2048x1440.png")
	e := quietEngine()
	require.NoError(t, e.SaveImage(createTestImage(geometry.LandscapeGeometry()), in))

	res, err := e.ProcessFile(in, "", Request{
		Actions:   []types.Action{types.ActionOrientation, types.ActionMode},
		Direction: types.Clockwise,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "VRChat_2048x1440-orientation-darkmode.png"), res.Path)

	out, err := e.LoadImage(res.Path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1152, 2123), out.Bounds().Size())

	info := e.GetImageInfo(out)
	assert.Equal(t, geometry.Portrait, info.Geometry)
	assert.Equal(t, types.Dark, info.Mode)
	assert.NoError(t, e.ValidateImage(out))
}

func TestProcessFileOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	in := filepath.Join(dir, "shot.png")
	e := quietEngine(WithOutputDir(outDir))
	require.NoError(t, e.SaveImage(createTestImage(geometry.LandscapeGeometry()), in))

	res, err := e.ProcessFile(in, "", Request{Actions: []types.Action{types.ActionMode}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "shot-darkmode.png"), res.Path)
}

func TestProcessFileMissing(t *testing.T) {
	e := quietEngine()
	_, err := e.ProcessFile(filepath.Join(t.TempDir(), "nope.png"), "", Request{Actions: []types.Action{types.ActionMode}})
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	e := quietEngine(WithDefaultExt(".webp"))
	assert.Equal(t, "shot-orientation.webp", e.OutputPath("shot", []string{"orientation"}))
	assert.Equal(t, "shot-out.png", e.OutputPath("shot.png", nil))
}

func TestCreateDebugOverlay(t *testing.T) {
	e := quietEngine()
	l := geometry.LandscapeGeometry()

	overlay, err := e.CreateDebugOverlay(createTestImage(l))
	require.NoError(t, err)
	out := imaging.Clone(overlay)
	assert.Equal(t, l.Size(), out.Bounds().Size())
	// photo outline drawn at the photo corner, interior untouched
	assert.NotEqual(t, photoColor, out.NRGBAAt(l.PhotoRect.Min.X, l.PhotoRect.Min.Y))
	assert.Equal(t, photoColor, out.NRGBAAt(l.PhotoRect.Min.X+100, l.PhotoRect.Min.Y+100))

	_, err = e.CreateDebugOverlay(imaging.New(300, 200, frameColor))
	assert.True(t, errors.Is(err, geometry.ErrUnsupportedGeometry))
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
	assert.NotEmpty(t, GetVersion())
}

func BenchmarkInvertFrame(b *testing.B) {
	e := quietEngine()
	img := createTestImage(geometry.LandscapeGeometry())
	req := Request{Actions: []types.Action{types.ActionMode}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Process(img, req)
	}
}

func BenchmarkRotate(b *testing.B) {
	e := quietEngine()
	img := createTestImage(geometry.LandscapeGeometry())
	req := Request{Actions: []types.Action{types.ActionOrientation}, Direction: types.Clockwise}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Process(img, req)
	}
}
