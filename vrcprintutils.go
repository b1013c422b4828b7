// Package vrcprintutils edits framed screenshots from VRChat prints.
//
// A print screenshot is a photo inside a fixed frame: white or dark side and
// top borders plus a caption bar at the bottom. The producer writes it in one
// of two layouts, landscape (2048x1440) and portrait (1152x2123). This
// package can
//
//   - turn the photo 90 degrees and rebuild the frame in the other layout,
//   - invert the frame colors (light <-> dark) without touching the photo.
//
// Basic usage:
//
//	engine := vrcprintutils.New()
//
//	res, err := engine.ProcessFile("VRChat_2048x1440.png", "", vrcprintutils.Request{
//		Actions:   []types.Action{types.ActionOrientation, types.ActionMode},
//		Direction: types.Clockwise,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("saved", res.Path) // VRChat_2048x1440-orientation-darkmode.png
//
// The package consists of these components:
//
// 1. Geometry (pkg/geometry): the two layouts and size detection
// 2. Frame (pkg/frame): photo extraction, brightness sampling, frame mask
// 3. Transform (pkg/transform): recomposition, rotation and frame inversion
// 4. Processing (pkg/processing): decoding and opaque encoding
//
// Orientation is always applied before the mode change so the inversion
// sees the rebuilt frame.
package vrcprintutils

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/GuusDeKroon/VRCprintutils/internal/utils"
	"github.com/GuusDeKroon/VRCprintutils/pkg/analyzer"
	"github.com/GuusDeKroon/VRCprintutils/pkg/geometry"
	"github.com/GuusDeKroon/VRCprintutils/pkg/processing"
	"github.com/GuusDeKroon/VRCprintutils/pkg/transform"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// Version of the print tools
const Version = "1.0.0"

// ErrNoActions is returned when a request selects no edit
var ErrNoActions = errors.New("no actions selected")

// Engine runs the edit pipeline
type Engine struct {
	transformer *transform.Transformer
	processor   *processing.Processor
	analyzer    *analyzer.ImageAnalyzer
	log         logrus.FieldLogger
	outputDir   string
	defaultExt  string
}

// Option customizes an Engine
type Option func(e *Engine)

// WithTransformer replaces the default transformer
func WithTransformer(t *transform.Transformer) Option {
	return func(e *Engine) { e.transformer = t }
}

// WithProcessor replaces the default processor
func WithProcessor(p *processing.Processor) Option {
	return func(e *Engine) { e.processor = p }
}

// WithLogger sets the logger used for step tracing
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithOutputDir writes results into dir instead of next to the input
func WithOutputDir(dir string) Option {
	return func(e *Engine) { e.outputDir = dir }
}

// WithDefaultExt sets the extension used for inputs without one
func WithDefaultExt(ext string) Option {
	return func(e *Engine) { e.defaultExt = ext }
}

// New creates an Engine with default components
func New(opts ...Option) *Engine {
	e := &Engine{
		transformer: transform.New(),
		processor:   processing.NewProcessor(),
		analyzer:    analyzer.New(),
		log:         logrus.StandardLogger(),
		defaultExt:  utils.DefaultExt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request selects the edits to apply
type Request struct {
	Actions   []types.Action
	Direction types.Direction
}

// Result is the outcome of a pipeline run
type Result struct {
	Image    *image.NRGBA
	Geometry geometry.Geometry
	// Mode is set when the frame was inverted and names the new look
	Mode types.Mode
	// Tokens are the filename suffix words in application order
	Tokens []string
	// Path is set by ProcessFile
	Path string
}

// Process applies the requested edits to img
func (e *Engine) Process(img image.Image, req Request) (Result, error) {
	actions := types.SortActions(req.Actions)
	if len(actions) == 0 {
		return Result{}, ErrNoActions
	}

	g, err := geometry.Detect(img)
	if err != nil {
		return Result{}, err
	}
	e.log.WithField("layout", g.Kind).Debugf("detected %dx%d", g.Width, g.Height)

	res := Result{Geometry: g}
	current := img
	for _, a := range actions {
		switch a {
		case types.ActionOrientation:
			if !req.Direction.Valid() {
				return Result{}, fmt.Errorf("orientation: unknown direction %q", req.Direction)
			}
			out, err := e.transformer.Rotate(current, res.Geometry, req.Direction)
			if err != nil {
				return Result{}, fmt.Errorf("orientation: %w", err)
			}
			current, res.Image = out, out
			res.Geometry = res.Geometry.Opposite()
			res.Tokens = append(res.Tokens, types.OrientationToken)
			e.log.WithFields(logrus.Fields{
				"direction": req.Direction,
				"layout":    res.Geometry.Kind,
			}).Debug("orientation applied")

		case types.ActionMode:
			out, mode, err := e.transformer.InvertFrame(current)
			if err != nil {
				return Result{}, fmt.Errorf("mode: %w", err)
			}
			current, res.Image = out, out
			res.Mode = mode
			res.Tokens = append(res.Tokens, mode.Token())
			e.log.WithField("mode", mode).Debug("frame inverted")
		}
	}

	return res, nil
}

// ProcessFile loads inputPath, applies the edits and saves the result.
// When outputPath is empty the name follows OutputPath.
func (e *Engine) ProcessFile(inputPath, outputPath string, req Request) (Result, error) {
	img, err := e.LoadImage(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load image: %w", err)
	}

	res, err := e.Process(img, req)
	if err != nil {
		return Result{}, err
	}

	if outputPath == "" {
		outputPath = e.OutputPath(inputPath, res.Tokens)
	}
	if err := e.SaveImage(res.Image, outputPath); err != nil {
		return Result{}, fmt.Errorf("failed to save: %w", err)
	}
	res.Path = outputPath
	e.log.WithField("path", outputPath).Debug("saved")
	return res, nil
}

// OutputPath names the output for inputPath after the given transform tokens
func (e *Engine) OutputPath(inputPath string, tokens []string) string {
	return utils.OutputFilename(inputPath, e.outputDir, tokens, e.defaultExt)
}

// LoadImage loads an image from file
func (e *Engine) LoadImage(path string) (image.Image, error) {
	return e.processor.LoadImage(path)
}

// SaveImage saves an image as opaque RGB
func (e *Engine) SaveImage(img image.Image, path string) error {
	return e.processor.SaveImage(img, path)
}

// GetImageInfo returns size, layout and frame mode of an image
func (e *Engine) GetImageInfo(img image.Image) analyzer.ImageInfo {
	return e.analyzer.GetImageInfo(img)
}

// CreateDebugOverlay outlines the frame regions of a recognized screenshot
func (e *Engine) CreateDebugOverlay(img image.Image) (image.Image, error) {
	g, err := geometry.Detect(img)
	if err != nil {
		return nil, err
	}
	return e.processor.CreateDebugOverlay(img, g), nil
}

// ValidateImage checks that img has a supported layout
func (e *Engine) ValidateImage(img image.Image) error {
	return e.analyzer.ValidateImage(img)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
