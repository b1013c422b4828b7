package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	vrcprintutils "github.com/GuusDeKroon/VRCprintutils"
	"github.com/GuusDeKroon/VRCprintutils/internal/ui"
	"github.com/GuusDeKroon/VRCprintutils/internal/utils"
	"github.com/GuusDeKroon/VRCprintutils/pkg/types"
)

// collect asks for the edits first and the input file second.
func collect(arg, rotate string, invert bool, p *ui.Prompter) (vrcprintutils.Request, string, error) {
	req, err := buildRequest(rotate, invert, p)
	if err != nil {
		return req, "", err
	}
	input, err := inputPath(arg, p)
	if err != nil {
		return req, "", err
	}
	return req, input, nil
}

// quietStop reports whether err ends convert without a failure, with the
// message to show instead.
func quietStop(err error) (string, bool) {
	switch {
	case errors.Is(err, vrcprintutils.ErrNoActions):
		return "No actions selected.", true
	case errors.Is(err, ui.ErrCanceled):
		return "Canceled.", true
	}
	return "", false
}

// inputPath uses arg when given and asks for a path otherwise.
func inputPath(arg string, p *ui.Prompter) (string, error) {
	path := utils.CleanPath(arg)
	if path == "" {
		return p.InputPath()
	}
	if !utils.FileExists(path) {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if !utils.IsImageFile(path) {
		return "", fmt.Errorf("not an image file: %s", path)
	}
	return path, nil
}

// buildRequest turns the convert flags into a request. Without any action
// flag the user is asked instead.
func buildRequest(rotate string, invert bool, p *ui.Prompter) (vrcprintutils.Request, error) {
	var req vrcprintutils.Request

	if rotate == "" && !invert {
		actions, err := p.Actions()
		if err != nil {
			return req, err
		}
		if len(actions) == 0 {
			return req, vrcprintutils.ErrNoActions
		}
		req.Actions = actions
		for _, a := range actions {
			if a == types.ActionOrientation {
				if req.Direction, err = p.Direction(); err != nil {
					return req, err
				}
			}
		}
		return req, nil
	}

	if rotate != "" {
		d, err := types.ParseDirection(rotate)
		if err != nil {
			return req, fmt.Errorf("--rotate: %w", err)
		}
		req.Actions = append(req.Actions, types.ActionOrientation)
		req.Direction = d
	}
	if invert {
		req.Actions = append(req.Actions, types.ActionMode)
	}
	return req, nil
}

func newProgress(max int, desc string, color bool) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(color),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]/[reset]",
			SaucerHead:    "[green]/[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		opts = append(opts, progressbar.OptionSetVisibility(false))
	}
	return progressbar.NewOptions(max, opts...)
}

func step(bar *progressbar.ProgressBar, desc string) {
	_ = bar.Add(1)
	bar.Describe(desc)
}
