package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	vrcprintutils "github.com/GuusDeKroon/VRCprintutils"
	"github.com/GuusDeKroon/VRCprintutils/internal/config"
	"github.com/GuusDeKroon/VRCprintutils/internal/logger"
	"github.com/GuusDeKroon/VRCprintutils/internal/ui"
	"github.com/GuusDeKroon/VRCprintutils/internal/utils"
	"github.com/GuusDeKroon/VRCprintutils/pkg/processing"
	"github.com/GuusDeKroon/VRCprintutils/pkg/transform"
)

var app = cli.NewApp()
var log = logger.Log

// set up in app.Before
var (
	cfg   = config.Default()
	style = ui.NewStyler(false)
)

func init() {
	app.Name = "vrcprint"
	app.Usage = "Rotate and recolor VRChat print screenshots"
	app.UsageText = "vrcprint [global options] command [command options] filename"
	app.Version = vrcprintutils.GetVersion()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "config file `PATH`",
			Value: config.GetConfigPath(),
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log every pipeline step",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
	}
	app.Before = setup
	app.Commands = []cli.Command{
		{
			Name:      "convert",
			Aliases:   []string{"c"},
			Usage:     "Rotate the photo and/or invert the frame",
			ArgsUsage: "[filename]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "rotate, r",
					Usage: "turn the photo 90 degrees, `DIR` is cw or ccw",
				},
				cli.BoolFlag{
					Name:  "invert, i",
					Usage: "switch the frame between light and dark",
				},
				cli.BoolFlag{
					Name:  "light-caption",
					Usage: "invert the caption bar when rotating",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file `PATH`",
				},
			},
			Action: convert,
		},
		{
			Name:      "info",
			Aliases:   []string{"i"},
			Usage:     "Show the detected layout and frame mode",
			ArgsUsage: "filename",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "overlay",
					Usage: "write a debug overlay of the frame regions to `PATH`",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print as JSON",
				},
			},
			Action: info,
		},
		{
			Name:  "init-config",
			Usage: "Write a default config file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "force, f",
					Usage: "overwrite an existing file",
				},
			},
			Action: initConfig,
		},
	}
}

func setup(c *cli.Context) error {
	loaded, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	level := cfg.Log.Level
	if c.Bool("debug") {
		level = "debug"
	}
	err = logger.Configure(log, level, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	color := cfg.UI.Color
	if c.Bool("no-color") {
		color = config.ColorNever
	}
	style = ui.NewStyler(ui.ColorEnabled(color, os.Stdout))
	return nil
}

func newEngine(lightCaption bool) (*vrcprintutils.Engine, error) {
	tc, err := cfg.TransformerConfig()
	if err != nil {
		return nil, err
	}
	tc.LightCaption = tc.LightCaption || lightCaption

	return vrcprintutils.New(
		vrcprintutils.WithTransformer(transform.NewWithConfig(tc)),
		vrcprintutils.WithProcessor(processing.NewProcessorWithOptions(processing.SaveOptions{
			JPEGQuality:  cfg.Output.JPEGQuality,
			WebPLossless: cfg.Output.WebPLossless,
			WebPQuality:  cfg.Output.WebPQuality,
		})),
		vrcprintutils.WithLogger(log),
		vrcprintutils.WithOutputDir(cfg.Output.OutputDir),
		vrcprintutils.WithDefaultExt(cfg.Output.DefaultExt),
	), nil
}

func convert(c *cli.Context) error {
	if cfg.UI.Banner {
		ui.PrintBanner(os.Stdout, style, ui.TerminalWidth(os.Stdout))
	}
	prompter := ui.NewPrompter(os.Stdin, os.Stdout, style)

	req, input, err := collect(c.Args().First(), c.String("rotate"), c.Bool("invert"), prompter)
	if msg, ok := quietStop(err); ok {
		fmt.Fprintln(os.Stdout, style.Yellow(msg))
		return nil
	}
	if err != nil {
		return err
	}

	engine, err := newEngine(c.Bool("light-caption"))
	if err != nil {
		return err
	}

	bar := newProgress(3, "loading", style.Enabled())
	img, err := engine.LoadImage(input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	step(bar, "editing")

	res, err := engine.Process(img, req)
	if err != nil {
		_ = bar.Clear()
		return err
	}
	step(bar, "saving")

	out := utils.CleanPath(c.String("out"))
	if out == "" {
		out = engine.OutputPath(input, res.Tokens)
	}
	if err := utils.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}
	if err := engine.SaveImage(res.Image, out); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	_ = bar.Finish()

	size := ""
	if st, err := os.Stat(out); err == nil {
		size = " (" + utils.FormatFileSize(st.Size()) + ")"
	}
	fmt.Fprintf(os.Stdout, "%s %s%s\n", style.Green("Saved"), style.Bold(out), size)
	log.WithField("layout", res.Geometry.Kind).Debugf("tokens %v", res.Tokens)
	return nil
}

func info(c *cli.Context) error {
	input, err := getFilename(c)
	if err != nil {
		return err
	}
	engine, err := newEngine(false)
	if err != nil {
		return err
	}

	img, err := engine.LoadImage(input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	meta := engine.GetImageInfo(img)

	if c.Bool("json") {
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else {
		fmt.Fprintf(os.Stdout, "%s %s\n", style.Bold("File:"), input)
		fmt.Fprintf(os.Stdout, "%s %dx%d (%.3f)\n", style.Bold("Size:"), meta.Width, meta.Height, meta.AspectRatio)
		if !meta.Supported {
			fmt.Fprintln(os.Stdout, style.Yellow("Not a recognized print screenshot"))
		} else {
			fmt.Fprintf(os.Stdout, "%s %s\n", style.Bold("Layout:"), style.Cyan(meta.Layout))
			fmt.Fprintf(os.Stdout, "%s %v\n", style.Bold("Photo:"), meta.PhotoRect)
			fmt.Fprintf(os.Stdout, "%s %s\n", style.Bold("Frame:"), style.Cyan(string(meta.Mode)))
		}
	}

	overlay := utils.CleanPath(c.String("overlay"))
	if overlay == "" {
		return nil
	}
	debug, err := engine.CreateDebugOverlay(img)
	if err != nil {
		return err
	}
	if err := engine.SaveImage(debug, overlay); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", style.Green("Overlay"), style.Bold(overlay))
	return nil
}

func initConfig(c *cli.Context) error {
	path := c.GlobalString("config")
	if utils.FileExists(path) && !c.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}
	log.Infof("Wrote %s", path)
	return nil
}

func getFilename(c *cli.Context) (string, error) {
	f := utils.CleanPath(c.Args().Get(0))
	if f == "" {
		return "", errors.New("filename is required")
	}
	if !utils.FileExists(f) {
		return "", fmt.Errorf("file not found: %s", f)
	}
	if !utils.IsImageFile(f) {
		return "", fmt.Errorf("not an image file: %s", f)
	}
	return f, nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
