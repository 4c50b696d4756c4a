package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixelize"
	"github.com/bodgit/pixelize/dither"
	"github.com/bodgit/pixelize/filter"
	"github.com/bodgit/pixelize/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pixelize.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var renderFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "request",
		Usage: "read render settings from a TOML or JSON `FILE`",
	},
	&cli.StringFlag{
		Name:    "grid",
		Aliases: []string{"g"},
		Value:   "64",
		Usage:   "grid size as N or NxM",
	},
	&cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Value:   dither.Standard.Name,
		Usage:   "dithering algorithm",
	},
	&cli.StringFlag{
		Name:    "palette",
		Aliases: []string{"p"},
		Value:   palette.DefaultName,
		Usage:   "palette name",
	},
	&cli.StringSliceFlag{
		Name:  "color",
		Usage: "use these hex colors instead of a named palette",
	},
	&cli.BoolFlag{
		Name:  "preview",
		Usage: "enlarge the result onto a square canvas",
	},
	&cli.IntFlag{
		Name:  "size",
		Value: pixelize.DefaultDisplaySize,
		Usage: "side of the preview canvas",
	},
	&cli.Float64Flag{
		Name:  "denoise",
		Usage: "denoise blur sigma",
	},
	&cli.Float64Flag{
		Name:  "gamma",
		Value: 1,
		Usage: "tone gamma",
	},
	&cli.Float64Flag{
		Name:  "contrast",
		Usage: "contrast adjustment in percent",
	},
	&cli.Float64Flag{
		Name:  "saturation",
		Usage: "saturation adjustment in percent",
	},
	&cli.Float64Flag{
		Name:  "hue",
		Usage: "hue rotation in degrees",
	},
	&cli.BoolFlag{
		Name:  "invert",
		Usage: "invert colors",
	},
}

// request builds the render request from an optional request file with any
// explicitly set flags applied on top
func request(c *cli.Context) (pixelize.Request, error) {
	var req pixelize.Request
	if file := c.String("request"); file != "" {
		var err error
		if req, err = pixelize.LoadRequest(file); err != nil {
			return req, err
		}
	} else {
		req.GridValue = c.String("grid")
		req.Algorithm = c.String("algorithm")
		req.PaletteName = c.String("palette")
		req.DisplaySize = c.Int("size")
		req.ToneGamma = c.Float64("gamma")
	}

	if c.IsSet("grid") {
		req.GridValue = c.String("grid")
	}
	if c.IsSet("algorithm") {
		req.Algorithm = c.String("algorithm")
	}
	if c.IsSet("palette") {
		req.PaletteName = c.String("palette")
	}
	if c.IsSet("color") {
		req.PaletteColors = c.StringSlice("color")
	}
	if c.IsSet("size") {
		req.DisplaySize = c.Int("size")
	}
	if c.IsSet("denoise") {
		req.DenoiseSigma = c.Float64("denoise")
	}
	if c.IsSet("gamma") {
		req.ToneGamma = c.Float64("gamma")
	}
	if c.IsSet("contrast") {
		req.Contrast = c.Float64("contrast")
	}
	if c.IsSet("saturation") {
		req.Saturation = c.Float64("saturation")
	}
	if c.IsSet("hue") {
		req.Hue = c.Float64("hue")
	}
	if c.IsSet("invert") {
		req.Invert = c.Bool("invert")
	}

	return req, nil
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newRenderer returns a Renderer along with a function to release its cache
func newRenderer(c *cli.Context) (*pixelize.Renderer, func(), error) {
	logger := newLogger(c)

	library := palette.NewLibrary(logger)
	if dir := c.String("palettes"); dir != "" {
		if err := library.LoadDir(dir); err != nil {
			return nil, nil, err
		}
	}

	if c.Bool("no-cache") || c.String("db") == "" {
		return pixelize.New(nil, library, logger), func() {}, nil
	}

	cache, err := pixelize.NewCache(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return pixelize.New(cache, library, logger), func() { cache.Close() }, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelize"
	app.Usage = "Palette quantization and dithering for pixel art"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELIZE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to render cache database",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "do not use the render cache",
		},
		&cli.StringFlag{
			Name:    "palettes",
			EnvVars: []string{"PIXELIZE_PALETTES"},
			Usage:   "directory of .gpl and .toml palette files",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Render an image",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				req, err := request(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				r, release, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer release()

				b, err := r.RenderFile(c.Args().Get(0), req, c.Bool("preview"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Render every image in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				req, err := request(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				r, release, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer release()

				if err := r.Batch(c.Args().Get(0), c.Args().Get(1), req, c.Bool("preview")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "watch",
			Usage:       "Render images as they appear in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				req, err := request(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				r, release, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer release()

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				if err := r.Watch(ctx, c.Args().Get(0), c.Args().Get(1), req, c.Bool("preview")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "filter",
			Usage:       "Apply the VHS filter to an image",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  "amount",
					Value: 0.5,
					Usage: "filter strength from 0 to 1",
				},
				&cli.IntFlag{
					Name:  "size",
					Value: pixelize.DefaultDisplaySize,
					Usage: "longest side of the output",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				r := pixelize.New(nil, nil, newLogger(c))

				b, err := r.FilterFile(c.Args().Get(0), pixelize.FilterRequest{
					DisplaySize: c.Int("size"),
					Steps: []filter.Step{
						{Name: "VHS", Enabled: true, Amount: c.Float64("amount")},
					},
				})
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "palettes",
			Usage:       "List available palettes",
			Description: "",
			Action: func(c *cli.Context) error {
				library := palette.NewLibrary(newLogger(c))
				if dir := c.String("palettes"); dir != "" {
					if err := library.LoadDir(dir); err != nil {
						return cli.Exit(err, 1)
					}
				}

				for _, p := range library.All() {
					hex := make([]string, len(p.Colors))
					for i, col := range p.Colors {
						hex[i] = col.Hex()
					}
					fmt.Printf("%s\t%s\n", p.Name, strings.Join(hex, " "))
				}

				return nil
			},
		},
		{
			Name:        "algorithms",
			Usage:       "List available dithering algorithms",
			Description: "",
			Action: func(c *cli.Context) error {
				for _, name := range dither.Names() {
					fmt.Println(name)
				}
				return nil
			},
		},
		{
			Name:        "purge",
			Usage:       "Empty the render cache",
			Description: "",
			Action: func(c *cli.Context) error {
				cache, err := pixelize.NewCache(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer cache.Close()

				if err := cache.Purge(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
