package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bodgit/rle565"
	"github.com/bodgit/rle565/rle"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConfig(c *cli.Context) (*rle565.Config, error) {
	config := rle565.DefaultConfig()
	if file := c.String("config"); file != "" {
		var err error
		if config, err = rle565.LoadConfig(file); err != nil {
			return nil, err
		}
	}

	if c.IsSet("cache") {
		config.Cache = c.String("cache")
	}
	if c.IsSet("colors") {
		config.Colors = c.Int("colors")
	}
	if c.IsSet("limit") {
		config.Limit = c.Int("limit")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}

	return config, config.Validate()
}

func newLogger(c *cli.Context) hclog.Logger {
	level := hclog.Warn
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   c.App.Name,
		Level:  level,
		Output: c.App.ErrWriter,
	})
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "rle565"
	app.Usage = "PNG to RLE565 converter"
	app.UsageText = "rle565 [global options] INPUT OUTPUT\n   rle565 [global options] command [command options] [arguments...]"
	app.Version = "1.0.0"
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"RLE565_CONFIG"},
			Usage:   "path to YAML configuration file",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"RLE565_CACHE"},
			Usage:   "path to conversion cache database",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce the image to at most `N` colors before encoding",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "fail if the output would exceed `BYTES`",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent conversions in batch mode",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	var converter *rle565.Converter

	app.Before = func(c *cli.Context) error {
		config, err := newConfig(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if converter, err = rle565.New(config, newLogger(c)); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if converter != nil {
			return converter.Close()
		}
		return nil
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 2 {
			return cli.ShowAppHelp(c)
		}

		if err := converter.ConvertFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
			var se *rle565.StageError
			if errors.As(err, &se) {
				return cli.NewExitError(fmt.Sprintf("%s stage failed: %v", se.Stage, se.Err), 1)
			}
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "batch",
			Usage:       "Convert every image below a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					_ = cli.ShowCommandHelp(c, c.Command.Name)
					return cli.NewExitError("", 1)
				}

				if err := converter.ConvertDir(context.Background(), c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Summarize an RLE565 file",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "expected image width",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "expected image height",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					_ = cli.ShowCommandHelp(c, c.Command.Name)
					return cli.NewExitError("", 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				records, err := rle.ReadRecords(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				stats := rle.Summarize(records)
				fmt.Fprintf(c.App.Writer, "records: %d\npixels: %d\n", stats.Records, stats.Pixels)

				if c.IsSet("width") || c.IsSet("height") {
					if c.Int("width") < 0 || c.Int("height") < 0 {
						return cli.NewExitError("width and height must not be negative", 1)
					}
					if want := uint64(c.Int("width")) * uint64(c.Int("height")); want != stats.Pixels {
						return cli.NewExitError(fmt.Sprintf("expected %d pixels, found %d", want, stats.Pixels), 1)
					}
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
