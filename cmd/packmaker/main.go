package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/bodgit/packmaker"
	"github.com/bodgit/packmaker/audio"
	"github.com/bodgit/packmaker/naming"
	"github.com/bodgit/packmaker/palette"
	"github.com/bodgit/packmaker/sprite"
	"github.com/bodgit/packmaker/tint"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const defaultDB = "packmaker.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logger.SetOutput(io.Discard)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func kind(c *cli.Context) (packmaker.Kind, error) {
	return packmaker.ParseKind(c.String("kind"))
}

// open returns a PackMaker with the sheet library and an ffmpeg codec, the
// returned function releases both
func open(c *cli.Context) (*packmaker.PackMaker, func(), error) {
	logger := newLogger(c)

	db, err := packmaker.NewSheetDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	codec, err := audio.NewFFmpeg(c.String("ffmpeg"), c.String("ffprobe"), logger.WithField("prefix", "audio"))
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return packmaker.New(db, codec, logger.WithField("prefix", "packmaker")), func() {
		codec.Close()
		db.Close()
	}, nil
}

func stack(c *cli.Context, m *packmaker.PackMaker, k packmaker.Kind) (*sprite.Stack, error) {
	sheet, err := m.Sheet(k, c.String("sheet"))
	if err != nil {
		return nil, err
	}
	return k.Compose(sheet, c.StringSlice("base"), c.StringSlice("overlay"))
}

func request(c *cli.Context, k packmaker.Kind) packmaker.Request {
	r := packmaker.Request{
		Kind:           k,
		Title:          c.String("title"),
		Artist:         c.String("artist"),
		Audio:          c.Args().First(),
		Parameter:      k.DefaultParameter(),
		DataFormat:     c.Int("data-format"),
		ResourceFormat: c.Int("resource-format"),
		IconColors:     c.Int("icon-colors"),
	}
	if c.IsSet("parameter") {
		r.Parameter = c.Int("parameter")
	}
	return r
}

func kindFlag() cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Value:   packmaker.KindDisc.String(),
		Usage:   "item `KIND`, disc or horn",
	})
}

func nameFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "track `TITLE`",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "artist",
			Aliases: []string{"a"},
			Usage:   "track `ARTIST`, discs only",
		}),
	}
}

func artFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "sheet",
			Usage: "sprite sheet `FILE`, otherwise the imported sheet is used",
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:  "base",
			Usage: "tint `#RRGGBB` for each base layer, bottom first",
		}),
		altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
			Name:  "overlay",
			Usage: "overlay `INDEX[=#RRGGBB]` to add, bottom first",
		}),
	}
}

func packFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "parameter",
			Aliases: []string{"p"},
			Usage:   "comparator output for discs or range for horns (default 15 or 256)",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "data-format",
			Usage: "data pack format `VERSION`, zero for the default",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "resource-format",
			Usage: "resource pack format `VERSION`, zero for the default",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "icon-colors",
			Usage: "reduce the pack icon to `N` colors, zero to keep it as-is",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "output `DIRECTORY`",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "ffmpeg",
			Value: "ffmpeg",
			Usage: "path to ffmpeg",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "ffprobe",
			Value: "ffprobe",
			Usage: "path to ffprobe",
		}),
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "load flags from YAML `FILE`",
		},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func withConfig(fl []cli.Flag) cli.BeforeFunc {
	return altsrc.InitInputSourceWithContext(fl, altsrc.NewYamlSourceFromFlagFunc("config"))
}

func exportCommand(name, usage string, run func(context.Context, *cli.Context, *packmaker.PackMaker, packmaker.Kind) error) *cli.Command {
	fl := flags([]cli.Flag{kindFlag()}, nameFlags(), artFlags(), packFlags())
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "AUDIO",
		Flags:     fl,
		Before:    withConfig(fl),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}

			k, err := kind(c)
			if err != nil {
				return cli.Exit(err, 1)
			}

			m, closer, err := open(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer closer()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			if err := run(ctx, c, m, k); err != nil {
				return cli.Exit(err, 1)
			}

			return nil
		},
	}
}

func savePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}

	return f.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "packmaker"
	app.Usage = "Minecraft music disc and goat horn pack maker"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		logrus.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PACKMAKER_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Import a sprite sheet into the library",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{kindFlag()},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				k, err := kind(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := packmaker.NewSheetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.ImportSheet(k, c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "id",
			Usage: "Print the identifier, give command and item components for a track",
			Flags: flags([]cli.Flag{kindFlag()}, nameFlags()),
			Action: func(c *cli.Context) error {
				k, err := kind(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				r := packmaker.Request{
					Kind:   k,
					Title:  c.String("title"),
					Artist: c.String("artist"),
				}
				id := naming.Derive(r.Name())

				give, err := k.Domain().GiveCommand(id)
				if err != nil {
					return cli.Exit(err, 1)
				}
				item, err := k.Domain().ItemJSON(id)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintln(c.App.Writer, id)
				fmt.Fprintln(c.App.Writer, give)
				fmt.Fprintln(c.App.Writer, item)

				return nil
			},
		},
		{
			Name:      "icon",
			Usage:     "Save the composited item texture",
			ArgsUsage: "[FILE]",
			Flags: flags([]cli.Flag{kindFlag()}, artFlags(), []cli.Flag{
				&cli.BoolFlag{
					Name:  "pack",
					Usage: "save the pack icon instead",
				},
			}),
			Action: func(c *cli.Context) error {
				k, err := kind(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := packmaker.NewSheetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				m := packmaker.New(db, nil, newLogger(c))

				s, err := stack(c, m, k)
				if err != nil {
					return cli.Exit(err, 1)
				}

				file, img := k.TextureName(), packmaker.RenderTexture(s)
				if c.Bool("pack") {
					file, img = "pack.png", packmaker.RenderIcon(s, k)
				}
				if c.NArg() > 0 {
					file = c.Args().First()
				}

				if err := savePNG(file, img); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		exportCommand("data", "Build the data pack for a track", func(ctx context.Context, c *cli.Context, m *packmaker.PackMaker, k packmaker.Kind) error {
			a, err := m.DataPack(ctx, request(c, k))
			if err != nil {
				return err
			}
			return packmaker.WriteArchive(c.String("output"), a)
		}),
		exportCommand("resources", "Build the resource pack for a track", func(ctx context.Context, c *cli.Context, m *packmaker.PackMaker, k packmaker.Kind) error {
			s, err := stack(c, m, k)
			if err != nil {
				return err
			}
			a, err := m.ResourcePack(ctx, s, request(c, k))
			if err != nil {
				return err
			}
			return packmaker.WriteArchive(c.String("output"), a)
		}),
		func() *cli.Command {
			cmd := exportCommand("batch", "Build both packs for every audio file in a directory", func(ctx context.Context, c *cli.Context, m *packmaker.PackMaker, k packmaker.Kind) error {
				s, err := stack(c, m, k)
				if err != nil {
					return err
				}
				return m.Batch(ctx, s, request(c, k), c.Args().First(), c.String("output"), c.Int("workers"))
			})
			cmd.ArgsUsage = "DIRECTORY"
			cmd.Flags = append(cmd.Flags, &cli.IntFlag{
				Name:  "workers",
				Value: runtime.NumCPU(),
				Usage: "number of tracks to build at once",
			})
			return cmd
		}(),
		{
			Name:      "suggest",
			Usage:     "Suggest layer tints from an image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "colors",
					Aliases: []string{"n"},
					Value:   4,
					Usage:   "number of tints",
				},
				&cli.StringFlag{
					Name:  "method",
					Value: palette.MethodDominant.String(),
					Usage: "dominant or kmeans",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				method, err := palette.ParseMethod(c.String("method"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				img, _, err := image.Decode(f)
				if err != nil {
					return cli.Exit(err, 1)
				}

				colors, err := palette.Suggest(img, c.Int("colors"), method)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, col := range colors {
					fmt.Fprintln(c.App.Writer, tint.ToHex(col))
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
