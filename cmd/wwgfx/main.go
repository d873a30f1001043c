package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

const defaultDB = "wwgfx.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "wwgfx"
	app.Usage = "Westwood tileset and font utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"WWGFX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to asset catalog",
		},
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"WWGFX_PALETTE"},
			Usage:   "path to a 768 byte palette `FILE`",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Describe tileset, font and palette files",
			Description: "",
			ArgsUsage:   "FILE...",
			Action:      info,
		},
		{
			Name:        "render",
			Usage:       "Render a scene to a PNG file",
			Description: "",
			ArgsUsage:   "SCENE OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "rgba",
					Usage: "draw through the software backend rather than a paletted surface",
				},
			},
			Action: render,
		},
		{
			Name:        "view",
			Usage:       "Show a scene in a window",
			Description: "",
			ArgsUsage:   "SCENE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 2,
					Usage: "window scale factor",
				},
			},
			Action: view,
		},
		{
			Name:        "import",
			Usage:       "Build a tileset from a PNG icon sheet",
			Description: "The sheet is sliced into 24x24 icons, left to right and top to bottom.",
			ArgsUsage:   "SHEET OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "extended",
					Usage: "write the extended header layout",
				},
				&cli.IntSliceFlag{
					Name:  "map",
					Usage: "icon number for each cell",
				},
				&cli.IntFlag{
					Name:  "map-width",
					Usage: "map width in cells, extended layout only",
				},
				&cli.IntFlag{
					Name:  "map-height",
					Usage: "map height in cells, extended layout only",
				},
				&cli.StringFlag{
					Name:  "write-palette",
					Usage: "write the palette used to `FILE`",
				},
			},
			Action: importSheet,
		},
		{
			Name:        "export",
			Usage:       "Write every icon in a tileset to a PNG sheet",
			Description: "",
			ArgsUsage:   "TILESET OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "columns",
					Value: 8,
					Usage: "icons per row",
				},
			},
			Action: export,
		},
		{
			Name:        "mkfont",
			Usage:       "Create a font file from the built in 7x13 face",
			Description: "",
			ArgsUsage:   "OUTPUT",
			Action:      mkfont,
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalog assets",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of files to process concurrently",
				},
			},
			Action: scan,
		},
		{
			Name:        "list",
			Usage:       "List catalogued assets",
			Description: "",
			ArgsUsage:   "[KIND]",
			Action:      list,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
