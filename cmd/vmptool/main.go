/*
Command vmptool inspects validating meta puzzles and solves batches of VMP
spends.

	vmptool --puzzle-dir DIR puzzle-hash --vmp FILE
	vmptool --puzzle-dir DIR type-proof --vmp FILE --prove cat:0 --prove nft
	vmptool --puzzle-dir DIR solve --batch FILE --out bundle.cbor

The puzzle directory and the log level can be set in the environment (or in
the .env file) as VMP_PUZZLE_DIR and VMP_LOG_LEVEL.
*/
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "dev"

func main() {
	if err := loadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(w, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "vmptool"
	app.Usage = "validating meta puzzle tool"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "puzzle-dir, d",
			EnvVar: envPuzzleDir,
			Usage:  " directory of the compiled puzzle templates `DIR`",
		},
		cli.StringFlag{
			Name:   "log-level, l",
			Value:  defaultLogLevel,
			EnvVar: envLogLevel,
			Usage:  " log `LEVEL` [trace|debug|info|warn|error|critical|off]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "puzzle-hash",
			Usage:     "display puzzle hash, types hash and inner puzzle hash of a VMP",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vmp, v",
					Usage: "*VMP description `FILE`",
				},
			},
			Action: runPuzzleHash,
		},
		{
			Name:      "type-proof",
			Usage:     "display type proof of some types of a VMP",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vmp, v",
					Usage: "*VMP description `FILE`",
				},
				cli.StringSliceFlag{
					Name:  "prove, p",
					Usage: " types to prove `KIND[:INDEX]`, all the types of the kind when index is omitted",
				},
			},
			Action: runTypeProof,
		},
		{
			Name:      "solve",
			Usage:     "solve the fungibility rings of a batch of spends and export the spend bundle",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "batch, b",
					Usage: "*batch description `FILE`",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: " spend bundle output `FILE` (hex to stdout when not set)",
				},
				cli.StringFlag{
					Name:  "format, f",
					Value: formatCBOR,
					Usage: " spend bundle `FORMAT` [cbor|json]",
				},
			},
			Action: runSolve,
		},
		{
			Name:  "version",
			Usage: "display vmptool version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		cfg, err := newConfiguration(c)
		if err != nil {
			return err
		}
		initLogging(e, cfg.logLevel)
		c.App.Metadata["config"] = &metadata{config: cfg, w: w, e: e}
		return nil
	}
	return app
}

func printJSON(w io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
