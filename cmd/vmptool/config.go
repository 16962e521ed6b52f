package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/btcsuite/btclog"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/contract-patterns/vmp-go-base/assets"
	"github.com/contract-patterns/vmp-go-base/fungibility"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

const (
	envPuzzleDir = "VMP_PUZZLE_DIR"
	envLogLevel  = "VMP_LOG_LEVEL"

	defaultLogLevel = "info"
)

var errMissingPuzzleDir = errors.New("puzzle directory is not set, use --puzzle-dir or " + envPuzzleDir)

type (
	configuration struct {
		puzzleDir string
		logLevel  btclog.Level
	}

	metadata struct {
		config *configuration
		reg    *puzzles.Registry
		w      io.Writer
		e      io.Writer
	}
)

// loadEnv adds the variables of the .env file (when there is one) to the environment.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// newConfiguration reads the global flags, flags win over the environment.
func newConfiguration(c *cli.Context) (*configuration, error) {
	name := c.GlobalString("log-level")
	if name == "" {
		name = defaultLogLevel
	}
	level, ok := btclog.LevelFromString(name)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", name)
	}
	return &configuration{
		puzzleDir: c.GlobalString("puzzle-dir"),
		logLevel:  level,
	}, nil
}

func initLogging(w io.Writer, level btclog.Level) {
	backend := btclog.NewBackend(w)
	for tag, use := range map[string]func(btclog.Logger){
		"VMP":  vmp.UseLogger,
		"FUNG": fungibility.UseLogger,
		"ASST": assets.UseLogger,
		"PUZL": puzzles.UseLogger,
	} {
		logger := backend.Logger(tag)
		logger.SetLevel(level)
		use(logger)
	}
}

// registry loads the puzzle templates on first use.
func (m *metadata) registry() (*puzzles.Registry, error) {
	if m.reg != nil {
		return m.reg, nil
	}
	if m.config.puzzleDir == "" {
		return nil, errMissingPuzzleDir
	}
	reg, err := puzzles.LoadDir(m.config.puzzleDir)
	if err != nil {
		return nil, err
	}
	m.reg = reg
	return reg, nil
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}
