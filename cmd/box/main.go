package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/box/internal/boxes"
	"github.com/jacoelho/box/internal/boxfile"
	"github.com/jacoelho/box/internal/config"
	"github.com/jacoelho/box/internal/logging"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Fprintln(stdout, config.Usage())
			return 0
		}

		fmt.Fprintf(stderr, "Error: %v\n\n%s\n", err, config.Usage())
		return 1
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Stderr: stderr,
		File:   cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	store, err := boxfile.Open(cfg.File, boxfile.Options{
		MaxLineLength: cfg.MaxLineLength,
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer store.Close()

	exitCode := 0
	fail := func(err error, usage bool) {
		if usage {
			fmt.Fprintf(stderr, "Error: %v\n\n%s\n", err, config.Usage())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		exitCode = 1
	}

	if cfg.Create {
		boxes.Create(store, cfg.Box)
	}

	if cfg.AppendGiven {
		if err := boxes.Append(store, cfg.Box, cfg.Append); err != nil {
			fail(err, true)
		}
	}

	if cfg.Read {
		if err := boxes.Read(store, cfg.Box, stdout); err != nil {
			fail(fmt.Errorf("read box: %w", err), false)
		}
	}

	if cfg.Delete {
		boxes.Delete(store, cfg.Box)
	}

	if cfg.List {
		if err := boxes.List(store, stdout); err != nil {
			fail(fmt.Errorf("list boxes: %w", err), false)
		}
	}

	if cfg.Export {
		if err := boxes.Export(store, stdout, cfg.Format); err != nil {
			fail(fmt.Errorf("export boxes: %w", err), false)
		}
	}

	if store.Dirty() {
		if err := store.Rewrite(cfg.File); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	return exitCode
}
