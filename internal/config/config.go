package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/jacoelho/box/internal/boxes"
	"github.com/jacoelho/box/internal/boxfile"
	"github.com/jacoelho/box/internal/logging"
)

// minMaxLineLength leaves room for a two character title and its terminator.
const minMaxLineLength = 3

var (
	ErrNoArguments          = errors.New("no arguments provided")
	ErrHelp                 = errors.New("help requested")
	ErrNoOperation          = errors.New("no operation specified")
	ErrNoFile               = errors.New("specify one file to process")
	ErrMissingBox           = errors.New("--box is required for create, append, read and delete")
	ErrInvalidMaxLineLength = fmt.Errorf("--max-line-length must be at least %d", minMaxLineLength)
	ErrUnsupportedConfig    = errors.New("config file must be .yaml, .yml or .toml")
)

// Config defines CLI options for one box invocation.
type Config struct {
	File string
	Box  string

	Create      bool
	AppendGiven bool
	Append      string
	Read        bool
	Delete      bool
	List        bool
	Export      bool
	Format      boxes.Format

	MaxLineLength int
	LogLevel      slog.Level
	LogFile       string
}

// HasOperation reports whether any operation was requested.
func (c *Config) HasOperation() bool {
	return c.Create || c.AppendGiven || c.Read || c.Delete || c.List || c.Export
}

func (c *Config) needsBox() bool {
	return c.Create || c.AppendGiven || c.Read || c.Delete
}

// fileConfig is the optional config file. Zero values leave defaults alone.
type fileConfig struct {
	MaxLineLength int    `yaml:"max_line_length" toml:"max_line_length"`
	LogLevel      string `yaml:"log_level" toml:"log_level"`
	LogFile       string `yaml:"log_file" toml:"log_file"`
	ExportFormat  string `yaml:"export_format" toml:"export_format"`
}

// Parse parses and validates CLI arguments.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var (
		box           string
		create        bool
		appendItems   string
		read          bool
		del           bool
		list          bool
		export        bool
		format        string
		configFile    string
		maxLineLength int
		logLevel      string
		logFile       string
	)

	fs.StringVar(&box, "box", "", "Name of the box to operate on")
	fs.StringVar(&box, "b", "", "Name of the box to operate on")
	fs.BoolVar(&create, "create", false, "Create the box")
	fs.BoolVar(&create, "c", false, "Create the box")
	fs.StringVar(&appendItems, "append", "", "Comma separated items to append to the box")
	fs.StringVar(&appendItems, "a", "", "Comma separated items to append to the box")
	fs.BoolVar(&read, "read", false, "Print the items of the box")
	fs.BoolVar(&read, "r", false, "Print the items of the box")
	fs.BoolVar(&del, "delete", false, "Delete the box and its items")
	fs.BoolVar(&del, "d", false, "Delete the box and its items")
	fs.BoolVar(&list, "list", false, "Print every box title")
	fs.BoolVar(&list, "l", false, "Print every box title")
	fs.BoolVar(&export, "export", false, "Print every box with its items")
	fs.StringVar(&format, "format", string(boxes.FormatText), "Export format: text, yaml or json")
	fs.StringVar(&configFile, "config", "", "Path to a .yaml or .toml config file")
	fs.IntVar(&maxLineLength, "max-line-length", boxfile.DefaultMaxLineLength, "Reject box file lines of this length or longer")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")

	files, err := parseInterspersed(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if configFile != "" {
		fc, err := loadFile(configFile)
		if err != nil {
			return nil, err
		}
		if fc.MaxLineLength != 0 && !set["max-line-length"] {
			maxLineLength = fc.MaxLineLength
		}
		if fc.LogLevel != "" && !set["log-level"] {
			logLevel = fc.LogLevel
		}
		if fc.LogFile != "" && !set["log-file"] {
			logFile = fc.LogFile
		}
		if fc.ExportFormat != "" && !set["format"] {
			format = fc.ExportFormat
		}
	}

	parsedFormat, err := boxes.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Box:           box,
		Create:        create,
		AppendGiven:   set["append"] || set["a"],
		Append:        appendItems,
		Read:          read,
		Delete:        del,
		List:          list,
		Export:        export,
		Format:        parsedFormat,
		MaxLineLength: maxLineLength,
		LogLevel:      level,
		LogFile:       logFile,
	}

	if !cfg.HasOperation() {
		return nil, ErrNoOperation
	}
	if len(files) != 1 {
		return nil, ErrNoFile
	}
	cfg.File = files[0]

	if cfg.needsBox() && cfg.Box == "" {
		return nil, ErrMissingBox
	}
	if cfg.MaxLineLength < minMaxLineLength {
		return nil, fmt.Errorf("%w, got: %d", ErrInvalidMaxLineLength, cfg.MaxLineLength)
	}

	return cfg, nil
}

// parseInterspersed lets flags follow the box file argument.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// Everything after "--" is positional.
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
			return fc, fmt.Errorf("decode config file %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &fc)
		if err != nil {
			return fc, fmt.Errorf("decode config file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fc, fmt.Errorf("decode config file %s: unknown key %s", path, undecoded[0])
		}
	default:
		return fc, fmt.Errorf("%w, got: %s", ErrUnsupportedConfig, path)
	}

	return fc, nil
}

// Usage returns command usage text.
func Usage() string {
	return `box - keep named lists as ASCII boxes in a text file

Usage:
  box [options] FILE

Options:
  -b, --box NAME            Name of the box to operate on
  -c, --create              Create the box
  -a, --append ITEMS        Append comma separated items to the box
  -r, --read                Print the items of the box
  -d, --delete              Delete the box and its items
  -l, --list                Print every box title
  --export                  Print every box with its items
  --format FORMAT           Export format: text, yaml or json (default: text)
  --config FILE             Path to a .yaml or .toml config file
  --max-line-length N       Reject box file lines of this length or longer (default: 256)
  --log-level LEVEL         Log level: debug, info, warn or error (default: warn)
  --log-file FILE           Also write JSON logs to this file
  -h, --help                Show this help message

Operations run in this order: create, append, read, delete, list, export.

Examples:
  box -b Groceries -c boxes.txt
  box -b Groceries -a milk,eggs,bread boxes.txt
  box -b Groceries -r boxes.txt
  box -l boxes.txt
  box --export --format yaml boxes.txt`
}
