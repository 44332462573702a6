package logging

import (
	"io"
	"os"
	"strings"
)

// Config holds the logger configuration.
type Config struct {
	// Level is the minimum severity to output (debug, info, warn,
	// error, fatal).
	Level string `yaml:"level"`
	// Format is the output format. Only "json" is currently produced;
	// the field exists so configuration stays stable if a console
	// encoder is added.
	Format string `yaml:"format"`
	// Output is the destination: "stdout", "stderr", or a file path.
	Output string `yaml:"output"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "json", Output: "stderr"}
}

// NewLogger builds a Logger from cfg. A nil cfg selects the defaults.
func NewLogger(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	return New(ParseLevel(cfg.Level), out), nil
}

// ParseLevel converts a level name to a Level. Unknown names map to
// InfoLevel.
func ParseLevel(name string) Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	}
}
