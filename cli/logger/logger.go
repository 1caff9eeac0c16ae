// Package logger builds the service [slog.Logger] from command line options.
// Invalid options fall back to their default and are reported as warnings
// through the returned logger itself.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error"`
	LogFile   string `doc:"append logs to file, - for stdout"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
	LogSource bool   `doc:"add source file and line to records"`
}

var levels = map[string]slog.Level{ //nolint: gochecknoglobals
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func New(options *Options) *slog.Logger {
	var warnings []slog.Attr

	opts := slog.HandlerOptions{AddSource: options.LogSource}
	if options.LogLevel != "" {
		level, ok := levels[strings.ToLower(options.LogLevel)]
		if ok {
			opts.Level = level
		} else {
			warnings = append(warnings, slog.String("level", options.LogLevel))
		}
	}

	var output io.Writer = os.Stdout
	switch options.LogFile {
	case "", "-":
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			warnings = append(warnings, slog.String("file", options.LogFile), slog.Any("err", err))
		} else {
			output = f
		}
	}

	return newLogger(output, options.LogFormat, &opts, warnings)
}

func newLogger(output io.Writer, format string, opts *slog.HandlerOptions, warnings []slog.Attr) *slog.Logger {
	var logger *slog.Logger
	switch strings.ToLower(format) {
	case "json":
		logger = slog.New(slog.NewJSONHandler(output, opts))
	case "", "text":
		logger = slog.New(slog.NewTextHandler(output, opts))
	default:
		logger = slog.New(slog.NewTextHandler(output, opts))
		warnings = append(warnings, slog.String("format", format))
	}
	if len(warnings) > 0 {
		logger.Warn("ignoring invalid logger options", slog.Any("options", slog.GroupValue(warnings...)))
	}
	return logger
}
