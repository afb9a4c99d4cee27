package mylog

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jcooky/go-din"
	"github.com/lmittmann/tint"

	"github.com/habiliai/signalrank/config"
)

type Logger = slog.Logger

// ToLogLevel parses a slog level name such as "debug" or "warn", falling back
// to info.
func ToLogLevel(logLevel string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger writes to stderr; stdout belongs to command output and the MCP
// stdio transport.
func NewLogger(logLevel string, logHandler string) *Logger {
	return NewLoggerWithWriter(os.Stderr, logLevel, logHandler)
}

func NewLoggerWithWriter(w io.Writer, logLevel string, logHandler string) *Logger {
	return slog.New(newHandler(w, ToLogLevel(logLevel), logHandler))
}

func newHandler(w io.Writer, level slog.Level, name string) slog.Handler {
	if name == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: level})
	}
	return tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
}

// Err is the attribute every component logs errors under.
func Err(err error) slog.Attr {
	return tint.Err(err)
}

func init() {
	din.RegisterT(func(c *din.Container) (*Logger, error) {
		conf, err := din.GetT[*config.ServerConfig](c)
		if err != nil {
			return nil, err
		}

		return NewLogger(conf.LogLevel, conf.LogHandler), nil
	})
}
