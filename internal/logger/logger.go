package logger

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type Options struct {
	Level string
	// Dir enables file output. A Dir not already named "logs" gets a
	// "logs" subdirectory.
	Dir        string
	File       string
	NoConsole  bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	logMu   sync.Mutex
	base    = zap.NewNop()
	sugar   = base.Sugar()
	rotator *lumberjack.Logger
)

func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core
	if !opts.NoConsole {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level))
	}

	var lj *lumberjack.Logger
	if opts.Dir != "" {
		dir := opts.Dir
		if path.Base(filepath.ToSlash(dir)) != "logs" {
			dir = filepath.Join(dir, "logs")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		name := opts.File
		if name == "" {
			name = "lumcred.log"
		}
		lj = &lumberjack.Logger{
			Filename:   filepath.Join(dir, name),
			MaxSize:    withDefault(opts.MaxSizeMB, 10),
			MaxBackups: withDefault(opts.MaxBackups, 5),
			MaxAge:     withDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(lj), level))
	}

	l := zap.NewNop()
	if len(cores) > 0 {
		l = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	}

	logMu.Lock()
	defer logMu.Unlock()
	closeLocked()
	base = l
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	rotator = lj
	return nil
}

// L returns the structured logger configured by Init (a no-op logger
// before Init).
func L() *zap.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	return base
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLocked()
	base = zap.NewNop()
	sugar = base.Sugar()
}

func closeLocked() {
	_ = base.Sync()
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

func Info(format string, args ...interface{}) {
	current().Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

func current() *zap.SugaredLogger {
	logMu.Lock()
	defer logMu.Unlock()
	return sugar
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", LevelInfo:
		return zapcore.InfoLevel, nil
	case LevelDebug:
		return zapcore.DebugLevel, nil
	case LevelWarn:
		return zapcore.WarnLevel, nil
	case LevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
