package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance
	Logger = log.New(io.Discard)
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "trio.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// The TUI owns stdout/stderr, so logs only ever go to the file.
	Logger = log.NewWithOptions(fileWriter, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
	})
	return nil
}

func Debug(msg any, keyvals ...any) { Logger.Debug(msg, keyvals...) }
func Info(msg any, keyvals ...any)  { Logger.Info(msg, keyvals...) }
func Warn(msg any, keyvals ...any)  { Logger.Warn(msg, keyvals...) }
func Error(msg any, keyvals ...any) { Logger.Error(msg, keyvals...) }
