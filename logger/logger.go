// Package logger provides logging for the memo panel with a console
// backend and a file backend, both built on go-logging.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhsanaei/memo/config"
	"github.com/op/go-logging"
)

const (
	moduleName  = "memo"
	logFileName = "memo.log"
	timeFormat  = "2006/01/02 15:04:05"
)

var (
	logger  = logging.MustGetLogger(moduleName)
	logFile *os.File
)

// InitLogger installs the console backend at the given level and the file
// backend at DEBUG. Until it is called, messages go to stderr unfiltered.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(moduleName)
	backends := make([]logging.Backend, 0, 2)

	consoleBackend := logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0),
		newFormatter(os.Getppid() > 0),
	)
	leveledConsole := logging.AddModuleLevel(consoleBackend)
	leveledConsole.SetLevel(level, moduleName)
	backends = append(backends, leveledConsole)

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveledFile := logging.AddModuleLevel(fileBackend)
		leveledFile.SetLevel(logging.DEBUG, moduleName)
		backends = append(backends, leveledFile)
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

// ParseLevel maps a configured level onto a go-logging level.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

// initFileBackend opens memo.log in the configured folder, truncating
// whatever the previous run left behind.
func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	return logging.NewBackendFormatter(logging.NewLogBackend(file, "", 0), newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file. Should be called during shutdown.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Notice(args ...any) {
	logger.Notice(args...)
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// GormWriter adapts the package logger to gorm's logger.Writer.
type GormWriter struct{}

func (GormWriter) Printf(format string, args ...any) {
	msg := "gorm: " + strings.TrimSpace(fmt.Sprintf(format, args...))
	switch gormLevel(format, args) {
	case logging.ERROR:
		logger.Error(msg)
	case logging.WARNING:
		logger.Warning(msg)
	case logging.INFO:
		logger.Info(msg)
	default:
		logger.Debug(msg)
	}
}

// gormLevel recovers the level of a gorm message from the format gorm
// used for it. Plain SQL traces are DEBUG; a trace carrying an error is
// ERROR and one carrying the slow-query notice is WARNING.
func gormLevel(format string, args []any) logging.Level {
	switch {
	case strings.Contains(format, "[error] "):
		return logging.ERROR
	case strings.Contains(format, "[warn] "):
		return logging.WARNING
	case strings.Contains(format, "[info] "):
		return logging.INFO
	case strings.HasPrefix(format, "%s %s\n") && len(args) > 1:
		if _, ok := args[1].(error); ok {
			return logging.ERROR
		}
		return logging.WARNING
	}
	return logging.DEBUG
}

// RecoveryWriter receives gin's panic reports.
type RecoveryWriter struct{}

func (RecoveryWriter) Write(p []byte) (int, error) {
	logger.Error("panic recovered: " + strings.TrimSpace(string(p)))
	return len(p), nil
}
