package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// Logger wraps arbor.ILogger so packages depend on a single logging type.
type Logger struct {
	arbor.ILogger
}

const logTimeFormat = "15:04:05"

// NewLogger creates a console logger at the specified level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{Level: level, Outputs: []string{"console"}})
}

// NewLoggerFromConfig builds a logger from the [logging] section.
// Level "disabled" returns a logger that discards everything.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "disabled" {
		return NewSilentLogger()
	}
	if level == "" {
		level = "info"
	}

	logger := arbor.NewLogger()

	hasFile, hasConsole := false, false
	for _, output := range cfg.Outputs {
		switch output {
		case "file":
			hasFile = true
		case "console", "stdout":
			hasConsole = true
		}
	}
	if !hasFile && !hasConsole {
		hasConsole = true
	}

	if hasFile && cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err == nil {
			logger = logger.WithFileWriter(models.WriterConfiguration{
				Type:             models.LogWriterTypeFile,
				FileName:         cfg.FilePath,
				TimeFormat:       logTimeFormat,
				MaxSize:          100 * 1024 * 1024,
				MaxBackups:       3,
				TextOutput:       true,
				DisableTimestamp: false,
			})
		} else {
			hasConsole = true
		}
	}

	if hasConsole {
		logger = logger.WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       logTimeFormat,
			TextOutput:       true,
			DisableTimestamp: false,
		})
	}

	return &Logger{ILogger: logger.WithLevelFromString(level)}
}

// NewDefaultLogger creates a logger with default settings
func NewDefaultLogger() *Logger {
	return NewLogger("info")
}

// NewSilentLogger creates a logger that discards all output
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewNoOpLogger()}
}
