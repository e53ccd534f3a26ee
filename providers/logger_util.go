package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "weatherlog.app/errors"
)

type FileLoggerImpl struct {
	filePath string
	mutex    sync.Mutex
}

func NewFileLogger(logPath string) (FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &FileLoggerImpl{
		filePath: logPath,
	}, nil
}

func (l *FileLoggerImpl) LogRequest(providerName, operation, city string) {
	l.writeLog(map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"provider":  providerName,
		"operation": operation,
		"event":     "request",
		"city":      city,
	})
}

// LogResponse logs a successful provider response
func (l *FileLoggerImpl) LogResponse(providerName, operation, city string, duration time.Duration) {
	l.writeLog(map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"operation":   operation,
		"event":       "response",
		"city":        city,
		"duration_ms": duration.Milliseconds(),
	})
}

// LogError logs a failed provider call
func (l *FileLoggerImpl) LogError(providerName, operation, city string, err error, duration time.Duration) {
	l.writeLog(map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"operation":   operation,
		"event":       "error",
		"city":        city,
		"error":       err.Error(),
		"error_type":  errorLabel(err),
		"duration_ms": duration.Milliseconds(),
	})
}

func (l *FileLoggerImpl) writeLog(entry map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("marshal provider log entry", "error", err)
		return
	}

	file, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Warn("open provider log file", "error", err, "path", l.filePath)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("close provider log file", "error", closeErr)
		}
	}()

	if _, err := file.Write(append(data, '\n')); err != nil {
		slog.Warn("write provider log entry", "error", err)
	}
}

// SlogProviderLogger routes provider request/response logs to slog instead of a file
type SlogProviderLogger struct{}

func NewSlogProviderLogger() FileLogger {
	return &SlogProviderLogger{}
}

func (l *SlogProviderLogger) LogRequest(providerName, operation, city string) {
	slog.Debug("provider request", "provider", providerName, "operation", operation, "city", city)
}

func (l *SlogProviderLogger) LogResponse(providerName, operation, city string, duration time.Duration) {
	slog.Info("provider response", "provider", providerName, "operation", operation, "city", city, "duration_ms", duration.Milliseconds())
}

func (l *SlogProviderLogger) LogError(providerName, operation, city string, err error, duration time.Duration) {
	slog.Error("provider error", "provider", providerName, "operation", operation, "city", city, "error", err, "duration_ms", duration.Milliseconds())
}

// errorLabel maps an error to its taxonomy label for metrics and logs
func errorLabel(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Type.String()
	}
	return "UNKNOWN_ERROR"
}
