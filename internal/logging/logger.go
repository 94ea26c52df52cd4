// Package logging builds the zap logger used across sorter.
// The TUI owns the terminal, so logs go to a file under the log directory,
// optionally mirrored to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Dir is the directory log files are written to.
	Dir string
	// Console mirrors output to stderr.
	Console bool
	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool
	// MaxFiles is the number of log files kept after cleanup. Zero keeps all.
	MaxFiles int
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Dir:      ".sorter/logs",
		MaxFiles: 10,
	}
}

const filePrefix = "sorter_"

// New builds a logger writing to a new timestamped file in cfg.Dir. The
// returned path is the file in use. Each logger carries a session_id field.
func New(cfg Config) (*zap.Logger, string, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(cfg.Dir, fmt.Sprintf("%s%s.log", filePrefix, time.Now().Format("20060102_150405.000")))

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Encoding = "console"
	if cfg.JSON {
		zc.Encoding = "json"
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	if cfg.Console {
		zc.OutputPaths = append(zc.OutputPaths, "stderr")
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With(zap.String("session_id", uuid.NewString()))

	if removed, err := Cleanup(cfg.Dir, cfg.MaxFiles); err != nil {
		logger.Warn("log cleanup failed", zap.Error(err))
	} else if removed > 0 {
		logger.Debug("old log files removed", zap.Int("count", removed))
	}
	return logger, path, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.Logger { return zap.NewNop() }

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Cleanup removes the oldest sorter log files in dir so that at most keep
// remain. It returns how many files were removed.
func Cleanup(dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	var logs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		logs = append(logs, e.Name())
	}
	if len(logs) <= keep {
		return 0, nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(logs)
	removed := 0
	for _, name := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
