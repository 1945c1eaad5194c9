package logging

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the zap-backed logger
type Options struct {
	Level             string // debug, info, warn, error
	Format            string // json, text
	Output            string // stdout, stderr, file
	FilePath          string
	IncludeCaller     bool
	IncludeStacktrace bool
}

// DefaultOptions returns console-friendly options for the CLI
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Format: "text",
		Output: "stderr",
	}
}

// ZapLogger implements common.Logger on top of zap
type ZapLogger struct {
	logger *zap.Logger
}

// New builds a logger from options
func New(opts Options) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	output, err := outputPath(opts)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding(opts.Format),
		EncoderConfig:     encoderConfig(opts.Format),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !opts.IncludeCaller,
		DisableStacktrace: !opts.IncludeStacktrace,
	}

	logger, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &ZapLogger{logger: logger}, nil
}

// Wrap adapts an existing zap logger
func Wrap(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// NewNop returns a logger that discards everything
func NewNop() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

// Log writes one entry. Unknown levels are logged at info.
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	lvl := parseLevel(level)
	if ce := l.logger.Check(lvl, message); ce != nil {
		ce.Write(fields(metadata)...)
	}
}

// Zap returns the underlying zap logger
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// fields converts metadata to zap fields in key order so output is stable
func fields(metadata map[string]interface{}) []zap.Field {
	if len(metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := metadata[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, metadata[k]))
	}
	return out
}

func outputPath(opts Options) (string, error) {
	switch opts.Output {
	case "", "stderr":
		return "stderr", nil
	case "stdout":
		return "stdout", nil
	case "file":
		if opts.FilePath == "" {
			return "", fmt.Errorf("log output is file but no file path is set")
		}
		return opts.FilePath, nil
	default:
		return "", fmt.Errorf("unknown log output %q", opts.Output)
	}
}

func encoding(format string) string {
	if format == "json" {
		return "json"
	}
	return "console"
}

func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "json" {
		return zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
