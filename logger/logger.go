package logger

import (
	"io"
	"time"
)

// LogLevel 定义日志级别
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	// Disabled 不输出任何日志
	Disabled
)

// Field 表示结构化日志的字段
type Field struct {
	Key   string
	Value interface{}
}

// Logger 定义日志接口
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithField 返回带有固定字段的新实例
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger

	SetLevel(level LogLevel)
	SetOutput(w io.Writer)
}

// Option 日志配置选项函数
type Option func(*LogConfig)

// LogConfig 日志配置
type LogConfig struct {
	Level      LogLevel
	Output     io.Writer
	TimeFormat string
}

func WithLevel(level LogLevel) Option {
	return func(cfg *LogConfig) {
		cfg.Level = level
	}
}

func WithOutput(w io.Writer) Option {
	return func(cfg *LogConfig) {
		cfg.Output = w
	}
}

func WithTimeFormat(format string) Option {
	return func(cfg *LogConfig) {
		cfg.TimeFormat = format
	}
}

func defaultConfig() *LogConfig {
	return &LogConfig{
		Level:      InfoLevel,
		TimeFormat: time.RFC3339,
	}
}

func String(key string, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// FieldError 创建错误类型的日志字段
func FieldError(err error) Field {
	return Field{Key: "error", Value: err}
}

var defaultLogger Logger = New()

// Default 获取默认日志实例
func Default() Logger {
	return defaultLogger
}

// SetDefault 替换默认日志实例
func SetDefault(l Logger) {
	defaultLogger = l
}
