package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger 使用 zerolog 实现的日志记录器
type zerologLogger struct {
	mu    *sync.RWMutex
	zlog  zerolog.Logger
	level LogLevel
}

// New 创建一个新的 zerolog 日志记录器，默认输出到 stderr
func New(opts ...Option) Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	zlog := zerolog.New(output).Hook(timestampHook{format: cfg.TimeFormat})

	return &zerologLogger{
		mu:    &sync.RWMutex{},
		zlog:  zlog.Level(toZerologLevel(cfg.Level)),
		level: cfg.Level,
	}
}

// timestampHook 按各自的格式写时间字段，不修改 zerolog 的全局 TimeFieldFormat
type timestampHook struct {
	format string
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(h.format))
}

// Nop 丢弃所有日志
func Nop() Logger {
	return &zerologLogger{
		mu:    &sync.RWMutex{},
		zlog:  zerolog.Nop(),
		level: Disabled,
	}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields)
}

func (l *zerologLogger) log(level LogLevel, msg string, fields []Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return
	}

	var event *zerolog.Event
	switch level {
	case DebugLevel:
		event = l.zlog.Debug()
	case WarnLevel:
		event = l.zlog.Warn()
	case ErrorLevel:
		event = l.zlog.Error()
	default:
		event = l.zlog.Info()
	}
	for _, field := range fields {
		addFieldToEvent(event, field)
	}
	event.Msg(msg)
}

func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(Field{Key: key, Value: value})
}

func (l *zerologLogger) WithFields(fields ...Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ctx := l.zlog.With()
	for _, field := range fields {
		ctx = addFieldToContext(ctx, field)
	}
	return &zerologLogger{
		mu:    &sync.RWMutex{},
		zlog:  ctx.Logger(),
		level: l.level,
	}
}

func (l *zerologLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.zlog = l.zlog.Level(toZerologLevel(level))
}

func (l *zerologLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog = l.zlog.Output(w)
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case Disabled:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// addFieldToEvent 将字段添加到日志事件
func addFieldToEvent(event *zerolog.Event, field Field) {
	switch v := field.Value.(type) {
	case string:
		event.Str(field.Key, v)
	case int:
		event.Int(field.Key, v)
	case int64:
		event.Int64(field.Key, v)
	case bool:
		event.Bool(field.Key, v)
	case time.Duration:
		event.Dur(field.Key, v)
	case error:
		event.Err(v)
	default:
		event.Interface(field.Key, v)
	}
}

func addFieldToContext(ctx zerolog.Context, field Field) zerolog.Context {
	switch v := field.Value.(type) {
	case string:
		return ctx.Str(field.Key, v)
	case int:
		return ctx.Int(field.Key, v)
	case int64:
		return ctx.Int64(field.Key, v)
	case bool:
		return ctx.Bool(field.Key, v)
	case time.Duration:
		return ctx.Dur(field.Key, v)
	case error:
		return ctx.Err(v)
	default:
		return ctx.Interface(field.Key, v)
	}
}
