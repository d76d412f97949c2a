package accesslog

import (
	"context"
	"time"

	"github.com/fyerfyer/fyer-resmodel/logger"
	"github.com/fyerfyer/fyer-resmodel/resource"
)

// Config 语句日志中间件配置
type Config struct {
	// 跳过日志记录的语句类型，比如 select
	SkipStatements []string
	// 慢语句阈值
	SlowThreshold time.Duration
	// Logger 为空时使用 logger.Default()
	Logger logger.Logger
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		SkipStatements: make([]string, 0),
		SlowThreshold:  200 * time.Millisecond,
	}
}

// New 创建一个默认配置的语句日志中间件
func New() resource.Middleware {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig 使用自定义配置创建语句日志中间件
func NewWithConfig(config *Config) resource.Middleware {
	skipMap := make(map[string]bool, len(config.SkipStatements))
	for _, stmt := range config.SkipStatements {
		skipMap[stmt] = true
	}
	l := config.Logger
	if l == nil {
		l = logger.Default()
	}

	return func(next resource.Handler) resource.Handler {
		return resource.HandlerFunc(func(ctx context.Context, qc *resource.QueryContext) (*resource.QueryResult, error) {
			if skipMap[qc.Statement] {
				return next.QueryHandler(ctx, qc)
			}

			start := time.Now()
			res, err := next.QueryHandler(ctx, qc)
			duration := time.Since(start)

			fields := []logger.Field{
				logger.String("query_id", qc.ID),
				logger.String("statement", qc.Statement),
				logger.String("table", qc.Table),
				logger.String("sql", qc.Query.SQL),
				logger.Int("params", len(qc.Query.Params)),
				logger.Duration("duration", duration),
			}

			switch {
			case err != nil:
				l.Error("Statement failed", append(fields, logger.FieldError(err))...)
			case duration > config.SlowThreshold:
				l.Warn("Slow statement", fields...)
			default:
				l.Debug("Statement executed", fields...)
			}
			return res, err
		})
	}
}
