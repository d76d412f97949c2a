package resource

import (
	"context"
	"database/sql"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// Executor 外部执行原语，*sql.DB、*sql.Tx、*sql.Conn 都满足
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	QueryTypeQuery = "query"
	QueryTypeExec  = "exec"
)

// QueryContext 查询上下文定义
type QueryContext struct {
	ID        string // 每次执行唯一，用于日志和链路追踪
	QueryType string // query 返回行，exec 返回影响行数
	Statement string // select / insert / update / delete
	Table     string
	Query     *Query
}

// QueryResult 查询结果定义
type QueryResult struct {
	Rows   *sql.Rows
	Result sql.Result
}

// Handler 处理器接口定义
type Handler interface {
	QueryHandler(ctx context.Context, qc *QueryContext) (*QueryResult, error)
}

// Middleware 中间件定义
type Middleware func(Handler) Handler

// HandlerFunc 用于将函数转换为 Handler 接口
type HandlerFunc func(ctx context.Context, qc *QueryContext) (*QueryResult, error)

func (h HandlerFunc) QueryHandler(ctx context.Context, qc *QueryContext) (*QueryResult, error) {
	return h(ctx, qc)
}

// BuildChain 构建处理器调用链
func BuildChain(core Handler, ms []Middleware) Handler {
	h := core
	// 从后往前构建,保证最先添加的中间件最先执行
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}
	return h
}

// CoreHandler 是整个中间件链的最后一环，负责把命名占位符改写后交给 Executor
type CoreHandler struct {
	exec Executor
}

func (c *CoreHandler) QueryHandler(ctx context.Context, qc *QueryContext) (*QueryResult, error) {
	query, args, err := qc.Query.Positional()
	if err != nil {
		return nil, err
	}

	switch qc.QueryType {
	case QueryTypeQuery:
		rows, err := c.exec.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		return &QueryResult{Rows: rows}, nil
	case QueryTypeExec:
		res, err := c.exec.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		return &QueryResult{Result: res}, nil
	default:
		return nil, ferr.ErrUnknownQueryType(qc.QueryType)
	}
}
