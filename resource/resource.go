package resource

import (
	"context"
	"database/sql"

	"github.com/fyerfyer/fyer-resmodel/logger"
	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
	"github.com/google/uuid"
)

// ResourceModel 描述一个资源对应的表、字段映射和关联条件。
// 构造完成后只读，可以被多个 goroutine 同时使用
type ResourceModel struct {
	tables       []string
	fields       *FieldColumnMap
	joins        []JoinCondition
	joinMode     JoinType
	templates    TemplateRegistry
	insertFields []string

	builder     *Builder
	exec        Executor
	middlewares []Middleware
	handler     Handler
	logger      logger.Logger
}

// Option 定义配置项
type Option func(*ResourceModel) error

// WithTables 追加表，FROM 中按顺序出现
func WithTables(tables ...string) Option {
	return func(m *ResourceModel) error {
		m.tables = append(m.tables, tables...)
		return nil
	}
}

// WithFields 用字段映射列表配置字段
func WithFields(mappings ...Mapping) Option {
	return func(m *ResourceModel) error {
		fields, err := NewFieldColumnMap(mappings...)
		if err != nil {
			return err
		}
		m.fields = fields
		return nil
	}
}

func WithFieldMap(fields *FieldColumnMap) Option {
	return func(m *ResourceModel) error {
		m.fields = fields
		return nil
	}
}

func WithJoins(joins ...JoinCondition) Option {
	return func(m *ResourceModel) error {
		m.joins = append(m.joins, joins...)
		return nil
	}
}

// WithJoinMode 只做记录，构建 JOIN 时始终使用固定的 INNER
func WithJoinMode(mode JoinType) Option {
	return func(m *ResourceModel) error {
		m.joinMode = mode
		return nil
	}
}

func WithTemplates(templates TemplateRegistry) Option {
	return func(m *ResourceModel) error {
		if templates == nil {
			return ferr.ErrNilTemplates()
		}
		m.templates = templates
		return nil
	}
}

// WithInsertFields 固定 INSERT 的列顺序，不设置时取第一条记录的字段顺序
func WithInsertFields(fields ...string) Option {
	return func(m *ResourceModel) error {
		m.insertFields = fields
		return nil
	}
}

func WithLogger(l logger.Logger) Option {
	return func(m *ResourceModel) error {
		m.logger = l
		return nil
	}
}

func WithExecutor(exec Executor) Option {
	return func(m *ResourceModel) error {
		m.exec = exec
		return nil
	}
}

func WithMiddlewares(ms ...Middleware) Option {
	return func(m *ResourceModel) error {
		m.middlewares = append(m.middlewares, ms...)
		return nil
	}
}

// New 创建资源模型，table 是主表
func New(table string, opts ...Option) (*ResourceModel, error) {
	if table == "" {
		return nil, ferr.ErrNoTable()
	}
	m := &ResourceModel{
		tables:   []string{table},
		joinMode: InnerJoin,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.templates == nil {
		m.templates = DefaultTemplates()
	}
	if m.logger == nil {
		m.logger = logger.Default()
	}

	// 字段映射只属于主表，其它表的限定引用原样透传
	translator := NewTranslator(m.fields, m.tables[:1], m.fields.Len() > 0)
	m.builder = NewBuilder(BacktickEscaper{}, NewBinder(), translator, m.templates)
	if m.exec != nil {
		m.handler = BuildChain(&CoreHandler{exec: m.exec}, m.middlewares)
	}
	return m, nil
}

// FromStruct 从结构体推导表名和字段映射，后面的选项可以覆盖它们
func FromStruct(v any, opts ...Option) (*ResourceModel, error) {
	meta, err := parseStruct(v)
	if err != nil {
		return nil, err
	}
	return New(meta.table, append([]Option{WithFieldMap(meta.fields)}, opts...)...)
}

// Table 返回主表
func (m *ResourceModel) Table() string {
	return m.tables[0]
}

func (m *ResourceModel) Tables() []string {
	res := make([]string, len(m.tables))
	copy(res, m.tables)
	return res
}

func (m *ResourceModel) Fields() *FieldColumnMap {
	return m.fields
}

// JoinMode 返回配置的关联方式，构建语句时并不使用
func (m *ResourceModel) JoinMode() JoinType {
	return m.joinMode
}

// Criteria 查询条件，Fields 为空时使用配置的全部字段
type Criteria struct {
	Where   Term
	Fields  []string
	OrderBy []OrderBy
	Limit   int
	Offset  int
}

func (m *ResourceModel) BuildSelect(c Criteria) (*Query, error) {
	fields := c.Fields
	if len(fields) == 0 {
		fields = m.fields.Fields()
	}
	q, err := m.builder.Select(SelectStatement{
		Tables:  m.tables,
		Fields:  fields,
		Where:   c.Where,
		Joins:   m.joins,
		OrderBy: c.OrderBy,
		Limit:   c.Limit,
		Offset:  c.Offset,
	})
	m.logBuild("select", q, err)
	return q, err
}

func (m *ResourceModel) BuildInsert(records ...Record) (*Query, error) {
	q, err := m.builder.Insert(InsertStatement{
		Table:   m.Table(),
		Fields:  m.insertFields,
		Records: records,
	})
	m.logBuild("insert", q, err)
	return q, err
}

func (m *ResourceModel) BuildUpdate(changes ChangeSet, where Term) (*Query, error) {
	q, err := m.builder.Update(UpdateStatement{
		Table:   m.Table(),
		Changes: changes,
		Where:   where,
	})
	m.logBuild("update", q, err)
	return q, err
}

func (m *ResourceModel) BuildDelete(where Term) (*Query, error) {
	q, err := m.builder.Delete(DeleteStatement{
		Table: m.Table(),
		Where: where,
	})
	m.logBuild("delete", q, err)
	return q, err
}

func (m *ResourceModel) logBuild(stmt string, q *Query, err error) {
	if err != nil {
		m.logger.Debug("statement build failed",
			logger.String("statement", stmt),
			logger.String("table", m.Table()),
			logger.FieldError(err))
		return
	}
	m.logger.Debug("statement built",
		logger.String("statement", stmt),
		logger.String("table", m.Table()),
		logger.String("sql", q.SQL),
		logger.Int("params", len(q.Params)))
}

// Select 构建并执行查询，调用方负责关闭返回的 rows
func (m *ResourceModel) Select(ctx context.Context, c Criteria) (*sql.Rows, error) {
	q, err := m.BuildSelect(c)
	if err != nil {
		return nil, err
	}
	res, err := m.run(ctx, QueryTypeQuery, "select", q)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

func (m *ResourceModel) Insert(ctx context.Context, records ...Record) (sql.Result, error) {
	q, err := m.BuildInsert(records...)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, "insert", q)
}

func (m *ResourceModel) Update(ctx context.Context, changes ChangeSet, where Term) (sql.Result, error) {
	q, err := m.BuildUpdate(changes, where)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, "update", q)
}

func (m *ResourceModel) Delete(ctx context.Context, where Term) (sql.Result, error) {
	q, err := m.BuildDelete(where)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, "delete", q)
}

func (m *ResourceModel) execute(ctx context.Context, stmt string, q *Query) (sql.Result, error) {
	res, err := m.run(ctx, QueryTypeExec, stmt, q)
	if err != nil {
		return nil, err
	}
	return res.Result, nil
}

func (m *ResourceModel) run(ctx context.Context, queryType, stmt string, q *Query) (*QueryResult, error) {
	if m.handler == nil {
		return nil, ferr.ErrNoExecutor()
	}
	return m.handler.QueryHandler(ctx, &QueryContext{
		ID:        uuid.NewString(),
		QueryType: queryType,
		Statement: stmt,
		Table:     m.Table(),
		Query:     q,
	})
}
