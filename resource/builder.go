package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// Query 构建结果：带命名占位符的 SQL 和占位符对应的值
type Query struct {
	SQL    string
	Params map[string]any
}

// Positional 把 :key 占位符改写成 ?，并按出现顺序给出参数，
// 供 MySQL 这类不支持命名参数的驱动使用。反引号内的内容不做处理
func (q *Query) Positional() (string, []any, error) {
	var builder strings.Builder
	builder.Grow(len(q.SQL))
	args := make([]any, 0, len(q.Params))

	quoted := false
	for i := 0; i < len(q.SQL); i++ {
		c := q.SQL[i]
		if c == '`' {
			quoted = !quoted
			builder.WriteByte(c)
			continue
		}
		if quoted || c != ':' {
			builder.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(q.SQL) && isKeyByte(q.SQL[j]) {
			j++
		}
		if j == i+1 {
			builder.WriteByte(c)
			continue
		}
		key := q.SQL[i+1 : j]
		val, ok := q.Params[key]
		if !ok {
			return "", nil, ferr.ErrUnboundPlaceholder(key)
		}
		builder.WriteByte('?')
		args = append(args, val)
		i = j - 1
	}
	return builder.String(), args, nil
}

func isKeyByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Builder 组合 Escaper、Binder、Translator、Renderer 来生成完整语句。
// 所有方法都只读自身字段，ValueHashMap 在每次调用内部新建
type Builder struct {
	escaper    Escaper
	binder     *Binder
	translator *Translator
	renderer   *Renderer
}

func NewBuilder(escaper Escaper, binder *Binder, translator *Translator, templates TemplateRegistry) *Builder {
	return &Builder{
		escaper:    escaper,
		binder:     binder,
		translator: translator,
		renderer:   NewRenderer(escaper, binder, translator, templates),
	}
}

// column 翻译并引用一个字段
func (b *Builder) column(field string) (string, error) {
	col, err := b.translator.Resolve(field)
	if err != nil {
		return "", err
	}
	return b.escaper.Escape(col)
}

// value 普通值绑定为占位符，Term 按嵌套表达式渲染
func (b *Builder) value(val any, hm *ValueHashMap) (string, error) {
	if t, ok := val.(Term); ok {
		return b.renderer.RenderNested(t, hm)
	}
	key, err := b.binder.Bind(val, hm)
	if err != nil {
		return "", err
	}
	return b.binder.Marker(key), nil
}

// where 条件为空时不输出 WHERE
func (b *Builder) where(builder *strings.Builder, cond Term, hm *ValueHashMap) error {
	if cond == nil {
		return nil
	}
	if e, ok := cond.(*Expression); ok && e == nil {
		return nil
	}
	frag, err := b.renderer.renderCondition(cond, hm)
	if err != nil {
		return err
	}
	builder.WriteString(" WHERE ")
	builder.WriteString(frag)
	return nil
}

// Assignment 字段和要写入的值，值可以是 Term
type Assignment struct {
	Field string
	Value any
}

func Set(field string, val any) Assignment {
	return Assignment{Field: field, Value: val}
}

// Record 一行要插入的数据，字段顺序有意义
type Record []Assignment

// ChangeSet UPDATE 的 SET 部分，按顺序输出
type ChangeSet []Assignment

func (r Record) fields() []string {
	return assignedFields(r)
}

func (c ChangeSet) fields() []string {
	return assignedFields(c)
}

func assignedFields(as []Assignment) []string {
	res := make([]string, 0, len(as))
	for _, a := range as {
		res = append(res, a.Field)
	}
	return res
}

// checkRepeated 一个字段在同一条记录或同一个 SET 里只能出现一次
func checkRepeated(fields []string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			return ferr.ErrRepeatedField(f)
		}
		seen[f] = struct{}{}
	}
	return nil
}

func (r Record) lookup(field string) (any, bool) {
	for _, a := range r {
		if a.Field == field {
			return a.Value, true
		}
	}
	return nil, false
}
