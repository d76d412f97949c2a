package resource

import (
	"strconv"
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// Template 把已经渲染好的子节点拼成一个 SQL 片段
type Template interface {
	Render(op Operator, children []string) (string, error)
}

// TemplateFunc 用于将函数转换为 Template 接口
type TemplateFunc func(op Operator, children []string) (string, error)

func (f TemplateFunc) Render(op Operator, children []string) (string, error) {
	return f(op, children)
}

// TemplateRegistry 按运算符查找模板
type TemplateRegistry interface {
	Lookup(op Operator) (Template, bool)
}

// Templates 基于 map 的模板注册表
type Templates map[Operator]Template

func (t Templates) Lookup(op Operator) (Template, bool) {
	tpl, ok := t[op]
	return tpl, ok
}

// With 返回增加了一个模板的拷贝，原注册表不变
func (t Templates) With(op Operator, tpl Template) Templates {
	res := make(Templates, len(t)+1)
	for k, v := range t {
		res[k] = v
	}
	res[op] = tpl
	return res
}

// Infix 用 sep 连接所有子节点，至少需要 min 个
func Infix(sep string, min int) Template {
	return TemplateFunc(func(op Operator, children []string) (string, error) {
		if len(children) < min {
			return "", ferr.ErrArity(op, "at least "+strconv.Itoa(min), len(children))
		}
		return strings.Join(children, sep), nil
	})
}

// Prefix 一元前缀运算符，比如 NOT
func Prefix(keyword string) Template {
	return TemplateFunc(func(op Operator, children []string) (string, error) {
		if len(children) != 1 {
			return "", ferr.ErrArity(op, "1", len(children))
		}
		return keyword + children[0], nil
	})
}

// Postfix 一元后缀运算符，比如 IS NULL
func Postfix(keyword string) Template {
	return TemplateFunc(func(op Operator, children []string) (string, error) {
		if len(children) != 1 {
			return "", ferr.ErrArity(op, "1", len(children))
		}
		return children[0] + keyword, nil
	})
}

// Pattern 使用 {0}、{1} 这样的下标占位符，子节点数量必须和占位符一致
func Pattern(pattern string) Template {
	arity := 0
	for strings.Contains(pattern, "{"+strconv.Itoa(arity)+"}") {
		arity++
	}
	return TemplateFunc(func(op Operator, children []string) (string, error) {
		if len(children) != arity {
			return "", ferr.ErrArity(op, strconv.Itoa(arity), len(children))
		}
		pairs := make([]string, 0, 2*arity)
		for i, child := range children {
			pairs = append(pairs, "{"+strconv.Itoa(i)+"}", child)
		}
		return strings.NewReplacer(pairs...).Replace(pattern), nil
	})
}

// List 第一个子节点在左侧，其余组成括号内的列表，用于 IN
func List(keyword string) Template {
	return TemplateFunc(func(op Operator, children []string) (string, error) {
		if len(children) < 2 {
			return "", ferr.ErrArity(op, "at least 2", len(children))
		}
		return children[0] + " " + keyword + " (" + strings.Join(children[1:], ", ") + ")", nil
	})
}

// DefaultTemplates 返回内置运算符的模板
func DefaultTemplates() Templates {
	return Templates{
		OpAnd:       Infix(" AND ", 1),
		OpOr:        Infix(" OR ", 1),
		OpNot:       Prefix("NOT "),
		OpEq:        Pattern("{0} = {1}"),
		OpNeq:       Pattern("{0} <> {1}"),
		OpGt:        Pattern("{0} > {1}"),
		OpGte:       Pattern("{0} >= {1}"),
		OpLt:        Pattern("{0} < {1}"),
		OpLte:       Pattern("{0} <= {1}"),
		OpLike:      Pattern("{0} LIKE {1}"),
		OpNotLike:   Pattern("{0} NOT LIKE {1}"),
		OpIn:        List("IN"),
		OpNotIn:     List("NOT IN"),
		OpIsNull:    Postfix(" IS NULL"),
		OpIsNotNull: Postfix(" IS NOT NULL"),
		OpBetween:   Pattern("{0} BETWEEN {1} AND {2}"),
	}
}
