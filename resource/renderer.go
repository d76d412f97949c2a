package resource

import (
	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// Renderer 递归地把表达式树编译成 SQL 片段。
// 自身无状态，绑定值全部累积到调用方传入的 ValueHashMap 里
type Renderer struct {
	escaper    Escaper
	binder     *Binder
	translator *Translator
	templates  TemplateRegistry
}

func NewRenderer(escaper Escaper, binder *Binder, translator *Translator, templates TemplateRegistry) *Renderer {
	return &Renderer{
		escaper:    escaper,
		binder:     binder,
		translator: translator,
		templates:  templates,
	}
}

// Render 渲染顶层节点，顶层表达式不加括号
func (r *Renderer) Render(t Term, hm *ValueHashMap) (string, error) {
	return r.render(t, hm, false)
}

// RenderNested 按嵌套在另一个表达式中的方式渲染，表达式会被括号包裹
func (r *Renderer) RenderNested(t Term, hm *ValueHashMap) (string, error) {
	return r.render(t, hm, true)
}

func (r *Renderer) render(t Term, hm *ValueHashMap, nested bool) (string, error) {
	switch t := t.(type) {
	case Literal:
		return r.renderLiteral(t.Value, hm)
	case *Literal:
		if t == nil {
			return "", ferr.ErrInvalidTerm(t)
		}
		return r.renderLiteral(t.Value, hm)
	case Reference:
		return r.renderReference(t.Name)
	case *Reference:
		if t == nil {
			return "", ferr.ErrInvalidTerm(t)
		}
		return r.renderReference(t.Name)
	case *Expression:
		if t == nil {
			return "", ferr.ErrInvalidTerm(t)
		}
		return r.renderExpression(t, hm, nested)
	default:
		return "", ferr.ErrInvalidTerm(t)
	}
}

func (r *Renderer) renderLiteral(val any, hm *ValueHashMap) (string, error) {
	key, err := r.binder.Bind(val, hm)
	if err != nil {
		return "", err
	}
	return r.binder.Marker(key), nil
}

func (r *Renderer) renderReference(name string) (string, error) {
	col, err := r.translator.Resolve(name)
	if err != nil {
		return "", err
	}
	return r.escaper.Escape(col)
}

func (r *Renderer) renderExpression(e *Expression, hm *ValueHashMap, nested bool) (string, error) {
	tpl, ok := r.templates.Lookup(e.Op)
	if !ok {
		return "", ferr.ErrNoTemplate(e.Op)
	}

	// 子节点严格按原顺序从左到右渲染
	children := make([]string, 0, len(e.Children))
	for _, child := range e.Children {
		frag, err := r.render(child, hm, true)
		if err != nil {
			return "", err
		}
		children = append(children, frag)
	}

	frag, err := tpl.Render(e.Op, children)
	if err != nil {
		return "", err
	}
	if nested {
		return "(" + frag + ")", nil
	}
	return frag, nil
}

// isConnective AND、OR、NOT 的子节点已经各自带括号
func isConnective(t Term) bool {
	e, ok := t.(*Expression)
	if !ok || e == nil {
		return false
	}
	switch e.Op {
	case OpAnd, OpOr, OpNot:
		return true
	default:
		return false
	}
}

// renderCondition 渲染 WHERE 条件：逻辑连接词在顶层不加括号，
// 其余表达式整体加括号
func (r *Renderer) renderCondition(t Term, hm *ValueHashMap) (string, error) {
	if isConnective(t) {
		return r.Render(t, hm)
	}
	return r.RenderNested(t, hm)
}
