package resource

// Term 是表达式树中的节点，只有 Literal、Reference、Expression 三种实现
type Term interface {
	term()
}

// Operator 标识表达式的逻辑或比较运算符，渲染时按它查找模板
type Operator string

const (
	OpAnd       Operator = "AND"
	OpOr        Operator = "OR"
	OpNot       Operator = "NOT"
	OpEq        Operator = "EQ"
	OpNeq       Operator = "NEQ"
	OpGt        Operator = "GT"
	OpGte       Operator = "GTE"
	OpLt        Operator = "LT"
	OpLte       Operator = "LTE"
	OpLike      Operator = "LIKE"
	OpNotLike   Operator = "NOT_LIKE"
	OpIn        Operator = "IN"
	OpNotIn     Operator = "NOT_IN"
	OpIsNull    Operator = "IS_NULL"
	OpIsNotNull Operator = "IS_NOT_NULL"
	OpBetween   Operator = "BETWEEN"
)

// Literal 字面量，渲染时绑定为占位符
type Literal struct {
	Value any
}

func (Literal) term() {}

// Reference 字段引用，可以是 field 或者 table.field
type Reference struct {
	Name string
}

func (Reference) term() {}

// Expression 运算符表达式，子节点顺序有意义
type Expression struct {
	Op       Operator
	Children []Term
}

func (*Expression) term() {}

func Lit(val any) Literal {
	return Literal{Value: val}
}

func Ref(name string) Reference {
	return Reference{Name: name}
}

func Expr(op Operator, children ...Term) *Expression {
	return &Expression{Op: op, Children: children}
}

func And(terms ...Term) *Expression {
	return Expr(OpAnd, terms...)
}

func Or(terms ...Term) *Expression {
	return Expr(OpOr, terms...)
}

func Not(t Term) *Expression {
	return Expr(OpNot, t)
}

// termOf 已经是 Term 的参数原样使用，其余包装成字面量
func termOf(arg any) Term {
	switch val := arg.(type) {
	case Term:
		return val
	default:
		return Lit(arg)
	}
}

func (r Reference) binary(op Operator, arg any) *Expression {
	return Expr(op, r, termOf(arg))
}

func (r Reference) Eq(arg any) *Expression {
	return r.binary(OpEq, arg)
}

func (r Reference) Neq(arg any) *Expression {
	return r.binary(OpNeq, arg)
}

func (r Reference) Gt(arg any) *Expression {
	return r.binary(OpGt, arg)
}

func (r Reference) Gte(arg any) *Expression {
	return r.binary(OpGte, arg)
}

func (r Reference) Lt(arg any) *Expression {
	return r.binary(OpLt, arg)
}

func (r Reference) Lte(arg any) *Expression {
	return r.binary(OpLte, arg)
}

func (r Reference) Like(pattern any) *Expression {
	return r.binary(OpLike, pattern)
}

func (r Reference) NotLike(pattern any) *Expression {
	return r.binary(OpNotLike, pattern)
}

func (r Reference) In(args ...any) *Expression {
	children := make([]Term, 0, len(args)+1)
	children = append(children, r)
	for _, arg := range args {
		children = append(children, termOf(arg))
	}
	return Expr(OpIn, children...)
}

func (r Reference) NotIn(args ...any) *Expression {
	e := r.In(args...)
	e.Op = OpNotIn
	return e
}

func (r Reference) IsNull() *Expression {
	return Expr(OpIsNull, r)
}

func (r Reference) NotNull() *Expression {
	return Expr(OpIsNotNull, r)
}

func (r Reference) Between(low, high any) *Expression {
	return Expr(OpBetween, r, termOf(low), termOf(high))
}
