package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	CrossJoin JoinType = "CROSS"
)

// joinType 所有 JOIN 都使用这个类型，ResourceModel 上配置的 joinMode 不参与构建
const joinType = InnerJoin

// JoinCondition 关联两张表的逻辑表达式。
// 被关联的表取自条件里第一个不在 FROM 中的限定引用
type JoinCondition struct {
	On *Expression
}

func JoinOn(on *Expression) JoinCondition {
	return JoinCondition{On: on}
}

// Table 找出条件要关联的表，present 是已经出现在语句中的表
func (j JoinCondition) Table(present map[string]struct{}) (string, bool) {
	var found string
	var walk func(t Term) bool
	walk = func(t Term) bool {
		switch t := t.(type) {
		case Reference:
			return j.check(t.Name, present, &found)
		case *Reference:
			return j.check(t.Name, present, &found)
		case *Expression:
			if t == nil {
				return false
			}
			for _, child := range t.Children {
				if walk(child) {
					return true
				}
			}
		}
		return false
	}
	if j.On == nil {
		return "", false
	}
	walk(j.On)
	return found, found != ""
}

func (j JoinCondition) check(name string, present map[string]struct{}, found *string) bool {
	idx := strings.LastIndex(name, separator)
	if idx <= 0 {
		return false
	}
	table := name[:idx]
	if _, ok := present[table]; ok {
		return false
	}
	*found = table
	return true
}

// buildJoins 把每个关联条件编译成 " INNER JOIN <table> ON (<cond>)"，
// 返回 FROM 和 JOIN 中出现过的全部表
func (b *Builder) buildJoins(builder *strings.Builder, joins []JoinCondition, from []string, hm *ValueHashMap) (map[string]struct{}, error) {
	present := make(map[string]struct{}, len(from)+len(joins))
	for _, tbl := range from {
		present[tbl] = struct{}{}
	}

	for _, j := range joins {
		table, ok := j.Table(present)
		if !ok {
			return nil, ferr.ErrInvalidJoinCondition(j.On)
		}
		present[table] = struct{}{}

		quoted, err := b.escaper.Escape(table)
		if err != nil {
			return nil, err
		}
		cond, err := b.renderer.RenderNested(j.On, hm)
		if err != nil {
			return nil, err
		}

		builder.WriteString(" ")
		builder.WriteString(string(joinType))
		builder.WriteString(" JOIN ")
		builder.WriteString(quoted)
		builder.WriteString(" ON ")
		builder.WriteString(cond)
	}
	return present, nil
}
