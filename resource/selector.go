package resource

import (
	"strconv"
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

type OrderBy struct {
	Field string
	Desc  bool
}

func Asc(field string) OrderBy {
	return OrderBy{Field: field}
}

func Desc(field string) OrderBy {
	return OrderBy{Field: field, Desc: true}
}

// SelectStatement SELECT 语句的组成部分
type SelectStatement struct {
	Tables  []string
	Fields  []string
	Where   Term
	Joins   []JoinCondition
	OrderBy []OrderBy
	Limit   int
	Offset  int
}

// Select 按 SELECT…FROM…JOIN…WHERE…ORDER BY…LIMIT…OFFSET 的顺序拼接
func (b *Builder) Select(stmt SelectStatement) (*Query, error) {
	if len(stmt.Tables) == 0 {
		return nil, ferr.ErrNoTable()
	}

	hm := NewValueHashMap()
	builder := &strings.Builder{}
	builder.WriteString("SELECT ")

	if len(stmt.Fields) == 0 {
		builder.WriteString("*")
	} else {
		cols, err := b.translator.Columns(stmt.Fields)
		if err != nil {
			return nil, err
		}
		quoted, err := escapeAll(b.escaper, cols)
		if err != nil {
			return nil, err
		}
		builder.WriteString(strings.Join(quoted, ", "))
	}

	// 有 JOIN 时 FROM 只放第一张表，其余的表通过关联条件引入
	from := stmt.Tables
	if len(stmt.Joins) > 0 {
		from = stmt.Tables[:1]
	}
	tables, err := escapeAll(b.escaper, from)
	if err != nil {
		return nil, err
	}
	builder.WriteString(" FROM ")
	builder.WriteString(strings.Join(tables, ", "))

	present, err := b.buildJoins(builder, stmt.Joins, from, hm)
	if err != nil {
		return nil, err
	}
	for _, tbl := range stmt.Tables {
		if _, ok := present[tbl]; !ok {
			return nil, ferr.ErrUnjoinedTable(tbl)
		}
	}
	if err = b.where(builder, stmt.Where, hm); err != nil {
		return nil, err
	}

	if len(stmt.OrderBy) > 0 {
		builder.WriteString(" ORDER BY ")
		for i, order := range stmt.OrderBy {
			if i > 0 {
				builder.WriteString(", ")
			}
			col, err := b.column(order.Field)
			if err != nil {
				return nil, err
			}
			builder.WriteString(col)
			if order.Desc {
				builder.WriteString(" DESC")
			}
		}
	}

	if stmt.Offset > 0 && stmt.Limit <= 0 {
		return nil, ferr.ErrOffsetWithoutLimit(stmt.Offset)
	}
	if stmt.Limit > 0 {
		builder.WriteString(" LIMIT " + strconv.Itoa(stmt.Limit))
	}
	if stmt.Offset > 0 {
		builder.WriteString(" OFFSET " + strconv.Itoa(stmt.Offset))
	}

	return &Query{
		SQL:    builder.String(),
		Params: hm.Params(),
	}, nil
}
