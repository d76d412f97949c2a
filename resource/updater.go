package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

type UpdateStatement struct {
	Table   string
	Changes ChangeSet
	Where   Term
}

// Update 生成 UPDATE <table> SET … [WHERE …]。
// SET 和 WHERE 共用一个 ValueHashMap，两边相同的值只绑定一次
func (b *Builder) Update(stmt UpdateStatement) (*Query, error) {
	if stmt.Table == "" {
		return nil, ferr.ErrNoTable()
	}
	if len(stmt.Changes) == 0 {
		return nil, ferr.ErrEmptyChangeSet()
	}
	if err := checkRepeated(stmt.Changes.fields()); err != nil {
		return nil, err
	}

	table, err := b.escaper.Escape(stmt.Table)
	if err != nil {
		return nil, err
	}

	hm := NewValueHashMap()
	builder := &strings.Builder{}
	builder.WriteString("UPDATE ")
	builder.WriteString(table)
	builder.WriteString(" SET ")

	for i, a := range stmt.Changes {
		col, err := b.column(a.Field)
		if err != nil {
			return nil, err
		}
		frag, err := b.value(a.Value, hm)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(col)
		builder.WriteString(" = ")
		builder.WriteString(frag)
	}

	if err = b.where(builder, stmt.Where, hm); err != nil {
		return nil, err
	}

	return &Query{
		SQL:    builder.String(),
		Params: hm.Params(),
	}, nil
}
