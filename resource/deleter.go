package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

type DeleteStatement struct {
	Table string
	Where Term
}

// Delete 生成 DELETE FROM <table> [WHERE …]
func (b *Builder) Delete(stmt DeleteStatement) (*Query, error) {
	if stmt.Table == "" {
		return nil, ferr.ErrNoTable()
	}
	table, err := b.escaper.Escape(stmt.Table)
	if err != nil {
		return nil, err
	}

	hm := NewValueHashMap()
	builder := &strings.Builder{}
	builder.WriteString("DELETE FROM ")
	builder.WriteString(table)
	if err = b.where(builder, stmt.Where, hm); err != nil {
		return nil, err
	}

	return &Query{
		SQL:    builder.String(),
		Params: hm.Params(),
	}, nil
}
