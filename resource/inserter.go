package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// InsertStatement Fields 为空时使用第一条记录的字段顺序
type InsertStatement struct {
	Table   string
	Fields  []string
	Records []Record
}

// Insert 生成 INSERT INTO <table> (<cols>) VALUES (…), (…)。
// 每条记录必须恰好包含选定的字段，缺字段返回 ErrMissingField，
// 重复字段返回 ErrInvalidArgument
func (b *Builder) Insert(stmt InsertStatement) (*Query, error) {
	if stmt.Table == "" {
		return nil, ferr.ErrNoTable()
	}
	if len(stmt.Records) == 0 {
		return nil, ferr.ErrNoRecords()
	}

	fields := stmt.Fields
	if len(fields) == 0 {
		fields = stmt.Records[0].fields()
	}
	if len(fields) == 0 {
		return nil, ferr.ErrEmptyRecord(0)
	}
	if err := checkRepeated(fields); err != nil {
		return nil, err
	}

	table, err := b.escaper.Escape(stmt.Table)
	if err != nil {
		return nil, err
	}
	cols, err := b.translator.Columns(fields)
	if err != nil {
		return nil, err
	}
	quoted, err := escapeAll(b.escaper, cols)
	if err != nil {
		return nil, err
	}

	hm := NewValueHashMap()
	builder := &strings.Builder{}
	builder.WriteString("INSERT INTO ")
	builder.WriteString(table)
	builder.WriteString(" (")
	builder.WriteString(strings.Join(quoted, ", "))
	builder.WriteString(") VALUES ")

	wanted := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		wanted[f] = struct{}{}
	}

	for row, rec := range stmt.Records {
		if err := checkRepeated(rec.fields()); err != nil {
			return nil, err
		}
		for _, a := range rec {
			if _, ok := wanted[a.Field]; !ok {
				return nil, ferr.ErrRecordExtraField(row, a.Field)
			}
		}

		if row > 0 {
			builder.WriteString(", ")
		}
		builder.WriteByte('(')
		for i, f := range fields {
			val, ok := rec.lookup(f)
			if !ok {
				return nil, ferr.ErrRecordMissingField(row, f)
			}
			frag, err := b.value(val, hm)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(frag)
		}
		builder.WriteByte(')')
	}

	return &Query{
		SQL:    builder.String(),
		Params: hm.Params(),
	}, nil
}
