package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// Mapping 一个字段到列名的映射
type Mapping struct {
	Field  string
	Column string
}

func Map(field, column string) Mapping {
	return Mapping{Field: field, Column: column}
}

// FieldColumnMap 字段名与列名的双向映射，保持声明顺序。
// 构造后只读，可以在多个 goroutine 间共享
type FieldColumnMap struct {
	fields   []string
	columns  map[string]string
	byColumn map[string]string
}

func NewFieldColumnMap(mappings ...Mapping) (*FieldColumnMap, error) {
	m := &FieldColumnMap{
		fields:   make([]string, 0, len(mappings)),
		columns:  make(map[string]string, len(mappings)),
		byColumn: make(map[string]string, len(mappings)),
	}
	for _, mp := range mappings {
		if mp.Field == "" || mp.Column == "" {
			return nil, ferr.ErrEmptyIdentifier()
		}
		if _, ok := m.columns[mp.Field]; ok {
			return nil, ferr.ErrDuplicateField(mp.Field)
		}
		if _, ok := m.byColumn[mp.Column]; ok {
			return nil, ferr.ErrDuplicateColumn(mp.Column)
		}
		m.fields = append(m.fields, mp.Field)
		m.columns[mp.Field] = mp.Column
		m.byColumn[mp.Column] = mp.Field
	}
	return m, nil
}

// Len nil 的映射长度为 0
func (m *FieldColumnMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Fields 按声明顺序返回字段名
func (m *FieldColumnMap) Fields() []string {
	if m == nil {
		return nil
	}
	res := make([]string, len(m.fields))
	copy(res, m.fields)
	return res
}

func (m *FieldColumnMap) ToColumn(field string) (string, error) {
	if m != nil {
		if col, ok := m.columns[field]; ok {
			return col, nil
		}
	}
	return "", ferr.ErrUnknownField(field)
}

func (m *FieldColumnMap) ToField(column string) (string, error) {
	if m != nil {
		if f, ok := m.byColumn[column]; ok {
			return f, nil
		}
	}
	return "", ferr.ErrUnknownColumn(column)
}

// Columns 按输入顺序翻译一组字段
func (m *FieldColumnMap) Columns(fields []string) ([]string, error) {
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		col, err := m.ToColumn(f)
		if err != nil {
			return nil, err
		}
		res = append(res, col)
	}
	return res, nil
}

// Translator 负责在引用到达 Escaper 之前把字段名改写成列名
type Translator struct {
	fields *FieldColumnMap
	tables map[string]struct{}
	// strict 为 true 时，本表未映射的字段直接报 NotFound
	strict bool
}

// NewTranslator tables 是字段映射所属的表，限定名指向其它表的引用原样透传
func NewTranslator(fields *FieldColumnMap, tables []string, strict bool) *Translator {
	t := &Translator{
		fields: fields,
		tables: make(map[string]struct{}, len(tables)),
		strict: strict,
	}
	for _, tbl := range tables {
		t.tables[tbl] = struct{}{}
	}
	return t
}

// Resolve 翻译一个引用，结果尚未加引号
func (t *Translator) Resolve(name string) (string, error) {
	table, field := "", name
	if idx := strings.LastIndex(name, separator); idx >= 0 {
		table, field = name[:idx], name[idx+1:]
		if _, own := t.tables[table]; !own {
			return name, nil
		}
	}

	if field == "*" {
		return name, nil
	}

	col, err := t.fields.ToColumn(field)
	if err != nil {
		if t.strict {
			return "", err
		}
		col = field
	}
	if table != "" {
		return table + separator + col, nil
	}
	return col, nil
}

// Columns 计算语句的列清单，顺序与输入一致
func (t *Translator) Columns(fields []string) ([]string, error) {
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		col, err := t.Resolve(f)
		if err != nil {
			return nil, err
		}
		res = append(res, col)
	}
	return res, nil
}
