package resource

import (
	"fmt"
	"reflect"

	"github.com/fyerfyer/fyer-resmodel/internal/utils"
	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
	"github.com/patrickmn/go-cache"
)

// TableNamer 自定义表名
type TableNamer interface {
	TableName() string
}

// structMeta 从结构体解析出来的表名和字段映射
type structMeta struct {
	table  string
	fields *FieldColumnMap
}

// 解析结果按类型缓存，不过期
var metaCache = cache.New(cache.NoExpiration, 0)

// parseStruct 字段名就是结构体字段名，列名取自
// `orm:"column_name:xxx"`，没有 tag 时使用下划线命名。
// `orm:"-"` 的字段、嵌入字段和未导出字段会被忽略
func parseStruct(v any) (*structMeta, error) {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return nil, ferr.ErrInvalidIdentifier("<nil>")
	}
	// 只支持一重指针
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, ferr.ErrInvalidIdentifier(typ.String())
	}

	cacheKey := typeKey(typ)
	if meta, ok := metaCache.Get(cacheKey); ok {
		return meta.(*structMeta), nil
	}

	mappings := make([]Mapping, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		// 嵌入字段不展开，和 resourcegen 保持一致
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("orm")
		col, skip, err := utils.ParseColumnTag(tag)
		if err != nil {
			return nil, ferr.ErrInvalidTag(tag)
		}
		if skip {
			continue
		}
		if col == "" {
			col = utils.CamelToSnake(f.Name)
		}
		mappings = append(mappings, Map(f.Name, col))
	}

	fields, err := NewFieldColumnMap(mappings...)
	if err != nil {
		return nil, err
	}

	meta := &structMeta{
		table:  utils.CamelToSnake(typ.Name()),
		fields: fields,
	}
	if namer, ok := reflect.New(typ).Interface().(TableNamer); ok {
		meta.table = namer.TableName()
	} else if namer, ok := reflect.New(typ).Elem().Interface().(TableNamer); ok {
		meta.table = namer.TableName()
	}

	metaCache.SetDefault(cacheKey, meta)
	return meta, nil
}

// typeKey 同名的局部类型、匿名结构体的字符串形式可能相同，
// 所以用 reflect.Type 本身的地址区分
func typeKey(typ reflect.Type) string {
	return fmt.Sprintf("%s@%p", typ, typ)
}

// FieldsOf 返回结构体对应的字段映射
func FieldsOf(v any) (*FieldColumnMap, error) {
	meta, err := parseStruct(v)
	if err != nil {
		return nil, err
	}
	return meta.fields, nil
}
