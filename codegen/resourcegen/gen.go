package resourcegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/fyerfyer/fyer-resmodel/internal/utils"
)

type Field struct {
	Name   string
	Column string
}

type StructInfo struct {
	Name   string
	Table  string
	Fields []Field
}

type FileInfo struct {
	Pkg     string
	Structs []StructInfo
}

// Parse 读取源文件中的结构体，字段规则和 resource.FromStruct 一致：
// 未导出字段和 `orm:"-"` 忽略，列名取 column_name 或下划线命名，
// 表名取 TableName() 返回的字符串常量
func Parse(inputFile string) (*FileInfo, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, inputFile, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file error: %w", err)
	}

	tables := collectTableNames(node)
	info := &FileInfo{Pkg: node.Name.Name}

	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			st, ok := ts.Type.(*ast.StructType)
			if !ok || !ast.IsExported(ts.Name.Name) {
				continue
			}
			si := StructInfo{
				Name:  ts.Name.Name,
				Table: utils.CamelToSnake(ts.Name.Name),
			}
			if table, ok := tables[ts.Name.Name]; ok {
				si.Table = table
			}
			fields, err := structFields(st)
			if err != nil {
				return nil, fmt.Errorf("struct %s: %w", ts.Name.Name, err)
			}
			si.Fields = fields
			info.Structs = append(info.Structs, si)
		}
	}
	return info, nil
}

func structFields(st *ast.StructType) ([]Field, error) {
	var fields []Field
	for _, field := range st.Fields.List {
		// 嵌入字段不展开
		if len(field.Names) == 0 {
			continue
		}
		var tag string
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, err
			}
			tag = reflect.StructTag(raw).Get("orm")
		}
		col, skip, err := utils.ParseColumnTag(tag)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			c := col
			if c == "" {
				c = utils.CamelToSnake(name.Name)
			}
			fields = append(fields, Field{Name: name.Name, Column: c})
		}
	}
	return fields, nil
}

// collectTableNames 找出形如 func (T) TableName() string { return "xxx" } 的方法
func collectTableNames(node *ast.File) map[string]string {
	res := make(map[string]string)
	for _, decl := range node.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Name.Name != "TableName" || fn.Body == nil {
			continue
		}
		recv := receiverName(fn.Recv.List[0].Type)
		if recv == "" || len(fn.Body.List) != 1 {
			continue
		}
		ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			continue
		}
		lit, ok := ret.Results[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			continue
		}
		if table, err := strconv.Unquote(lit.Value); err == nil {
			res[recv] = table
		}
	}
	return res
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}

// Generate 为输入文件中的每个结构体生成 <name>.gen.go
func Generate(inputFile string, outputDir string) error {
	info, err := Parse(inputFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	for _, st := range info.Structs {
		src, err := Render(info.Pkg, st)
		if err != nil {
			return fmt.Errorf("generate code error: %w", err)
		}
		fileName := strings.ToLower(st.Name) + ".gen.go"
		if err := os.WriteFile(filepath.Join(outputDir, fileName), src, 0644); err != nil {
			return err
		}
	}
	return nil
}

var resourceTmpl = template.Must(template.New("resource").Parse(resourceTemplate))

// Render 生成单个结构体的代码并格式化
func Render(pkg string, st StructInfo) ([]byte, error) {
	var buf bytes.Buffer
	err := resourceTmpl.Execute(&buf, struct {
		Pkg string
		StructInfo
	}{Pkg: pkg, StructInfo: st})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

const resourceTemplate = `// Code generated by resourcegen. DO NOT EDIT.

package {{.Pkg}}

import "github.com/fyerfyer/fyer-resmodel/resource"

// {{.Name}}Mappings {{.Name}} 的字段映射
var {{.Name}}Mappings = []resource.Mapping{
{{- range .Fields}}
	resource.Map({{printf "%q" .Name}}, {{printf "%q" .Column}}),
{{- end}}
}

// New{{.Name}}Resource 创建 {{.Table}} 表对应的资源模型
func New{{.Name}}Resource(opts ...resource.Option) (*resource.ResourceModel, error) {
	return resource.New({{printf "%q" .Table}}, append([]resource.Option{resource.WithFields({{.Name}}Mappings...)}, opts...)...)
}
{{range .Fields}}
func {{$.Name}}{{.Name}}() resource.Reference {
	return resource.Ref({{printf "%q" .Name}})
}
{{end}}`
