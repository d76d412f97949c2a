package resource

import (
	"strings"

	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

const (
	quoteChar = "`"
	separator = "."
)

// Escaper 对表名、列名之类的标识符加引号
type Escaper interface {
	Escape(name string) (string, error)
}

// BacktickEscaper 使用 MySQL 风格的反引号，名字中的反引号会被双写
type BacktickEscaper struct{}

// Escape 对 table.column 形式的名字按段分别引用，分隔符本身不加引号。
// 单独的 * 段保持原样，用于 table.* 这种写法
func (BacktickEscaper) Escape(name string) (string, error) {
	if name == "" {
		return "", ferr.ErrEmptyIdentifier()
	}

	segments := strings.Split(name, separator)
	var builder strings.Builder
	for i, seg := range segments {
		if seg == "" {
			return "", ferr.ErrInvalidIdentifier(name)
		}
		if i > 0 {
			builder.WriteString(separator)
		}
		if seg == "*" && i == len(segments)-1 {
			builder.WriteString(seg)
			continue
		}
		builder.WriteString(quoteChar)
		builder.WriteString(strings.ReplaceAll(seg, quoteChar, quoteChar+quoteChar))
		builder.WriteString(quoteChar)
	}
	return builder.String(), nil
}

// escapeAll 逐个引用，保持输入顺序
func escapeAll(e Escaper, names []string) ([]string, error) {
	res := make([]string, 0, len(names))
	for _, name := range names {
		quoted, err := e.Escape(name)
		if err != nil {
			return nil, err
		}
		res = append(res, quoted)
	}
	return res, nil
}
