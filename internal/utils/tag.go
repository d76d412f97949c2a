package utils

import (
	"fmt"
	"strings"
)

// ParseColumnTag 解析 orm tag 的值，格式：`orm:"column_name:col_name"`，
// `orm:"-"` 表示忽略该字段
func ParseColumnTag(tag string) (column string, skip bool, err error) {
	if tag == "" {
		return "", false, nil
	}
	if tag == "-" {
		return "", true, nil
	}
	for _, kv := range strings.Split(tag, ";") {
		kvPair := strings.Split(kv, ":")
		if len(kvPair) != 2 || kvPair[0] != "column_name" || kvPair[1] == "" {
			return "", false, fmt.Errorf("invalid tag %q", tag)
		}
		column = kvPair[1]
	}
	return column, false, nil
}
