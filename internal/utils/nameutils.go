package utils

import (
	"strings"
	"unicode"
)

// CamelToSnake 将驼峰式命名转换为下划线命名，连续大写视为一个缩写：
// UserID -> user_id，HTTPServer -> http_server
func CamelToSnake(camelStr string) string {
	runes := []rune(camelStr)
	var result strings.Builder

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			result.WriteRune(r)
			continue
		}
		if i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}
