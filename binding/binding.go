package binding

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 JSON data 中的值，
// 支持 items[0].name 形式的下标。data 为空、JSON 无效或路径不存在时保留原占位符。
func Interpolate(text string, data []byte) string {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := toGJSONPath(strings.TrimSpace(groups[1]))
		if path == "" {
			return match
		}
		val := gjson.GetBytes(data, path)
		if !val.Exists() {
			return match
		}
		return val.String()
	})
}

// toGJSONPath 把 a.b[0].c 改写为 gjson 的 a.b.0.c。
func toGJSONPath(path string) string {
	var builder strings.Builder
	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '[':
			if builder.Len() > 0 {
				builder.WriteByte('.')
			}
		case ']':
		default:
			builder.WriteByte(c)
		}
	}
	return builder.String()
}
