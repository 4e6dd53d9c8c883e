// Package docutil 提供文档应用层内部共享的工具函数。
package docutil

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 按 rune 数量截断字符串，不会切断多字节字符。
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// SanitizeFilename 替换文件名中的路径分隔符、引号与控制字符
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r == '\'':
			return '_'
		case r < 0x20 || r == 0x7f:
			return '_'
		default:
			return r
		}
	}, name)
	if name == "" {
		return "document"
	}
	return name
}
