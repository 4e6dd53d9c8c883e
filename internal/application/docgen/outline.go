package docgen

import (
	"fmt"
	"strings"
	"unicode"

	"z-doc-ai-api/internal/domain/entity"
)

// PlaceholderOutline 降级大纲："Section i" / "Slide i"
func PlaceholderOutline(ct entity.ContainerType, count int) []string {
	noun := ct.PlaceholderNoun()
	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", noun, i+1)
	}
	return out
}

// PlaceholderContent 降级小节内容
func PlaceholderContent(sectionTitle string) string {
	return fmt.Sprintf("Content for %s will be generated here.", sectionTitle)
}

// parseOutline 按行拆分模型输出，去掉列表符号与编号，最多保留 count 条
func parseOutline(text string, count int) []string {
	var headings []string
	for _, line := range strings.Split(text, "\n") {
		h := cleanHeading(line)
		if h == "" {
			continue
		}
		headings = append(headings, h)
		if len(headings) == count {
			break
		}
	}
	return headings
}

func cleanHeading(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•# \t")
	s = stripNumbering(s)
	s = strings.Trim(s, "*_ \t")
	return strings.TrimSpace(s)
}

// stripNumbering 去掉 "1." / "1)" / "1:" 形式的前缀编号。
// "2024 - 回顾" 这类数字开头的标题保持原样。
func stripNumbering(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return s
	}
	switch s[i] {
	case '.', ')', ':':
		return strings.TrimLeftFunc(s[i+1:], unicode.IsSpace)
	}
	return s
}
