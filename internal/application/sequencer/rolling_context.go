package sequencer

import (
	"strings"
	"unicode/utf8"

	"z-doc-ai-api/internal/application/docutil"
)

// rollingContext 已生成小节的滚动摘要。
// 每节追加 "\n<title>: <内容前 previewRunes 个字符>..."，对外只暴露前 maxRunes 个字符。
type rollingContext struct {
	b            strings.Builder
	maxRunes     int
	previewRunes int
}

func newRollingContext(maxRunes, previewRunes int) *rollingContext {
	return &rollingContext{maxRunes: maxRunes, previewRunes: previewRunes}
}

// Snapshot 返回传给下一节的上下文
func (c *rollingContext) Snapshot() string {
	return docutil.TruncateByRunes(c.b.String(), c.maxRunes)
}

// Append 追加一节的摘要片段
func (c *rollingContext) Append(title, content string) {
	// 已超过上限时后续片段不会出现在快照中
	if utf8.RuneCountInString(c.b.String()) > c.maxRunes {
		return
	}
	c.b.WriteString("\n")
	c.b.WriteString(title)
	c.b.WriteString(": ")
	c.b.WriteString(docutil.TruncateByRunes(content, c.previewRunes))
	c.b.WriteString("...")
}
