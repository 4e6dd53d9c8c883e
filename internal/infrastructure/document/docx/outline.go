package docx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"z-doc-ai-api/internal/infrastructure/document/ooxml"
)

// Block 文档中的一个段落
type Block struct {
	Style       string
	Centered    bool
	LineSpacing string
	Text        string
}

// Outline 解析后的文档内容树
type Outline struct {
	Title    string
	Centered bool
	Sections []OutlineSection
}

// OutlineSection 标题及其后的正文段落
type OutlineSection struct {
	Heading    string
	Paragraphs []string
}

// ReadBlocks 读取 word/document.xml 中的全部段落
func ReadBlocks(data []byte) ([]Block, error) {
	parts, err := ooxml.ReadParts(data)
	if err != nil {
		return nil, err
	}
	raw, ok := parts["word/document.xml"]
	if !ok {
		return nil, fmt.Errorf("word/document.xml not found in package")
	}

	var doc readDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	blocks := make([]Block, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			if r.Br != nil {
				b.WriteString("\n")
			}
			b.WriteString(r.T)
		}
		blocks = append(blocks, Block{
			Style:       p.PPr.PStyle.Val,
			Centered:    p.PPr.Jc.Val == "center",
			LineSpacing: p.PPr.Spacing.Line,
			Text:        b.String(),
		})
	}
	return blocks, nil
}

// ReadOutline 将 .docx 还原为 标题 / 小节 / 段落 结构
func ReadOutline(data []byte) (*Outline, error) {
	blocks, err := ReadBlocks(data)
	if err != nil {
		return nil, err
	}

	out := &Outline{}
	for _, b := range blocks {
		switch b.Style {
		case styleTitle:
			out.Title = b.Text
			out.Centered = b.Centered
		case styleHeading1:
			out.Sections = append(out.Sections, OutlineSection{Heading: b.Text})
		default:
			if len(out.Sections) == 0 {
				return nil, fmt.Errorf("paragraph %q appears before any heading", b.Text)
			}
			last := &out.Sections[len(out.Sections)-1]
			last.Paragraphs = append(last.Paragraphs, b.Text)
		}
	}
	return out, nil
}
