// Package export 组装项目小节并渲染为可下载的文档容器。导出结果从不缓存。
package export

import (
	"fmt"
	"sort"
	"strings"

	"z-doc-ai-api/internal/application/docutil"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/infrastructure/document/docx"
	"z-doc-ai-api/internal/infrastructure/document/ooxml"
	"z-doc-ai-api/internal/infrastructure/document/pptx"
)

// AssembledDocument 渲染器输入
type AssembledDocument struct {
	Title         string
	ContainerType entity.ContainerType
	Sections      []ooxml.Section
}

// Artifact 导出产物
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Renderer 文档渲染函数
type Renderer func(title string, sections []ooxml.Section) ([]byte, error)

var renderers = map[entity.ContainerType]Renderer{
	entity.ContainerWord:  docx.Render,
	entity.ContainerSlide: pptx.Render,
}

// Assemble 按 order_index 稳定排序，相同序号保持输入顺序
func Assemble(project *entity.Project, sections []*entity.Section) AssembledDocument {
	ordered := make([]*entity.Section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	doc := AssembledDocument{
		Title:         project.Title,
		ContainerType: project.ContainerType,
		Sections:      make([]ooxml.Section, 0, len(ordered)),
	}
	for _, s := range ordered {
		doc.Sections = append(doc.Sections, ooxml.Section{Title: s.Title, Content: s.Content})
	}
	return doc
}

// Render 选择渲染器生成产物
func Render(doc AssembledDocument) (*Artifact, error) {
	render, ok := renderers[doc.ContainerType]
	if !ok {
		return nil, fmt.Errorf("unsupported container type %q", doc.ContainerType)
	}
	data, err := render(doc.Title, doc.Sections)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.ContainerType, err)
	}
	return &Artifact{
		Filename: Filename(doc.Title, doc.ContainerType),
		MIMEType: doc.ContainerType.MIMEType(),
		Data:     data,
	}, nil
}

// Filename 生成 "<title>.<ext>"
func Filename(title string, ct entity.ContainerType) string {
	return docutil.SanitizeFilename(title) + "." + ct.Extension()
}

// Markdown 将组装结果转为 markdown，幻灯片正文按要点列出
func Markdown(doc AssembledDocument) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(doc.Title)
	b.WriteString("\n")

	for _, s := range doc.Sections {
		b.WriteString("\n## ")
		b.WriteString(s.Title)
		b.WriteString("\n")

		switch doc.ContainerType {
		case entity.ContainerSlide:
			bullets := ooxml.SplitBullets(s.Content)
			if len(bullets) > 0 {
				b.WriteString("\n")
			}
			for _, line := range bullets {
				b.WriteString("- ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		default:
			for _, p := range ooxml.SplitParagraphs(s.Content) {
				b.WriteString("\n")
				b.WriteString(p)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
