package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/infrastructure/document/docx"
	"z-doc-ai-api/internal/infrastructure/document/ooxml"
	"z-doc-ai-api/internal/infrastructure/document/pptx"
)

// docFile render 的输入与 inspect 的输出共用的 YAML 结构
type docFile struct {
	Title    string       `yaml:"title"`
	Type     string       `yaml:"type,omitempty"`
	Sections []docSection `yaml:"sections"`
}

type docSection struct {
	Title      string `yaml:"title"`
	Content    string `yaml:"content,omitempty"`
	OrderIndex *int   `yaml:"order_index,omitempty"`
}

func decodeDocFile(r io.Reader) (*docFile, error) {
	var doc docFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document yaml: %w", err)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return nil, fmt.Errorf("document title is required")
	}
	return &doc, nil
}

// assemble 未给出 order_index 的小节按出现顺序编号
func (d *docFile) assemble(ct entity.ContainerType) export.AssembledDocument {
	project := &entity.Project{Title: d.Title, ContainerType: ct}
	sections := make([]*entity.Section, 0, len(d.Sections))
	for i, s := range d.Sections {
		order := i
		if s.OrderIndex != nil {
			order = *s.OrderIndex
		}
		sections = append(sections, &entity.Section{
			Title:      s.Title,
			Content:    s.Content,
			OrderIndex: order,
		})
	}
	return export.Assemble(project, sections)
}

func detectContainer(data []byte) (entity.ContainerType, map[string][]byte, error) {
	parts, err := ooxml.ReadParts(data)
	if err != nil {
		return "", nil, err
	}
	switch {
	case parts["word/document.xml"] != nil:
		return entity.ContainerWord, parts, nil
	case parts["ppt/presentation.xml"] != nil:
		return entity.ContainerSlide, parts, nil
	default:
		return "", nil, fmt.Errorf("neither a word document nor a presentation")
	}
}

// inspectDocument 将 .docx / .pptx 还原为 docFile
func inspectDocument(data []byte) (*docFile, error) {
	ct, _, err := detectContainer(data)
	if err != nil {
		return nil, err
	}

	out := &docFile{Type: string(ct), Sections: []docSection{}}
	switch ct {
	case entity.ContainerWord:
		outline, err := docx.ReadOutline(data)
		if err != nil {
			return nil, err
		}
		out.Title = outline.Title
		for _, s := range outline.Sections {
			out.Sections = append(out.Sections, docSection{
				Title:   s.Heading,
				Content: strings.Join(s.Paragraphs, "\n\n"),
			})
		}
	default:
		deck, err := pptx.ReadDeck(data)
		if err != nil {
			return nil, err
		}
		for i, slide := range deck.Slides {
			if i == 0 {
				out.Title = slide.Title
				continue
			}
			out.Sections = append(out.Sections, docSection{
				Title:   slide.Title,
				Content: strings.Join(slide.Bullets(), "\n"),
			})
		}
	}
	return out, nil
}

func encodeDocFile(w io.Writer, doc *docFile) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
