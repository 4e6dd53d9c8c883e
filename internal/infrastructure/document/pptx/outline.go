package pptx

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"z-doc-ai-api/internal/infrastructure/document/ooxml"
)

// Deck 解析后的演示文稿
type Deck struct {
	Width  int64
	Height int64
	Slides []Slide
}

// Slide 单页内容
type Slide struct {
	Layout string
	Title  string
	// Body 正文占位符中的全部段落，空段落保留为 ""
	Body   []string
	Levels []string
}

// Bullets 返回非空要点
func (s Slide) Bullets() []string {
	var out []string
	for _, b := range s.Body {
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// ReadDeck 按 sldIdLst 顺序读取全部幻灯片
func ReadDeck(data []byte) (*Deck, error) {
	parts, err := ooxml.ReadParts(data)
	if err != nil {
		return nil, err
	}

	var pres readPresentation
	if err := unmarshalPart(parts, "ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}
	rels, err := readRelsPart(parts, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	deck := &Deck{Width: pres.SlideSize.CX, Height: pres.SlideSize.CY}
	for _, id := range pres.SlideIDs {
		target, ok := rels[id.RID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", id.RID)
		}
		name := path.Join("ppt", target)
		sl, err := readSlidePart(parts, name)
		if err != nil {
			return nil, err
		}
		deck.Slides = append(deck.Slides, *sl)
	}
	return deck, nil
}

func readSlidePart(parts map[string][]byte, name string) (*Slide, error) {
	var raw readSlide
	if err := unmarshalPart(parts, name, &raw); err != nil {
		return nil, err
	}

	out := &Slide{}
	dir, file := path.Split(name)
	if rels, err := readRelsPart(parts, dir+"_rels/"+file+".rels"); err == nil {
		for _, target := range rels {
			if strings.Contains(target, "slideLayouts/") {
				out.Layout = path.Base(target)
			}
		}
	}

	for _, sp := range raw.CSld.SpTree.Shapes {
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil {
			continue
		}
		var texts, levels []string
		for _, p := range sp.TxBody.Paragraphs {
			var b strings.Builder
			for _, r := range p.Runs {
				b.WriteString(r.T)
			}
			texts = append(texts, b.String())
			lvl := ""
			if p.PPr != nil {
				lvl = p.PPr.Lvl
			}
			levels = append(levels, lvl)
		}

		switch {
		case ph.Type == "title" || ph.Type == "ctrTitle":
			out.Title = strings.Join(texts, "\n")
		case ph.Idx == "1":
			out.Body = texts
			out.Levels = levels
		}
	}
	return out, nil
}

func unmarshalPart(parts map[string][]byte, name string, v any) error {
	raw, ok := parts[name]
	if !ok {
		return fmt.Errorf("%s not found in package", name)
	}
	if err := xml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// readRelsPart 返回 rId -> Target
func readRelsPart(parts map[string][]byte, name string) (map[string]string, error) {
	raw, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("%s not found in package", name)
	}
	rels, err := ooxml.ReadRels(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	out := make(map[string]string, len(rels))
	for _, r := range rels {
		out[r.ID] = r.Target
	}
	return out, nil
}
