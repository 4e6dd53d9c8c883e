// Package docx 将有序小节渲染为 Word（.docx）文档：居中标题、一级标题与 1.15 倍行距段落。
package docx

import (
	_ "embed"
	"strings"

	"z-doc-ai-api/internal/infrastructure/document/ooxml"
)

//go:embed styles.xml
var stylesXML []byte

const (
	contentTypeDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

	styleTitle    = "Title"
	styleHeading1 = "Heading1"

	// 1.15 倍行距，单位为 1/240 行
	lineSpacing115 = "276"
)

// Render 生成完整的 .docx 字节流，小节顺序与输入一致
func Render(title string, sections []ooxml.Section) ([]byte, error) {
	doc := document{XmlnsW: nsW, XmlnsR: nsR}
	paras := make([]paragraph, 0, 1+2*len(sections))

	paras = append(paras, paragraph{
		PPr:  &pPr{PStyle: &valAttr{Val: styleTitle}, Jc: &valAttr{Val: "center"}},
		Runs: runs(title),
	})
	for _, s := range sections {
		paras = append(paras, paragraph{
			PPr:  &pPr{PStyle: &valAttr{Val: styleHeading1}},
			Runs: runs(s.Title),
		})
		for _, text := range ooxml.SplitParagraphs(s.Content) {
			paras = append(paras, paragraph{
				PPr:  &pPr{Spacing: &spacing{Line: lineSpacing115, LineRule: "auto"}},
				Runs: runs(text),
			})
		}
	}
	doc.Body.Paragraphs = paras
	// A4 页面，1 英寸边距
	doc.Body.SectPr = sectPr{
		PgSz:  pgSz{W: "11906", H: "16838"},
		PgMar: pgMar{Top: "1440", Right: "1440", Bottom: "1440", Left: "1440", Header: "708", Footer: "708", Gutter: "0"},
	}

	pkg := ooxml.NewPackage()
	if err := pkg.AddRels("_rels/.rels",
		ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeOfficeDocument, Target: "word/document.xml"},
		ooxml.Relationship{ID: "rId2", Type: ooxml.RelTypeCoreProps, Target: "docProps/core.xml"},
	); err != nil {
		return nil, err
	}
	if err := pkg.AddXML("word/document.xml", contentTypeDocument, doc); err != nil {
		return nil, err
	}
	if err := pkg.AddRels("word/_rels/document.xml.rels",
		ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeStyles, Target: "styles.xml"},
	); err != nil {
		return nil, err
	}
	pkg.AddRaw("word/styles.xml", ooxml.ContentTypeStyles, stylesXML)
	if err := pkg.AddCoreProps(title); err != nil {
		return nil, err
	}
	return pkg.Bytes()
}

// runs 段内单个换行转为 <w:br/>
func runs(s string) []run {
	lines := strings.Split(s, "\n")
	out := make([]run, 0, len(lines))
	for i, line := range lines {
		r := run{T: text{Value: line, Space: "preserve"}}
		if i > 0 {
			r.Br = &struct{}{}
		}
		out = append(out, r)
	}
	return out
}
