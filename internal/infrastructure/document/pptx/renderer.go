// Package pptx 将有序小节渲染为演示文稿（.pptx）：一张标题页加每节一张要点页。
package pptx

import (
	"embed"
	"fmt"

	"z-doc-ai-api/internal/infrastructure/document/ooxml"
)

//go:embed static/*.xml
var static embed.FS

const (
	contentTypePresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	contentTypeSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	contentTypeSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	contentTypeSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	contentTypePresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"

	relTypePresProps = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"

	layoutTitle   = "slideLayout1.xml"
	layoutContent = "slideLayout2.xml"

	// 10 x 7.5 英寸，单位 EMU
	slideWidth  = 9144000
	slideHeight = 6858000

	firstSlideID = 256
)

// Render 生成完整的 .pptx 字节流，第 1 页为标题页，其后每个小节一页
func Render(title string, sections []ooxml.Section) ([]byte, error) {
	pkg := ooxml.NewPackage()

	if err := addStatic(pkg); err != nil {
		return nil, err
	}

	slides := make([]slide, 0, 1+len(sections))
	slides = append(slides, titleSlide(title))
	for _, s := range sections {
		slides = append(slides, contentSlide(s))
	}

	pres := presentation{
		XmlnsA:    nsA,
		XmlnsR:    nsR,
		XmlnsP:    nsP,
		MasterIDs: []masterID{{ID: 2147483648, RID: "rId1"}},
		SlideSize: slideSize{CX: slideWidth, CY: slideHeight},
		NotesSize: extent{CX: slideHeight, CY: slideWidth},
	}
	presRels := []ooxml.Relationship{
		{ID: "rId1", Type: ooxml.RelTypeSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		{ID: "rId2", Type: ooxml.RelTypeTheme, Target: "theme/theme1.xml"},
		{ID: "rId3", Type: relTypePresProps, Target: "presProps.xml"},
	}

	for i, sl := range slides {
		n := i + 1
		rid := fmt.Sprintf("rId%d", n+3)
		name := fmt.Sprintf("ppt/slides/slide%d.xml", n)

		layout := layoutContent
		if i == 0 {
			layout = layoutTitle
		}
		if err := pkg.AddXML(name, contentTypeSlide, sl); err != nil {
			return nil, err
		}
		if err := pkg.AddRels(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n),
			ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeSlideLayout, Target: "../slideLayouts/" + layout},
		); err != nil {
			return nil, err
		}

		pres.SlideIDs = append(pres.SlideIDs, slideID{ID: uint32(firstSlideID + i), RID: rid})
		presRels = append(presRels, ooxml.Relationship{
			ID: rid, Type: ooxml.RelTypeSlide, Target: fmt.Sprintf("slides/slide%d.xml", n),
		})
	}

	if err := pkg.AddXML("ppt/presentation.xml", contentTypePresentation, pres); err != nil {
		return nil, err
	}
	if err := pkg.AddRels("ppt/_rels/presentation.xml.rels", presRels...); err != nil {
		return nil, err
	}
	if err := pkg.AddRels("_rels/.rels",
		ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeOfficeDocument, Target: "ppt/presentation.xml"},
		ooxml.Relationship{ID: "rId2", Type: ooxml.RelTypeCoreProps, Target: "docProps/core.xml"},
	); err != nil {
		return nil, err
	}
	if err := pkg.AddCoreProps(title); err != nil {
		return nil, err
	}
	return pkg.Bytes()
}

// addStatic 写入母版、版式、主题等固定部件
func addStatic(pkg *ooxml.Package) error {
	files := []struct {
		src, name, contentType string
	}{
		{"static/theme1.xml", "ppt/theme/theme1.xml", ooxml.ContentTypeTheme},
		{"static/slideMaster1.xml", "ppt/slideMasters/slideMaster1.xml", contentTypeSlideMaster},
		{"static/slideLayout1.xml", "ppt/slideLayouts/slideLayout1.xml", contentTypeSlideLayout},
		{"static/slideLayout2.xml", "ppt/slideLayouts/slideLayout2.xml", contentTypeSlideLayout},
		{"static/presProps.xml", "ppt/presProps.xml", contentTypePresProps},
	}
	for _, f := range files {
		data, err := static.ReadFile(f.src)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.src, err)
		}
		pkg.AddRaw(f.name, f.contentType, data)
	}

	if err := pkg.AddRels("ppt/slideMasters/_rels/slideMaster1.xml.rels",
		ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeSlideLayout, Target: "../slideLayouts/" + layoutTitle},
		ooxml.Relationship{ID: "rId2", Type: ooxml.RelTypeSlideLayout, Target: "../slideLayouts/" + layoutContent},
		ooxml.Relationship{ID: "rId3", Type: ooxml.RelTypeTheme, Target: "../theme/theme1.xml"},
	); err != nil {
		return err
	}
	for _, layout := range []string{layoutTitle, layoutContent} {
		if err := pkg.AddRels("ppt/slideLayouts/_rels/"+layout+".rels",
			ooxml.Relationship{ID: "rId1", Type: ooxml.RelTypeSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
		); err != nil {
			return err
		}
	}
	return nil
}

func titleSlide(title string) slide {
	return newSlide(placeholderShape(2, "Title 1", placeholder{Type: "ctrTitle"}, []textParagraph{textLine(title, false)}))
}

// contentSlide 正文为空时仍保留一个空段落，避免占位符提示文字出现在放映中
func contentSlide(s ooxml.Section) slide {
	var paras []textParagraph
	for _, line := range ooxml.SplitBullets(s.Content) {
		paras = append(paras, textLine(line, true))
	}
	if len(paras) == 0 {
		paras = []textParagraph{{PPr: &textPPr{Lvl: "0"}, EndParaRPr: &runProps{Lang: "en-US"}}}
	}

	return newSlide(
		placeholderShape(2, "Title 1", placeholder{Type: "title"}, []textParagraph{textLine(s.Title, false)}),
		placeholderShape(3, "Content Placeholder 2", placeholder{Idx: "1"}, paras),
	)
}

func newSlide(shapes ...shape) slide {
	return slide{
		XmlnsA: nsA,
		XmlnsR: nsR,
		XmlnsP: nsP,
		CSld: commonSld{SpTree: shapeTree{
			NvGrpSpPr: nvGrpSpPr{CNvPr: cNvPr{ID: 1}},
			Shapes:    shapes,
		}},
	}
}

func placeholderShape(id int, name string, ph placeholder, paras []textParagraph) shape {
	return shape{
		NvSpPr: nvSpPr{
			CNvPr:   cNvPr{ID: id, Name: name},
			CNvSpPr: cNvSpPr{SpLocks: spLocks{NoGrp: "1"}},
			NvPr:    nvPr{Ph: ph},
		},
		TxBody: txBody{Paragraphs: paras},
	}
}

// textLine 要点段落统一为顶层（lvl=0）
func textLine(s string, bullet bool) textParagraph {
	p := textParagraph{Runs: []textRun{{RPr: runProps{Lang: "en-US"}, T: s}}}
	if bullet {
		p.PPr = &textPPr{Lvl: "0"}
	}
	return p
}
