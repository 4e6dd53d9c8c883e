package docx

import "encoding/xml"

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// 写入模型：标签带 w: 前缀，由 encoding/xml 原样输出

type document struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Paragraphs []paragraph `xml:"w:p"`
	SectPr     sectPr      `xml:"w:sectPr"`
}

type paragraph struct {
	PPr  *pPr  `xml:"w:pPr,omitempty"`
	Runs []run `xml:"w:r"`
}

// pPr 子元素顺序遵循 CT_PPr：pStyle、spacing、jc
type pPr struct {
	PStyle  *valAttr `xml:"w:pStyle,omitempty"`
	Spacing *spacing `xml:"w:spacing,omitempty"`
	Jc      *valAttr `xml:"w:jc,omitempty"`
}

type valAttr struct {
	Val string `xml:"w:val,attr"`
}

type spacing struct {
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr"`
	LineRule string `xml:"w:lineRule,attr"`
}

type run struct {
	Br *struct{} `xml:"w:br,omitempty"`
	T  text      `xml:"w:t"`
}

type text struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type sectPr struct {
	PgSz  pgSz  `xml:"w:pgSz"`
	PgMar pgMar `xml:"w:pgMar"`
}

type pgSz struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type pgMar struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

// 读取模型：按本地名匹配，忽略命名空间前缀

type readDocument struct {
	Body struct {
		Paragraphs []readParagraph `xml:"p"`
	} `xml:"body"`
}

type readParagraph struct {
	PPr struct {
		PStyle struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
		Spacing struct {
			Line string `xml:"line,attr"`
		} `xml:"spacing"`
		Jc struct {
			Val string `xml:"val,attr"`
		} `xml:"jc"`
	} `xml:"pPr"`
	Runs []struct {
		Br *struct{} `xml:"br"`
		T  string    `xml:"t"`
	} `xml:"r"`
}
