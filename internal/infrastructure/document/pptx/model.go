package pptx

import "encoding/xml"

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

type presentation struct {
	XMLName   xml.Name   `xml:"p:presentation"`
	XmlnsA    string     `xml:"xmlns:a,attr"`
	XmlnsR    string     `xml:"xmlns:r,attr"`
	XmlnsP    string     `xml:"xmlns:p,attr"`
	MasterIDs []masterID `xml:"p:sldMasterIdLst>p:sldMasterId"`
	SlideIDs  []slideID  `xml:"p:sldIdLst>p:sldId"`
	SlideSize slideSize  `xml:"p:sldSz"`
	NotesSize extent     `xml:"p:notesSz"`
}

type masterID struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type slideID struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type slideSize struct {
	CX   int64  `xml:"cx,attr"`
	CY   int64  `xml:"cy,attr"`
	Type string `xml:"type,attr,omitempty"`
}

type extent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type slide struct {
	XMLName   xml.Name  `xml:"p:sld"`
	XmlnsA    string    `xml:"xmlns:a,attr"`
	XmlnsR    string    `xml:"xmlns:r,attr"`
	XmlnsP    string    `xml:"xmlns:p,attr"`
	CSld      commonSld `xml:"p:cSld"`
	ClrMapOvr clrMapOvr `xml:"p:clrMapOvr"`
}

type commonSld struct {
	SpTree shapeTree `xml:"p:spTree"`
}

type shapeTree struct {
	NvGrpSpPr nvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   struct{}  `xml:"p:grpSpPr"`
	Shapes    []shape   `xml:"p:sp"`
}

type nvGrpSpPr struct {
	CNvPr      cNvPr    `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type cNvPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type shape struct {
	NvSpPr nvSpPr   `xml:"p:nvSpPr"`
	SpPr   struct{} `xml:"p:spPr"`
	TxBody txBody   `xml:"p:txBody"`
}

type nvSpPr struct {
	CNvPr   cNvPr   `xml:"p:cNvPr"`
	CNvSpPr cNvSpPr `xml:"p:cNvSpPr"`
	NvPr    nvPr    `xml:"p:nvPr"`
}

type cNvSpPr struct {
	SpLocks spLocks `xml:"a:spLocks"`
}

type spLocks struct {
	NoGrp string `xml:"noGrp,attr"`
}

type nvPr struct {
	Ph placeholder `xml:"p:ph"`
}

type placeholder struct {
	Type string `xml:"type,attr,omitempty"`
	Idx  string `xml:"idx,attr,omitempty"`
}

type txBody struct {
	BodyPr     struct{}        `xml:"a:bodyPr"`
	LstStyle   struct{}        `xml:"a:lstStyle"`
	Paragraphs []textParagraph `xml:"a:p"`
}

type textParagraph struct {
	PPr        *textPPr  `xml:"a:pPr,omitempty"`
	Runs       []textRun `xml:"a:r"`
	EndParaRPr *runProps `xml:"a:endParaRPr,omitempty"`
}

type textPPr struct {
	Lvl string `xml:"lvl,attr"`
}

type textRun struct {
	RPr runProps `xml:"a:rPr"`
	T   string   `xml:"a:t"`
}

type runProps struct {
	Lang string `xml:"lang,attr"`
}

type clrMapOvr struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

// 读取模型

type readPresentation struct {
	// sldId 同时带有 id 与 r:id，只取带命名空间的关系 ID
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SlideSize struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type readSlide struct {
	CSld struct {
		SpTree struct {
			Shapes []readShape `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type readShape struct {
	NvSpPr struct {
		NvPr struct {
			Ph *struct {
				Type string `xml:"type,attr"`
				Idx  string `xml:"idx,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody struct {
		Paragraphs []struct {
			PPr *struct {
				Lvl string `xml:"lvl,attr"`
			} `xml:"pPr"`
			Runs []struct {
				T string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"txBody"`
}
