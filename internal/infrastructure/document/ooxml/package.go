// Package ooxml 提供 Office Open XML 包（zip + XML 部件）的读写基础设施。
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// Relationship 类型
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
)

const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"

	ContentTypeRels   = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML    = "application/xml"
	ContentTypeCore   = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeTheme  = "application/vnd.openxmlformats-officedocument.theme+xml"
	ContentTypeStyles = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
)

// 固定的 zip 条目时间，相同输入产生相同字节
var fixedModTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

type part struct {
	name string
	data []byte
}

type override struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type defaultType struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultType `xml:"Default"`
	Overrides []override    `xml:"Override"`
}

// Relationship 单条关系
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []Relationship `xml:"Relationship"`
}

// Package 按写入顺序收集部件，最后统一打包
type Package struct {
	parts     []part
	overrides []override
}

// NewPackage 创建空包
func NewPackage() *Package {
	return &Package{}
}

// AddXML 序列化结构体为 XML 部件；contentType 为空时不登记 Override
func (p *Package) AddXML(name, contentType string, v any) error {
	data, err := MarshalXML(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	p.AddRaw(name, contentType, data)
	return nil
}

// AddRaw 添加原始字节部件
func (p *Package) AddRaw(name, contentType string, data []byte) {
	p.parts = append(p.parts, part{name: name, data: data})
	if contentType != "" {
		p.overrides = append(p.overrides, override{PartName: "/" + name, ContentType: contentType})
	}
}

// AddRels 添加关系部件
func (p *Package) AddRels(name string, rels ...Relationship) error {
	return p.AddXML(name, "", relationships{Xmlns: nsRelationships, Rels: rels})
}

// AddCoreProps 添加 docProps/core.xml
func (p *Package) AddCoreProps(title string) error {
	return p.AddXML("docProps/core.xml", ContentTypeCore, coreProperties{
		XmlnsCP:      "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		XmlnsDC:      "http://purl.org/dc/elements/1.1/",
		XmlnsDCTerms: "http://purl.org/dc/terms/",
		XmlnsXSI:     "http://www.w3.org/2001/XMLSchema-instance",
		Title:        title,
		Creator:      "z-doc-ai",
	})
}

type coreProperties struct {
	XMLName      xml.Name `xml:"cp:coreProperties"`
	XmlnsCP      string   `xml:"xmlns:cp,attr"`
	XmlnsDC      string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI     string   `xml:"xmlns:xsi,attr"`
	Title        string   `xml:"dc:title"`
	Creator      string   `xml:"dc:creator"`
}

// Bytes 输出完整 zip 包，[Content_Types].xml 总是第一个条目
func (p *Package) Bytes() ([]byte, error) {
	ct := contentTypes{
		Xmlns: nsContentTypes,
		Defaults: []defaultType{
			{Extension: "rels", ContentType: ContentTypeRels},
			{Extension: "xml", ContentType: ContentTypeXML},
		},
		Overrides: p.overrides,
	}
	ctData, err := MarshalXML(ct)
	if err != nil {
		return nil, fmt.Errorf("marshal content types: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := writeEntry(zw, "[Content_Types].xml", ctData); err != nil {
		return nil, err
	}
	for _, pt := range p.parts {
		if err := writeEntry(zw, pt.name, pt.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: fixedModTime,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// MarshalXML 序列化并加上 standalone 声明
func MarshalXML(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+64)
	out = append(out, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"...)
	return append(out, body...), nil
}

// ReadParts 读取包内全部部件
func ReadParts(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		parts[f.Name] = b
	}
	return parts, nil
}

// ReadRels 解析关系部件
func ReadRels(data []byte) ([]Relationship, error) {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	return rels.Rels, nil
}
