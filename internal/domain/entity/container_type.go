package entity

import (
	"fmt"
	"strings"
)

// ContainerType 文档容器类型，项目创建时确定且不可变更
type ContainerType string

const (
	ContainerWord  ContainerType = "word"
	ContainerSlide ContainerType = "slide"
)

const (
	mimeWord  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeSlide = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// ParseContainerType 解析容器类型，兼容 docx / pptx 写法
func ParseContainerType(s string) (ContainerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "docx":
		return ContainerWord, nil
	case "slide", "pptx":
		return ContainerSlide, nil
	default:
		return "", fmt.Errorf("unknown container type %q", s)
	}
}

// IsValid 检查容器类型是否合法
func (c ContainerType) IsValid() bool {
	return c == ContainerWord || c == ContainerSlide
}

// MIMEType 导出文件的 MIME 类型
func (c ContainerType) MIMEType() string {
	if c == ContainerSlide {
		return mimeSlide
	}
	return mimeWord
}

// Extension 导出文件扩展名
func (c ContainerType) Extension() string {
	if c == ContainerSlide {
		return "pptx"
	}
	return "docx"
}

// PlaceholderNoun 占位大纲使用的名词
func (c ContainerType) PlaceholderNoun() string {
	if c == ContainerSlide {
		return "Slide"
	}
	return "Section"
}

func (c ContainerType) String() string {
	return string(c)
}
