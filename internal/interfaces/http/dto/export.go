// Package dto 提供 HTTP 层数据传输对象
package dto

// PreviewResponse 导出预览响应
type PreviewResponse struct {
	HTML string `json:"html"`
}
