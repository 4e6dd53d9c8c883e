// Package handler 提供 HTTP 请求处理器
package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/internal/interfaces/http/middleware"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc *export.Service
}

// NewExportHandler 创建导出处理器
func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export 下载项目文档
// @Summary 导出文档
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Param pid path string true "项目 ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/export/{pid} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	artifact, err := h.svc.Export(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c))
	if err != nil {
		respondError(c, ctx, "failed to export project", err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(artifact.Filename))
	c.Header("Content-Length", strconv.Itoa(len(artifact.Data)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, artifact.MIMEType, artifact.Data)
}

// Preview 导出前的 HTML 预览
// @Summary 导出预览
// @Tags Export
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.PreviewResponse]
// @Router /v1/export/{pid}/preview [get]
func (h *ExportHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	html, err := h.svc.Preview(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c))
	if err != nil {
		respondError(c, ctx, "failed to preview project", err)
		return
	}
	dto.Success(c, &dto.PreviewResponse{HTML: html})
}

// contentDisposition 同时给出 ASCII 回退名与 RFC 5987 编码的原始文件名
func contentDisposition(filename string) string {
	fallback := make([]rune, 0, len(filename))
	for _, r := range filename {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		fallback = append(fallback, r)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, string(fallback), url.PathEscape(filename))
}
