package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/pkg/errors"
	"z-doc-ai-api/pkg/logger"
)

// respondError 记录非预期错误并按 AppError 映射状态码
func respondError(c *gin.Context, ctx context.Context, msg string, err error) {
	if !errors.IsAppError(err) || errors.AsAppError(err).HTTPStatus >= 500 {
		logger.Error(ctx, msg, err)
	}
	dto.FromError(c, err)
}

// bindJSON 绑定失败时返回 400，调用方直接 return
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
