// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/internal/interfaces/http/middleware"
	"z-doc-ai-api/pkg/logger"
)

// UserHandler 用户处理器
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetMe 获取当前用户
// @Summary 当前用户
// @Tags Users
// @Produce json
// @Success 200 {object} dto.Response[dto.UserResponse]
// @Router /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, middleware.GetUserIDFromGin(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}
