// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/pkg/logger"
	"z-doc-ai-api/pkg/utils"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/v1/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	jwtManager *utils.JWTManager
	accessTTL  time.Duration
	refreshTTL time.Duration
	userRepo   repository.UserRepository
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg config.JWTConfig, userRepo repository.UserRepository) *AuthHandler {
	h := &AuthHandler{
		jwtManager: utils.NewJWTManager(cfg.Secret, cfg.Issuer),
		accessTTL:  cfg.Expiration,
		refreshTTL: cfg.RefreshExpiration,
		userRepo:   userRepo,
	}
	if h.accessTTL <= 0 {
		h.accessTTL = 15 * time.Minute
	}
	if h.refreshTTL <= 0 {
		h.refreshTTL = 7 * 24 * time.Hour
	}
	return h
}

// Register 注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		dto.BadRequest(c, "username must be at least 3 characters")
		return
	}

	exists, err := h.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		logger.Error(ctx, "failed to check username", err)
		dto.InternalError(c, "registration failed")
		return
	}
	if exists {
		dto.Conflict(c, "username already registered")
		return
	}

	user := entity.NewUser(username)
	if err := user.SetPassword(req.Password); err != nil {
		logger.Error(ctx, "failed to hash password", err)
		dto.InternalError(c, "registration failed")
		return
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		logger.Error(ctx, "failed to create user", err)
		dto.InternalError(c, "registration failed")
		return
	}

	resp, ok := h.issue(c, user)
	if !ok {
		return
	}
	logger.Info(ctx, "user registered", "user_id", user.ID)
	dto.Created(c, resp)
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "login failed")
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		dto.Unauthorized(c, "invalid username or password")
		return
	}

	if err := h.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn(ctx, "failed to update last login time", "error", err.Error(), "user_id", user.ID)
	}

	resp, ok := h.issue(c, user)
	if !ok {
		return
	}
	dto.Success(c, resp)
}

// RefreshToken 用 refresh token 换取新的 access token
// @Summary 刷新令牌
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		var req dto.RefreshRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		dto.Unauthorized(c, "missing refresh token")
		return
	}

	claims, err := h.jwtManager.ParseToken(token)
	if err != nil || claims.Type != utils.TokenTypeRefresh {
		dto.Unauthorized(c, "invalid refresh token")
		return
	}

	access, err := h.jwtManager.GenerateToken(claims.UserID, claims.Username, utils.TokenTypeAccess, h.accessTTL)
	if err != nil {
		dto.InternalError(c, "failed to generate access token")
		return
	}
	dto.Success(c, &dto.AuthResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.accessTTL.Seconds()),
	})
}

// Logout 登出，清除 refresh token Cookie
// @Summary 登出
// @Tags Auth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issue(c *gin.Context, user *entity.User) (*dto.AuthResponse, bool) {
	tokens, err := h.jwtManager.GenerateTokenPair(user.ID, user.Username, h.accessTTL, h.refreshTTL)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to generate tokens", err)
		dto.InternalError(c, "failed to generate tokens")
		return nil, false
	}

	c.SetCookie(refreshCookieName, tokens.RefreshToken, int(h.refreshTTL.Seconds()), refreshCookiePath, "", false, true)
	return &dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.accessTTL.Seconds()),
		User:         dto.ToUserResponse(user),
	}, true
}
