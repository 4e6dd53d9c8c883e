// Package dto 提供 HTTP 层数据传输对象
package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新请求，Cookie 中没有 refresh token 时从请求体读取
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"` // 秒
	User         *UserResponse `json:"user,omitempty"`
}
