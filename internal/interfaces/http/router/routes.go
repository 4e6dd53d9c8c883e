// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// publicPaths 无需 access token 的 v1 路径
var publicPaths = []string{
	"/v1/auth/register",
	"/v1/auth/login",
	"/v1/auth/refresh",
}

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers) {
	// 认证
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
	}

	// 用户
	users := v1.Group("/users")
	{
		users.GET("/me", h.User.GetMe)
	}

	// 项目
	projects := v1.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:pid", h.Project.GetProject)
		projects.PUT("/:pid", h.Project.UpdateProject)
		projects.DELETE("/:pid", h.Project.DeleteProject)

		// 项目下的小节
		projects.GET("/:pid/sections", h.Section.ListSections)
		projects.POST("/:pid/sections", h.Section.CreateSection)
	}

	// 小节
	sections := v1.Group("/sections")
	{
		sections.PUT("/:sid", h.Section.UpdateSection)
		sections.DELETE("/:sid", h.Section.DeleteSection)
		sections.GET("/:sid/history", h.Section.History)
	}

	// 生成
	generate := v1.Group("/generate")
	{
		generate.POST("/outline", h.Generate.Outline)
		generate.POST("/content", h.Generate.Content)
		generate.POST("/refine", h.Generate.Refine)
		generate.POST("/feedback", h.Generate.Feedback)
	}

	// 导出
	export := v1.Group("/export")
	{
		export.GET("/:pid", h.Export.Export)
		export.GET("/:pid/preview", h.Export.Preview)
	}
}
