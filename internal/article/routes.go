package article

import (
	"next-blog/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupArticleRoutes 设置文章和标签相关路由
func SetupArticleRoutes(r *gin.RouterGroup, db *gorm.DB) {
	// 初始化handler（内部会自动初始化所有依赖）
	articleHandler := NewArticleHandler(db)

	// 文章路由 - 公开读
	articles := r.Group("/articles")
	{
		articles.GET("", articleHandler.ListArticles)                // 获取文章列表
		articles.GET("/:id", articleHandler.GetArticle)              // 获取文章详情
		articles.GET("/slug/:slug", articleHandler.GetArticleBySlug) // 通过slug获取文章
	}

	// 文章路由 - 需要认证（admin校验在服务层）
	articlesAuth := r.Group("/articles")
	articlesAuth.Use(middleware.JWTAuth()) // 需要认证
	{
		articlesAuth.POST("", articleHandler.CreateArticle)       // 创建文章
		articlesAuth.PUT("/:id", articleHandler.UpdateArticle)    // 更新文章
		articlesAuth.DELETE("/:id", articleHandler.DeleteArticle) // 删除文章
	}

	// 标签路由 - 公开读
	tags := r.Group("/tags")
	{
		tags.GET("", articleHandler.GetTags) // 获取标签列表
	}

	// 标签路由 - 需要认证
	tagsAuth := r.Group("/tags")
	tagsAuth.Use(middleware.JWTAuth()) // 需要认证
	{
		tagsAuth.POST("", articleHandler.CreateTag)       // 创建标签
		tagsAuth.DELETE("/:id", articleHandler.DeleteTag) // 删除标签
	}
}
