package comment

import (
	"next-blog/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCommentRoutes 设置评论相关路由
func SetupCommentRoutes(r *gin.RouterGroup, db *gorm.DB) {
	repo := NewCommentRepository(db)
	service := NewCommentService(repo)
	handler := NewCommentHandler(service)

	// 公开读
	comments := r.Group("/comments")
	{
		comments.GET("", handler.GetComments) // 获取文章的评论列表
	}

	// 需要认证
	commentsAuth := r.Group("/comments")
	commentsAuth.Use(middleware.JWTAuth()) // 需要认证
	{
		commentsAuth.POST("", handler.CreateComment)       // 创建评论
		commentsAuth.PUT("/:id", handler.UpdateComment)    // 更新评论
		commentsAuth.DELETE("/:id", handler.DeleteComment) // 删除评论
	}
}
