package route

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"next-blog/internal/article"
	"next-blog/internal/comment"
)

func initRoute(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	article.SetupArticleRoutes(api, db)
	comment.SetupCommentRoutes(api, db)
}

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:5173" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true, // 认证cookie需要
	}))

	initRoute(r, db)

	return r
}
