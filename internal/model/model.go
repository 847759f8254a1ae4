package model

import (
	"gorm.io/gorm"

	"next-blog/internal/model/article"
	"next-blog/internal/model/comment"
	"next-blog/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	err := db.AutoMigrate(
		// 用户模型
		&user.User{},
		// 文章相关模型
		&article.Article{},
		&article.Tag{},
		&article.ArticleTag{},
		// 评论模型
		&comment.Comment{},
	)
	if err != nil {
		return err
	}
	return nil
}
