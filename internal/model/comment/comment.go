// Package comment 评论相关模型
package comment

import (
	"time"

	"gorm.io/gorm"
)

// Comment 文章评论表
// 支持一级回复：ParentID 为 NULL 表示顶级评论
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联（可选，用于预加载）
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"-"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate GORM钩子：创建前的验证
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Content == "" {
		return gorm.ErrInvalidData
	}
	return nil
}
