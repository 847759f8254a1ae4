// Package article 文章相关模型
package article

import (
	"time"
)

// Article 文章基础信息表
type Article struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	// URL安全的唯一标识，由标题生成
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	// Markdown原文
	Content string `gorm:"type:text;not null" json:"content"`
	// 摘要，创建时未提供则从正文截取
	Excerpt string `gorm:"type:varchar(500)" json:"excerpt,omitempty"`
	// 头图URL
	FeaturedImage string `gorm:"type:varchar(500)" json:"featured_image,omitempty"`
	// 是否已发布（草稿对外不可见）
	Published bool      `gorm:"default:false;index" json:"published"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
