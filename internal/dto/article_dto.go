package dto

import (
	"encoding/json"

	articleModel "next-blog/internal/model/article"
)

// UintSlice 自定义uint切片类型，支持空字符串/null解析
type UintSlice []uint

// UnmarshalJSON 实现自定义JSON解析，处理空字符串情况
func (s *UintSlice) UnmarshalJSON(data []byte) error {
	// 处理空字符串的情况
	if string(data) == `""` || string(data) == `null` {
		*s = []uint{}
		return nil
	}

	// 正常解析数组
	var arr []uint
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*s = arr
	return nil
}

// CreateArticleRequest 创建文章请求
type CreateArticleRequest struct {
	Title         string    `json:"title" binding:"required,max=255"`
	Content       string    `json:"content" binding:"required"`
	Excerpt       string    `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage string    `json:"featured_image" binding:"omitempty,max=500"`
	Published     bool      `json:"published"`
	Tags          UintSlice `json:"tags"`
}

// UpdateArticleRequest 更新文章请求（只更新提供的字段）
// Tags 提供时整体替换标签关联
type UpdateArticleRequest struct {
	Title         *string    `json:"title" binding:"omitempty,max=255"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage *string    `json:"featured_image" binding:"omitempty,max=500"`
	Published     *bool      `json:"published"`
	Tags          *UintSlice `json:"tags"`
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// ArticleResponse 文章响应（标签已解析为完整记录）
type ArticleResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Content       string             `json:"content"`
	Excerpt       string             `json:"excerpt,omitempty"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Published     bool               `json:"published"`
	Tags          []articleModel.Tag `json:"tags"`
	CreatedBy     uint               `json:"created_by"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
}

// ArticleListResponse 文章列表响应
type ArticleListResponse struct {
	Total    int               `json:"total"`
	Articles []ArticleResponse `json:"articles"`
}

// DeleteResponse 删除成功响应
type DeleteResponse struct {
	Success bool `json:"success"`
}
