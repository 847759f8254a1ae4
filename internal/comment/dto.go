package comment

import (
	"time"

	commentModel "next-blog/internal/model/comment"
)

// ========== 请求 DTO ==========

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	ArticleID uint   `json:"article_id" binding:"required"`             // 目标文章ID
	ParentID  *uint  `json:"parent_id"`                                 // 父评论ID，顶级评论为空
	Content   string `json:"content" binding:"required,min=1,max=5000"` // 评论内容，1-5000字符
}

// UpdateCommentRequest 更新评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ========== 响应 DTO ==========

// CommentResponse 评论响应（顶级评论携带回复列表）
type CommentResponse struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"article_id"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Replies []*CommentResponse `json:"replies"` // 回复（时间升序），回复本身不再嵌套

	ReplyCount int `json:"reply_count"` // 回复数量
}

// CommentsListResponse 评论列表响应
type CommentsListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int                `json:"total"` // 总评论数（包括回复）
}

// ========== 辅助函数：Model -> DTO 转换 ==========

// ToCommentResponse 将 Model 转换为 Response DTO（不包含回复）
func ToCommentResponse(comment *commentModel.Comment) *CommentResponse {
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		// 创建后立即返回DTO时可能拿到零值时间，兜底为当前时间
		createdAt = time.Now()
	}

	return &CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		CreatedBy: comment.CreatedBy,
		CreatedAt: createdAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []*CommentResponse{},
	}
}
