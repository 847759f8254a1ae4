package comment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	commentModel "next-blog/internal/model/comment"
)

var (
	ErrCommentNotFound = errors.New("评论不存在")
	ErrArticleNotFound = errors.New("文章不存在")
	ErrInvalidParentID = errors.New("父评论不存在或无效")
	ErrEmptyContent    = errors.New("评论内容不能为空")
	ErrForbidden       = errors.New("无权限执行此操作")
)

// CommentService 评论服务接口
type CommentService interface {
	// 获取文章的所有评论（顶级评论时间升序，各自携带回复）
	GetArticleComments(ctx context.Context, articleID uint) (*CommentsListResponse, error)

	// 创建评论（顶级或回复）
	CreateComment(ctx context.Context, userID uint, req *CreateCommentRequest) (*CommentResponse, error)

	// 更新评论（仅作者本人，admin除外）
	UpdateComment(ctx context.Context, commentID uint, userID uint, userRole string, req *UpdateCommentRequest) (*CommentResponse, error)

	// 删除评论及其回复（仅作者本人，admin除外）
	DeleteComment(ctx context.Context, commentID uint, userID uint, userRole string) error
}

type commentService struct {
	repo CommentRepository
}

// NewCommentService 创建服务实例
func NewCommentService(repo CommentRepository) CommentService {
	return &commentService{repo: repo}
}

// GetArticleComments 获取文章的所有评论
// 不存在的文章返回空列表；存储故障原样上抛，不伪装成空评论区
func (s *commentService) GetArticleComments(ctx context.Context, articleID uint) (*CommentsListResponse, error) {
	comments, err := s.repo.FindTopLevelByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	total := 0
	result := make([]*CommentResponse, 0, len(comments))
	for i := range comments {
		resp := ToCommentResponse(&comments[i])
		for j := range comments[i].Replies {
			resp.Replies = append(resp.Replies, ToCommentResponse(&comments[i].Replies[j]))
		}
		resp.ReplyCount = len(resp.Replies)
		total += 1 + resp.ReplyCount
		result = append(result, resp)
	}

	return &CommentsListResponse{
		Comments: result,
		Total:    total,
	}, nil
}

// CreateComment 创建评论
// 顶级评论要求文章存在；回复还要求父评论存在、属于同一篇文章且本身是顶级评论
func (s *commentService) CreateComment(ctx context.Context, userID uint, req *CreateCommentRequest) (*CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	exists, err := s.repo.ArticleExists(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArticleNotFound
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParentID
			}
			return nil, err
		}
		if parent.ArticleID != req.ArticleID {
			return nil, ErrInvalidParentID
		}
		// 只允许一层回复，回复的回复挂到同一个顶级评论下
		if parent.ParentID != nil {
			return nil, ErrInvalidParentID
		}
	}

	comment := &commentModel.Comment{
		ArticleID: req.ArticleID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		CreatedBy: userID,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return ToCommentResponse(comment), nil
}

// UpdateComment 更新评论
func (s *commentService) UpdateComment(ctx context.Context, commentID uint, userID uint, userRole string, req *UpdateCommentRequest) (*CommentResponse, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.CreatedBy != userID && userRole != "admin" {
		return nil, ErrForbidden
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return ToCommentResponse(comment), nil
}

// DeleteComment 删除评论及其回复
func (s *commentService) DeleteComment(ctx context.Context, commentID uint, userID uint, userRole string) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.CreatedBy != userID && userRole != "admin" {
		return ErrForbidden
	}

	return s.repo.DeleteWithReplies(ctx, commentID)
}
