package comment

import (
	"context"

	"gorm.io/gorm"

	"next-blog/internal/database"
	commentModel "next-blog/internal/model/comment"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	FindByID(ctx context.Context, commentID uint) (*commentModel.Comment, error)
	FindTopLevelByArticle(ctx context.Context, articleID uint) ([]commentModel.Comment, error)
	CountByArticle(ctx context.Context, articleID uint) (int64, error)
	Create(ctx context.Context, comment *commentModel.Comment) error
	Update(ctx context.Context, comment *commentModel.Comment) error
	DeleteWithReplies(ctx context.Context, commentID uint) error
	ArticleExists(ctx context.Context, articleID uint) (bool, error)
}

// commentRepository 实现
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建 Repository 实例
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// FindByID 根据ID查找评论
func (r *commentRepository) FindByID(ctx context.Context, commentID uint) (*commentModel.Comment, error) {
	var comment commentModel.Comment
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).First(&comment, commentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindTopLevelByArticle 获取文章的顶级评论（创建时间升序），回复一并预加载
func (r *commentRepository) FindTopLevelByArticle(ctx context.Context, articleID uint) ([]commentModel.Comment, error) {
	var comments []commentModel.Comment
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).
			Where("article_id = ? AND parent_id IS NULL", articleID).
			Order("created_at ASC").
			Preload("Replies", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Find(&comments).Error
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByArticle 统计文章的评论总数（含回复）
func (r *commentRepository) CountByArticle(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Model(&commentModel.Comment{}).
			Where("article_id = ?", articleID).
			Count(&count).Error
	})
	return count, err
}

// Create 创建评论
func (r *commentRepository) Create(ctx context.Context, comment *commentModel.Comment) error {
	qctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	return r.db.WithContext(qctx).Create(comment).Error
}

// Update 更新评论内容
func (r *commentRepository) Update(ctx context.Context, comment *commentModel.Comment) error {
	qctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	// 只更新 content 和 updated_at
	return r.db.WithContext(qctx).Model(comment).Updates(map[string]interface{}{
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	}).Error
}

// DeleteWithReplies 删除评论及其全部回复（同一事务）
func (r *commentRepository) DeleteWithReplies(ctx context.Context, commentID uint) error {
	qctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	return r.db.WithContext(qctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", commentID).
			Delete(&commentModel.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&commentModel.Comment{}, commentID).Error
	})
}

// ArticleExists 检查目标文章是否存在
func (r *commentRepository) ArticleExists(ctx context.Context, articleID uint) (bool, error) {
	var count int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Table("articles").
			Where("id = ?", articleID).
			Count(&count).Error
	})
	return count > 0, err
}
