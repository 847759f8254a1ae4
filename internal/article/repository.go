package article

import (
	"context"
	"time"

	"gorm.io/gorm"

	"next-blog/internal/database"
	articleModel "next-blog/internal/model/article"
	commentModel "next-blog/internal/model/comment"
)

// ArticleRepository 文章仓储层
// 所有调用都带超时；只读查询失败重试一次，写操作不重试
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ===== Article 基础操作 =====

func (r *ArticleRepository) GetByID(ctx context.Context, id uint) (*articleModel.Article, error) {
	var art articleModel.Article
	err := database.RetryRead(func() error {
		// 超时在每次尝试内派生，重试拿到完整的时间预算
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).First(&art, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &art, nil
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*articleModel.Article, error) {
	var art articleModel.Article
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Where("slug = ?", slug).First(&art).Error
	})
	if err != nil {
		return nil, err
	}
	return &art, nil
}

// List 文章列表，按创建时间倒序
// publishedOnly 只取已发布；tagID 非nil时按标签过滤
func (r *ArticleRepository) List(ctx context.Context, publishedOnly bool, tagID *uint) ([]articleModel.Article, error) {
	var articles []articleModel.Article
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()

		query := r.db.WithContext(qctx).Model(&articleModel.Article{})
		if publishedOnly {
			query = query.Where("published = ?", true)
		}
		if tagID != nil {
			query = query.
				Joins("JOIN article_tags ON article_tags.article_id = articles.id").
				Where("article_tags.tag_id = ?", *tagID)
		}
		return query.Order("created_at DESC").Find(&articles).Error
	})
	return articles, err
}

// Count 文章总数（用于容量检查）
func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Model(&articleModel.Article{}).Count(&total).Error
	})
	return total, err
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Model(&articleModel.Article{}).
			Where("slug = ?", slug).Count(&count).Error
	})
	return count > 0, err
}

// 容量检查使用的咨询锁键，所有创建路径共用同一把锁
const articleQuotaLockKey = 7201001

// CreateWithQuota 在单个事务内检查容量并插入文章和标签关联
// READ COMMITTED 下两个事务可能同时读到相同计数，先取事务级咨询锁
// 把计数和插入串行化，并发创建不会越过上限
func (r *ArticleRepository) CreateWithQuota(ctx context.Context, art *articleModel.Article, tagIDs []uint, maxArticles int) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", articleQuotaLockKey).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&articleModel.Article{}).Count(&total).Error; err != nil {
			return err
		}
		if maxArticles > 0 && total >= int64(maxArticles) {
			return ErrCapacityExceeded
		}

		if err := tx.Create(art).Error; err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			link := &articleModel.ArticleTag{
				ArticleID: art.ID,
				TagID:     tagID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithTags 更新文章字段，tagIDs 非nil时在同一事务内整体替换标签关联
// 先删后插在事务内完成，读方不会观察到残缺的标签集合
func (r *ArticleRepository) UpdateWithTags(ctx context.Context, id uint, fields map[string]interface{}, tagIDs []uint) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&articleModel.Article{}).
				Where("id = ?", id).
				Updates(fields).Error; err != nil {
				return err
			}
		}

		if tagIDs == nil {
			return nil
		}

		if err := tx.Where("article_id = ?", id).
			Delete(&articleModel.ArticleTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			link := &articleModel.ArticleTag{
				ArticleID: id,
				TagID:     tagID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithCascade 级联删除文章及其标签关联和评论（单事务）
func (r *ArticleRepository) DeleteWithCascade(ctx context.Context, id uint) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).
			Delete(&articleModel.ArticleTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).
			Delete(&commentModel.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&articleModel.Article{}, id).Error
	})
}

// TagRepository 标签仓储层
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// ListByName 标签列表，按名称升序
func (r *TagRepository) ListByName(ctx context.Context) ([]articleModel.Tag, error) {
	var tags []articleModel.Tag
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Order("name ASC").Find(&tags).Error
	})
	return tags, err
}

func (r *TagRepository) GetByID(ctx context.Context, id uint) (*articleModel.Tag, error) {
	var tag articleModel.Tag
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).First(&tag, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByIDs 批量取标签，返回 id -> Tag 映射
func (r *TagRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]articleModel.Tag, error) {
	if len(ids) == 0 {
		return map[uint]articleModel.Tag{}, nil
	}

	var tags []articleModel.Tag
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Where("id IN ?", ids).Find(&tags).Error
	})
	if err != nil {
		return nil, err
	}

	result := make(map[uint]articleModel.Tag, len(tags))
	for _, tag := range tags {
		result[tag.ID] = tag
	}
	return result, nil
}

func (r *TagRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Model(&articleModel.Tag{}).
			Where("name = ?", name).Count(&count).Error
	})
	return count > 0, err
}

func (r *TagRepository) Create(ctx context.Context, tag *articleModel.Tag) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&articleModel.Tag{}, id).Error
}

// CountArticleRefs 标签被多少篇文章引用（删除前的引用检查）
func (r *TagRepository) CountArticleRefs(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Model(&articleModel.ArticleTag{}).
			Where("tag_id = ?", tagID).Count(&count).Error
	})
	return count, err
}

// GetArticleTags 获取文章的所有标签
func (r *TagRepository) GetArticleTags(ctx context.Context, articleID uint) ([]articleModel.Tag, error) {
	var tags []articleModel.Tag
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).
			Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
			Where("article_tags.article_id = ?", articleID).
			Find(&tags).Error
	})
	return tags, err
}

// GetBySlug 根据slug查找标签
func (r *TagRepository) GetBySlug(ctx context.Context, slug string) (*articleModel.Tag, error) {
	var tag articleModel.Tag
	err := database.RetryRead(func() error {
		qctx, cancel := database.WithQueryTimeout(ctx)
		defer cancel()
		return r.db.WithContext(qctx).Where("slug = ?", slug).First(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
