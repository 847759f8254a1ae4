package article

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"next-blog/internal/dto"
	articleModel "next-blog/internal/model/article"
)

var (
	ErrArticleNotFound   = errors.New("文章不存在")
	ErrTagNotFound       = errors.New("标签不存在或无效")
	ErrUnauthorized      = errors.New("需要管理员权限")
	ErrEmptyTitleContent = errors.New("标题和内容不能为空")
	ErrCapacityExceeded  = errors.New("文章数量已达上限")
)

// ArticleService 文章服务
// 授权作为显式前置条件：调用方的角色由参数传入，不依赖全局会话状态
type ArticleService struct {
	articleRepo *ArticleRepository
	tagRepo     *TagRepository
	maxArticles int
}

func NewArticleService(articleRepo *ArticleRepository, tagRepo *TagRepository, maxArticles int) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		maxArticles: maxArticles,
	}
}

// ListArticles 文章列表（创建时间倒序，标签解析为完整记录）
// publishedOnly 只返回已发布；tagSlug 非空时按标签过滤
func (s *ArticleService) ListArticles(ctx context.Context, publishedOnly bool, tagSlug string) (*dto.ArticleListResponse, error) {
	var tagID *uint
	if tagSlug != "" {
		tag, err := s.tagRepo.GetBySlug(ctx, tagSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 未知标签视为空结果
				return &dto.ArticleListResponse{Total: 0, Articles: []dto.ArticleResponse{}}, nil
			}
			return nil, err
		}
		tagID = &tag.ID
	}

	articles, err := s.articleRepo.List(ctx, publishedOnly, tagID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, s.toResponse(ctx, &articles[i]))
	}

	return &dto.ArticleListResponse{
		Total:    len(items),
		Articles: items,
	}, nil
}

// GetArticle 获取文章详情（标签已解析）
func (s *ArticleService) GetArticle(ctx context.Context, id uint) (*dto.ArticleResponse, error) {
	art, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	resp := s.toResponse(ctx, art)
	return &resp, nil
}

// GetArticleBySlug 按slug获取文章详情
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*dto.ArticleResponse, error) {
	art, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	resp := s.toResponse(ctx, art)
	return &resp, nil
}

// CreateArticle 创建文章（仅admin）
// 数量达到配置上限时返回 ErrCapacityExceeded，不截断、不落库
func (s *ArticleService) CreateArticle(ctx context.Context, req dto.CreateArticleRequest, userID uint, userRole string) (*dto.ArticleResponse, error) {
	if userRole != "admin" {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyTitleContent
	}

	// 标签必须全部存在，任何缺失都在落库前拒绝
	tagIDs := []uint(req.Tags)
	if err := s.validateTagIDs(ctx, tagIDs); err != nil {
		return nil, err
	}

	slug := GenerateSlug(req.Title)
	exists, err := s.articleRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = uniqueSlug(slug)
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = GenerateExcerpt(req.Content, 160)
	}

	now := time.Now()
	art := &articleModel.Article{
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       excerpt,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.articleRepo.CreateWithQuota(ctx, art, tagIDs, s.maxArticles); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, art)
	return &resp, nil
}

// UpdateArticle 更新文章（仅admin，只更新提供的字段）
// Tags 提供时在单个事务内整体替换标签关联
func (s *ArticleService) UpdateArticle(ctx context.Context, id uint, req dto.UpdateArticleRequest, userID uint, userRole string) (*dto.ArticleResponse, error) {
	if userRole != "admin" {
		return nil, ErrUnauthorized
	}

	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitleContent
		}
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrEmptyTitleContent
		}
		fields["content"] = *req.Content
	}
	if req.Excerpt != nil {
		fields["excerpt"] = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		fields["featured_image"] = *req.FeaturedImage
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	fields["updated_at"] = time.Now()

	var tagIDs []uint
	if req.Tags != nil {
		tagIDs = []uint(*req.Tags)
		if err := s.validateTagIDs(ctx, tagIDs); err != nil {
			return nil, err
		}
		if tagIDs == nil {
			tagIDs = []uint{}
		}
	}

	if err := s.articleRepo.UpdateWithTags(ctx, id, fields, tagIDs); err != nil {
		return nil, err
	}

	return s.GetArticle(ctx, id)
}

// DeleteArticle 删除文章（仅admin，级联删除标签关联和评论）
func (s *ArticleService) DeleteArticle(ctx context.Context, id uint, userID uint, userRole string) error {
	if userRole != "admin" {
		return ErrUnauthorized
	}

	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	return s.articleRepo.DeleteWithCascade(ctx, id)
}

// ========== 辅助方法 ==========

// validateTagIDs 校验标签id全部存在
func (s *ArticleService) validateTagIDs(ctx context.Context, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	found, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	for _, id := range tagIDs {
		if _, ok := found[id]; !ok {
			return ErrTagNotFound
		}
	}
	return nil
}

// toResponse 构建响应，标签解析失败降级为空列表并记录日志，不让读请求失败
func (s *ArticleService) toResponse(ctx context.Context, art *articleModel.Article) dto.ArticleResponse {
	tags, err := s.tagRepo.GetArticleTags(ctx, art.ID)
	if err != nil {
		log.Printf("解析文章 %d 的标签失败: %v", art.ID, err)
		tags = nil
	}
	if tags == nil {
		tags = []articleModel.Tag{}
	}

	return dto.ArticleResponse{
		ID:            art.ID,
		Title:         art.Title,
		Slug:          art.Slug,
		Content:       art.Content,
		Excerpt:       art.Excerpt,
		FeaturedImage: art.FeaturedImage,
		Published:     art.Published,
		Tags:          tags,
		CreatedBy:     art.CreatedBy,
		CreatedAt:     art.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     art.UpdatedAt.Format(time.RFC3339),
	}
}
