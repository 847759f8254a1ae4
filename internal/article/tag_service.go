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
	ErrTagNameEmpty  = errors.New("标签名称不能为空")
	ErrTagNameExists = errors.New("标签名称已存在")
	ErrTagInUse      = errors.New("标签仍被文章引用，不能删除")
)

const defaultTagColor = "#3b82f6"

// TagService 标签服务
// 标签生命周期是管理动作：创建/删除仅admin，列表对所有人开放
type TagService struct {
	tagRepo *TagRepository
}

func NewTagService(tagRepo *TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ListTags 标签列表，按名称升序
// 存储不可用时降级为空列表并记录日志（fail-soft）
func (s *TagService) ListTags(ctx context.Context) []articleModel.Tag {
	tags, err := s.tagRepo.ListByName(ctx)
	if err != nil {
		log.Printf("获取标签列表失败: %v", err)
		return []articleModel.Tag{}
	}
	if tags == nil {
		tags = []articleModel.Tag{}
	}
	return tags
}

// CreateTag 创建标签（仅admin）
func (s *TagService) CreateTag(ctx context.Context, req dto.CreateTagRequest, userRole string) (*articleModel.Tag, error) {
	if userRole != "admin" {
		return nil, ErrUnauthorized
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrTagNameEmpty
	}

	exists, err := s.tagRepo.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTagNameExists
	}

	color := req.Color
	if color == "" {
		color = defaultTagColor
	}

	tag := &articleModel.Tag{
		Name:      name,
		Slug:      GenerateSlug(name),
		Color:     color,
		CreatedAt: time.Now(),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag 删除标签（仅admin）
// 仍被文章引用的标签拒绝删除
func (s *TagService) DeleteTag(ctx context.Context, id uint, userRole string) error {
	if userRole != "admin" {
		return ErrUnauthorized
	}

	if _, err := s.tagRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	refs, err := s.tagRepo.CountArticleRefs(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrTagInUse
	}

	return s.tagRepo.Delete(ctx, id)
}
