package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"next-blog/internal/model/article"
	"next-blog/internal/model/comment"
	"next-blog/internal/model/user"
)

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()
	username := fmt.Sprintf("test_user_%s", uniqueID)
	email := fmt.Sprintf("test_%s@example.com", uniqueID)

	testUser := &user.User{
		Username:  username,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// CreateTestArticle creates a test article
func CreateTestArticle(db *gorm.DB, createdBy uint, opts ...ArticleOption) *article.Article {
	uniqueID := uuid.New().String()
	title := fmt.Sprintf("Test Article %s", uniqueID)

	testArticle := &article.Article{
		Title:     title,
		Slug:      fmt.Sprintf("test-article-%s", uniqueID),
		Content:   "Test article content",
		Published: true,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testArticle)
	}

	if err := db.Create(testArticle).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	return testArticle
}

// ArticleOption configures test article
type ArticleOption func(*article.Article)

// WithTitle sets the article title
func WithTitle(title string) ArticleOption {
	return func(a *article.Article) {
		a.Title = title
	}
}

// WithPublished sets the published flag
func WithPublished(published bool) ArticleOption {
	return func(a *article.Article) {
		a.Published = published
	}
}

// WithCreatedAt sets the creation time
func WithCreatedAt(t time.Time) ArticleOption {
	return func(a *article.Article) {
		a.CreatedAt = t
	}
}

// CreateTestTag creates a test tag with unique name
func CreateTestTag(db *gorm.DB, opts ...TagOption) *article.Tag {
	uniqueID := uuid.New().String()[:8]

	testTag := &article.Tag{
		Name:      fmt.Sprintf("tag-%s", uniqueID),
		Slug:      fmt.Sprintf("tag-%s", uniqueID),
		Color:     "#3b82f6",
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testTag)
	}

	if err := db.Create(testTag).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}

	return testTag
}

// TagOption configures test tag
type TagOption func(*article.Tag)

// WithTagName sets the tag name and slug
func WithTagName(name string) TagOption {
	return func(tag *article.Tag) {
		tag.Name = name
		tag.Slug = name
	}
}

// LinkArticleTag links an article to a tag
func LinkArticleTag(db *gorm.DB, articleID, tagID uint) {
	link := &article.ArticleTag{
		ArticleID: articleID,
		TagID:     tagID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(link).Error; err != nil {
		panic(fmt.Sprintf("Failed to link article and tag: %v", err))
	}
}

// CreateTestComment creates a test comment
func CreateTestComment(db *gorm.DB, articleID, createdBy uint, opts ...CommentOption) *comment.Comment {
	testComment := &comment.Comment{
		ArticleID: articleID,
		Content:   "Test comment content",
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(testComment)
	}

	if err := db.Create(testComment).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test comment: %v", err))
	}

	return testComment
}

// CommentOption configures test comment
type CommentOption func(*comment.Comment)

// WithContent sets the comment content
func WithContent(content string) CommentOption {
	return func(c *comment.Comment) {
		c.Content = content
	}
}

// WithParentID sets the parent comment ID
func WithParentID(parentID uint) CommentOption {
	return func(c *comment.Comment) {
		c.ParentID = &parentID
	}
}

// WithCommentCreatedAt sets the creation time
func WithCommentCreatedAt(t time.Time) CommentOption {
	return func(c *comment.Comment) {
		c.CreatedAt = t
	}
}
