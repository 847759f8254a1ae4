package comment

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	commentModel "next-blog/internal/model/comment"
	"next-blog/internal/testutils"
)

// setupCommentService 创建 CommentService 实例用于测试
func setupCommentService(t *testing.T) (CommentService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	return NewCommentService(NewCommentRepository(db)), db
}

// TestCreateComment_Integration 集成测试：创建评论
func TestCreateComment_Integration(t *testing.T) {
	service, db := setupCommentService(t)

	author := testutils.CreateTestUser(db, testutils.WithRole("admin"))
	commenter := testutils.CreateTestUser(db)

	art := testutils.CreateTestArticle(db, author.ID)
	otherArt := testutils.CreateTestArticle(db, author.ID)
	parent := testutils.CreateTestComment(db, art.ID, commenter.ID)

	tests := []struct {
		name        string
		userID      uint
		req         *CreateCommentRequest
		expectError error
	}{
		{
			name:   "Create top-level comment successfully",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: art.ID,
				Content:   "This is a test comment",
			},
		},
		{
			name:   "Create reply successfully",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: art.ID,
				ParentID:  &parent.ID,
				Content:   "This is a reply",
			},
		},
		{
			name:   "Comment on non-existent article",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: 99999,
				Content:   "Orphan comment",
			},
			expectError: ErrArticleNotFound,
		},
		{
			name:   "Reply to non-existent comment",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: art.ID,
				ParentID:  uintPtr(99999),
				Content:   "Reply to nothing",
			},
			expectError: ErrInvalidParentID,
		},
		{
			name:   "Reply to comment on another article",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: otherArt.ID,
				ParentID:  &parent.ID,
				Content:   "Cross-article reply",
			},
			expectError: ErrInvalidParentID,
		},
		{
			name:   "Blank content rejected",
			userID: commenter.ID,
			req: &CreateCommentRequest{
				ArticleID: art.ID,
				Content:   "   ",
			},
			expectError: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.CreateComment(context.Background(), tt.userID, tt.req)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("CreateComment() error = %v, want %v", err, tt.expectError)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			// 验证评论已落库
			var dbComment commentModel.Comment
			if err := db.First(&dbComment, resp.ID).Error; err != nil {
				t.Fatalf("Comment not found in database: %v", err)
			}
			if dbComment.Content != tt.req.Content {
				t.Errorf("Comment content = %q, want %q", dbComment.Content, tt.req.Content)
			}
			if dbComment.CreatedBy != tt.userID {
				t.Errorf("Comment CreatedBy = %d, want %d", dbComment.CreatedBy, tt.userID)
			}
			if tt.req.ParentID == nil && dbComment.ParentID != nil {
				t.Errorf("Top-level comment should have nil ParentID")
			}
			if tt.req.ParentID != nil && (dbComment.ParentID == nil || *dbComment.ParentID != *tt.req.ParentID) {
				t.Errorf("Reply ParentID = %v, want %d", dbComment.ParentID, *tt.req.ParentID)
			}
		})
	}
}

// TestCreateComment_NestedReply 集成测试：不允许回复的回复
func TestCreateComment_NestedReply(t *testing.T) {
	service, db := setupCommentService(t)

	author := testutils.CreateTestUser(db, testutils.WithRole("admin"))
	commenter := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, author.ID)
	top := testutils.CreateTestComment(db, art.ID, commenter.ID)
	reply := testutils.CreateTestComment(db, art.ID, commenter.ID, testutils.WithParentID(top.ID))

	_, err := service.CreateComment(context.Background(), commenter.ID, &CreateCommentRequest{
		ArticleID: art.ID,
		ParentID:  &reply.ID,
		Content:   "Reply to a reply",
	})

	if !errors.Is(err, ErrInvalidParentID) {
		t.Errorf("CreateComment() error = %v, want %v", err, ErrInvalidParentID)
	}
}

// TestGetArticleComments_Integration 集成测试：获取文章评论
func TestGetArticleComments_Integration(t *testing.T) {
	service, db := setupCommentService(t)

	author := testutils.CreateTestUser(db, testutils.WithRole("admin"))
	commenter := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, author.ID)

	base := time.Now().Add(-time.Hour)
	first := testutils.CreateTestComment(db, art.ID, commenter.ID,
		testutils.WithContent("first"), testutils.WithCommentCreatedAt(base))
	second := testutils.CreateTestComment(db, art.ID, commenter.ID,
		testutils.WithContent("second"), testutils.WithCommentCreatedAt(base.Add(time.Minute)))
	testutils.CreateTestComment(db, art.ID, commenter.ID,
		testutils.WithContent("reply"), testutils.WithParentID(first.ID),
		testutils.WithCommentCreatedAt(base.Add(2*time.Minute)))

	t.Run("Top-level comments oldest first with replies", func(t *testing.T) {
		result, err := service.GetArticleComments(context.Background(), art.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Total != 3 {
			t.Errorf("Total = %d, want 3", result.Total)
		}
		if len(result.Comments) != 2 {
			t.Fatalf("Expected 2 top-level comments, got %d", len(result.Comments))
		}
		if result.Comments[0].ID != first.ID || result.Comments[1].ID != second.ID {
			t.Errorf("Top-level comments should be ordered oldest first")
		}
		if result.Comments[0].ReplyCount != 1 || len(result.Comments[0].Replies) != 1 {
			t.Errorf("First comment should carry its reply")
		}
		if result.Comments[1].Replies == nil || len(result.Comments[1].Replies) != 0 {
			t.Errorf("Replies should be an empty list, not nil")
		}
	})

	t.Run("Article without comments yields empty list", func(t *testing.T) {
		result, err := service.GetArticleComments(context.Background(), 99999)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result.Total != 0 || len(result.Comments) != 0 {
			t.Errorf("Expected empty comment list, got %d", result.Total)
		}
	})
}

// brokenCommentRepository 列表查询永远失败的仓储
type brokenCommentRepository struct {
	CommentRepository
}

func (r brokenCommentRepository) FindTopLevelByArticle(ctx context.Context, articleID uint) ([]commentModel.Comment, error) {
	return nil, errors.New("connection refused")
}

// TestGetArticleComments_StoreFailure 存储故障必须上抛，不得伪装成空评论区
func TestGetArticleComments_StoreFailure(t *testing.T) {
	service := NewCommentService(brokenCommentRepository{})

	result, err := service.GetArticleComments(context.Background(), 1)
	if err == nil {
		t.Fatalf("GetArticleComments() should surface store failure, got result %+v", result)
	}
	if result != nil {
		t.Errorf("Result should be nil on store failure, got %+v", result)
	}
}

// TestUpdateComment_Integration 集成测试：更新评论
func TestUpdateComment_Integration(t *testing.T) {
	service, db := setupCommentService(t)

	author := testutils.CreateTestUser(db, testutils.WithRole("admin"))
	commenter := testutils.CreateTestUser(db)
	otherUser := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, author.ID)
	existing := testutils.CreateTestComment(db, art.ID, commenter.ID)

	tests := []struct {
		name        string
		commentID   uint
		userID      uint
		userRole    string
		req         *UpdateCommentRequest
		expectError error
	}{
		{
			name:      "Update own comment successfully",
			commentID: existing.ID,
			userID:    commenter.ID,
			userRole:  "user",
			req:       &UpdateCommentRequest{Content: "Updated comment"},
		},
		{
			name:        "Update other user's comment",
			commentID:   existing.ID,
			userID:      otherUser.ID,
			userRole:    "user",
			req:         &UpdateCommentRequest{Content: "Hijacked"},
			expectError: ErrForbidden,
		},
		{
			name:      "Admin can update any comment",
			commentID: existing.ID,
			userID:    author.ID,
			userRole:  "admin",
			req:       &UpdateCommentRequest{Content: "Moderated"},
		},
		{
			name:        "Update non-existent comment",
			commentID:   99999,
			userID:      commenter.ID,
			userRole:    "user",
			req:         &UpdateCommentRequest{Content: "Ghost"},
			expectError: ErrCommentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.UpdateComment(context.Background(), tt.commentID, tt.userID, tt.userRole, tt.req)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("UpdateComment() error = %v, want %v", err, tt.expectError)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if resp.Content != tt.req.Content {
				t.Errorf("Content = %q, want %q", resp.Content, tt.req.Content)
			}

			var dbComment commentModel.Comment
			if err := db.First(&dbComment, tt.commentID).Error; err != nil {
				t.Fatalf("Comment not found in database: %v", err)
			}
			if dbComment.Content != tt.req.Content {
				t.Errorf("Persisted content = %q, want %q", dbComment.Content, tt.req.Content)
			}
		})
	}
}

// TestDeleteComment_Integration 集成测试：删除评论
func TestDeleteComment_Integration(t *testing.T) {
	service, db := setupCommentService(t)

	author := testutils.CreateTestUser(db, testutils.WithRole("admin"))
	commenter := testutils.CreateTestUser(db)
	otherUser := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, author.ID)

	t.Run("Delete other user's comment rejected", func(t *testing.T) {
		c := testutils.CreateTestComment(db, art.ID, commenter.ID)
		err := service.DeleteComment(context.Background(), c.ID, otherUser.ID, "user")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("DeleteComment() error = %v, want %v", err, ErrForbidden)
		}
	})

	t.Run("Delete own comment removes replies too", func(t *testing.T) {
		top := testutils.CreateTestComment(db, art.ID, commenter.ID)
		testutils.CreateTestComment(db, art.ID, otherUser.ID, testutils.WithParentID(top.ID))

		if err := service.DeleteComment(context.Background(), top.ID, commenter.ID, "user"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var count int64
		db.Model(&commentModel.Comment{}).
			Where("id = ? OR parent_id = ?", top.ID, top.ID).Count(&count)
		if count != 0 {
			t.Errorf("Comment and its replies should be deleted, found %d rows", count)
		}
	})

	t.Run("Admin can delete any comment", func(t *testing.T) {
		c := testutils.CreateTestComment(db, art.ID, commenter.ID)
		if err := service.DeleteComment(context.Background(), c.ID, author.ID, "admin"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("Delete non-existent comment", func(t *testing.T) {
		err := service.DeleteComment(context.Background(), 99999, commenter.ID, "user")
		if !errors.Is(err, ErrCommentNotFound) {
			t.Errorf("DeleteComment() error = %v, want %v", err, ErrCommentNotFound)
		}
	})
}

func uintPtr(v uint) *uint {
	return &v
}
