package comment

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"next-blog/internal/dto"
	"next-blog/internal/response"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service CommentService
}

// NewCommentHandler 创建处理器实例
func NewCommentHandler(service CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

// businessError 服务层错误映射为业务错误码
func businessError(err error) *response.BusinessError {
	var code response.ResponseCode
	switch {
	case errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrArticleNotFound):
		code = response.NotFound
	case errors.Is(err, ErrForbidden):
		code = response.Forbidden
	case errors.Is(err, ErrInvalidParentID), errors.Is(err, ErrEmptyContent):
		code = response.InvalidParameter
	default:
		log.Printf("存储层错误: %v", err)
		return response.NewBusinessError(
			response.WithErrorCode(response.InternalError),
			response.WithErrorMessage("内部错误"),
			response.WithError(err),
		)
	}

	return response.NewBusinessError(
		response.WithErrorCode(code),
		response.WithErrorMessage(err.Error()),
	)
}

// GetComments 获取文章的评论列表
// @Summary 获取文章的评论列表（顶级评论时间升序，携带回复）
// @Tags Comment
// @Accept json
// @Produce json
// @Param articleId query int true "文章ID"
// @Success 200 {object} response.Response{data=comment.CommentsListResponse}
// @Router /comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Query("articleId"), 10, 32)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	result, err := h.service.GetArticleComments(c.Request.Context(), uint(articleID))
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, result)
}

// CreateComment 创建评论
// @Summary 创建评论（顶级或回复，需登录）
// @Tags Comment
// @Accept json
// @Produce json
// @Param request body comment.CreateCommentRequest true "创建评论请求"
// @Success 201 {object} response.Response{data=comment.CommentResponse}
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID := currentUserID(c)

	result, err := h.service.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.CreatedResponse(c, result)
}

// UpdateComment 更新评论
// @Summary 更新评论（仅作者本人）
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "评论ID"
// @Param request body comment.UpdateCommentRequest true "更新评论请求"
// @Success 200 {object} response.Response{data=comment.CommentResponse}
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的评论ID"),
		))
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID := currentUserID(c)
	userRole := currentUserRole(c)

	result, err := h.service.UpdateComment(c.Request.Context(), uint(commentID), userID, userRole, &req)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, result)
}

// DeleteComment 删除评论
// @Summary 删除评论及其回复（仅作者本人）
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.DeleteResponse}
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的评论ID"),
		))
		return
	}

	userID := currentUserID(c)
	userRole := currentUserRole(c)

	if err := h.service.DeleteComment(c.Request.Context(), uint(commentID), userID, userRole); err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, dto.DeleteResponse{Success: true})
}

// currentUserID 从上下文取认证中间件写入的用户ID
func currentUserID(c *gin.Context) uint {
	if uid, exists := c.Get("user_id"); exists && uid != nil {
		return uid.(uint)
	}
	return 0
}

// currentUserRole 从上下文取认证中间件写入的用户角色
func currentUserRole(c *gin.Context) string {
	if role, exists := c.Get("user_role"); exists && role != nil {
		return role.(string)
	}
	return ""
}
