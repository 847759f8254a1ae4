package article

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"next-blog/config"
	"next-blog/internal/dto"
	"next-blog/internal/response"
)

type ArticleHandler struct {
	articleService *ArticleService
	tagService     *TagService
}

func NewArticleHandler(db *gorm.DB) *ArticleHandler {
	articleRepo := NewArticleRepository(db)
	tagRepo := NewTagRepository(db)

	maxArticles := 10
	if config.Conf != nil {
		maxArticles = config.Conf.Article.MaxArticles
	}

	return &ArticleHandler{
		articleService: NewArticleService(articleRepo, tagRepo, maxArticles),
		tagService:     NewTagService(tagRepo),
	}
}

// businessError 服务层错误映射为业务错误码
// 未识别的错误按内部错误处理：细节记日志，对外不暴露
func businessError(err error) *response.BusinessError {
	var code response.ResponseCode
	switch {
	case errors.Is(err, ErrUnauthorized):
		code = response.Unauthorized
	case errors.Is(err, ErrArticleNotFound):
		code = response.NotFound
	case errors.Is(err, ErrCapacityExceeded):
		code = response.CapacityExceeded
	case errors.Is(err, ErrEmptyTitleContent),
		errors.Is(err, ErrTagNotFound),
		errors.Is(err, ErrTagNameEmpty),
		errors.Is(err, ErrTagNameExists),
		errors.Is(err, ErrTagInUse):
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

// callerIdentity 从上下文取认证中间件写入的用户身份
func callerIdentity(c *gin.Context) (uint, string) {
	var userID uint
	if uid, exists := c.Get("user_id"); exists && uid != nil {
		userID = uid.(uint)
	}
	var userRole string
	if role, exists := c.Get("user_role"); exists && role != nil {
		userRole = role.(string)
	}
	return userID, userRole
}

// ListArticles 获取文章列表
// @Summary 获取文章列表（创建时间倒序，标签已解析）
// @Tags Article
// @Accept json
// @Produce json
// @Param published query bool false "只返回已发布文章"
// @Param tag query string false "标签slug过滤"
// @Success 200 {object} response.Response{data=dto.ArticleListResponse}
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	publishedOnly := c.Query("published") == "true"
	tagSlug := c.Query("tag")

	result, err := h.articleService.ListArticles(c.Request.Context(), publishedOnly, tagSlug)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, result)
}

// GetArticle 获取文章详情
// @Summary 获取文章详情（包含完整标签记录）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), uint(articleID))
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, article)
}

// GetArticleBySlug 通过slug获取文章详情
// @Summary 通过slug获取文章详情
// @Tags Article
// @Accept json
// @Produce json
// @Param slug path string true "文章slug"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles/slug/{slug} [get]
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.articleService.GetArticleBySlug(c.Request.Context(), slug)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, article)
}

// CreateArticle 创建文章
// @Summary 创建文章（仅admin）
// @Tags Article
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "创建文章请求"
// @Success 201 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID, userRole := callerIdentity(c)

	article, err := h.articleService.CreateArticle(c.Request.Context(), req, userID, userRole)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.CreatedResponse(c, article)
}

// UpdateArticle 更新文章
// @Summary 更新文章（仅admin，只更新提供的字段，标签整体替换）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body dto.UpdateArticleRequest true "更新文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID, userRole := callerIdentity(c)

	article, err := h.articleService.UpdateArticle(c.Request.Context(), uint(articleID), req, userID, userRole)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, article)
}

// DeleteArticle 删除文章
// @Summary 删除文章（仅admin，级联删除标签关联和评论）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.DeleteResponse}
// @Router /articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	userID, userRole := callerIdentity(c)

	if err := h.articleService.DeleteArticle(c.Request.Context(), uint(articleID), userID, userRole); err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, dto.DeleteResponse{Success: true})
}

// GetTags 获取标签列表
// @Summary 获取标签列表（名称升序）
// @Tags Tag
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=[]article.Tag}
// @Router /tags [get]
func (h *ArticleHandler) GetTags(c *gin.Context) {
	tags := h.tagService.ListTags(c.Request.Context())
	dto.SuccessResponse(c, tags)
}

// CreateTag 创建标签
// @Summary 创建标签（仅admin）
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "创建标签请求"
// @Success 201 {object} response.Response{data=article.Tag}
// @Router /tags [post]
func (h *ArticleHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	_, userRole := callerIdentity(c)

	tag, err := h.tagService.CreateTag(c.Request.Context(), req, userRole)
	if err != nil {
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.CreatedResponse(c, tag)
}

// DeleteTag 删除标签
// @Summary 删除标签（仅admin，仍被文章引用时拒绝）
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=dto.DeleteResponse}
// @Router /tags/{id} [delete]
func (h *ArticleHandler) DeleteTag(c *gin.Context) {
	tagID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的标签ID"),
		))
		return
	}

	_, userRole := callerIdentity(c)

	if err := h.tagService.DeleteTag(c.Request.Context(), uint(tagID), userRole); err != nil {
		// 删除场景下标签缺失是资源不存在，不是参数错误
		if errors.Is(err, ErrTagNotFound) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage(err.Error()),
			))
			return
		}
		dto.ErrorResponse(c, businessError(err))
		return
	}

	dto.SuccessResponse(c, dto.DeleteResponse{Success: true})
}
