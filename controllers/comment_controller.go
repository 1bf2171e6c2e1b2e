package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pqh/blog/config"
	"github.com/pqh/blog/models"
	"github.com/pqh/blog/repository"
	"github.com/pqh/blog/utils"
)

const commentEntityName = "comment"

type userRef struct {
	Login string `json:"login" binding:"required,max=50"`
}

type storyRef struct {
	ID uint `json:"id" binding:"required"`
}

// commentRequest is the JSON body accepted by create and update.
type commentRequest struct {
	ID    *uint    `json:"id"`
	Text  string   `json:"text" binding:"required,max=4096"`
	User  userRef  `json:"user"`
	Story storyRef `json:"story"`
}

// CommentController exposes the comment REST resource.
type CommentController struct {
	comments        repository.CommentRepository
	appName         string
	pageSizeDefault int
	pageSizeMax     int
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments repository.CommentRepository, cfg config.AppConfig) *CommentController {
	return &CommentController{
		comments:        comments,
		appName:         cfg.AppName,
		pageSizeDefault: cfg.PageSizeDefault,
		pageSizeMax:     cfg.PageSizeMax,
	}
}

// CreateComment handles POST /api/comments.
func (cc *CommentController) CreateComment(ctx *gin.Context) {
	utils.Sugar.Debug("REST request to save Comment")
	var req commentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	utils.Sugar.Debugw("Comment to save", "comment", req)
	cc.create(ctx, req)
}

func (cc *CommentController) create(ctx *gin.Context, req commentRequest) {
	if req.ID != nil {
		_ = ctx.Error(utils.NewBadRequestAlert("A new comment cannot already have an ID", commentEntityName, "idexists"))
		return
	}
	comment, err := toComment(req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	saved, err := cc.comments.Save(ctx.Request.Context(), comment)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	id := formatID(saved.ID)
	ctx.Header("Location", "/api/comments/"+id)
	utils.EntityCreationAlert(ctx, cc.appName, commentEntityName, id)
	ctx.JSON(http.StatusCreated, saved)
}

// UpdateComment handles PUT /api/comments. A body without id is created instead.
func (cc *CommentController) UpdateComment(ctx *gin.Context) {
	utils.Sugar.Debug("REST request to update Comment")
	var req commentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	utils.Sugar.Debugw("Comment to update", "comment", req)
	if req.ID == nil {
		cc.create(ctx, req)
		return
	}

	comment, err := toComment(req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	comment.ID = *req.ID

	saved, err := cc.comments.Save(ctx.Request.Context(), comment)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	utils.EntityUpdateAlert(ctx, cc.appName, commentEntityName, formatID(saved.ID))
	ctx.JSON(http.StatusOK, saved)
}

// ListComments handles GET /api/comments.
func (cc *CommentController) ListComments(ctx *gin.Context) {
	utils.Sugar.Debug("REST request to get a page of Comments")
	pageable, err := parsePageable(ctx, cc.pageSizeDefault, cc.pageSizeMax)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	page, err := cc.comments.FindAll(ctx.Request.Context(), pageable)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	utils.PaginationHeaders(ctx, page, "/api/comments")
	ctx.JSON(http.StatusOK, page.Content)
}

// GetComment handles GET /api/comments/:id.
func (cc *CommentController) GetComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	utils.Sugar.Debugw("REST request to get Comment", "id", id)

	comment, err := cc.comments.FindOne(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.Status(http.StatusNotFound)
			return
		}
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:id. Missing ids are not an error.
func (cc *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	utils.Sugar.Debugw("REST request to delete Comment", "id", id)

	if err := cc.comments.Delete(ctx.Request.Context(), id); err != nil {
		_ = ctx.Error(err)
		return
	}
	utils.EntityDeletionAlert(ctx, cc.appName, commentEntityName, formatID(id))
	ctx.Status(http.StatusOK)
}

// ListStoryComments handles GET /api/comments/story/:story_id.
func (cc *CommentController) ListStoryComments(ctx *gin.Context) {
	storyID, ok := pathID(ctx, "story_id")
	if !ok {
		return
	}
	utils.Sugar.Debugw("REST request to get Comments of Story", "story_id", storyID)

	comments, err := cc.comments.FindByStoryID(ctx.Request.Context(), storyID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, nonNil(comments))
}

// DeleteStoryComments handles DELETE /api/comments/story/:story_id.
func (cc *CommentController) DeleteStoryComments(ctx *gin.Context) {
	storyID, ok := pathID(ctx, "story_id")
	if !ok {
		return
	}
	utils.Sugar.Debugw("REST request to delete Comments of Story", "story_id", storyID)

	if err := cc.comments.DeleteByStory(ctx.Request.Context(), storyID); err != nil {
		_ = ctx.Error(err)
		return
	}
	utils.EntityDeletionAlert(ctx, cc.appName, commentEntityName, formatID(storyID))
	ctx.Status(http.StatusOK)
}

// ListMyComments handles GET /api/account/comments. Anonymous callers get an empty list.
func (cc *CommentController) ListMyComments(ctx *gin.Context) {
	utils.Sugar.Debug("REST request to get Comments of current user")

	comments, err := cc.comments.FindByUserIsCurrentUser(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, nonNil(comments))
}

func toComment(req commentRequest) (*models.Comment, error) {
	text := utils.SanitizeComment(req.Text)
	if text == "" {
		return nil, utils.NewBadRequestAlert("Comment text cannot be empty", commentEntityName, "textempty")
	}
	return &models.Comment{
		Text:      text,
		UserLogin: req.User.Login,
		StoryID:   req.Story.ID,
		User:      models.User{Login: req.User.Login},
		Story:     models.Story{ID: req.Story.ID},
	}, nil
}

// bindJSON decodes and validates the body, recording the failure for the error translator.
func bindJSON(ctx *gin.Context, req *commentRequest) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		_ = ctx.Error(err).SetType(gin.ErrorTypeBind).SetMeta(commentEntityName)
		return false
	}
	return true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, strconv.IntSize)
	if err != nil {
		_ = ctx.Error(utils.NewBadRequestAlert("Invalid "+name, commentEntityName, "idinvalid"))
		return 0, false
	}
	return uint(id), true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func nonNil(comments []models.Comment) []models.Comment {
	if comments == nil {
		return []models.Comment{}
	}
	return comments
}
