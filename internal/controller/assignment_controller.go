package controller

import (
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/repository"
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	service *service.AssignmentService
	storage *service.StorageService
}

func NewAssignmentController(s *service.AssignmentService, storage *service.StorageService) *AssignmentController {
	return &AssignmentController{service: s, storage: storage}
}

// AssignmentRequest 新建与更新共用，更新时六个字段整体覆盖
// swagger:model AssignmentRequest
type AssignmentRequest struct {
	Title       string  `json:"title" binding:"required"`
	Difficulty  string  `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Description string  `json:"description"`
	Marks       float64 `json:"marks" binding:"gte=0"`
	Deadline    string  `json:"deadline" binding:"required"`
	Photo       string  `json:"photo" binding:"omitempty,url"`
}

func (r AssignmentRequest) fields() model.AssignmentFields {
	return model.AssignmentFields{
		Title:       r.Title,
		Difficulty:  model.Difficulty(r.Difficulty),
		Description: r.Description,
		Marks:       r.Marks,
		Deadline:    r.Deadline,
		Photo:       r.Photo,
	}
}

// ListAssignmentsRequest page/size 任一缺失或非法时返回全部结果
// swagger:model ListAssignmentsRequest
type ListAssignmentsRequest struct {
	Page   string `form:"page"`
	Size   string `form:"size"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	Search string `form:"search"`
}

func (r ListAssignmentsRequest) query() repository.AssignmentQuery {
	return repository.NewAssignmentQuery(r.Page, r.Size, r.Filter, r.Sort, r.Search)
}

// Create godoc
// @Summary Create an assignment
// @Tags assignment
// @Accept json
// @Produce json
// @Param body body AssignmentRequest true "assignment"
// @Success 201 {object} util.Response{data=model.InsertResult}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /add-assignment [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	f := req.fields()
	a := &model.Assignment{
		Title:       f.Title,
		Difficulty:  f.Difficulty,
		Description: f.Description,
		Marks:       f.Marks,
		Deadline:    f.Deadline,
		Photo:       f.Photo,
	}
	if user := util.GetUserFromContext(ctx); user != nil {
		a.CreatedBy = user.Email
	}

	res, err := c.service.Create(ctx.Request.Context(), a)
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// List godoc
// @Summary List assignments
// @Description Title search is case-insensitive; filter matches difficulty; sort orders by deadline (asc|dsc). Pagination applies only when both page and size are positive integers.
// @Tags assignment
// @Produce json
// @Param page query int false "1-based page"
// @Param size query int false "page size (max 100)"
// @Param filter query string false "difficulty"
// @Param sort query string false "asc or dsc"
// @Param search query string false "title contains"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Failure 500 {object} util.Response
// @Router /all-assignment [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	var req ListAssignmentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	list, err := c.service.ListPage(ctx.Request.Context(), req.query())
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Count godoc
// @Summary Count assignments matching filter and search
// @Tags assignment
// @Produce json
// @Param filter query string false "difficulty"
// @Param search query string false "title contains"
// @Success 200 {object} util.Response{data=map[string]int64}
// @Failure 500 {object} util.Response
// @Router /assignment-count [get]
func (c *AssignmentController) Count(ctx *gin.Context) {
	var req ListAssignmentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	n, err := c.service.Count(ctx.Request.Context(), req.query())
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": n})
}

// Get godoc
// @Summary Fetch one assignment
// @Tags assignment
// @Produce json
// @Param id path string true "assignment id"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /details/{id} [get]
// @Router /update/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	a, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Update godoc
// @Summary Overwrite an assignment's fields
// @Description Replaces title, difficulty, description, marks, deadline and photo. An unknown id creates a new document (upsert); check upsertedId in the result.
// @Tags assignment
// @Accept json
// @Produce json
// @Param id path string true "assignment id"
// @Param body body AssignmentRequest true "assignment"
// @Success 200 {object} util.Response{data=model.UpdateResult}
// @Failure 400 {object} util.Response
// @Router /update/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	res, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req.fields())
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Delete godoc
// @Summary Delete an assignment
// @Description Deleting a missing id succeeds with deletedCount 0
// @Tags assignment
// @Produce json
// @Param id path string true "assignment id"
// @Success 200 {object} util.Response{data=model.DeleteResult}
// @Failure 400 {object} util.Response
// @Router /delete/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	res, err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// UploadPhoto godoc
// @Summary Upload an assignment photo
// @Tags assignment
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "image file (max 5MB)"
// @Success 200 {object} util.Response{data=map[string]string}
// @Failure 400 {object} util.Response
// @Router /upload-photo [post]
func (c *AssignmentController) UploadPhoto(ctx *gin.Context) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "photo is required")
		return
	}
	if file.Size > util.MaxPhotoSize {
		util.BadRequest(ctx, "photo must be at most 5MB")
		return
	}
	if !util.IsAllowedImageExt(file.Filename) {
		util.BadRequest(ctx, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if errors.Is(err, util.ErrInvalidFile) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.storage.UploadPhoto(ctx.Request.Context(), file.Filename, src, file.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
