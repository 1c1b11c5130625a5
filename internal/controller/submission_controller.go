package controller

import (
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	service *service.SubmissionService
}

func NewSubmissionController(s *service.SubmissionService) *SubmissionController {
	return &SubmissionController{service: s}
}

// SubmissionRequest 学生提交作业
// swagger:model SubmissionRequest
type SubmissionRequest struct {
	AssignmentID string  `json:"assignment_id"`
	Title        string  `json:"title" binding:"required"`
	Marks        float64 `json:"marks" binding:"gte=0"`
	StudentEmail string  `json:"student_email" binding:"required,email"`
	StudentName  string  `json:"student_name"`
	PDFLink      string  `json:"pdf_link" binding:"omitempty,url"`
	Note         string  `json:"note"`
	Status       string  `json:"status" binding:"omitempty,oneof=pending completed"`
}

// GradeRequest 教师评分
// swagger:model GradeRequest
type GradeRequest struct {
	Status        string  `json:"status" binding:"required,oneof=pending completed"`
	ObtainedMarks float64 `json:"obtained_marks" binding:"gte=0"`
	Feedback      string  `json:"feedback"`
}

// Create godoc
// @Summary Submit an assignment
// @Description Status defaults to pending
// @Tags submission
// @Accept json
// @Produce json
// @Param body body SubmissionRequest true "submission"
// @Success 201 {object} util.Response{data=model.InsertResult}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /submission [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	var req SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	sub := &model.Submission{
		AssignmentID: req.AssignmentID,
		Title:        req.Title,
		Marks:        req.Marks,
		StudentEmail: strings.TrimSpace(req.StudentEmail),
		StudentName:  req.StudentName,
		PDFLink:      req.PDFLink,
		Note:         req.Note,
		Status:       model.SubmissionStatus(req.Status),
	}

	res, err := c.service.Create(ctx.Request.Context(), sub)
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// ListByEmail godoc
// @Summary List a student's submissions
// @Description Requires the session cookie; the email must match the caller
// @Tags submission
// @Produce json
// @Param email path string true "student email"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /submission/{email} [get]
func (c *SubmissionController) ListByEmail(ctx *gin.Context) {
	list, err := c.service.ListByEmail(ctx.Request.Context(), strings.TrimSpace(ctx.Param("email")))
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// ListByStatus godoc
// @Summary List a student's submissions with a given status
// @Tags submission
// @Produce json
// @Param email path string true "student email"
// @Param status path string true "pending or completed"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /status/{email}/{status} [get]
func (c *SubmissionController) ListByStatus(ctx *gin.Context) {
	email := strings.TrimSpace(ctx.Param("email"))
	status := strings.TrimSpace(ctx.Param("status"))

	list, err := c.service.ListByEmailAndStatus(ctx.Request.Context(), email, status)
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Get godoc
// @Summary Fetch one submission
// @Tags submission
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /submitted/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	sub, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// UpdateGrade godoc
// @Summary Grade a submission
// @Description Overwrites status, obtained_marks and feedback. Unknown ids are upserted.
// @Tags submission
// @Accept json
// @Produce json
// @Param id path string true "submission id"
// @Param body body GradeRequest true "grade"
// @Success 200 {object} util.Response{data=model.UpdateResult}
// @Failure 400 {object} util.Response
// @Router /status-update/{id} [put]
func (c *SubmissionController) UpdateGrade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	res, err := c.service.UpdateGrade(ctx.Request.Context(), ctx.Param("id"), model.GradeFields{
		Status:        model.SubmissionStatus(req.Status),
		ObtainedMarks: req.ObtainedMarks,
		Feedback:      req.Feedback,
	})
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Completion godoc
// @Summary Completion percentage for a student
// @Description 100 * submissions / assignments, rounded to two decimals; 0 when there are no assignments
// @Tags submission
// @Produce json
// @Param email path string true "student email"
// @Success 200 {object} util.Response{data=model.Completion}
// @Failure 500 {object} util.Response
// @Router /assignment-completion/{email} [get]
func (c *SubmissionController) Completion(ctx *gin.Context) {
	res, err := c.service.CompletionPercentage(ctx.Request.Context(), strings.TrimSpace(ctx.Param("email")))
	if err != nil {
		util.StoreError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
