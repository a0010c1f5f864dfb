package controller

import (
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/service"
	"career_agent_backend/internal/util"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResumeController struct {
	Resume  *service.ResumeService
	Reviews *repository.ResumeRepository
}

func NewResumeController(resume *service.ResumeService, reviews *repository.ResumeRepository) *ResumeController {
	return &ResumeController{Resume: resume, Reviews: reviews}
}

// @Summary 获取最新简历评审
// @Tags 简历
// @Produce json
// @Success 200 {object} model.ResumeReview
// @Router /api/resume [get]
func (c *ResumeController) Latest(ctx *gin.Context) {
	review, err := c.Reviews.Latest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// @Summary 上传简历并评审
// @Description 接收PDF或纯文本文件，提取文本后交给模型评审打分
// @Tags 简历
// @Accept mpfd
// @Produce json
// @Param file formData file true "简历文件"
// @Success 200 {object} model.ResumeReview
// @Failure 400 {object} util.Response
// @Router /api/resume/upload [post]
func (c *ResumeController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	review, err := c.Resume.ReviewUpload(ctx.Request.Context(), fileHeader.Filename, content, contentType)
	if err != nil {
		if errors.Is(err, util.ErrEmptyResume) {
			util.BadRequest(ctx, "Could not extract text from file")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, review)
}
