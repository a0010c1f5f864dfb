package controller

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/util"
	"career_agent_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JobController struct {
	Jobs     *repository.JobRepository
	Activity *repository.ActivityRepository
}

func NewJobController(jobs *repository.JobRepository, activity *repository.ActivityRepository) *JobController {
	return &JobController{Jobs: jobs, Activity: activity}
}

// UpdateStatusRequest 投递状态更新请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ApplyRequest 投递请求，link可选
type ApplyRequest struct {
	Link  string `json:"link"`
	Notes string `json:"notes"`
}

// @Summary 列出所有职位
// @Tags 职位
// @Produce json
// @Success 200 {array} model.Job
// @Router /api/jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	jobs, err := c.Jobs.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, jobs)
}

// @Summary 标记职位为已投递
// @Tags 职位
// @Accept json
// @Produce json
// @Param job_id path string true "职位ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{job_id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	var req ApplyRequest
	ctx.ShouldBindJSON(&req) // body可选

	job, err := c.Jobs.MarkApplied(ctx.Param("job_id"), req.Link, req.Notes)
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.Error(ctx, http.StatusNotFound, "Job not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if err := c.Activity.Log(model.ActivityJobApply, map[string]interface{}{
		"job_id":    job.ID,
		"job_title": job.Title,
	}); err != nil {
		logger.Log.Warn("failed to log apply activity", zap.Error(err))
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "applied", "job": job})
}

// @Summary 更新投递状态
// @Description 更新已投递职位的状态，未投递过的职位返回404
// @Tags 职位
// @Accept json
// @Produce json
// @Param job_id path string true "职位ID"
// @Param request body UpdateStatusRequest true "新状态"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{job_id}/status [put]
func (c *JobController) UpdateStatus(ctx *gin.Context) {
	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job, err := c.Jobs.UpdateApplicationStatus(ctx.Param("job_id"), req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) || errors.Is(err, util.ErrJobNotApplied) {
			util.Error(ctx, http.StatusNotFound, "Job not found or not applied")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "updated", "job": job})
}
