package controller

import (
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LearningController struct {
	Paths *repository.LearningPathRepository
}

func NewLearningController(paths *repository.LearningPathRepository) *LearningController {
	return &LearningController{Paths: paths}
}

// @Summary 获取最新学习路径
// @Tags 学习
// @Produce json
// @Success 200 {object} model.LearningPath
// @Router /api/learning [get]
func (c *LearningController) Latest(ctx *gin.Context) {
	path, err := c.Paths.Latest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, path)
}

// @Summary 获取全部学习路径
// @Tags 学习
// @Produce json
// @Success 200 {array} model.LearningPath
// @Router /api/learning/all [get]
func (c *LearningController) All(ctx *gin.Context) {
	paths, err := c.Paths.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paths)
}
