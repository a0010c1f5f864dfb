package controller

import (
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Activity *repository.ActivityRepository
}

func NewActivityController(activity *repository.ActivityRepository) *ActivityController {
	return &ActivityController{Activity: activity}
}

// @Summary 获取用户活动
// @Description 最近20条活动记录和7天内按类型的统计
// @Tags 活动
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/activity [get]
func (c *ActivityController) Recent(ctx *gin.Context) {
	recent, err := c.Activity.Recent(20)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	stats, err := c.Activity.CountByTypeSince(7)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"recent": recent, "stats": stats})
}
