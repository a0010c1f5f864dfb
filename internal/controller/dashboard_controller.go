package controller

import (
	"career_agent_backend/internal/service"
	"career_agent_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *service.DashboardService
}

func NewDashboardController(dashboard *service.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// @Summary 获取仪表盘数据
// @Description 职位总数、投递数、学习路径数、简历评分、近期动态和7天投递直方图
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Router /api/dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.Dashboard.Stats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
