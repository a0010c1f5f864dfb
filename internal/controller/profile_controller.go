package controller

import (
	"career_agent_backend/internal/service"
	"career_agent_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profile *service.ProfileService
}

func NewProfileController(profile *service.ProfileService) *ProfileController {
	return &ProfileController{Profile: profile}
}

// @Summary 获取用户档案
// @Tags 档案
// @Produce json
// @Success 200 {object} model.UserProfile
// @Router /api/profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	profile, err := c.Profile.Get()
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			ctx.JSON(http.StatusOK, gin.H{})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// @Summary 更新用户档案
// @Description 合并式更新：缺省的字段保持原值
// @Tags 档案
// @Accept json
// @Produce json
// @Param profile body service.ProfileUpdate true "档案字段"
// @Success 200 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Profile.Update(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "updated", "profile": profile})
}

type setPreferenceRequest struct {
	Value interface{} `json:"value" binding:"required"`
}

// @Summary 设置单个偏好项
// @Tags 档案
// @Accept json
// @Produce json
// @Param key path string true "偏好键名，如 preferred_location"
// @Param body body setPreferenceRequest true "偏好值"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/profile/preferences/{key} [put]
func (c *ProfileController) SetPreference(ctx *gin.Context) {
	key := ctx.Param("key")
	var req setPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Profile.SetPreference(key, req.Value)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "updated", "profile": profile})
}
