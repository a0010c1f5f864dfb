package controller

import (
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/service"
	"career_agent_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Tests    *repository.SkillTestRepository
	Learning *service.LearningService
}

func NewTestController(tests *repository.SkillTestRepository, learning *service.LearningService) *TestController {
	return &TestController{Tests: tests, Learning: learning}
}

// TestSummary 测验列表项，不含题目内容
type TestSummary struct {
	ID            string `json:"id"`
	SkillName     string `json:"skill_name"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     string `json:"created_at"`
}

// @Summary 列出可用的技能测验
// @Tags 测验
// @Produce json
// @Success 200 {array} TestSummary
// @Router /api/tests [get]
func (c *TestController) List(ctx *gin.Context) {
	tests, err := c.Tests.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	summaries := make([]TestSummary, 0, len(tests))
	for _, t := range tests {
		summaries = append(summaries, TestSummary{
			ID:            t.ID,
			SkillName:     t.SkillName,
			Difficulty:    t.Difficulty,
			QuestionCount: len(t.Questions),
			CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05"),
		})
	}
	ctx.JSON(http.StatusOK, summaries)
}

// @Summary 获取全部测验结果
// @Tags 测验
// @Produce json
// @Param test_id query string false "按测验ID过滤"
// @Success 200 {array} model.TestResult
// @Router /api/tests/results [get]
func (c *TestController) Results(ctx *gin.Context) {
	results, err := c.Tests.Results(ctx.Query("test_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// @Summary 获取指定测验
// @Tags 测验
// @Produce json
// @Param test_id path string true "测验ID"
// @Success 200 {object} model.SkillTest
// @Failure 404 {object} util.Response
// @Router /api/tests/{test_id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	test, err := c.Tests.Get(ctx.Param("test_id"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.Error(ctx, http.StatusNotFound, "Test not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// @Summary 提交测验答案
// @Description 按题号精确比对答案，返回得分、百分比和逐题反馈
// @Tags 测验
// @Accept json
// @Produce json
// @Param test_id path string true "测验ID"
// @Param time_taken query int false "答题用时（秒）"
// @Param answers body map[string]string true "题号到答案的映射"
// @Success 200 {object} service.TestEvaluation
// @Failure 404 {object} util.Response
// @Router /api/tests/{test_id}/submit [post]
func (c *TestController) Submit(ctx *gin.Context) {
	var answers map[string]string
	if err := ctx.ShouldBindJSON(&answers); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	timeTaken := 0
	if raw := ctx.Query("time_taken"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			timeTaken = v
		}
	}

	result, err := c.Learning.EvaluateTest(ctx.Param("test_id"), answers, timeTaken)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.Error(ctx, http.StatusNotFound, "Test not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
