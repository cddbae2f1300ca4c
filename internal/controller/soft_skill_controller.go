package controller

import (
	"strconv"

	"soft_skill_backend/internal/service"
	"soft_skill_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SoftSkillController struct {
	Service *service.CatalogService
}

func NewSoftSkillController(svc *service.CatalogService) *SoftSkillController {
	return &SoftSkillController{Service: svc}
}

// @Summary 技能列表
// @Description 获取全部可用软技能，携带 userId 时叠加该用户进度
// @Tags 技能目录
// @Produce json
// @Param userId query string false "用户ID"
// @Success 200 {object} util.Response
// @Router /soft-skills [get]
func (c *SoftSkillController) ListSkills(ctx *gin.Context) {
	userID := ctx.Query("userId")

	skills, err := c.Service.ListSkills(userID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, skills)
}

// @Summary 技能详情
// @Tags 技能目录
// @Produce json
// @Param id path int true "技能ID"
// @Param userId query string false "用户ID"
// @Success 200 {object} util.Response
// @Router /soft-skills/{id} [get]
func (c *SoftSkillController) GetSkill(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	skill, err := c.Service.GetSkill(uint(id), ctx.Query("userId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// @Summary 技能情景列表
// @Tags 技能目录
// @Produce json
// @Param id path int true "技能ID"
// @Param popularOnly query bool false "只看热门情景"
// @Success 200 {object} util.Response
// @Router /soft-skills/{id}/scenarios [get]
func (c *SoftSkillController) ListScenarios(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	popularOnly := ctx.Query("popularOnly") == "true"

	scenarios, err := c.Service.ListScenarios(uint(id), popularOnly)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, scenarios)
}
