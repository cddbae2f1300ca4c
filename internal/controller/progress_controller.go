package controller

import (
	"strconv"

	"soft_skill_backend/internal/service"
	"soft_skill_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary 用户进度汇总
// @Description 用户在全部技能上的进度、积分与近期待提升方向；无任何已完成练习时返回404
// @Tags 进度
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /progress/{userId} [get]
func (c *ProgressController) GetUserProgress(ctx *gin.Context) {
	userID := ctx.Param("userId")

	summary, err := c.Service.GetUserProgress(userID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 单技能进度
// @Tags 进度
// @Produce json
// @Param userId path string true "用户ID"
// @Param skillId path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /progress/{userId}/soft-skills/{skillId} [get]
func (c *ProgressController) GetSkillProgress(ctx *gin.Context) {
	userID := ctx.Param("userId")
	skillID, err := strconv.Atoi(ctx.Param("skillId"))
	if err != nil {
		util.BadRequest(ctx, "invalid skill id")
		return
	}

	detail, err := c.Service.GetSkillProgress(userID, uint(skillID))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
