package controller

import (
	"soft_skill_backend/internal/service"
	"soft_skill_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Service *service.PracticeService
}

func NewPracticeController(svc *service.PracticeService) *PracticeController {
	return &PracticeController{Service: svc}
}

// @Summary 开始练习
// @Description 校验技能与情景后创建 pending 会话并返回会话令牌
// @Tags 练习会话
// @Accept json
// @Produce json
// @Param body body service.PracticeStartRequest true "开始练习请求"
// @Success 201 {object} util.Response
// @Router /practice/start [post]
func (c *PracticeController) StartPractice(ctx *gin.Context) {
	var req service.PracticeStartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.StartPractice(ctx.Request.Context(), req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 提交练习
// @Description 提交回答，生成评分与反馈，会话迁移为 completed；生成器失败时会话保持 pending 可重试
// @Tags 练习会话
// @Accept json
// @Produce json
// @Param body body service.PracticeSubmitRequest true "提交练习请求"
// @Success 200 {object} util.Response
// @Router /practice/submit [post]
func (c *PracticeController) SubmitPractice(ctx *gin.Context) {
	var req service.PracticeSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitPractice(ctx.Request.Context(), req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 会话结果
// @Description 查询会话当前结果，pending 只返回状态，completed 附带评分与反馈
// @Tags 练习会话
// @Produce json
// @Param sessionId path string true "会话令牌"
// @Success 200 {object} util.Response
// @Router /practice/{sessionId} [get]
func (c *PracticeController) GetPractice(ctx *gin.Context) {
	result, err := c.Service.GetPracticeResult(ctx.Param("sessionId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 会话事件留痕
// @Tags 练习会话
// @Produce json
// @Param sessionId path string true "会话令牌"
// @Success 200 {object} util.Response
// @Router /practice/{sessionId}/events [get]
func (c *PracticeController) GetPracticeEvents(ctx *gin.Context) {
	logs, err := c.Service.GetPracticeEvents(ctx.Param("sessionId"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, logs)
}
