package util

import "errors"

var (
	// NotFound 类
	ErrSkillNotFound    = errors.New("soft skill not found or inactive")
	ErrScenarioNotFound = errors.New("scenario not found or does not belong to skill")
	ErrSessionNotFound  = errors.New("practice session not found")
	ErrProgressNotFound = errors.New("no practice progress for user")

	// InvalidState 类：会话已完成，不允许二次提交
	ErrSessionCompleted = errors.New("practice session already completed")

	// ValidationError 类
	ErrInvalidDuration = errors.New("duration seconds must not be negative")
	ErrEmptyResponse   = errors.New("user response must not be empty")

	// 反馈生成器故障分类：不可达/超时 与 返回数据非法 区分开，
	// 两种情况都不会伪造评分
	ErrFeedbackUnavailable = errors.New("feedback generator unavailable")
	ErrFeedbackInvalid     = errors.New("feedback generator returned invalid data")
)
