package scoring

import "fmt"

const (
	MinScore = 1
	MaxScore = 5

	// 基础分，overall == PointsBaseline 时恰好拿满基础分
	BasePoints     = 10.0
	PointsBaseline = 3.0

	// 完成10次练习视为该技能掌握
	MasteryPracticeCount = 10
)

// DimensionScores 练习五维评分（每项 1-5 的整数）
type DimensionScores struct {
	Clarity       int `json:"clarityScore"`
	Empathy       int `json:"empathyScore"`
	Assertiveness int `json:"assertivenessScore"`
	Listening     int `json:"listeningScore"`
	Confidence    int `json:"confidenceScore"`
}

func (s DimensionScores) Validate() error {
	for _, v := range []int{s.Clarity, s.Empathy, s.Assertiveness, s.Listening, s.Confidence} {
		if v < MinScore || v > MaxScore {
			return fmt.Errorf("dimension score %d out of range [%d,%d]", v, MinScore, MaxScore)
		}
	}
	return nil
}

func (s DimensionScores) Overall() float64 {
	return OverallScore(s.Clarity, s.Empathy, s.Assertiveness, s.Listening, s.Confidence)
}

// OverallScore 五维评分的算术平均
func OverallScore(clarity, empathy, assertiveness, listening, confidence int) float64 {
	return float64(clarity+empathy+assertiveness+listening+confidence) / 5.0
}

// PointsEarned 积分公式：10 * (overall / 3.0)。
// 基准取 3.0 而非 5.0 是刻意的产品策略：中等水平即可拿满基础分，
// 高分获得超额奖励。
func PointsEarned(overall float64) float64 {
	return BasePoints * overall / PointsBaseline
}

// ProgressPercentage 技能完成度，上限 100
func ProgressPercentage(completedPractices int) float64 {
	pct := float64(completedPractices) / float64(MasteryPracticeCount) * 100.0
	if pct > 100.0 {
		return 100.0
	}
	return pct
}
