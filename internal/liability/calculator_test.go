package liability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veridex/internal/model"
)

func TestContradictionSubscore_Buckets(t *testing.T) {
	assert.Equal(t, "critical", severityBucket(10))
	assert.Equal(t, "critical", severityBucket(9))
	assert.Equal(t, "high", severityBucket(7))
	assert.Equal(t, "medium", severityBucket(4))
	assert.Equal(t, "low", severityBucket(1))
}

func TestEvidenceSubscore_Tiers(t *testing.T) {
	assert.Equal(t, 80.0, evidenceSubscore(1, 10))
	assert.Equal(t, 50.0, evidenceSubscore(3, 10))
	assert.Equal(t, 25.0, evidenceSubscore(7, 10))
	assert.Equal(t, 10.0, evidenceSubscore(9, 10))
}

func TestCalculate_OverallClampedAndLeveled(t *testing.T) {
	breakdown := model.LiabilityBreakdown{
		CriticalContradictions: 2,
		StoryChanges:            3,
		DirectContradictions:    4,
		BenefitedFinancially:    true,
		ControlledInformation:   true,
		InitiatedEvents:         2,
		EvidenceProvided:        1,
		EvidenceExpected:        10,
	}
	severities := []int{10, 10, 9, 8}
	behaviors := []BehaviorEvent{{Category: "gaslighting", Bucket: "critical"}, {Category: "threatening", Bucket: "high"}}

	score := Calculate(severities, behaviors, breakdown)
	assert.LessOrEqual(t, score.Overall, 100.0)
	assert.GreaterOrEqual(t, score.Overall, 0.0)
	assert.Equal(t, model.LevelCritical, score.Level)
	assert.NotEmpty(t, score.Reasoning)
}

func TestCalculate_EmptyInputsLowScore(t *testing.T) {
	score := Calculate(nil, nil, model.LiabilityBreakdown{})
	assert.Equal(t, 0.0, score.Contradiction)
	assert.Equal(t, 0.0, score.Behavioral)
	assert.Equal(t, model.LevelMinimal, score.Level)
}

func TestLevelFor_Thresholds(t *testing.T) {
	assert.Equal(t, model.LevelCritical, levelFor(75))
	assert.Equal(t, model.LevelHigh, levelFor(55))
	assert.Equal(t, model.LevelMedium, levelFor(35))
	assert.Equal(t, model.LevelLow, levelFor(15))
	assert.Equal(t, model.LevelMinimal, levelFor(10))
}
