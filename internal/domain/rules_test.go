package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingRules_EnabledBlocks(t *testing.T) {
	rules := DefaultRules()
	rules.Blocks = []TimeBlock{
		{ID: "a", Day: BlockDayAll, Start: MustTimeOfDay("09:00"), End: MustTimeOfDay("12:00"), Enabled: true},
		{ID: "b", Day: BlockDayAll, Start: MustTimeOfDay("13:00"), End: MustTimeOfDay("17:00"), Enabled: false},
		{ID: "c", Day: BlockDayAll, Start: MustTimeOfDay("15:00"), End: MustTimeOfDay("14:00"), Enabled: true},
	}

	enabled := rules.EnabledBlocks()
	assert.Len(t, enabled, 1)
	assert.Equal(t, "a", enabled[0].ID)
}

func TestSchedulingRules_ResourceIDs(t *testing.T) {
	rules := DefaultRules()
	rules.Blocks = []TimeBlock{
		{ID: "a", Enabled: true, ResourceID: "proj-x"},
		{ID: "b", Enabled: true, ResourceID: ""},
		{ID: "c", Enabled: true, ResourceID: "proj-y"},
		{ID: "d", Enabled: true, ResourceID: "proj-x"},
		{ID: "e", Enabled: false, ResourceID: "proj-z"},
	}

	assert.Equal(t, []string{"proj-x", "proj-y"}, rules.ResourceIDs())
}

func TestTask_Estimate(t *testing.T) {
	assert.Equal(t, 45, Task{EstimatedMin: 45}.Estimate())
	assert.Equal(t, DefaultEstimateMin, Task{}.Estimate())
	assert.Equal(t, DefaultEstimateMin, Task{EstimatedMin: -5}.Estimate())
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, "urgent", CategoryFor(PriorityHigh))
	assert.Equal(t, "focus", CategoryFor(PriorityMedium))
	assert.Equal(t, "routine", CategoryFor(PriorityLow))
	assert.Equal(t, "routine", CategoryFor(""))
}
