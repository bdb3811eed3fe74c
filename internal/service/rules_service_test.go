package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesService_GetRules_CreatesWeekScopeOnFirstAccess(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := NewRulesService(repo)

	rules, err := svc.GetRules(context.Background(), domain.LiveWeekScope())
	require.NoError(t, err)

	defaults := domain.DefaultRules()
	assert.Equal(t, defaults.MaxTaskDurationMin, rules.MaxTaskDurationMin)
	assert.Equal(t, defaults.PriorityWeight, rules.PriorityWeight)
	assert.Equal(t, 1, repo.saves)

	// Second read hits the stored row, no extra save.
	_, err = svc.GetRules(context.Background(), domain.LiveWeekScope())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
}

func TestRulesService_GetRules_MissingTemplateFails(t *testing.T) {
	svc := NewRulesService(newFakeRuleRepo())

	_, err := svc.GetRules(context.Background(), domain.TemplateScope("ghost"))
	assert.Error(t, err)
}

func TestRulesService_UpdateRules_RejectsNegativeValues(t *testing.T) {
	svc := NewRulesService(newFakeRuleRepo())
	ctx := context.Background()

	bad := domain.DefaultRules()
	bad.MaxTaskDurationMin = -10
	assert.Error(t, svc.UpdateRules(ctx, domain.LiveWeekScope(), bad))

	bad = domain.DefaultRules()
	bad.RandomnessFactor = -0.1
	assert.Error(t, svc.UpdateRules(ctx, domain.LiveWeekScope(), bad))
}

func TestRulesService_UpdateRules_SavesValidRules(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := NewRulesService(repo)

	rules := domain.DefaultRules()
	rules.TimeWeight = 0.5
	require.NoError(t, svc.UpdateRules(context.Background(), domain.LiveWeekScope(), rules))

	stored, err := repo.GetRules(context.Background(), domain.LiveWeekScope())
	require.NoError(t, err)
	assert.Equal(t, 0.5, stored.TimeWeight)
}

func TestRulesService_AddBlock_RejectsInvertedInterval(t *testing.T) {
	svc := NewRulesService(newFakeRuleRepo())

	err := svc.AddBlock(context.Background(), domain.LiveWeekScope(), domain.TimeBlock{
		Day:   domain.BlockDayAll,
		Start: domain.MustTimeOfDay("14:00"),
		End:   domain.MustTimeOfDay("09:00"),
	})
	assert.Error(t, err)
}

func TestRulesService_AddBlock_CreatesScopeWhenMissing(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := NewRulesService(repo)

	block := domain.TimeBlock{
		ID:      "b1",
		Day:     domain.BlockDayWeekday,
		Start:   domain.MustTimeOfDay("09:00"),
		End:     domain.MustTimeOfDay("12:00"),
		Enabled: true,
	}
	require.NoError(t, svc.AddBlock(context.Background(), domain.LiveWeekScope(), block))

	rules, err := repo.GetRules(context.Background(), domain.LiveWeekScope())
	require.NoError(t, err)
	require.Len(t, rules.Blocks, 1)
	assert.Equal(t, "b1", rules.Blocks[0].ID)
	assert.Equal(t, 1, repo.saves)
}
