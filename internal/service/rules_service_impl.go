package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

type rulesService struct {
	repo repository.RuleSetRepo
}

// NewRulesService creates the rules/blocks management service.
func NewRulesService(repo repository.RuleSetRepo) RulesService {
	return &rulesService{repo: repo}
}

func (s *rulesService) GetRules(ctx context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error) {
	rules, err := s.repo.GetRules(ctx, scope)
	if err == nil {
		return rules, nil
	}
	if errors.Is(err, repository.ErrNotFound) && scope.Kind == domain.ScopeWeek {
		defaults := domain.DefaultRules()
		if err := s.repo.SaveRules(ctx, scope, defaults); err != nil {
			return nil, fmt.Errorf("initializing default rules: %w", err)
		}
		return &defaults, nil
	}
	return nil, err
}

func (s *rulesService) UpdateRules(ctx context.Context, scope domain.BlockScope, rules domain.SchedulingRules) error {
	if err := validateRules(rules); err != nil {
		return err
	}
	return s.repo.SaveRules(ctx, scope, rules)
}

func (s *rulesService) ListScopes(ctx context.Context) ([]domain.BlockScope, error) {
	return s.repo.ListScopes(ctx)
}

func (s *rulesService) AddBlock(ctx context.Context, scope domain.BlockScope, b domain.TimeBlock) error {
	if !b.Valid() {
		return fmt.Errorf("block start %s must be before end %s", b.Start, b.End)
	}
	// First block on a never-saved scope: create the scope with defaults.
	err := s.repo.AddBlock(ctx, scope, b)
	if errors.Is(err, repository.ErrNotFound) {
		if saveErr := s.repo.SaveRules(ctx, scope, domain.DefaultRules()); saveErr != nil {
			return fmt.Errorf("initializing rules for new scope: %w", saveErr)
		}
		return s.repo.AddBlock(ctx, scope, b)
	}
	return err
}

func (s *rulesService) RemoveBlock(ctx context.Context, blockID string) error {
	return s.repo.DeleteBlock(ctx, blockID)
}

func (s *rulesService) SetBlockEnabled(ctx context.Context, blockID string, enabled bool) error {
	return s.repo.SetBlockEnabled(ctx, blockID, enabled)
}

func validateRules(r domain.SchedulingRules) error {
	if r.MaxTaskDurationMin < 0 || r.MaxLongTaskDurationMin < 0 || r.LongTaskThresholdMin < 0 {
		return errors.New("duration caps must not be negative")
	}
	if r.RandomnessFactor < 0 {
		return errors.New("randomness factor must not be negative")
	}
	return nil
}
