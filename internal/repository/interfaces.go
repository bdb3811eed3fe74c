package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// RuleSetRepo is the scheduler's rules source: scheduling tunables,
// working days, and time blocks, keyed by scope (live week or a named
// recurring template).
type RuleSetRepo interface {
	// GetRules loads the full rule set for a scope, time blocks
	// included. Returns ErrNotFound when the scope has never been saved.
	GetRules(ctx context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error)

	// SaveRules upserts the tunables and working days for a scope.
	// Time blocks are managed through the block operations below.
	SaveRules(ctx context.Context, scope domain.BlockScope, rules domain.SchedulingRules) error

	// ListScopes returns every saved scope, live week first.
	ListScopes(ctx context.Context) ([]domain.BlockScope, error)

	AddBlock(ctx context.Context, scope domain.BlockScope, b domain.TimeBlock) error
	UpdateBlock(ctx context.Context, b domain.TimeBlock) error
	SetBlockEnabled(ctx context.Context, blockID string, enabled bool) error
	DeleteBlock(ctx context.Context, blockID string) error
}
