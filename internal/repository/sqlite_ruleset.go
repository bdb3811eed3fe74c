package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ruleSetColumns is the canonical SELECT column list for rule_sets.
const ruleSetColumns = `id, scope_kind, name, max_task_min, max_long_task_min,
		long_task_threshold_min, priority_weight, time_weight, randomness_factor,
		working_days, created_at, updated_at`

// blockColumns is the canonical SELECT column list for time_blocks.
const blockColumns = `id, rule_set_id, day, start_time, end_time, enabled,
		resource_id, created_at, updated_at`

// SQLiteRuleSetRepo implements RuleSetRepo using a SQLite database.
// Time block rows are stored with string-typed day and HH:MM times and
// parsed once on scan; rows that fail to parse are skipped with a
// logged warning rather than failing the load.
type SQLiteRuleSetRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteRuleSetRepo creates a new SQLiteRuleSetRepo.
func NewSQLiteRuleSetRepo(db *sql.DB, logger *slog.Logger) *SQLiteRuleSetRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRuleSetRepo{db: db, logger: logger}
}

func (r *SQLiteRuleSetRepo) GetRules(ctx context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error) {
	query := `SELECT ` + ruleSetColumns + ` FROM rule_sets WHERE scope_kind = ? AND name = ?`
	row := r.db.QueryRowContext(ctx, query, string(scope.Kind), scope.Name)

	var (
		id, scopeKind, name, workingDays string
		createdAtStr, updatedAtStr       string
		rules                            domain.SchedulingRules
	)
	err := row.Scan(
		&id, &scopeKind, &name,
		&rules.MaxTaskDurationMin, &rules.MaxLongTaskDurationMin, &rules.LongTaskThresholdMin,
		&rules.PriorityWeight, &rules.TimeWeight, &rules.RandomnessFactor,
		&workingDays, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rule set %s/%s: %w", scope.Kind, scope.Name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning rule set: %w", err)
	}

	rules.WorkingDays = workingDaysFromString(workingDays)

	blocks, err := r.listBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	rules.Blocks = blocks

	return &rules, nil
}

func (r *SQLiteRuleSetRepo) SaveRules(ctx context.Context, scope domain.BlockScope, rules domain.SchedulingRules) error {
	now := nowUTC()
	query := `INSERT INTO rule_sets (id, scope_kind, name, max_task_min, max_long_task_min,
			long_task_threshold_min, priority_weight, time_weight, randomness_factor,
			working_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scope_kind, name) DO UPDATE SET
			max_task_min = excluded.max_task_min,
			max_long_task_min = excluded.max_long_task_min,
			long_task_threshold_min = excluded.long_task_threshold_min,
			priority_weight = excluded.priority_weight,
			time_weight = excluded.time_weight,
			randomness_factor = excluded.randomness_factor,
			working_days = excluded.working_days,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(),
		string(scope.Kind),
		scope.Name,
		rules.MaxTaskDurationMin,
		rules.MaxLongTaskDurationMin,
		rules.LongTaskThresholdMin,
		rules.PriorityWeight,
		rules.TimeWeight,
		rules.RandomnessFactor,
		workingDaysToString(rules.WorkingDays),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("saving rule set: %w", err)
	}
	return nil
}

func (r *SQLiteRuleSetRepo) ListScopes(ctx context.Context) ([]domain.BlockScope, error) {
	query := `SELECT scope_kind, name FROM rule_sets
		ORDER BY CASE scope_kind WHEN 'week' THEN 0 ELSE 1 END, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing scopes: %w", err)
	}
	defer rows.Close()

	var scopes []domain.BlockScope
	for rows.Next() {
		var kind, name string
		if err := rows.Scan(&kind, &name); err != nil {
			return nil, fmt.Errorf("scanning scope: %w", err)
		}
		scopes = append(scopes, domain.BlockScope{Kind: domain.ScopeKind(kind), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scopes: %w", err)
	}
	return scopes, nil
}

func (r *SQLiteRuleSetRepo) AddBlock(ctx context.Context, scope domain.BlockScope, b domain.TimeBlock) error {
	ruleSetID, err := r.scopeID(ctx, scope)
	if err != nil {
		return err
	}

	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := nowUTC()
	query := `INSERT INTO time_blocks (id, rule_set_id, day, start_time, end_time, enabled,
			resource_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		id,
		ruleSetID,
		string(b.Day),
		b.Start.String(),
		b.End.String(),
		boolToInt(b.Enabled),
		b.ResourceID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting time block: %w", err)
	}
	return nil
}

func (r *SQLiteRuleSetRepo) UpdateBlock(ctx context.Context, b domain.TimeBlock) error {
	query := `UPDATE time_blocks SET day = ?, start_time = ?, end_time = ?, enabled = ?,
			resource_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(b.Day),
		b.Start.String(),
		b.End.String(),
		boolToInt(b.Enabled),
		b.ResourceID,
		nowUTC(),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time block: %w", err)
	}
	return requireRowAffected(res, "time block")
}

func (r *SQLiteRuleSetRepo) SetBlockEnabled(ctx context.Context, blockID string, enabled bool) error {
	query := `UPDATE time_blocks SET enabled = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(enabled), nowUTC(), blockID)
	if err != nil {
		return fmt.Errorf("toggling time block: %w", err)
	}
	return requireRowAffected(res, "time block")
}

func (r *SQLiteRuleSetRepo) DeleteBlock(ctx context.Context, blockID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, blockID)
	if err != nil {
		return fmt.Errorf("deleting time block: %w", err)
	}
	return requireRowAffected(res, "time block")
}

// scopeID resolves the rule_sets primary key for a scope.
func (r *SQLiteRuleSetRepo) scopeID(ctx context.Context, scope domain.BlockScope) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM rule_sets WHERE scope_kind = ? AND name = ?`,
		string(scope.Kind), scope.Name).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("rule set %s/%s: %w", scope.Kind, scope.Name, ErrNotFound)
		}
		return "", fmt.Errorf("resolving rule set: %w", err)
	}
	return id, nil
}

// listBlocks loads and parses the blocks for a rule set. Rows with
// unparseable day or time strings are skipped with a warning.
func (r *SQLiteRuleSetRepo) listBlocks(ctx context.Context, ruleSetID string) ([]domain.TimeBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM time_blocks WHERE rule_set_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ruleSetID)
	if err != nil {
		return nil, fmt.Errorf("listing time blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.TimeBlock
	for rows.Next() {
		var (
			id, rsID, dayStr, startStr, endStr, resourceID string
			enabledInt                                     int
			createdAtStr, updatedAtStr                     string
		)
		if err := rows.Scan(&id, &rsID, &dayStr, &startStr, &endStr, &enabledInt,
			&resourceID, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning time block: %w", err)
		}

		day, ok := domain.ParseBlockDay(dayStr)
		if !ok {
			r.logger.Warn("skipping time block with unknown day", "block_id", id, "day", dayStr)
			continue
		}
		start, err := domain.ParseTimeOfDay(startStr)
		if err != nil {
			r.logger.Warn("skipping time block with bad start time", "block_id", id, "start", startStr)
			continue
		}
		end, err := domain.ParseTimeOfDay(endStr)
		if err != nil {
			r.logger.Warn("skipping time block with bad end time", "block_id", id, "end", endStr)
			continue
		}

		b := domain.TimeBlock{
			ID:         id,
			Day:        day,
			Start:      start,
			End:        end,
			Enabled:    intToBool(enabledInt),
			ResourceID: resourceID,
		}
		if t, err := time.Parse(time.RFC3339, createdAtStr); err == nil {
			b.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339, updatedAtStr); err == nil {
			b.UpdatedAt = t
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time blocks: %w", err)
	}
	return blocks, nil
}

// requireRowAffected maps a zero-row update/delete to ErrNotFound.
func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
