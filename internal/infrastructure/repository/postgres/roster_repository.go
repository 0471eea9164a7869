package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
	qb "github.com/riskibarqy/team-draw/internal/platform/querybuilder"
)

const rosterTable = "roster_players"

var rosterSelectColumns = []string{
	"id",
	"name_key",
	"name",
	"position",
	"skill",
	"sort_order",
	"created_at",
	"updated_at",
	"deleted_at",
}

const rosterUpsertSuffix = `ON CONFLICT (name_key) DO UPDATE SET
	name = EXCLUDED.name,
	position = EXCLUDED.position,
	skill = EXCLUDED.skill,
	sort_order = EXCLUDED.sort_order,
	updated_at = NOW(),
	deleted_at = NULL`

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Player, error) {
	query, args, err := qb.Select(rosterSelectColumns...).From(rosterTable).
		Where(qb.IsNull("deleted_at")).
		OrderBy("sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, nullToPlayer(row.Name, row.Position, row.Skill))
	}

	return out, nil
}

// Upsert writes players keyed by normalized name, keeping their order as the
// roster order. Previously removed players are restored.
func (r *RosterRepository) Upsert(ctx context.Context, players []roster.Player) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin roster upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seen := make(map[string]struct{}, len(players))
	written := 0
	for start := 0; start < len(players); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(players))

		insert := qb.InsertInto(rosterTable).
			Columns("name_key", "name", "position", "skill", "sort_order").
			Suffix(rosterUpsertSuffix)
		rows := 0
		for i, p := range players[start:end] {
			name := strings.TrimSpace(p.Name)
			key := roster.NameKey(name)
			if key == "" {
				continue
			}
			// a statement may not touch the same conflict key twice
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			insert.Values(key, name, strings.TrimSpace(p.Position), skillToNull(p), start+i)
			rows++
		}
		if rows == 0 {
			continue
		}

		query, args, err := insert.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build roster upsert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert roster players: %w", err)
		}
		written += rows
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit roster upsert tx: %w", err)
	}

	return written, nil
}

// Deactivate soft-deletes the named players.
func (r *RosterRepository) Deactivate(ctx context.Context, names []string) (int64, error) {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if key := roster.NameKey(name); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}

	query, args, err := qb.Update(rosterTable).
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(qb.In("name_key", stringSliceToAny(keys)), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build deactivate roster query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deactivate roster players: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deactivated rows: %w", err)
	}

	return affected, nil
}
