package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
	qb "github.com/riskibarqy/team-draw/internal/platform/querybuilder"
)

const schema = `
	CREATE TABLE IF NOT EXISTS roster_players (
		name_key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		skill REAL NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	);
`

type rosterRow struct {
	Name     string          `db:"name"`
	Position string          `db:"position"`
	Skill    sql.NullFloat64 `db:"skill"`
}

// RosterRepository keeps the roster in a local SQLite file, for organizers
// running the tool without a database server.
type RosterRepository struct {
	db *sqlx.DB
}

// New opens dsn and creates the schema.
func New(dsn string) (*RosterRepository, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &RosterRepository{db: db}, nil
}

func (r *RosterRepository) Close() error {
	return r.db.Close()
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Player, error) {
	query, args, err := qb.Select("name", "position", "skill").
		From("roster_players").
		OrderBy("sort_order", "name_key").
		Dialect(qb.SQLite).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			Name:     row.Name,
			Position: row.Position,
			Skill:    row.Skill.Float64,
			Rated:    row.Skill.Valid,
		})
	}
	return out, nil
}

// Upsert writes players keyed by normalized name in one transaction.
func (r *RosterRepository) Upsert(ctx context.Context, players []roster.Player) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	written := 0
	for i, p := range players {
		name := strings.TrimSpace(p.Name)
		key := roster.NameKey(name)
		if key == "" {
			continue
		}

		var skill sql.NullFloat64
		if p.Rated {
			skill = sql.NullFloat64{Float64: p.Skill, Valid: true}
		}

		query, args, err := qb.InsertInto("roster_players").
			Columns("name_key", "name", "position", "skill", "sort_order").
			Values(key, name, strings.TrimSpace(p.Position), skill, i).
			Suffix(`ON CONFLICT (name_key) DO UPDATE SET
				name = excluded.name,
				position = excluded.position,
				skill = excluded.skill,
				sort_order = excluded.sort_order`).
			Dialect(qb.SQLite).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build roster upsert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert player %s: %w", name, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return written, nil
}

// Delete removes the named players.
func (r *RosterRepository) Delete(ctx context.Context, names []string) (int64, error) {
	keys := make([]any, 0, len(names))
	for _, name := range names {
		if key := roster.NameKey(name); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}

	query, args, err := qb.DeleteFrom("roster_players").
		Where(qb.In("name_key", keys)).
		Dialect(qb.SQLite).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete roster query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete roster players: %w", err)
	}
	return res.RowsAffected()
}
