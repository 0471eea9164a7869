package postgres

import (
	"database/sql"
	"time"
)

type rosterPlayerTableModel struct {
	ID        int64           `db:"id"`
	NameKey   string          `db:"name_key"`
	Name      string          `db:"name"`
	Position  string          `db:"position"`
	Skill     sql.NullFloat64 `db:"skill"`
	SortOrder int             `db:"sort_order"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
	DeletedAt *time.Time      `db:"deleted_at"`
}
