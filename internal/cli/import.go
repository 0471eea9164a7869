package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/team-draw/external/rosterfile"
	"github.com/riskibarqy/team-draw/internal/app"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/sqlite"
)

// Import copies a roster export into a database roster source.
type Import struct {
	CommonOpts

	Roster string `long:"roster"  env:"ROSTER_FILE" required:"true" description:"roster JSON export"`
	DBURL  string `long:"db-url"  env:"DB_URL"      description:"postgres connection URL"`
	SQLite string `long:"sqlite"  env:"SQLITE_DSN"  description:"sqlite database path"`
	Prune  bool   `long:"prune"   description:"remove players missing from the export"`
}

type rosterStore interface {
	roster.Repository
	Upsert(ctx context.Context, players []roster.Player) (int, error)
}

type importTarget struct {
	name   string
	store  rosterStore
	remove func(ctx context.Context, names []string) (int64, error)
	close  func() error
}

// Execute runs the command.
func (c *Import) Execute([]string) error {
	ctx := context.Background()
	logger := c.logger()

	players, err := rosterfile.NewRepository(c.Roster).List(ctx)
	if err != nil {
		return err
	}

	target, err := c.openTarget(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := target.close(); err != nil {
			logger.Warn("close roster store", "target", target.name, "error", err)
		}
	}()

	written, err := target.store.Upsert(ctx, players)
	if err != nil {
		return fmt.Errorf("upsert roster into %s: %w", target.name, err)
	}

	var removed int64
	if c.Prune {
		removed, err = prune(ctx, target, players)
		if err != nil {
			return err
		}
	}

	logger.Info("roster imported",
		"file", c.Roster,
		"target", target.name,
		"players", written,
		"removed", removed,
	)
	_, err = fmt.Fprintf(c.out(), "%d jogadores importados para %s, %d removidos\n", written, target.name, removed)
	return err
}

func (c *Import) openTarget(ctx context.Context) (importTarget, error) {
	dbURL := strings.TrimSpace(c.DBURL)
	dsn := strings.TrimSpace(c.SQLite)

	switch {
	case dbURL != "" && dsn != "":
		return importTarget{}, fmt.Errorf("choose either --db-url or --sqlite")
	case dbURL != "":
		db, err := app.OpenPostgres(ctx, dbURL)
		if err != nil {
			return importTarget{}, err
		}
		repo := postgres.NewRosterRepository(db)
		return importTarget{name: "postgres", store: repo, remove: repo.Deactivate, close: db.Close}, nil
	case dsn != "":
		repo, err := sqlite.New(dsn)
		if err != nil {
			return importTarget{}, err
		}
		return importTarget{name: "sqlite", store: repo, remove: repo.Delete, close: repo.Close}, nil
	default:
		return importTarget{}, fmt.Errorf("one of --db-url or --sqlite is required")
	}
}

func prune(ctx context.Context, target importTarget, keep []roster.Player) (int64, error) {
	current, err := target.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list %s roster: %w", target.name, err)
	}

	wanted := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		wanted[roster.NameKey(p.Name)] = struct{}{}
	}

	var stale []string
	for _, p := range current {
		if _, ok := wanted[roster.NameKey(p.Name)]; !ok {
			stale = append(stale, p.Name)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	removed, err := target.remove(ctx, stale)
	if err != nil {
		return 0, fmt.Errorf("remove stale players from %s: %w", target.name, err)
	}
	return removed, nil
}
