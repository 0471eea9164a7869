package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"

	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

var options struct {
	DBURL string `long:"db-url" env:"DB_URL"         required:"true" description:"postgres connection URL"`
	Dir   string `long:"dir"    env:"MIGRATIONS_DIR" description:"migrations directory"`

	Up      upCmd      `command:"up"      description:"apply all pending migrations"`
	Down    downCmd    `command:"down"    description:"roll back migrations"`
	Version versionCmd `command:"version" description:"print the current version"`
	Force   forceCmd   `command:"force"   description:"set the version without running migrations"`
	Goto    gotoCmd    `command:"goto"    alias:"migrate" description:"migrate up or down to a version"`
}

var logger = logging.NewConsole(os.Stderr, logging.LevelInfo)

type upCmd struct{}

func (upCmd) Execute([]string) error {
	return withMigrator(func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	})
}

type downCmd struct {
	Args struct {
		Steps int `positional-arg-name:"steps" description:"number of migrations to roll back (default 1)"`
	} `positional-args:"yes"`
}

func (c downCmd) Execute([]string) error {
	steps := c.Args.Steps
	if steps == 0 {
		steps = 1
	}
	if steps < 0 {
		return fmt.Errorf("down steps must be > 0")
	}

	return withMigrator(func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
		return nil
	})
}

type versionCmd struct{}

func (versionCmd) Execute([]string) error {
	return withMigrator(func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
		return nil
	})
}

type forceCmd struct {
	Args struct {
		Version int `positional-arg-name:"version" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c forceCmd) Execute([]string) error {
	if c.Args.Version < -1 {
		return fmt.Errorf("version must be >= -1")
	}

	return withMigrator(func(m *migrate.Migrate) error {
		if err := m.Force(c.Args.Version); err != nil {
			return fmt.Errorf("force version %d: %w", c.Args.Version, err)
		}
		logger.Info("version forced", "version", c.Args.Version)
		return nil
	})
}

type gotoCmd struct {
	Args struct {
		Version uint `positional-arg-name:"version" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c gotoCmd) Execute([]string) error {
	return withMigrator(func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Migrate(c.Args.Version)); err != nil {
			return err
		}
		logger.Info("migrated", "version", c.Args.Version)
		return nil
	})
}

func main() {
	p := flags.NewParser(&options, flags.Default)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if !errors.As(err, &flagsErr) {
			logger.Error("migration failed", "error", err)
		}
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func withMigrator(fn func(m *migrate.Migrate) error) error {
	dir, err := resolveMigrationsDir(options.Dir)
	if err != nil {
		return err
	}

	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, strings.TrimSpace(options.DBURL))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db", "error", dbErr)
		}
	}()

	logger.Debug("migration source", "url", sourceURL)
	return fn(m)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func resolveMigrationsDir(explicit string) (string, error) {
	candidates := []string{
		strings.TrimSpace(explicit),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked --dir/MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}
