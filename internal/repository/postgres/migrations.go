package postgres

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationNames возвращает *.up.sql миграции в порядке применения
func migrationNames() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// RunMigrations применяет схему курсов, валют и скидок.
// Миграции идемпотентны и выполняются при каждом запуске.
func RunMigrations(ctx context.Context, db DBTX, logger *zap.Logger) error {
	names, err := migrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		content, err := migrationsFS.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		logger.Info("running migration", zap.String("name", name))
		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", name, err)
		}
	}

	logger.Info("migrations completed", zap.Int("count", len(names)))
	return nil
}
