package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3)
)`

// Migrate applies the *.sql files under dir of migrations in lexical order.
// Applied versions are recorded in schema_migrations and skipped on later runs.
// It returns the versions applied by this call.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS, dir string) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}

	files, err := fs.Glob(migrations, path.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("fs.Glob(%s) > %w", dir, err)
	}
	slices.Sort(files)

	var result []string
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		if slices.Contains(applied, version) {
			continue
		}

		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return result, fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, statement := range splitStatements(string(content)) {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return fmt.Errorf("tx.ExecContext(%s) > %w", version, err)
				}
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("tx.ExecContext(record %s) > %w", version, err)
			}
			return nil
		}); err != nil {
			return result, err
		}

		slog.Default().Info("applied migration", "version", version)
		result = append(result, version)
	}
	return result, nil
}

// splitStatements splits a migration file on semicolons at line ends.
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSuffix(strings.TrimSpace(current.String()), ";"))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
