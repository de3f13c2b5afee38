// Package migrations holds the schema of the authors and books tables. Each
// migration registers itself on Migrations from an init function.
package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations)
}

// BringUpToDate creates the migration tables when needed and applies every
// pending migration as one group. The group ID is 0 when nothing ran.
func BringUpToDate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := NewMigrator(db)
	err := migrator.Init(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return group, nil
}

// Rollback undoes the last applied group.
func Rollback(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	group, err := NewMigrator(db).Rollback(ctx)
	return group, errors.WithStack(err)
}
