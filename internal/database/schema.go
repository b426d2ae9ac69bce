package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"readable/internal/config"
	"readable/internal/middleware"
	"readable/internal/models"

	"gorm.io/gorm"
)

// Schema modes accepted by DB_SCHEMA_MODE. SQL is the default.
const (
	SchemaModeSQL  = "sql"
	SchemaModeAuto = "auto"
)

// boardTables lists the tables the API cannot serve without.
var boardTables = []interface{}{&models.Category{}, &models.Post{}, &models.Comment{}}

// SchemaStatus is the board schema as seen by `migrate status`.
type SchemaStatus struct {
	Mode              string
	Environment       string
	AppliedVersions   []int
	PendingMigrations []Migration
	MissingTables     []string
	Categories        int64
}

func schemaMode(cfg *config.Config) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	switch mode {
	case "", SchemaModeSQL:
		return SchemaModeSQL, nil
	case SchemaModeAuto:
		if cfg.IsProduction() && !cfg.DBAutoMigrateAllowDestructive {
			return "", fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		return SchemaModeAuto, nil
	default:
		return "", fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
}

func missingBoardTables(db *gorm.DB) []string {
	var missing []string
	for _, m := range boardTables {
		if !db.Migrator().HasTable(m) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(m); err == nil {
				missing = append(missing, stmt.Schema.Table)
			}
		}
	}
	return missing
}

// ApplySchema creates or upgrades the board tables and checks they all exist.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	mode, err := schemaMode(cfg)
	if err != nil {
		return err
	}

	switch mode {
	case SchemaModeSQL:
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	case SchemaModeAuto:
		middleware.Logger.Info("Running GORM AutoMigrate", slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	if missing := missingBoardTables(db.WithContext(ctx)); len(missing) > 0 {
		return fmt.Errorf("board tables missing after %s schema apply: %s", mode, strings.Join(missing, ", "))
	}
	return nil
}

// GetSchemaStatus reports applied and pending migrations, missing board
// tables and how many categories are seeded.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	mode, err := schemaMode(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:          mode,
		Environment:   cfg.Env,
		MissingTables: missingBoardTables(db.WithContext(ctx)),
	}

	if mode == SchemaModeSQL {
		applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
		if err != nil {
			return nil, err
		}
		status.AppliedVersions = applied

		appliedSet := make(map[int]bool, len(applied))
		for _, version := range applied {
			appliedSet[version] = true
		}
		for _, m := range GetMigrations() {
			if !appliedSet[m.Version] {
				status.PendingMigrations = append(status.PendingMigrations, m)
			}
		}
	}

	if db.Migrator().HasTable(&models.Category{}) {
		if err := db.WithContext(ctx).Model(&models.Category{}).Count(&status.Categories).Error; err != nil {
			return nil, fmt.Errorf("count categories: %w", err)
		}
	}
	return status, nil
}
