// Package seed loads the initial board content and generates demo data for
// development and testing.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"readable/internal/middleware"
	"readable/internal/models"
	"readable/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed fixtures/board.yml
var boardFixture []byte

// Fixture is a snapshot of board content.
type Fixture struct {
	Categories []models.Category `yaml:"categories"`
	Posts      []models.Post     `yaml:"posts"`
	Comments   []models.Comment  `yaml:"comments"`
}

// DefaultFixture returns the embedded initial board content.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(boardFixture)
}

// ParseFixture decodes and checks a YAML fixture. Comment counts are derived
// from the fixture's visible comments.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(f.Posts))
	for _, c := range f.Comments {
		if c.Visible() {
			counts[c.ParentID]++
		}
	}
	for i := range f.Posts {
		if f.Posts[i].Deleted {
			continue
		}
		f.Posts[i].CommentCount = counts[f.Posts[i].ID]
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	categories := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		if err := validation.ValidateCategoryPath(c.Path); err != nil {
			return fmt.Errorf("category %q: %w", c.Path, err)
		}
		if c.Name == "" {
			return fmt.Errorf("category %q: name is required", c.Path)
		}
		categories[c.Path] = struct{}{}
	}

	posts := make(map[string]models.Post, len(f.Posts))
	for _, p := range f.Posts {
		if err := validation.ID("id", p.ID); err != nil {
			return fmt.Errorf("post: %w", err)
		}
		if _, ok := categories[p.CategoryPath]; !ok {
			return fmt.Errorf("post %s: unknown category %q", p.ID, p.CategoryPath)
		}
		if _, dup := posts[p.ID]; dup {
			return fmt.Errorf("post %s: duplicate id", p.ID)
		}
		posts[p.ID] = p
	}

	seen := make(map[string]struct{}, len(f.Comments))
	for _, c := range f.Comments {
		if err := validation.ID("id", c.ID); err != nil {
			return fmt.Errorf("comment: %w", err)
		}
		parent, ok := posts[c.ParentID]
		if !ok {
			return fmt.Errorf("comment %s: unknown parent %q", c.ID, c.ParentID)
		}
		if parent.Deleted && !c.ParentDeleted {
			return fmt.Errorf("comment %s: parent %s is deleted", c.ID, c.ParentID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("comment %s: duplicate id", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Categories upserts the given categories by path.
func Categories(ctx context.Context, db *gorm.DB, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&categories).Error
}

// Apply writes the fixture in one transaction. Posts and comments that
// already exist are left untouched, so applying twice is a no-op.
func Apply(ctx context.Context, db *gorm.DB, f *Fixture) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Categories(ctx, tx, f.Categories); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if len(f.Posts) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&f.Posts).Error; err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}
		}
		if len(f.Comments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&f.Comments).Error; err != nil {
				return fmt.Errorf("seed comments: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "fixture applied",
		slog.Int("categories", len(f.Categories)),
		slog.Int("posts", len(f.Posts)),
		slog.Int("comments", len(f.Comments)),
	)
	return nil
}

// Fixtures applies the embedded initial board content.
func Fixtures(ctx context.Context, db *gorm.DB) error {
	f, err := DefaultFixture()
	if err != nil {
		return err
	}
	return Apply(ctx, db, f)
}

// Clean deletes every comment and post. Categories are kept.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("clear comments: %w", err)
		}
		if err := all.Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		return nil
	})
}
