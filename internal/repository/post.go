// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"readable/internal/models"
	"readable/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing.
type PostFilter struct {
	// Category limits the listing to one category path when non-empty.
	Category       string
	IncludeDeleted bool
}

// PostFields holds the editable post columns. Nil fields are left unchanged.
type PostFields struct {
	Title *string
	Body  *string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, includeDeleted bool) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	UpdateFields(ctx context.Context, id string, fields PostFields) (*models.Post, error)
	AdjustVote(ctx context.Context, id string, delta int) (*models.Post, error)
	// SoftDelete marks the post deleted and orphans its comments in one
	// transaction. It returns the post and the number of comments orphaned.
	SoftDelete(ctx context.Context, id string) (*models.Post, int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, metrics: observability.NewDatabaseMetrics("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("create")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("path = ?", post.CategoryPath).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.NewInvalidCategoryError(post.CategoryPath)
		}

		if err := tx.Create(post).Error; err != nil {
			switch {
			case isDuplicateKey(err):
				return models.NewDuplicateKeyError("Post", post.ID)
			case isForeignKeyViolation(err):
				return models.NewInvalidCategoryError(post.CategoryPath)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return passThrough(err, "create post")
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.Post, error) {
	defer r.metrics.TrackQuery("get")()

	var post models.Post
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("deleted = ?", false)
	}
	if err := q.Take(&post).Error; err != nil {
		return nil, notFoundOr(err, "Post", id, "get")
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list")()

	posts := make([]*models.Post, 0)
	q := r.db.WithContext(ctx)
	if filter.Category != "" {
		q = q.Where("category_path = ?", filter.Category)
	}
	if !filter.IncludeDeleted {
		q = q.Where("deleted = ?", false)
	}
	err := q.Order(byTimestamp).Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateFields(ctx context.Context, id string, fields PostFields) (*models.Post, error) {
	defer r.metrics.TrackQuery("update")()

	updates := map[string]interface{}{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Body != nil {
		updates["body"] = *fields.Body
	}
	if len(updates) == 0 {
		return r.GetByID(ctx, id, false)
	}

	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND deleted = ?", id, false).
			UpdateColumns(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return tx.Where("id = ?", id).Take(&post).Error
	})
	if err != nil {
		return nil, passThrough(err, "update post")
	}
	return &post, nil
}

func (r *postRepository) AdjustVote(ctx context.Context, id string, delta int) (*models.Post, error) {
	defer r.metrics.TrackQuery("vote")()

	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND deleted = ?", id, false).
			UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return tx.Where("id = ?", id).Take(&post).Error
	})
	if err != nil {
		return nil, passThrough(err, "vote post")
	}
	return &post, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) (*models.Post, int64, error) {
	defer r.metrics.TrackQuery("delete")()

	var (
		post     models.Post
		orphaned int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND deleted = ?", id, false).
			UpdateColumn("deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}

		res = tx.Model(&models.Comment{}).
			Where("parent_id = ? AND parent_deleted = ?", id, false).
			UpdateColumn("parent_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		orphaned = res.RowsAffected

		return tx.Where("id = ?", id).Take(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Post", id)
		}
		return nil, 0, passThrough(err, "delete post")
	}
	return &post, orphaned, nil
}
