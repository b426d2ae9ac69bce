package repository

import (
	"context"

	"readable/internal/models"
	"readable/internal/observability"

	"gorm.io/gorm"
)

// CategoryRepository defines read operations for categories.
type CategoryRepository interface {
	GetByPath(ctx context.Context, path string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

type categoryRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db, metrics: observability.NewDatabaseMetrics("categories")}
}

func (r *categoryRepository) GetByPath(ctx context.Context, path string) (*models.Category, error) {
	defer r.metrics.TrackQuery("get")()

	var category models.Category
	if err := r.db.WithContext(ctx).Where("path = ?", path).Take(&category).Error; err != nil {
		return nil, notFoundOr(err, "Category", path, "get")
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	defer r.metrics.TrackQuery("list")()

	categories := make([]*models.Category, 0)
	err := r.db.WithContext(ctx).Order("path ASC").Find(&categories).Error
	return categories, err
}
