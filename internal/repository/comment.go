package repository

import (
	"context"
	"errors"

	"readable/internal/models"
	"readable/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentFields holds the editable comment columns. Nil fields are left unchanged.
type CommentFields struct {
	Body *string
}

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string, includeHidden bool) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string, visibleOnly bool) ([]*models.Comment, error)
	ListAll(ctx context.Context, includeHidden bool) ([]*models.Comment, error)
	UpdateFields(ctx context.Context, id string, fields CommentFields) (*models.Comment, error)
	AdjustVote(ctx context.Context, id string, delta int) (*models.Comment, error)
	SoftDelete(ctx context.Context, id string) (*models.Comment, error)
}

type commentRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, metrics: observability.NewDatabaseMetrics("comments")}
}

// visible scopes a query to comments whose own and parent flags are clear.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ? AND parent_deleted = ?", false, false)
}

// Create inserts the comment and bumps the parent's comment count. The parent
// row is locked first so a concurrent post deletion cannot miss the new comment.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer r.metrics.TrackQuery("create")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", comment.ParentID).
			Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewParentNotFoundError(comment.ParentID)
		}
		if err != nil {
			return err
		}
		if parent.Deleted {
			return models.NewParentDeletedError(comment.ParentID)
		}

		if err := tx.Create(comment).Error; err != nil {
			switch {
			case isDuplicateKey(err):
				return models.NewDuplicateKeyError("Comment", comment.ID)
			case isForeignKeyViolation(err):
				return models.NewParentNotFoundError(comment.ParentID)
			}
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", parent.ID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		return passThrough(err, "create comment")
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string, includeHidden bool) (*models.Comment, error) {
	defer r.metrics.TrackQuery("get")()

	var comment models.Comment
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeHidden {
		q = q.Scopes(visible)
	}
	if err := q.Take(&comment).Error; err != nil {
		return nil, notFoundOr(err, "Comment", id, "get")
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, visibleOnly bool) ([]*models.Comment, error) {
	defer r.metrics.TrackQuery("list")()

	comments := make([]*models.Comment, 0)
	q := r.db.WithContext(ctx).Where("parent_id = ?", postID)
	if visibleOnly {
		q = q.Scopes(visible)
	}
	err := q.Order(byTimestamp).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListAll(ctx context.Context, includeHidden bool) ([]*models.Comment, error) {
	defer r.metrics.TrackQuery("list_all")()

	comments := make([]*models.Comment, 0)
	q := r.db.WithContext(ctx)
	if !includeHidden {
		q = q.Scopes(visible)
	}
	err := q.Order(byTimestamp).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateFields(ctx context.Context, id string, fields CommentFields) (*models.Comment, error) {
	defer r.metrics.TrackQuery("update")()

	if fields.Body == nil {
		return r.GetByID(ctx, id, false)
	}

	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Scopes(visible).
			Where("id = ?", id).
			UpdateColumn("body", *fields.Body)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", id)
		}
		return tx.Where("id = ?", id).Take(&comment).Error
	})
	if err != nil {
		return nil, passThrough(err, "update comment")
	}
	return &comment, nil
}

func (r *commentRepository) AdjustVote(ctx context.Context, id string, delta int) (*models.Comment, error) {
	defer r.metrics.TrackQuery("vote")()

	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Scopes(visible).
			Where("id = ?", id).
			UpdateColumn("vote_score", gorm.Expr("vote_score + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", id)
		}
		return tx.Where("id = ?", id).Take(&comment).Error
	})
	if err != nil {
		return nil, passThrough(err, "vote comment")
	}
	return &comment, nil
}

// SoftDelete marks a visible comment deleted and decrements the parent's
// comment count in the same transaction.
func (r *commentRepository) SoftDelete(ctx context.Context, id string) (*models.Comment, error) {
	defer r.metrics.TrackQuery("delete")()

	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Scopes(visible).
			Where("id = ?", id).
			UpdateColumn("deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", id)
		}

		if err := tx.Where("id = ?", id).Take(&comment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ? AND comment_count > ?", comment.ParentID, 0).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	if err != nil {
		return nil, passThrough(err, "delete comment")
	}
	return &comment, nil
}
