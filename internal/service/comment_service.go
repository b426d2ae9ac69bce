package service

import (
	"context"
	"log/slog"

	"readable/internal/middleware"
	"readable/internal/models"
	"readable/internal/observability"
	"readable/internal/repository"
	"readable/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type CommentService struct {
	commentRepo repository.CommentRepository
}

// CreateCommentInput is the body of a create-comment request.
type CreateCommentInput struct {
	ID        string `json:"id" validate:"required,max=36"`
	ParentID  string `json:"parentId" validate:"required,max=36"`
	Timestamp int64  `json:"timestamp" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Author    string `json:"author" validate:"required"`
}

// UpdateCommentInput carries the editable comment fields.
type UpdateCommentInput struct {
	Body string `json:"body" validate:"required"`
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment adds a comment to a visible post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "CreateComment",
		attribute.String("comment.id", in.ID),
		attribute.String("post.id", in.ParentID),
	)
	defer func() { observability.EndSpan(span, err) }()

	validation.TrimAll(&in.ID, &in.ParentID, &in.Body, &in.Author)
	if err := validation.Struct(in); err != nil {
		return nil, rejectWrite(ctx, "comment", "create", err)
	}

	comment = &models.Comment{
		ID:            in.ID,
		ParentID:      in.ParentID,
		Timestamp:     in.Timestamp,
		Body:          in.Body,
		Author:        in.Author,
		VoteScore:     0,
		Deleted:       false,
		ParentDeleted: false,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, rejectWrite(ctx, "comment", "create", err)
	}

	middleware.Logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.ParentID),
	)
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id, false)
	return comment, internalOr(err)
}

// ListComments returns the visible comments of a post. Unknown or deleted
// posts yield an empty list.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, true)
	return comments, internalOr(err)
}

// ListAllComments returns every comment including deleted and orphaned ones.
func (s *CommentService) ListAllComments(ctx context.Context) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListAll(ctx, true)
	return comments, internalOr(err)
}

func (s *CommentService) UpdateComment(ctx context.Context, id string, in UpdateCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "UpdateComment", attribute.String("comment.id", id))
	defer func() { observability.EndSpan(span, err) }()

	validation.TrimAll(&in.Body)
	if err := validation.Struct(in); err != nil {
		return nil, rejectWrite(ctx, "comment", "update", err)
	}

	comment, err = s.commentRepo.UpdateFields(ctx, id, repository.CommentFields{Body: &in.Body})
	if err != nil {
		return nil, rejectWrite(ctx, "comment", "update", err)
	}
	return comment, nil
}

func (s *CommentService) VoteComment(ctx context.Context, id string, in VoteInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "VoteComment",
		attribute.String("comment.id", id),
		attribute.String("vote.option", in.Option),
	)
	defer func() { observability.EndSpan(span, err) }()

	delta, err := voteDelta(in.Option)
	if err != nil {
		return nil, rejectWrite(ctx, "comment", "vote", err)
	}

	comment, err = s.commentRepo.AdjustVote(ctx, id, delta)
	if err != nil {
		return nil, rejectWrite(ctx, "comment", "vote", err)
	}
	observability.VotesTotal.WithLabelValues("comment", in.Option).Inc()
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "DeleteComment", attribute.String("comment.id", id))
	defer func() { observability.EndSpan(span, err) }()

	comment, err = s.commentRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, rejectWrite(ctx, "comment", "delete", err)
	}

	observability.SoftDeletesTotal.WithLabelValues("comment").Inc()
	middleware.Logger.InfoContext(ctx, "comment soft-deleted",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.ParentID),
		slog.String("state", string(comment.State())),
	)
	return comment, nil
}
