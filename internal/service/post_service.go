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

type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the body of a create-post request.
type CreatePostInput struct {
	ID        string `json:"id" validate:"required,max=36"`
	Timestamp int64  `json:"timestamp" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Category  string `json:"category" validate:"required,max=32"`
}

// UpdatePostInput carries the editable post fields.
type UpdatePostInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// VoteInput is the body of a vote request.
type VoteInput struct {
	Option string `json:"option" validate:"required,oneof=upVote downVote"`
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "CreatePost", attribute.String("post.id", in.ID))
	defer func() { observability.EndSpan(span, err) }()

	validation.TrimAll(&in.ID, &in.Title, &in.Body, &in.Author, &in.Category)
	if err := validation.Struct(in); err != nil {
		return nil, rejectWrite(ctx, "post", "create", err)
	}

	post = &models.Post{
		ID:           in.ID,
		Timestamp:    in.Timestamp,
		Title:        in.Title,
		Body:         in.Body,
		Author:       in.Author,
		CategoryPath: in.Category,
		VoteScore:    0,
		Deleted:      false,
		CommentCount: 0,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, rejectWrite(ctx, "post", "create", err)
	}

	middleware.Logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("category", post.CategoryPath),
	)
	return post, nil
}

// GetPost returns a visible post.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, false)
	return post, internalOr(err)
}

// ListPosts returns visible posts, optionally limited to one category.
func (s *PostService) ListPosts(ctx context.Context, category string) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, repository.PostFilter{Category: category})
	return posts, internalOr(err)
}

// ListAllPosts returns every post including deleted ones.
func (s *PostService) ListAllPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, repository.PostFilter{IncludeDeleted: true})
	return posts, internalOr(err)
}

func (s *PostService) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "UpdatePost", attribute.String("post.id", id))
	defer func() { observability.EndSpan(span, err) }()

	validation.TrimAll(&in.Title, &in.Body)
	if err := validation.Struct(in); err != nil {
		return nil, rejectWrite(ctx, "post", "update", err)
	}

	post, err = s.postRepo.UpdateFields(ctx, id, repository.PostFields{Title: &in.Title, Body: &in.Body})
	if err != nil {
		return nil, rejectWrite(ctx, "post", "update", err)
	}
	return post, nil
}

func (s *PostService) VotePost(ctx context.Context, id string, in VoteInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "VotePost",
		attribute.String("post.id", id),
		attribute.String("vote.option", in.Option),
	)
	defer func() { observability.EndSpan(span, err) }()

	delta, err := voteDelta(in.Option)
	if err != nil {
		return nil, rejectWrite(ctx, "post", "vote", err)
	}

	post, err = s.postRepo.AdjustVote(ctx, id, delta)
	if err != nil {
		return nil, rejectWrite(ctx, "post", "vote", err)
	}
	observability.VotesTotal.WithLabelValues("post", in.Option).Inc()
	return post, nil
}

// DeletePost soft-deletes the post and orphans its comments atomically.
func (s *PostService) DeletePost(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "DeletePost", attribute.String("post.id", id))
	defer func() { observability.EndSpan(span, err) }()

	post, orphaned, err := s.postRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, rejectWrite(ctx, "post", "delete", err)
	}

	observability.SoftDeletesTotal.WithLabelValues("post").Inc()
	observability.OrphanedCommentsTotal.Add(float64(orphaned))
	span.SetAttributes(attribute.Int64("comments.orphaned", orphaned))
	middleware.Logger.InfoContext(ctx, "post soft-deleted",
		slog.String("post_id", post.ID),
		slog.String("state", string(post.State())),
		slog.Int64("orphaned_comments", orphaned),
	)
	return post, nil
}
