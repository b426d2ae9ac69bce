package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"readable/internal/models"
	"readable/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, string, bool) (*models.Post, error)
	listFn         func(context.Context, repository.PostFilter) ([]*models.Post, error)
	updateFieldsFn func(context.Context, string, repository.PostFields) (*models.Post, error)
	adjustVoteFn   func(context.Context, string, int) (*models.Post, error)
	softDeleteFn   func(context.Context, string) (*models.Post, int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.Post, error) {
	return s.getByIDFn(ctx, id, includeDeleted)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id string, fields repository.PostFields) (*models.Post, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) AdjustVote(ctx context.Context, id string, delta int) (*models.Post, error) {
	return s.adjustVoteFn(ctx, id, delta)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id string) (*models.Post, int64, error) {
	return s.softDeleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string, _ bool) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _ repository.PostFilter) ([]*models.Post, error) { return []*models.Post{}, nil },
		updateFieldsFn: func(_ context.Context, id string, _ repository.PostFields) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		adjustVoteFn: func(_ context.Context, id string, _ int) (*models.Post, error) { return &models.Post{ID: id}, nil },
		softDeleteFn: func(_ context.Context, id string) (*models.Post, int64, error) {
			return &models.Post{ID: id, Deleted: true}, 0, nil
		},
	}
}

// failingPostRepo fails the test on any repository write.
func failingPostRepo(t *testing.T) *postRepoStub {
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, _ *models.Post) error {
		t.Error("repository Create must not be called")
		return nil
	}
	repo.updateFieldsFn = func(_ context.Context, _ string, _ repository.PostFields) (*models.Post, error) {
		t.Error("repository UpdateFields must not be called")
		return nil, nil
	}
	repo.adjustVoteFn = func(_ context.Context, _ string, _ int) (*models.Post, error) {
		t.Error("repository AdjustVote must not be called")
		return nil, nil
	}
	return repo
}

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, models.CodeValidation)
}

func validPostInput() CreatePostInput {
	return CreatePostInput{
		ID:        "8xf0y6ziyjabvozdd253nd",
		Timestamp: 1467166872634,
		Title:     "Udacity is the best place to learn React",
		Body:      "Everyone says so after all.",
		Author:    "thingtwo",
		Category:  "react",
	}
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CreatePostInput)
	}{
		{"blank title", func(in *CreatePostInput) { in.Title = "   " }},
		{"blank body", func(in *CreatePostInput) { in.Body = "\n\t" }},
		{"blank author", func(in *CreatePostInput) { in.Author = "" }},
		{"missing category", func(in *CreatePostInput) { in.Category = " " }},
		{"missing id", func(in *CreatePostInput) { in.ID = "" }},
		{"id too long", func(in *CreatePostInput) { in.ID = strings.Repeat("a", 37) }},
		{"missing timestamp", func(in *CreatePostInput) { in.Timestamp = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewPostService(failingPostRepo(t))
			in := validPostInput()
			tt.mutate(&in)
			_, err := svc.CreatePost(context.Background(), in)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	var stored *models.Post
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	}

	svc := NewPostService(repo)
	in := validPostInput()
	in.Title = "  " + in.Title + "  "
	post, err := svc.CreatePost(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Same(t, stored, post)
	assert.Equal(t, "Udacity is the best place to learn React", post.Title)
	assert.Equal(t, "react", post.CategoryPath)
	assert.Equal(t, int64(1467166872634), post.Timestamp)
	assert.Zero(t, post.VoteScore)
	assert.Zero(t, post.CommentCount)
	assert.False(t, post.Deleted)
}

func TestPostService_CreatePost_RepositoryErrors(t *testing.T) {
	t.Parallel()

	t.Run("integrity errors pass through", func(t *testing.T) {
		t.Parallel()
		for _, repoErr := range []*models.AppError{
			models.NewInvalidCategoryError("golang"),
			models.NewDuplicateKeyError("Post", "p1"),
		} {
			repo := noopPostRepo()
			repo.createFn = func(_ context.Context, _ *models.Post) error { return repoErr }
			_, err := NewPostService(repo).CreatePost(context.Background(), validPostInput())
			assertErrorCode(t, err, repoErr.Code)
		}
	})

	t.Run("storage failure becomes internal error", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("disk full")
		repo := noopPostRepo()
		repo.createFn = func(_ context.Context, _ *models.Post) error { return repoErr }
		_, err := NewPostService(repo).CreatePost(context.Background(), validPostInput())
		assertErrorCode(t, err, models.CodeInternal)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	t.Run("requires title and body", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(failingPostRepo(t))
		_, err := svc.UpdatePost(context.Background(), "p1", UpdatePostInput{Title: "t", Body: " "})
		assertValidationError(t, err)
		_, err = svc.UpdatePost(context.Background(), "p1", UpdatePostInput{Body: "b"})
		assertValidationError(t, err)
	})

	t.Run("passes trimmed fields", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.updateFieldsFn = func(_ context.Context, id string, f repository.PostFields) (*models.Post, error) {
			return &models.Post{ID: id, Title: *f.Title, Body: *f.Body}, nil
		}
		post, err := NewPostService(repo).UpdatePost(context.Background(), "p1", UpdatePostInput{Title: " New ", Body: "Text "})
		require.NoError(t, err)
		assert.Equal(t, "New", post.Title)
		assert.Equal(t, "Text", post.Body)
	})

	t.Run("not found propagates", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.updateFieldsFn = func(_ context.Context, id string, _ repository.PostFields) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		_, err := NewPostService(repo).UpdatePost(context.Background(), "gone", UpdatePostInput{Title: "t", Body: "b"})
		assertErrorCode(t, err, models.CodeNotFound)
	})
}

func TestPostService_VotePost(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown option", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(failingPostRepo(t))
		for _, option := range []string{"", "up", "UPVOTE", "sideVote"} {
			_, err := svc.VotePost(context.Background(), "p1", VoteInput{Option: option})
			assertValidationError(t, err)
		}
	})

	t.Run("maps options to deltas", func(t *testing.T) {
		t.Parallel()
		score := 0
		repo := noopPostRepo()
		repo.adjustVoteFn = func(_ context.Context, id string, delta int) (*models.Post, error) {
			score += delta
			return &models.Post{ID: id, VoteScore: score}, nil
		}
		svc := NewPostService(repo)
		ctx := context.Background()

		_, err := svc.VotePost(ctx, "p1", VoteInput{Option: "upVote"})
		require.NoError(t, err)
		post, err := svc.VotePost(ctx, "p1", VoteInput{Option: "downVote"})
		require.NoError(t, err)
		assert.Equal(t, 0, post.VoteScore)

		for i := 0; i < 3; i++ {
			post, err = svc.VotePost(ctx, "p1", VoteInput{Option: "upVote"})
			require.NoError(t, err)
		}
		assert.Equal(t, 3, post.VoteScore)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("returns deleted post", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.softDeleteFn = func(_ context.Context, id string) (*models.Post, int64, error) {
			return &models.Post{ID: id, Deleted: true}, 2, nil
		}
		post, err := NewPostService(repo).DeletePost(context.Background(), "p1")
		require.NoError(t, err)
		assert.True(t, post.Deleted)
	})

	t.Run("not found propagates", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.softDeleteFn = func(_ context.Context, id string) (*models.Post, int64, error) {
			return nil, 0, models.NewNotFoundError("Post", id)
		}
		_, err := NewPostService(repo).DeletePost(context.Background(), "p1")
		assertErrorCode(t, err, models.CodeNotFound)
	})
}

func TestPostService_Listings(t *testing.T) {
	t.Parallel()

	var filters []repository.PostFilter
	repo := noopPostRepo()
	repo.listFn = func(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
		filters = append(filters, f)
		return []*models.Post{}, nil
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	_, err := svc.ListPosts(ctx, "")
	require.NoError(t, err)
	_, err = svc.ListPosts(ctx, "react")
	require.NoError(t, err)
	_, err = svc.ListAllPosts(ctx)
	require.NoError(t, err)

	assert.Equal(t, []repository.PostFilter{
		{},
		{Category: "react"},
		{IncludeDeleted: true},
	}, filters)
}

func TestPostService_GetPost(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id string, includeDeleted bool) (*models.Post, error) {
		assert.False(t, includeDeleted)
		return nil, models.NewNotFoundError("Post", id)
	}
	_, err := NewPostService(repo).GetPost(context.Background(), "p1")
	assertErrorCode(t, err, models.CodeNotFound)
}
