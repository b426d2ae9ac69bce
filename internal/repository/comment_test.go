package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"readable/internal/config"
	"readable/internal/database"
	"readable/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentCount(t *testing.T, repo PostRepository, postID string) int {
	t.Helper()
	p, err := repo.GetByID(context.Background(), postID, true)
	require.NoError(t, err)
	return p.CommentCount
}

func TestCommentRepository_Create(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	require.NoError(t, posts.Create(ctx, newPost("p1", "react", 1)))

	require.NoError(t, repo.Create(ctx, newComment("c1", "p1", 10)))
	require.NoError(t, repo.Create(ctx, newComment("c2", "p1", 11)))
	assert.Equal(t, 2, commentCount(t, posts, "p1"))

	got, err := repo.GetByID(ctx, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ParentID)
	assert.Equal(t, models.StateActive, got.State())

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, newComment("c1", "p1", 12))
		assert.True(t, models.HasCode(err, models.CodeDuplicateKey))
		assert.Equal(t, 2, commentCount(t, posts, "p1"))
	})

	t.Run("missing parent", func(t *testing.T) {
		err := repo.Create(ctx, newComment("c9", "nope", 12))
		assert.True(t, models.HasCode(err, models.CodeParentNotFound))
		_, err = repo.GetByID(ctx, "c9", true)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("deleted parent", func(t *testing.T) {
		require.NoError(t, posts.Create(ctx, newPost("p2", "redux", 2)))
		_, _, err := posts.SoftDelete(ctx, "p2")
		require.NoError(t, err)

		err = repo.Create(ctx, newComment("c8", "p2", 12))
		assert.True(t, models.HasCode(err, models.CodeParentDeleted))
		assert.Equal(t, 0, commentCount(t, posts, "p2"))
	})
}

func TestCommentRepository_VisibilityScoping(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	require.NoError(t, posts.Create(ctx, newPost("p1", "react", 1)))
	require.NoError(t, repo.Create(ctx, newComment("c1", "p1", 10)))
	require.NoError(t, repo.Create(ctx, newComment("c2", "p1", 5)))

	visibleList, err := repo.ListByPost(ctx, "p1", true)
	require.NoError(t, err)
	require.Len(t, visibleList, 2)
	assert.Equal(t, "c2", visibleList[0].ID)

	_, _, err = posts.SoftDelete(ctx, "p1")
	require.NoError(t, err)

	visibleList, err = repo.ListByPost(ctx, "p1", true)
	require.NoError(t, err)
	assert.Empty(t, visibleList)

	_, err = repo.GetByID(ctx, "c1", false)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	body := "edited"
	_, err = repo.UpdateFields(ctx, "c1", CommentFields{Body: &body})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	_, err = repo.AdjustVote(ctx, "c1", 1)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	_, err = repo.SoftDelete(ctx, "c1")
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	orphan, err := repo.GetByID(ctx, "c1", true)
	require.NoError(t, err)
	assert.Equal(t, "Comment c1", orphan.Body)
	assert.Zero(t, orphan.VoteScore)
	assert.False(t, orphan.Deleted)

	all, err := repo.ListAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	shown, err := repo.ListAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, shown)
}

func TestCommentRepository_UpdateAndVote(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	require.NoError(t, posts.Create(ctx, newPost("p1", "react", 1)))
	require.NoError(t, repo.Create(ctx, newComment("c1", "p1", 10)))

	body := "Comments. Are. Cool."
	got, err := repo.UpdateFields(ctx, "c1", CommentFields{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, body, got.Body)
	assert.Equal(t, "thingtwo", got.Author)

	for i := 0; i < 3; i++ {
		got, err = repo.AdjustVote(ctx, "c1", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, got.VoteScore)
	got, err = repo.AdjustVote(ctx, "c1", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.VoteScore)
}

func TestCommentRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	require.NoError(t, posts.Create(ctx, newPost("p1", "react", 1)))
	require.NoError(t, repo.Create(ctx, newComment("c1", "p1", 10)))
	require.NoError(t, repo.Create(ctx, newComment("c2", "p1", 11)))

	deleted, err := repo.SoftDelete(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, models.StateDeleted, deleted.State())
	assert.Equal(t, 1, commentCount(t, posts, "p1"))

	_, err = repo.SoftDelete(ctx, "c1")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.Equal(t, 1, commentCount(t, posts, "p1"))

	list, err := repo.ListByPost(ctx, "p1", true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c2", list[0].ID)

	raw, err := repo.ListByPost(ctx, "p1", false)
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}

func TestCommentRepository_Create_LocksParent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1 .*FOR UPDATE`).
		WithArgs("p1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_path", "deleted"}).AddRow("p1", "react", true))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newComment("c1", "p1", 10))
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeParentDeleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByPost_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE parent_id = $1 AND (deleted = $2 AND parent_deleted = $3) ORDER BY "timestamp","id"`)).
		WithArgs("p1", false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "body"}).
			AddRow("c1", "p1", "Hi there! I am a COMMENT.").
			AddRow("c2", "p1", "Comments. Are. Cool."))

	comments, err := repo.ListByPost(context.Background(), "p1", true)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Hi there! I am a COMMENT.", comments[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_CreateRacesPostDelete(t *testing.T) {
	db, err := database.Connect(&config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DBPath:                   filepath.Join(t.TempDir(), "race.db"),
		DBSchemaMode:             database.SchemaModeSQL,
		DBMaxOpenConns:           8,
		DBMaxIdleConns:           8,
		DBConnMaxLifetimeMinutes: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.Create(&models.Category{Name: "react", Path: "react"}).Error)

	posts := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	const rounds, writers = 5, 10
	for round := 0; round < rounds; round++ {
		postID := fmt.Sprintf("p%d", round)
		require.NoError(t, posts.Create(ctx, newPost(postID, "react", 1)))

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.Create(ctx, newComment(fmt.Sprintf("%s-c%d", postID, i), postID, int64(10+i)))
				if err != nil && !models.HasCode(err, models.CodeParentDeleted) {
					errs <- err
				}
			}(i)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := posts.SoftDelete(ctx, postID); err != nil {
				errs <- err
			}
		}()
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		var live int64
		require.NoError(t, db.Model(&models.Comment{}).
			Where("parent_id = ? AND parent_deleted = ?", postID, false).
			Count(&live).Error)
		assert.Zero(t, live, "round %d", round)
	}
}
