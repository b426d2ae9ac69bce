package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"readable/internal/models"
	"readable/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FactoryOptions tunes generated content.
type FactoryOptions struct {
	// Seed makes generated content reproducible when non-zero.
	Seed int64
	// MaxDays bounds how far back timestamps are spread.
	MaxDays int
	// MaxComments is the upper bound of comments per post.
	MaxComments int
}

// Factory builds random posts and comments and persists them through the
// repositories so comment counts stay consistent.
type Factory struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	faker    *gofakeit.Faker
	opts     FactoryOptions
	now      func() time.Time
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts FactoryOptions) *Factory {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.MaxComments < 0 {
		opts.MaxComments = 0
	}
	return &Factory{
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		faker:    gofakeit.New(opts.Seed),
		opts:     opts,
		now:      time.Now,
	}
}

// timestamp returns a random epoch-millisecond time within MaxDays of now.
func (f *Factory) timestamp() int64 {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return f.now().Add(-back).UnixMilli()
}

// BuildPost constructs a post in category without persisting it.
func (f *Factory) BuildPost(category string) *models.Post {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), ".")
	return &models.Post{
		ID:           uuid.NewString(),
		Timestamp:    f.timestamp(),
		Title:        title,
		Body:         f.faker.Paragraph(1, 3, 12, " "),
		Author:       f.faker.Username(),
		CategoryPath: category,
		VoteScore:    f.faker.Number(-5, 25),
	}
}

// BuildComment constructs a comment on parent without persisting it. The
// comment is always newer than its parent.
func (f *Factory) BuildComment(parent *models.Post) *models.Comment {
	ts := parent.Timestamp + int64(f.faker.Number(1, 72*60))*int64(time.Minute/time.Millisecond)
	return &models.Comment{
		ID:        uuid.NewString(),
		ParentID:  parent.ID,
		Timestamp: ts,
		Body:      f.faker.Sentence(f.faker.Number(4, 16)),
		Author:    f.faker.Username(),
		VoteScore: f.faker.Number(-3, 10),
	}
}

// CreatePosts persists n random posts spread across categories, each with up
// to MaxComments comments.
func (f *Factory) CreatePosts(ctx context.Context, categories []string, n int) ([]*models.Post, error) {
	if n > 0 && len(categories) == 0 {
		return nil, fmt.Errorf("no categories to post into")
	}

	created := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := f.BuildPost(categories[f.faker.Number(0, len(categories)-1)])
		if err := f.posts.Create(ctx, post); err != nil {
			return created, fmt.Errorf("create post %d: %w", i, err)
		}

		for j := f.faker.Number(0, f.opts.MaxComments); j > 0; j-- {
			if err := f.comments.Create(ctx, f.BuildComment(post)); err != nil {
				return created, fmt.Errorf("create comment on %s: %w", post.ID, err)
			}
			post.CommentCount++
		}
		created = append(created, post)
	}
	return created, nil
}
