package models

// Post represents a post in a category. IDs and timestamps are supplied by the client.
type Post struct {
	ID           string `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Timestamp    int64  `gorm:"not null" json:"timestamp" yaml:"timestamp"`
	Title        string `gorm:"not null" json:"title" yaml:"title"`
	Body         string `gorm:"type:text;not null" json:"body" yaml:"body"`
	Author       string `gorm:"not null" json:"author" yaml:"author"`
	CategoryPath string `gorm:"size:32;not null;index" json:"category" yaml:"category"`
	VoteScore    int    `gorm:"not null" json:"voteScore" yaml:"voteScore"`
	Deleted      bool   `gorm:"not null;index" json:"deleted" yaml:"deleted"`
	// CommentCount tracks the number of visible comments.
	CommentCount int `gorm:"not null" json:"commentCount" yaml:"commentCount"`
}

// State returns the lifecycle state of the post.
func (p *Post) State() ContentState {
	if p.Deleted {
		return StateDeleted
	}
	return StateActive
}

// Visible reports whether the post is returned by default reads.
func (p *Post) Visible() bool {
	return !p.Deleted
}
