package models

// Comment represents a comment on a post.
type Comment struct {
	ID            string `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	ParentID      string `gorm:"size:36;not null;index" json:"parentId" yaml:"parentId"`
	Timestamp     int64  `gorm:"not null" json:"timestamp" yaml:"timestamp"`
	Body          string `gorm:"type:text;not null" json:"body" yaml:"body"`
	Author        string `gorm:"not null" json:"author" yaml:"author"`
	VoteScore     int    `gorm:"not null" json:"voteScore" yaml:"voteScore"`
	Deleted       bool   `gorm:"not null" json:"deleted" yaml:"deleted"`
	ParentDeleted bool   `gorm:"not null" json:"parentDeleted" yaml:"parentDeleted"`
}

// State returns the lifecycle state of the comment. A comment that was deleted
// directly reports StateDeleted even if its parent was deleted later.
func (c *Comment) State() ContentState {
	switch {
	case c.Deleted:
		return StateDeleted
	case c.ParentDeleted:
		return StateOrphaned
	default:
		return StateActive
	}
}

// Visible reports whether neither the comment nor its parent post is deleted.
func (c *Comment) Visible() bool {
	return !c.Deleted && !c.ParentDeleted
}
