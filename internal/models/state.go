package models

// ContentState is the derived lifecycle state of a post or comment.
// Transitions are one-way: Active -> Deleted, Active -> Orphaned.
type ContentState string

const (
	StateActive   ContentState = "active"
	StateDeleted  ContentState = "deleted"
	StateOrphaned ContentState = "orphaned"
)

// VoteOption is the client token selecting a vote direction.
type VoteOption string

const (
	UpVote   VoteOption = "upVote"
	DownVote VoteOption = "downVote"
)

// Delta returns the score change for the option, and false for unknown tokens.
func (o VoteOption) Delta() (int, bool) {
	switch o {
	case UpVote:
		return 1, true
	case DownVote:
		return -1, true
	default:
		return 0, false
	}
}
