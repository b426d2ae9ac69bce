package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteOption_Delta(t *testing.T) {
	tests := []struct {
		option VoteOption
		delta  int
		ok     bool
	}{
		{UpVote, 1, true},
		{DownVote, -1, true},
		{"upvote", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			delta, ok := tt.option.Delta()
			assert.Equal(t, tt.delta, delta)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestComment_State(t *testing.T) {
	assert.Equal(t, StateActive, (&Comment{}).State())
	assert.Equal(t, StateOrphaned, (&Comment{ParentDeleted: true}).State())
	assert.Equal(t, StateDeleted, (&Comment{Deleted: true}).State())
	assert.Equal(t, StateDeleted, (&Comment{Deleted: true, ParentDeleted: true}).State())

	assert.True(t, (&Comment{}).Visible())
	assert.False(t, (&Comment{ParentDeleted: true}).Visible())
	assert.False(t, (&Comment{Deleted: true}).Visible())
}

func TestPost_State(t *testing.T) {
	assert.Equal(t, StateActive, (&Post{}).State())
	assert.Equal(t, StateDeleted, (&Post{Deleted: true}).State())
	assert.False(t, (&Post{Deleted: true}).Visible())
}

func TestErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", NewDuplicateKeyError("Post", "p1"))
	assert.Equal(t, CodeDuplicateKey, ErrorCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeDuplicateKey))
	assert.Equal(t, CodeInternal, ErrorCode(errors.New("boom")))
	assert.False(t, HasCode(nil, CodeNotFound))
}
