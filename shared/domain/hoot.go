package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type HootCreationData struct {
	Author UserId
	Title  HootTitle
	Text   HootText
}

// HootPatch carries the mutable hoot fields. Nil means "leave as is".
type HootPatch struct {
	Title *HootTitle
	Text  *HootText
}

func (p HootPatch) Empty() bool {
	return p.Title == nil && p.Text == nil
}

type Comment struct {
	Id        CommentId
	Text      CommentText
	Author    UserId
	CreatedAt time.Time
}

type Hoot struct {
	Id        HootId
	Title     HootTitle
	Text      HootText
	Author    UserId
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentIndex returns position of comment with given id or -1.
func (h *Hoot) CommentIndex(id CommentId) int {
	for i := range h.Comments {
		if h.Comments[i].Id == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no comment storage with h.
func (h Hoot) Clone() Hoot {
	if h.Comments != nil {
		comments := make([]Comment, len(h.Comments))
		copy(comments, h.Comments)
		h.Comments = comments
	}
	return h
}
