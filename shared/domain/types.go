package domain

type (
	UserId    = int64
	HootId    = string
	CommentId = string

	HootTitle   = string
	HootText    = string
	CommentText = string
	Username    = string
)
