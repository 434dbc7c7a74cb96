package service

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/errors"
	"github.com/itchan-dev/hoots/shared/logger"
	"github.com/itchan-dev/hoots/shared/middleware/metrics"
)

type CommentService interface {
	Append(ctx context.Context, hootId domain.HootId, author domain.UserId, text domain.CommentText) (domain.Comment, error)
	Update(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId, text domain.CommentText) error
	Remove(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId) error
}

// Comment manages comments through their parent hoot only: every change is a
// read-modify-write of the whole hoot under the storage's per-hoot exclusive access.
type Comment struct {
	storage   CommentStorage
	validator CommentValidator
}

type CommentStorage interface {
	ModifyHoot(ctx context.Context, id domain.HootId, mutate func(*domain.Hoot) error) (domain.Hoot, error)
}

type CommentValidator interface {
	CommentText(text domain.CommentText) error
}

func NewComment(storage CommentStorage, validator CommentValidator) CommentService {
	return &Comment{storage, validator}
}

// Append adds a comment to the end of the hoot's comment list. Any user may comment.
func (s *Comment) Append(ctx context.Context, hootId domain.HootId, author domain.UserId, text domain.CommentText) (domain.Comment, error) {
	if err := s.validator.CommentText(text); err != nil {
		return domain.Comment{}, err
	}
	hootId, ok := canonicalId(hootId)
	if !ok {
		return domain.Comment{}, errors.NotFound("Hoot")
	}

	var appended domain.Comment
	_, err := s.storage.ModifyHoot(ctx, hootId, func(h *domain.Hoot) error {
		created := now()
		appended = domain.Comment{
			Id:        newCommentId(h),
			Text:      strings.TrimSpace(text),
			Author:    author,
			CreatedAt: created,
		}
		h.Comments = append(h.Comments, appended)
		h.UpdatedAt = created
		return nil
	})
	if err != nil {
		return domain.Comment{}, errors.Storage(err)
	}

	metrics.CommentsAppended.Inc()
	logger.Log.Debug("comment appended", "hoot_id", hootId, "comment_id", appended.Id, "author", author)
	return appended, nil
}

func (s *Comment) Update(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId, text domain.CommentText) error {
	if err := s.validator.CommentText(text); err != nil {
		return err
	}
	hootId, ok := canonicalId(hootId)
	if !ok {
		return errors.NotFound("Hoot")
	}
	commentId, ok = canonicalId(commentId)
	if !ok {
		return errors.NotFound("Comment")
	}

	_, err := s.storage.ModifyHoot(ctx, hootId, func(h *domain.Hoot) error {
		i, err := ownedComment(h, commentId, actor)
		if err != nil {
			return err
		}
		h.Comments[i].Text = strings.TrimSpace(text)
		h.UpdatedAt = now()
		return nil
	})
	return errors.Storage(err)
}

// Remove deletes exactly the comment with commentId; siblings keep their ids and order.
func (s *Comment) Remove(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId) error {
	hootId, ok := canonicalId(hootId)
	if !ok {
		return errors.NotFound("Hoot")
	}
	commentId, ok = canonicalId(commentId)
	if !ok {
		return errors.NotFound("Comment")
	}

	_, err := s.storage.ModifyHoot(ctx, hootId, func(h *domain.Hoot) error {
		i, err := ownedComment(h, commentId, actor)
		if err != nil {
			return err
		}
		h.Comments = slices.Delete(h.Comments, i, i+1)
		h.UpdatedAt = now()
		return nil
	})
	return errors.Storage(err)
}

// ownedComment locates the comment and checks it against the comment's own author.
func ownedComment(h *domain.Hoot, commentId domain.CommentId, actor domain.UserId) (int, error) {
	i := h.CommentIndex(commentId)
	if i < 0 {
		return -1, errors.NotFound("Comment")
	}
	if err := authorize(actor, h.Comments[i].Author, resourceComment); err != nil {
		return -1, err
	}
	return i, nil
}

func newCommentId(h *domain.Hoot) domain.CommentId {
	for {
		id := uuid.NewString()
		if h.CommentIndex(id) < 0 {
			return id
		}
	}
}
