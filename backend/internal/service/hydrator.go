package service

import (
	"context"

	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/logger"
)

// ProfileLookup resolves author ids against the identity store.
// Ids without a profile are simply absent from the result.
type ProfileLookup interface {
	GetProfiles(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserProfile, error)
}

type TextRenderer interface {
	Render(text string) string
}

// Hydrator projects stored hoots into their output shape.
// Nothing it produces is ever written back to storage.
type Hydrator struct {
	profiles ProfileLookup
	renderer TextRenderer
}

func NewHydrator(profiles ProfileLookup, renderer TextRenderer) *Hydrator {
	return &Hydrator{profiles: profiles, renderer: renderer}
}

func (h *Hydrator) Hoot(ctx context.Context, hoot domain.Hoot) domain.HootView {
	return h.Hoots(ctx, []domain.Hoot{hoot})[0]
}

func (h *Hydrator) Hoots(ctx context.Context, hoots []domain.Hoot) []domain.HootView {
	var ids []domain.UserId
	for i := range hoots {
		ids = append(ids, hoots[i].Author)
		for _, c := range hoots[i].Comments {
			ids = append(ids, c.Author)
		}
	}
	profiles := h.resolve(ctx, ids)

	views := make([]domain.HootView, len(hoots))
	for i := range hoots {
		views[i] = h.hootView(hoots[i], profiles)
	}
	return views
}

func (h *Hydrator) Comment(ctx context.Context, comment domain.Comment) domain.CommentView {
	return h.commentView(comment, h.resolve(ctx, []domain.UserId{comment.Author}))
}

func (h *Hydrator) hootView(hoot domain.Hoot, profiles map[domain.UserId]domain.UserProfile) domain.HootView {
	comments := make([]domain.CommentView, len(hoot.Comments))
	for i, c := range hoot.Comments {
		comments[i] = h.commentView(c, profiles)
	}
	return domain.HootView{
		Id:        hoot.Id,
		Title:     hoot.Title,
		Text:      hoot.Text,
		TextHTML:  h.render(hoot.Text),
		Author:    author(hoot.Author, profiles),
		Comments:  comments,
		CreatedAt: hoot.CreatedAt,
		UpdatedAt: hoot.UpdatedAt,
	}
}

func (h *Hydrator) commentView(c domain.Comment, profiles map[domain.UserId]domain.UserProfile) domain.CommentView {
	return domain.CommentView{
		Id:        c.Id,
		Text:      c.Text,
		TextHTML:  h.render(c.Text),
		Author:    author(c.Author, profiles),
		CreatedAt: c.CreatedAt,
	}
}

// resolve never fails: on lookup errors authors stay bare ids.
func (h *Hydrator) resolve(ctx context.Context, ids []domain.UserId) map[domain.UserId]domain.UserProfile {
	if h.profiles == nil || len(ids) == 0 {
		return nil
	}
	profiles, err := h.profiles.GetProfiles(ctx, dedup(ids))
	if err != nil {
		logger.Log.Warn("author profiles unavailable, returning bare ids", "error", err)
		return nil
	}
	return profiles
}

func (h *Hydrator) render(text string) string {
	if h.renderer == nil {
		return ""
	}
	return h.renderer.Render(text)
}

func author(id domain.UserId, profiles map[domain.UserId]domain.UserProfile) domain.Author {
	if p, ok := profiles[id]; ok {
		return domain.Author{Id: id, Profile: &p}
	}
	return domain.Author{Id: id}
}

func dedup(ids []domain.UserId) []domain.UserId {
	seen := make(map[domain.UserId]struct{}, len(ids))
	out := make([]domain.UserId, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
