package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/errors"
	"github.com/itchan-dev/hoots/shared/logger"
	"github.com/itchan-dev/hoots/shared/middleware/metrics"
)

type HootService interface {
	Create(ctx context.Context, data domain.HootCreationData) (domain.Hoot, error)
	List(ctx context.Context) ([]domain.Hoot, error)
	Get(ctx context.Context, id domain.HootId) (domain.Hoot, error)
	Update(ctx context.Context, id domain.HootId, actor domain.UserId, patch domain.HootPatch) (domain.Hoot, error)
	Delete(ctx context.Context, id domain.HootId, actor domain.UserId) (domain.Hoot, error)
}

type Hoot struct {
	storage   HootStorage
	validator HootValidator
}

// HootStorage is a keyed store of hoots with their embedded comments.
//
// ModifyHoot and DeleteHoot hold exclusive access to a single hoot while the
// callback runs; a callback error aborts the operation without any write.
// ModifyHoot never writes id, author or created_at back.
type HootStorage interface {
	CreateHoot(ctx context.Context, hoot domain.Hoot) error
	GetHoot(ctx context.Context, id domain.HootId) (domain.Hoot, error)
	ListHoots(ctx context.Context) ([]domain.Hoot, error)
	ModifyHoot(ctx context.Context, id domain.HootId, mutate func(*domain.Hoot) error) (domain.Hoot, error)
	DeleteHoot(ctx context.Context, id domain.HootId, check func(domain.Hoot) error) (domain.Hoot, error)
}

type HootValidator interface {
	Title(title domain.HootTitle) error
	Text(text domain.HootText) error
}

func NewHoot(storage HootStorage, validator HootValidator) HootService {
	return &Hoot{storage, validator}
}

func (s *Hoot) Create(ctx context.Context, data domain.HootCreationData) (domain.Hoot, error) {
	if err := s.validator.Title(data.Title); err != nil {
		return domain.Hoot{}, err
	}
	if err := s.validator.Text(data.Text); err != nil {
		return domain.Hoot{}, err
	}

	created := now()
	hoot := domain.Hoot{
		Id:        uuid.NewString(),
		Title:     strings.TrimSpace(data.Title),
		Text:      strings.TrimSpace(data.Text),
		Author:    data.Author,
		Comments:  []domain.Comment{},
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := s.storage.CreateHoot(ctx, hoot); err != nil {
		return domain.Hoot{}, errors.Storage(err)
	}

	metrics.HootsCreated.Inc()
	logger.Log.Info("hoot created", "hoot_id", hoot.Id, "author", hoot.Author)
	return hoot, nil
}

func (s *Hoot) List(ctx context.Context) ([]domain.Hoot, error) {
	hoots, err := s.storage.ListHoots(ctx)
	if err != nil {
		return nil, errors.Storage(err)
	}
	return hoots, nil
}

func (s *Hoot) Get(ctx context.Context, id domain.HootId) (domain.Hoot, error) {
	id, ok := canonicalId(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	hoot, err := s.storage.GetHoot(ctx, id)
	if err != nil {
		return domain.Hoot{}, errors.Storage(err)
	}
	return hoot, nil
}

func (s *Hoot) Update(ctx context.Context, id domain.HootId, actor domain.UserId, patch domain.HootPatch) (domain.Hoot, error) {
	if patch.Empty() {
		return domain.Hoot{}, errors.Validation("nothing to update")
	}
	if patch.Title != nil {
		if err := s.validator.Title(*patch.Title); err != nil {
			return domain.Hoot{}, err
		}
	}
	if patch.Text != nil {
		if err := s.validator.Text(*patch.Text); err != nil {
			return domain.Hoot{}, err
		}
	}
	id, ok := canonicalId(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}

	updated, err := s.storage.ModifyHoot(ctx, id, func(h *domain.Hoot) error {
		if err := authorize(actor, h.Author, resourceHoot); err != nil {
			return err
		}
		if patch.Title != nil {
			h.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Text != nil {
			h.Text = strings.TrimSpace(*patch.Text)
		}
		h.UpdatedAt = now()
		return nil
	})
	if err != nil {
		return domain.Hoot{}, errors.Storage(err)
	}
	return updated, nil
}

func (s *Hoot) Delete(ctx context.Context, id domain.HootId, actor domain.UserId) (domain.Hoot, error) {
	id, ok := canonicalId(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	deleted, err := s.storage.DeleteHoot(ctx, id, func(h domain.Hoot) error {
		return authorize(actor, h.Author, resourceHoot)
	})
	if err != nil {
		return domain.Hoot{}, errors.Storage(err)
	}

	logger.Log.Info("hoot deleted", "hoot_id", id, "comments", len(deleted.Comments))
	return deleted, nil
}

// canonicalId maps any accepted uuid spelling (upper case, braces, urn:uuid:)
// to the lower-case hyphenated form ids are stored under. Anything that is not
// a uuid cannot name a stored record.
func canonicalId(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// timestamps are kept at microsecond precision, the finest PostgreSQL stores
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
