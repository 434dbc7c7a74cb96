// Package memory is a process-local hoot storage.
//
// Every hoot lives in its own entry guarded by its own mutex, so writes to
// different hoots never wait on each other. The map lock is only held to find
// or insert an entry.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/errors"
)

type entry struct {
	mu      sync.Mutex
	hoot    domain.Hoot
	deleted bool
}

type Storage struct {
	mu       sync.RWMutex
	hoots    map[domain.HootId]*entry
	profiles map[domain.UserId]domain.UserProfile
}

func New() *Storage {
	return &Storage{
		hoots:    make(map[domain.HootId]*entry),
		profiles: make(map[domain.UserId]domain.UserProfile),
	}
}

func (s *Storage) CreateHoot(ctx context.Context, hoot domain.Hoot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hoots[hoot.Id]; ok {
		return &errors.ErrorWithStatusCode{Message: "Hoot already exists", StatusCode: http.StatusConflict}
	}
	s.hoots[hoot.Id] = &entry{hoot: hoot.Clone()}
	return nil
}

func (s *Storage) GetHoot(ctx context.Context, id domain.HootId) (domain.Hoot, error) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	return e.hoot.Clone(), nil
}

// ListHoots returns hoots newest first; equal timestamps are ordered by id descending.
func (s *Storage) ListHoots(ctx context.Context) ([]domain.Hoot, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.hoots))
	for _, e := range s.hoots {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	hoots := make([]domain.Hoot, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.deleted {
			hoots = append(hoots, e.hoot.Clone())
		}
		e.mu.Unlock()
	}

	sort.Slice(hoots, func(i, j int) bool {
		if !hoots[i].CreatedAt.Equal(hoots[j].CreatedAt) {
			return hoots[i].CreatedAt.After(hoots[j].CreatedAt)
		}
		return hoots[i].Id > hoots[j].Id
	})
	return hoots, nil
}

func (s *Storage) ModifyHoot(ctx context.Context, id domain.HootId, mutate func(*domain.Hoot) error) (domain.Hoot, error) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	if err := ctx.Err(); err != nil {
		return domain.Hoot{}, err
	}

	working := e.hoot.Clone()
	if err := mutate(&working); err != nil {
		return domain.Hoot{}, err
	}

	// identity fields are not writable through modification
	working.Id = e.hoot.Id
	working.Author = e.hoot.Author
	working.CreatedAt = e.hoot.CreatedAt

	e.hoot = working
	return working.Clone(), nil
}

func (s *Storage) DeleteHoot(ctx context.Context, id domain.HootId, check func(domain.Hoot) error) (domain.Hoot, error) {
	e, ok := s.lookup(id)
	if !ok {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return domain.Hoot{}, errors.NotFound("Hoot")
	}
	if err := ctx.Err(); err != nil {
		return domain.Hoot{}, err
	}
	if err := check(e.hoot.Clone()); err != nil {
		return domain.Hoot{}, err
	}

	// waiters that already hold a pointer to e see the tombstone
	e.deleted = true
	s.mu.Lock()
	delete(s.hoots, id)
	s.mu.Unlock()

	return e.hoot.Clone(), nil
}

func (s *Storage) lookup(id domain.HootId) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.hoots[id]
	return e, ok
}

// PutProfile registers a user profile for author lookups.
func (s *Storage) PutProfile(profile domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Id] = profile
}

func (s *Storage) GetProfiles(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make(map[domain.UserId]domain.UserProfile, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			profiles[id] = p
		}
	}
	return profiles, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Cleanup() error {
	return nil
}
