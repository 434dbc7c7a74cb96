package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/hoots/backend/internal/service"
	"github.com/itchan-dev/hoots/shared/domain"
	mw "github.com/itchan-dev/hoots/shared/middleware"
)

// --- Mocks ---

type MockHootService struct {
	MockCreate func(ctx context.Context, data domain.HootCreationData) (domain.Hoot, error)
	MockList   func(ctx context.Context) ([]domain.Hoot, error)
	MockGet    func(ctx context.Context, id domain.HootId) (domain.Hoot, error)
	MockUpdate func(ctx context.Context, id domain.HootId, actor domain.UserId, patch domain.HootPatch) (domain.Hoot, error)
	MockDelete func(ctx context.Context, id domain.HootId, actor domain.UserId) (domain.Hoot, error)
}

func (m *MockHootService) Create(ctx context.Context, data domain.HootCreationData) (domain.Hoot, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return domain.Hoot{}, nil
}

func (m *MockHootService) List(ctx context.Context) ([]domain.Hoot, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil, nil
}

func (m *MockHootService) Get(ctx context.Context, id domain.HootId) (domain.Hoot, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Hoot{}, nil
}

func (m *MockHootService) Update(ctx context.Context, id domain.HootId, actor domain.UserId, patch domain.HootPatch) (domain.Hoot, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, actor, patch)
	}
	return domain.Hoot{}, nil
}

func (m *MockHootService) Delete(ctx context.Context, id domain.HootId, actor domain.UserId) (domain.Hoot, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, actor)
	}
	return domain.Hoot{}, nil
}

type MockCommentService struct {
	MockAppend func(ctx context.Context, hootId domain.HootId, author domain.UserId, text domain.CommentText) (domain.Comment, error)
	MockUpdate func(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId, text domain.CommentText) error
	MockRemove func(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId) error
}

func (m *MockCommentService) Append(ctx context.Context, hootId domain.HootId, author domain.UserId, text domain.CommentText) (domain.Comment, error) {
	if m.MockAppend != nil {
		return m.MockAppend(ctx, hootId, author, text)
	}
	return domain.Comment{}, nil
}

func (m *MockCommentService) Update(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId, text domain.CommentText) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, hootId, commentId, actor, text)
	}
	return nil
}

func (m *MockCommentService) Remove(ctx context.Context, hootId domain.HootId, commentId domain.CommentId, actor domain.UserId) error {
	if m.MockRemove != nil {
		return m.MockRemove(ctx, hootId, commentId, actor)
	}
	return nil
}

type MockProfileLookup struct {
	profiles map[domain.UserId]domain.UserProfile
}

func (m *MockProfileLookup) GetProfiles(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserProfile, error) {
	out := make(map[domain.UserId]domain.UserProfile)
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// --- Helpers ---

func newTestHandler(hoots *MockHootService, comments *MockCommentService, profiles map[domain.UserId]domain.UserProfile) *Handler {
	return New(hoots, comments, service.NewHydrator(&MockProfileLookup{profiles: profiles}, nil), &MockHealthChecker{})
}

func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/v1/hoots", func(r chi.Router) {
		r.Post("/", h.CreateHoot)
		r.Get("/", h.ListHoots)
		r.Route("/{hootId}", func(r chi.Router) {
			r.Get("/", h.GetHoot)
			r.Put("/", h.UpdateHoot)
			r.Delete("/", h.DeleteHoot)
			r.Post("/comments", h.CreateComment)
			r.Put("/comments/{commentId}", h.UpdateComment)
			r.Delete("/comments/{commentId}", h.DeleteComment)
		})
	})
	return r
}

func createRequest(t *testing.T, method, url string, body []byte, user *domain.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), mw.UserClaimsKey, user))
	}
	return req
}

func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rr, req)
	return rr
}
