package handler

import (
	"context"

	"github.com/itchan-dev/hoots/backend/internal/service"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	hoot     service.HootService
	comment  service.CommentService
	hydrator *service.Hydrator
	health   HealthChecker
}

func New(hoot service.HootService, comment service.CommentService, hydrator *service.Hydrator, health HealthChecker) *Handler {
	return &Handler{
		hoot:     hoot,
		comment:  comment,
		hydrator: hydrator,
		health:   health,
	}
}
