package setup

import (
	"context"
	"time"

	"github.com/itchan-dev/hoots/backend/internal/handler"
	"github.com/itchan-dev/hoots/backend/internal/service"
	"github.com/itchan-dev/hoots/backend/internal/storage/memory"
	"github.com/itchan-dev/hoots/backend/internal/storage/pg"
	"github.com/itchan-dev/hoots/backend/internal/utils"
	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/jwt"
	"github.com/itchan-dev/hoots/shared/logger"
	"github.com/itchan-dev/hoots/shared/markdown"
	mw "github.com/itchan-dev/hoots/shared/middleware"
)

// idle per-user limiters are forgotten after this long
const rateLimiterTTL = time.Hour

// Storage is everything the service needs from a storage backend.
type Storage interface {
	service.HootStorage
	service.ProfileLookup
	Ping(ctx context.Context) error
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	RateLimiter    *mw.UserRateLimiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	validator := utils.NewContentValidator(cfg.Public)
	hoot := service.NewHoot(storage, validator)
	comment := service.NewComment(storage, validator)
	hydrator := service.NewHydrator(storage, markdown.New())

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	var limiter *mw.UserRateLimiter
	if cfg.Public.RateLimitRPS > 0 {
		limiter = mw.NewUserRateLimiter(cfg.Public.RateLimitRPS, cfg.Public.RateLimitBurst, rateLimiterTTL)
	}

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(hoot, comment, hydrator, storage),
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
		RateLimiter:    limiter,
	}, nil
}

func newStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Public.StorageDriver {
	case config.StorageDriverMemory:
		logger.Log.Warn("using in-memory storage, data will be lost on restart")
		return memory.New(), nil
	default:
		return pg.New(cfg)
	}
}
