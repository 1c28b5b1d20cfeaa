package service

import (
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"nexus-dashboard/internal/config"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/remote"
	"nexus-dashboard/internal/repository"
	"nexus-dashboard/internal/service/auth"
	"nexus-dashboard/internal/service/dashboard"
	"nexus-dashboard/internal/service/media"
	"nexus-dashboard/internal/service/persistence"
	"nexus-dashboard/internal/service/workspace"
)

type Services struct {
	Persistence persistence.Service
	Workspace   *workspace.Workspace
	Auth        auth.Service
	Dashboard   dashboard.Service
	Media       media.Service
	Clock       clock.Clock
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, clk clock.Clock) *Services {
	persistenceService := persistence.NewService(repos.Local, newRemote(repos, cfg), clk, cfg.SyncDebounce)
	ws := workspace.New(persistenceService, clk)
	authService := auth.NewService(ws, cfg, clk)
	dashboardService := dashboard.NewService(ws, redis)

	var store media.ObjectStore
	if minioClient != nil {
		store = minioClient
	}
	mediaService := media.NewService(store, cfg.MinIOBucket, clk)

	return &Services{
		Persistence: persistenceService,
		Workspace:   ws,
		Auth:        authService,
		Dashboard:   dashboardService,
		Media:       mediaService,
		Clock:       clk,
	}
}

func newRemote(repos *repository.Repositories, cfg *config.Config) remote.Remote {
	switch cfg.RemoteMode {
	case config.RemoteModeHTTP:
		if cfg.RemoteURL == "" {
			log.Printf("[Persistence] REMOTE_MODE=http without REMOTE_URL, running offline")
			return remote.NewOffline()
		}
		timeout := cfg.RemoteTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		return remote.NewHTTP(cfg.RemoteURL, timeout)
	case config.RemoteModePostgres:
		if repos.Cloud == nil {
			log.Printf("[Persistence] REMOTE_MODE=postgres without a database, running offline")
			return remote.NewOffline()
		}
		return remote.NewState(repos.Cloud)
	default:
		return remote.NewOffline()
	}
}
