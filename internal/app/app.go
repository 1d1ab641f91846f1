package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "prime_estate/internal/app/http"
	"prime_estate/internal/config"
	"prime_estate/internal/repository"
	gallerysvc "prime_estate/internal/services/gallery_service"
	projectsvc "prime_estate/internal/services/project_service"
	tokensvc "prime_estate/internal/services/token_service"
	usersvc "prime_estate/internal/services/user_service"
	s3storage "prime_estate/internal/storage/s3"
	httprouters "prime_estate/internal/transport/http"

	"github.com/redis/go-redis/v9"
)

type App struct {
	HTTPServer *httpapp.Server

	repo  *repository.Repository
	redis *redis.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	blobs, err := s3storage.New(s3storage.Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Endpoint:        cfg.S3.Endpoint,
		UsePathStyle:    cfg.S3.UsePathStyle,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
		KeyPrefix:       cfg.S3.KeyPrefix,
	})
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	projectService := projectsvc.NewProjectService(log, repo, repo.Project, repo.Gallery, blobs)
	galleryService := gallerysvc.NewGalleryService(log, repo.Gallery)
	userService := usersvc.NewUserService(log, repo.User)
	tokenService := tokensvc.NewTokenService(repository.NewTokenRepository(redisClient), cfg.JWT.Secret)

	routers := httprouters.NewRouter(log, projectService, galleryService, userService, tokenService)

	server := httpapp.New(log, cfg.JWT.Secret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.BodyLimit, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

func (a *App) Stop() error {
	err := a.HTTPServer.Stop()

	a.repo.Close()
	_ = a.redis.Close()

	return err
}
