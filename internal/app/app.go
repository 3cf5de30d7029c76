// Package app 组装仓储、服务与 HTTP 模块，供 cmd 与端到端测试共用。
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kinopro/internal/core/auth"
	"kinopro/internal/core/cache"
	"kinopro/internal/core/config"
	"kinopro/internal/core/database"
	"kinopro/internal/core/storage"
	"kinopro/internal/repo"
	"kinopro/internal/service"
	"kinopro/internal/transport/http/handler"
	"kinopro/internal/transport/http/router"
	"kinopro/pkg/utils"
)

// Infra 外部资源
type Infra struct {
	DB     *gorm.DB
	Cache  *cache.Cache
	Photos service.PhotoStore // nil 表示未配置对象存储
	JWT    *auth.JWTer
	Now    service.Clock
}

// Open 按配置连接数据库（迁移 + 种子）、Redis 与 S3
func Open(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Infra, func(), error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	if cfg.DB.Seed {
		res, err := repo.NewCatalogRepo(db).Seed(ctx, database.DefaultTaxonomy())
		if err != nil {
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
		l.Info("catalog seeded",
			zap.Int64("cities", res.Cities),
			zap.Int64("groups", res.Groups),
			zap.Int64("professions", res.Professions))
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, l)
	if c.Enabled() {
		if err := c.Ping(ctx); err != nil {
			l.Warn("redis unavailable, catalog served from db", zap.Error(err))
		}
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		if cfg.App.Production() {
			return nil, nil, fmt.Errorf("jwt.secret is required in production")
		}
		secret = utils.NewID()
		l.Warn("jwt.secret empty, using a random per-process secret")
	}

	in := &Infra{
		DB:    db,
		Cache: c,
		JWT: &auth.JWTer{
			Secret: []byte(secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    cfg.JWT.TTL(),
		},
	}

	s3, err := storage.NewS3(ctx, storage.Opts{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("s3: %w", err)
	}
	if s3 != nil {
		in.Photos = s3
		l.Info("photo storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	cleanup := func() {
		_ = c.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return in, cleanup, nil
}

// App 全部服务与路由模块
type App struct {
	Users     *service.UserService
	Resumes   *service.ResumeService
	Catalog   *service.CatalogService
	Favorites *service.FavoriteService
	Reviews   *service.ReviewService
	Directory *service.DirectoryService
	Modules   *router.Registry
}

func Wire(cfg *config.Config, in *Infra, l *zap.Logger) *App {
	users := repo.NewUserRepo(in.DB)
	resumes := repo.NewResumeRepo(in.DB)
	catalog := repo.NewCatalogRepo(in.DB)

	a := &App{}
	a.Users = service.NewUserService(users, resumes, in.JWT, in.Now, l)
	a.Resumes = service.NewResumeService(resumes, catalog, in.Photos, cfg.Storage.MaxPhotoBytes, in.Now, l)
	a.Catalog = service.NewCatalogService(catalog, in.Cache,
		time.Duration(cfg.Redis.CatalogTTL)*time.Second, database.DefaultTaxonomy(), l)
	a.Favorites = service.NewFavoriteService(repo.NewFavoriteRepo(in.DB), l)
	a.Reviews = service.NewReviewService(repo.NewReviewRepo(in.DB), users, l)
	a.Directory = service.NewDirectoryService(repo.NewProfessionalRepo(in.DB), users, a.Reviews, a.Favorites, in.Now, l)

	a.Modules = router.NewRegistry(
		handler.NewAuthHandler(a.Users),
		handler.NewUserHandler(a.Users, a.Reviews),
		handler.NewCatalogHandler(a.Catalog),
		handler.NewResumeHandler(a.Resumes),
		handler.NewProfessionalHandler(a.Directory),
		handler.NewFavoriteHandler(a.Favorites),
		handler.NewReviewHandler(a.Reviews),
		handler.NewAdminHandler(a.Users, a.Catalog),
	)
	return a
}

func (a *App) Deps(in *Infra) router.Deps {
	return router.Deps{DB: in.DB, JWT: in.JWT, Modules: a.Modules}
}
