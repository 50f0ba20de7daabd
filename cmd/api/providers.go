package main

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appauth "github.com/xiebiao/educonnect/internal/application/auth"
	appbook "github.com/xiebiao/educonnect/internal/application/book"
	appnotification "github.com/xiebiao/educonnect/internal/application/notification"
	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/notification"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/internal/infrastructure/messaging"
	"github.com/xiebiao/educonnect/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/educonnect/internal/infrastructure/storage"
	"github.com/xiebiao/educonnect/pkg/jwt"
	"github.com/xiebiao/educonnect/pkg/mq"
)

// 自定义Provider：构造参数需要从Config中提取，或返回接口类型

const loginLimiterPrefix = "ratelimit:login"

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
}

func provideLoginLimiter(cfg *config.Config, client *goredis.Client) appauth.RateLimiter {
	return redis.NewFixedWindowLimiter(client, loginLimiterPrefix, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
}

func provideBookCache(cfg *config.Config, client *goredis.Client, log *zap.Logger) book.Cache {
	return redis.NewBookCache(client, cfg.Cache.BookTTL, log)
}

// provideObjectStore MinIO外面包一层熔断
func provideObjectStore(cfg *config.Config, log *zap.Logger) (storage.ObjectStore, error) {
	store, err := storage.NewMinioStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return storage.NewBreakerStore(store, log), nil
}

// provideEventPublisher mq.enabled时发往RabbitMQ，否则进程内直接写通知
func provideEventPublisher(cfg *config.Config, repo notification.Repository, log *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("消息队列未启用，领域事件在进程内处理")
		return messaging.NewLocalPublisher(appnotification.NewEventHandler(repo, log), log), func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return messaging.NewRabbitPublisher(pub, log), cleanup, nil
}

func provideLoginUseCase(
	cfg *config.Config,
	userService user.Service,
	jwtManager *jwt.Manager,
	sessions appauth.SessionStore,
	limiter appauth.RateLimiter,
	log *zap.Logger,
) *appauth.LoginUseCase {
	return appauth.NewLoginUseCase(userService, jwtManager, sessions, limiter, cfg.JWT.Expire, log)
}

func provideUploadProfileImageUseCase(cfg *config.Config, userService user.Service, store storage.ObjectStore, log *zap.Logger) *appuser.UploadProfileImageUseCase {
	return appuser.NewUploadProfileImageUseCase(userService, store, cfg.Server.MaxUploadSize, log)
}

func provideUploadCoverUseCase(cfg *config.Config, bookService book.Service, store storage.ObjectStore, log *zap.Logger) *appbook.UploadCoverUseCase {
	return appbook.NewUploadCoverUseCase(bookService, store, cfg.Server.MaxUploadSize, log)
}
