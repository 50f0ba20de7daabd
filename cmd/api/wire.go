//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后执行 `wire gen ./cmd/api` 重新生成wire_gen.go。
// 依赖链：Config → DB/Redis/MinIO/MQ → Repository → Service → UseCase → Handler → Router

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appauth "github.com/xiebiao/educonnect/internal/application/auth"
	appbook "github.com/xiebiao/educonnect/internal/application/book"
	appnotification "github.com/xiebiao/educonnect/internal/application/notification"
	apporder "github.com/xiebiao/educonnect/internal/application/order"
	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/educonnect/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/educonnect/internal/interface/http/handler"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	"github.com/xiebiao/educonnect/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、对象存储、事件发布
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	provideObjectStore,
	provideEventPublisher,
)

// repositorySet 仓储与缓存
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewOrderRepository,
	mysql.NewNotificationRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.Transactor), new(*mysql.TxManager)),
	provideBookCache,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// authSet JWT、会话黑名单、登录限流、审核状态守卫
var authSet = wire.NewSet(
	provideJWTManager,
	redis.NewSessionStore,
	wire.Bind(new(appauth.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.Blacklist), new(*redis.SessionStore)),
	appauth.NewApprovalChecker,
	wire.Bind(new(middleware.AccountStatus), new(*appauth.ApprovalChecker)),
	provideLoginLimiter,
	middleware.NewAuthMiddleware,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appauth.NewRegisterUseCase,
	provideLoginUseCase,
	appauth.NewLogoutUseCase,
	appauth.NewMeUseCase,

	appuser.NewListUsersUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewListPublishersUseCase,
	appuser.NewUpdateStatusUseCase,
	appuser.NewUpdateProfileImageUseCase,
	provideUploadProfileImageUseCase,
	appuser.NewChangePasswordUseCase,

	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	provideUploadCoverUseCase,

	apporder.NewCreateOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewUpdateStatusUseCase,

	appnotification.NewInboxUseCase,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
	handler.NewNotificationHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭MQ、Redis、数据库连接
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		authSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
