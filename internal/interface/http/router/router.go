// Package router 路由表与Gin引擎组装
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/internal/interface/http/handler"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	"github.com/xiebiao/educonnect/pkg/response"
	"github.com/xiebiao/educonnect/pkg/validator"
)

const apiPrefix = "/api/v1"

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Book         *handler.BookHandler
	Order        *handler.OrderHandler
	Notification *handler.NotificationHandler
}

// access 路由的访问控制
// public: 不需要登录；roles为空: 任意登录用户；否则限定角色
// upload: 文件上传接口，请求体受 server.max_upload_size 限制
type access struct {
	public bool
	roles  []string
	upload bool
}

var (
	public  = access{public: true}
	anyUser = access{}
)

func only(roles ...user.Role) access {
	a := access{roles: make([]string, len(roles))}
	for i, r := range roles {
		a.roles[i] = string(r)
	}
	return a
}

func uploading(a access) access {
	a.upload = true
	return a
}

// multipartOverhead 表单边界和字段头的余量
const multipartOverhead = 64 << 10

// Route 路由表中的一项
type Route struct {
	Method  string
	Path    string
	access  access
	Handler gin.HandlerFunc
}

// Public 是否不需要登录
func (r Route) Public() bool { return r.access.public }

// Roles 允许的角色，为空表示任意登录用户
func (r Route) Roles() []string { return r.access.roles }

// Upload 是否为文件上传接口
func (r Route) Upload() bool { return r.access.upload }

// Routes 完整的路由表，角色要求集中声明在这里
func Routes(h Handlers) []Route {
	var (
		admin     = only(user.RoleAdmin)
		publisher = only(user.RolePublisher, user.RoleAdmin)
	)
	return []Route{
		{http.MethodPost, "/auth/register", public, h.Auth.Register},
		{http.MethodPost, "/auth/login", public, h.Auth.Login},
		{http.MethodGet, "/auth/me", anyUser, h.Auth.Me},
		{http.MethodPost, "/auth/logout", anyUser, h.Auth.Logout},

		{http.MethodGet, "/books", public, h.Book.List},
		{http.MethodGet, "/books/search", public, h.Book.Search},
		{http.MethodGet, "/books/:id", public, h.Book.Get},
		{http.MethodPost, "/books", publisher, h.Book.Create},
		{http.MethodPut, "/books/:id", publisher, h.Book.Update},
		{http.MethodDelete, "/books/:id", admin, h.Book.Delete},
		{http.MethodGet, "/books/publisher/:id", publisher, h.Book.ListByPublisher},
		{http.MethodPost, "/books/:id/cover", uploading(publisher), h.Book.UploadCover},

		{http.MethodGet, "/users", admin, h.User.List},
		{http.MethodGet, "/users/publishers", only(user.RoleAdmin, user.RoleSchool), h.User.ListPublishers},
		{http.MethodGet, "/users/publishers/public", public, h.User.ListPublishers},
		{http.MethodPost, "/users/me/profile-image", uploading(anyUser), h.User.UploadProfileImage},
		{http.MethodPost, "/users/me/password", anyUser, h.User.ChangePassword},
		{http.MethodGet, "/users/:id", admin, h.User.Get},
		{http.MethodPatch, "/users/:id/status", admin, h.User.UpdateStatus},
		{http.MethodPost, "/users/:id/profile-image", anyUser, h.User.UpdateProfileImage},

		{http.MethodGet, "/orders", anyUser, h.Order.List},
		{http.MethodGet, "/orders/:id", anyUser, h.Order.Get},
		{http.MethodPost, "/orders", only(user.RoleSchool), h.Order.Create},
		{http.MethodPatch, "/orders/:id/status", publisher, h.Order.UpdateStatus},

		{http.MethodGet, "/notifications", anyUser, h.Notification.List},
		{http.MethodGet, "/notifications/unread-count", anyUser, h.Notification.UnreadCount},
		{http.MethodPatch, "/notifications/read-all", anyUser, h.Notification.MarkAllRead},
		{http.MethodPatch, "/notifications/:id/read", anyUser, h.Notification.MarkRead},
		{http.MethodDelete, "/notifications/:id", anyUser, h.Notification.Delete},
	}
}

// New 创建Gin引擎并注册全部路由
func New(cfg *config.Config, log *zap.Logger, auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	validator.Init()
	response.SetLogger(log)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadSize
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	Register(r.Group(apiPrefix), auth, Routes(h), cfg.Server.MaxUploadSize)
	return r
}

// Register 按路由表挂载：BodyLimit → RequireAuth → RequireRoles → RequireApproved → handler
// maxUpload<=0时上传接口不限制请求体
func Register(g *gin.RouterGroup, auth *middleware.AuthMiddleware, routes []Route, maxUpload int64) {
	for _, rt := range routes {
		chain := make([]gin.HandlerFunc, 0, 5)
		if rt.Upload() && maxUpload > 0 {
			chain = append(chain, middleware.BodyLimit(maxUpload+multipartOverhead))
		}
		if !rt.Public() {
			chain = append(chain, auth.RequireAuth())
			if roles := rt.Roles(); len(roles) > 0 {
				chain = append(chain, middleware.RequireRoles(roles...), auth.RequireApproved())
			}
		}
		chain = append(chain, rt.Handler)
		g.Handle(rt.Method, rt.Path, chain...)
	}
}
