package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitforge/backend/config"
	"github.com/habitforge/backend/pkg/logger"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context (for
// example to attach the authenticated user id) or reject the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	cfg     config.Configs
	logger  logger.Logger
	db      *gorm.DB
	befores []MiddlewareFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	return &Router{
		engine: engine,
		inner:  engine,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// Branch returns a router sharing the same engine but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return cors.AllowAll().Handler(r.engine)
}
