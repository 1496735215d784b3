package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Registrars added with Register
// are mounted directly under the versioned API prefix; registrars added
// with RegisterProtected are mounted behind the auth middleware.
type Router struct {
	engine         *gin.Engine
	apiVersion     string
	authMiddleware []gin.HandlerFunc
	open           []RouteRegistrar
	protected      []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthMiddleware sets the middleware chain applied to protected registrars
func WithAuthMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authMiddleware = middleware
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		open:       make([]RouteRegistrar, 0),
		protected:  make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds registrars whose routes need no authentication
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.open = append(r.open, registrars...)
	return r
}

// RegisterProtected adds registrars whose routes sit behind the auth middleware
func (r *Router) RegisterProtected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.open {
		registrar.RegisterRoutes(api)
	}

	guarded := api.Group("", r.authMiddleware...)
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(guarded)
	}
}
