package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandakusuma/blogsocial/internal/container"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	handlers "github.com/nandakusuma/blogsocial/internal/interface/http"
	"github.com/nandakusuma/blogsocial/internal/interface/middleware"
	"github.com/nandakusuma/blogsocial/pkg/helpers"
)

// BlogModule wires the post endpoints; every route requires the user
// policy.
type BlogModule struct {
	Handler *handlers.BlogHandler
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, userRepo repo.UserRepository, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, Repo: userRepo, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	blog.Use(middleware.Auth(m.Repo, m.JWT, middleware.PolicyUser))
	blog.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		blog.POST("/create", m.Handler.Create)
		blog.GET("/", m.Handler.List)
		blog.GET("/all-of-author", m.Handler.ListAllAuthors)
		blog.GET("/:postId", m.Handler.Get)
		blog.PUT("/:postId", m.Handler.Update)
		blog.DELETE("/:postId", m.Handler.Delete)
		blog.PUT("/:postId/rate-comment", m.Handler.RateComment)
	}
}
