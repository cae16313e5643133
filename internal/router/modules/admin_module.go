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

// AdminModule wires the moderation endpoints behind the admin policy.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, userRepo repo.UserRepository, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, Repo: userRepo, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Repo, m.JWT, middleware.PolicyAdmin))
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.PUT("/users/block/:userId", m.Handler.BlockUser)
		admin.GET("/blog-posts", m.Handler.ListPosts)
		admin.GET("/blog-posts/:postId", m.Handler.GetPost)
		admin.PUT("/blog-posts/disable/:postId", m.Handler.DisablePost)
	}
}
