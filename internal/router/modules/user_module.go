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

// UserModule wires the account and social endpoints.
// Public: POST /user/register, POST /user/login
// Protected (user policy): profile, follow, notifications, feed
type UserModule struct {
	Users   *handlers.UserHandler
	Social  *handlers.SocialHandler
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(users *handlers.UserHandler, social *handlers.SocialHandler, userRepo repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Users: users, Social: social, Repo: userRepo, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	public := rg.Group("/user")
	public.POST("/register", registerLimiter, m.Users.Register)
	public.POST("/login", loginLimiter, m.Users.Login)

	auth := rg.Group("/user")
	auth.Use(middleware.Auth(m.Repo, m.JWT, middleware.PolicyUser))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/profile", m.Users.GetProfile)
		auth.PUT("/profile", m.Users.UpdateProfile)
		auth.POST("/follow/:userId", m.Social.Follow)
		auth.GET("/notifications", m.Social.Notifications)
		auth.GET("/feed", m.Social.Feed)
	}
}
