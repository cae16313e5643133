package router

import (
	"github.com/nandakusuma/blogsocial/internal/application"
	"github.com/nandakusuma/blogsocial/internal/container"
	"github.com/nandakusuma/blogsocial/internal/infrastructure/mongodb"
	handlers "github.com/nandakusuma/blogsocial/internal/interface/http"
	"github.com/nandakusuma/blogsocial/internal/router/modules"
)

// InitModules constructs the repositories, services and handlers from
// the container singletons and registers every feature module. Called
// once during startup.
func InitModules(r *Registry) {
	db := container.GetMongo()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userRepo := mongodb.NewUserRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	followRepo := mongodb.NewFollowRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	userSvc := application.NewUserService(userRepo, jwt, publisherOrNil(), logger)
	blogSvc := application.NewBlogService(blogRepo, notificationRepo, logger)
	followSvc := application.NewFollowService(followRepo, userRepo, blogRepo, notificationRepo, logger)
	notificationSvc := application.NewNotificationService(notificationRepo)

	userHandler := handlers.NewUserHandler(userSvc, logger)
	socialHandler := handlers.NewSocialHandler(followSvc, notificationSvc, logger)
	blogHandler := handlers.NewBlogHandler(blogSvc, logger)
	adminHandler := handlers.NewAdminHandler(userSvc, blogSvc, logger)

	r.Add(modules.NewUserModule(userHandler, socialHandler, userRepo, jwt))
	r.Add(modules.NewBlogModule(blogHandler, userRepo, jwt))
	r.Add(modules.NewAdminModule(adminHandler, userRepo, jwt))
}

// publisherOrNil avoids handing a typed-nil publisher to the service:
// the email path is skipped entirely when RabbitMQ is not configured.
func publisherOrNil() application.EmailPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}
