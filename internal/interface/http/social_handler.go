package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/application"
	"github.com/nandakusuma/blogsocial/pkg/response"
)

// SocialHandler exposes the follow graph, the unread notification
// listing and the personalized feed.
type SocialHandler struct {
	FollowSvc       *application.FollowService
	NotificationSvc *application.NotificationService
	Logger          *logrus.Logger
}

func NewSocialHandler(follows *application.FollowService, notifications *application.NotificationService, logger *logrus.Logger) *SocialHandler {
	return &SocialHandler{FollowSvc: follows, NotificationSvc: notifications, Logger: logger}
}

func (h *SocialHandler) Follow(c *gin.Context) {
	if err := h.FollowSvc.Follow(c.Request.Context(), currentUserID(c), c.Param("userId")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, "Followed user successfully")
}

// Notifications lists unread notifications newest first. An empty list
// is reported as a 404 "nothing to show".
func (h *SocialHandler) Notifications(c *gin.Context) {
	views, err := h.NotificationSvc.ListUnread(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if len(views) == 0 {
		response.Error(c, http.StatusNotFound, "no notifications found", nil)
		return
	}
	response.JSON(c, http.StatusOK, views)
}

// Feed lists posts of followed authors, newest first, paginated.
func (h *SocialHandler) Feed(c *gin.Context) {
	posts, err := h.FollowSvc.Feed(c.Request.Context(), currentUserID(c), pageOpts(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if len(posts) == 0 {
		response.Error(c, http.StatusNotFound, "no blog posts found", nil)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}
