package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/application"
	"github.com/nandakusuma/blogsocial/pkg/response"
)

// AdminHandler exposes the moderation surface: user listing/blocking
// and the joined post views that include disabled posts.
type AdminHandler struct {
	Users  *application.UserService
	Blogs  *application.BlogService
	Logger *logrus.Logger
}

func NewAdminHandler(users *application.UserService, blogs *application.BlogService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Blogs: blogs, Logger: logger}
}

// ListUsers returns every non-admin account without credential hashes.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	if err := h.Users.BlockUser(c.Request.Context(), c.Param("userId")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "User blocked successfully")
}

// ListPosts aggregates every post, disabled included, with author name
// and rating average.
func (h *AdminHandler) ListPosts(c *gin.Context) {
	views, err := h.Blogs.ListForAdmin(c.Request.Context(), pageOpts(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, views)
}

func (h *AdminHandler) GetPost(c *gin.Context) {
	view, err := h.Blogs.GetForAdmin(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

func (h *AdminHandler) DisablePost(c *gin.Context) {
	if err := h.Blogs.Disable(c.Request.Context(), c.Param("postId")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Blog post disabled successfully")
}
