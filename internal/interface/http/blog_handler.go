package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/application"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/pkg/response"
	"github.com/nandakusuma/blogsocial/pkg/validation"
)

// BlogHandler exposes post authoring, the filtered listing and the
// rate/comment endpoint.
type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

type feedbackRequest struct {
	Rating  float64 `json:"rating" binding:"gte=0,lte=5"`
	Comment string  `json:"comment"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	post, err := h.Svc.Create(c.Request.Context(), currentUserID(c), req.Title, req.Content, req.Category)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"message":  "Blog post created successfully",
		"blogPost": post,
	})
}

// List serves the filtered/sorted/paginated listing. Filters are OR-ed
// together; with none supplied every non-disabled post matches.
func (h *BlogHandler) List(c *gin.Context) {
	filter := repo.PostFilter{
		Author:   c.Query("author"),
		Title:    c.Query("title"),
		Category: c.Query("category"),
	}
	posts, err := h.Svc.List(c.Request.Context(), filter, pageOpts(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// ListAllAuthors preserves the legacy /all-of-author surface: every
// author's posts, newest first.
func (h *BlogHandler) ListAllAuthors(c *gin.Context) {
	posts, err := h.Svc.ListAllAuthors(c.Request.Context(), pageOpts(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

func (h *BlogHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.Update(c.Request.Context(), c.Param("postId"), currentUserID(c), req.Title, req.Content, req.Category)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Blog post updated successfully")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("postId"), currentUserID(c)); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Blog post deleted successfully")
}

func (h *BlogHandler) RateComment(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.AddFeedback(c.Request.Context(), c.Param("postId"), currentUserID(c), req.Rating, req.Comment)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, "Rated and commented on the blog post successfully")
}
