package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/application"
	"github.com/nandakusuma/blogsocial/pkg/response"
	"github.com/nandakusuma/blogsocial/pkg/validation"
)

// UserHandler exposes registration, login and the profile endpoints.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  id,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateProfile(c.Request.Context(), currentUserID(c), req.Username, req.Email); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Profile updated successfully")
}
