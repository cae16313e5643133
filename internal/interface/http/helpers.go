package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/application"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/internal/interface/middleware"
	"github.com/nandakusuma/blogsocial/pkg/response"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// pageOpts parses pagination and sorting query parameters. Malformed
// values fall back to the defaults rather than erroring.
func pageOpts(c *gin.Context) repo.PageOpts {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	return repo.PageOpts{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// writeServiceError translates the application failure taxonomy into a
// status code and {error} body. Unexpected failures are logged and
// reported as a generic internal error.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "you do not have permission to modify this resource", nil)
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrAccountDisabled):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrConflict),
		errors.Is(err, application.ErrAdminExists),
		errors.Is(err, application.ErrInvalidRole),
		errors.Is(err, application.ErrSelfFollow),
		errors.Is(err, application.ErrAlreadyFollowing),
		errors.Is(err, application.ErrCannotFollowAdmin),
		errors.Is(err, application.ErrDuplicateFeedback):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
