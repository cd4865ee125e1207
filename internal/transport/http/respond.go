package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

const warningsKey = "warnings"

// envelope wraps every successful payload; warnings carry storage resets hit
// while serving the request.
type envelope struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
}

type ErrorResponse struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}

func warningsOf(c *gin.Context) []string {
	if v, ok := c.Get(warningsKey); ok {
		if w, ok := v.(*app.Warnings); ok {
			return w.List()
		}
	}
	return nil
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Data: data, Warnings: warningsOf(c)})
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Warnings: warningsOf(c)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrReservedName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuth), errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateUser), errors.Is(err, domain.ErrDuplicateQuestion),
		errors.Is(err, domain.ErrAlreadyLaunched), errors.Is(err, domain.ErrAlreadyAnswered),
		errors.Is(err, domain.ErrNotLaunched):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
