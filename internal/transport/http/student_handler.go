package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

type StudentHandler struct {
	service *app.Service
}

func NewStudentHandler(service *app.Service) *StudentHandler {
	return &StudentHandler{service: service}
}

type AnswerRequest struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

func (h *StudentHandler) PendingQuestions(c *gin.Context) {
	pending, err := h.service.PendingQuestions(c.Request.Context(), currentSession(c).User.Username)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, pending)
}

func (h *StudentHandler) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	resp, err := h.service.SubmitAnswer(c.Request.Context(), currentSession(c).User.Username, req.Question, req.Response)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

func (h *StudentHandler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), currentSession(c).User.Username)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, history)
}
