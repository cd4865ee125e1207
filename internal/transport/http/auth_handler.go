package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

type AuthHandler struct {
	service *app.Service
}

func NewAuthHandler(service *app.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Batch    string `json:"batch"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionID string          `json:"session_id"`
	User      domain.Identity `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Password, domain.Batch(req.Batch))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"username": user.Username, "batch": user.Batch})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.SetCookie(SessionCookie, session.ID, 0, "/", "", false, true)
	respond(c, http.StatusOK, LoginResponse{SessionID: session.ID, User: *session.User})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), currentSession(c).ID); err != nil {
		fail(c, err)
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	respond(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	respond(c, http.StatusOK, currentSession(c).User)
}
