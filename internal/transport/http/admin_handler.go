package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

type AdminHandler struct {
	service *app.Service
}

func NewAdminHandler(service *app.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// AdminQuestion is a question on the launch list, numbered from 1.
type AdminQuestion struct {
	Index int `json:"index"`
	domain.Question
}

func (h *AdminHandler) Students(c *gin.Context) {
	roster, err := h.service.Roster(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, roster)
}

func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.service.ListQuestions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]AdminQuestion, 0, len(questions))
	for i, q := range questions {
		out = append(out, AdminQuestion{Index: i + 1, Question: q})
	}
	respond(c, http.StatusOK, out)
}

// CreateQuestion accepts a multipart or urlencoded form: question, type,
// options (repeated, MCQ only), answer, batch (optional), image (optional file).
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	in := app.QuestionInput{
		Text:    c.PostForm("question"),
		Type:    domain.QuestionType(c.DefaultPostForm("type", string(domain.TypeMCQ))),
		Options: c.PostFormArray("options"),
		Answer:  c.PostForm("answer"),
		Batch:   domain.Batch(c.PostForm("batch")),
	}

	if header, err := c.FormFile("image"); err == nil {
		f, err := header.Open()
		if err != nil {
			fail(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer f.Close()
		in.ImageName = header.Filename
		in.Image = f
	}

	q, err := h.service.CreateQuestion(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, q)
}

func (h *AdminHandler) LaunchQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		fail(c, fmt.Errorf("%w: invalid question number %q", domain.ErrValidation, c.Param("index")))
		return
	}

	q, err := h.service.LaunchQuestion(c.Request.Context(), index-1)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, AdminQuestion{Index: index, Question: q})
}

func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, summary)
}
