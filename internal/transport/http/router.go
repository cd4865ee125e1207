package http

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// ImageDir is served under /question_images; empty disables it.
	ImageDir    string
	CORSOrigins []string
}

// NewRouter wires the dashboard API. Each request is one action: resolve the
// session, run the use case, render the resulting view as JSON.
func NewRouter(service *app.Service, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", SessionHeader},
		AllowCredentials: true,
	}))
	r.Use(withWarnings())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if opts.ImageDir != "" {
		r.Static("/question_images", opts.ImageDir)
	}

	auth := NewAuthHandler(service)
	admin := NewAdminHandler(service)
	student := NewStudentHandler(service)
	ws := NewWSHandler(service)

	api := r.Group("/api")
	{
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)

		authed := api.Group("")
		authed.Use(requireSession(service))
		{
			authed.POST("/logout", auth.Logout)
			authed.GET("/me", auth.Me)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(requireSession(service), requireAdmin())
		{
			adminGroup.GET("/students", admin.Students)
			adminGroup.GET("/questions", admin.ListQuestions)
			adminGroup.POST("/questions", admin.CreateQuestion)
			adminGroup.POST("/questions/:index/launch", admin.LaunchQuestion)
			adminGroup.GET("/summary", admin.Summary)
		}

		studentGroup := api.Group("/student")
		studentGroup.Use(requireSession(service), requireStudent())
		{
			studentGroup.GET("/questions", student.PendingQuestions)
			studentGroup.POST("/answers", student.SubmitAnswer)
			studentGroup.GET("/responses", student.History)
		}
	}

	r.GET("/ws/admin/summary", requireSession(service), requireAdmin(), ws.ServeSummary)
	return r
}
