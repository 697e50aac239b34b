package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/aptitude-lambda/internal/aiquiz"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/middlewares"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"github.com/saulo-duarte/aptitude-lambda/internal/user"
)

type RouterConfig struct {
	AllowedOrigins    []string
	AuthHandler       *auth.Handler
	UserHandler       *user.Handler
	CategoryHandler   *category.Handler
	QuestionHandler   *question.Handler
	AssessmentHandler *assessment.Handler
	ResultHandler     *result.Handler
	AIQuizHandler     *aiquiz.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authRoutes := user.AuthRoutes(cfg.UserHandler)
	authRoutes.Post("/logout", cfg.AuthHandler.Logout)
	r.Mount("/auth", authRoutes)

	r.Mount("/categories", category.Routes(cfg.CategoryHandler))
	r.Mount("/questions", question.Routes(cfg.QuestionHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/attempts", assessment.Routes(cfg.AssessmentHandler))
		r.Mount("/results", result.Routes(cfg.ResultHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
	})
	return r
}
