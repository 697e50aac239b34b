package container

import (
	"context"
	"log"
	"net/http"

	"github.com/saulo-duarte/aptitude-lambda/internal/aiquiz"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"github.com/saulo-duarte/aptitude-lambda/internal/router"
	"github.com/saulo-duarte/aptitude-lambda/internal/user"
)

type Container struct {
	Settings            *config.Settings
	UserContainer       *user.Container
	QuestionContainer   *question.Container
	ResultContainer     *result.Container
	AssessmentContainer *assessment.Container
	AIQuizContainer     *aiquiz.Container
	AuthHandler         *auth.Handler
	CategoryHandler     *category.Handler
}

func New() *Container {
	ctx := context.Background()

	settings := config.Init()
	auth.Init(settings.JWTSecret, settings.TokenTTL)

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if settings.AutoMigrate {
		if err := config.Migrate(ctx, &user.User{}, &question.Question{}, &result.TestResult{}); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
	}

	cookies := auth.CookieConfig{Domain: settings.CookieDomain, Secure: settings.IsProduction()}

	questionContainer := question.NewContainer(config.DB)
	resultContainer := result.NewContainer(config.DB)
	userContainer := user.NewContainer(config.DB, resultContainer.Service, auth.Sessions, cookies)
	assessmentContainer := assessment.NewContainer(
		questionContainer.Service,
		resultContainer.Service,
		auth.Sessions,
		assessment.Options{
			DurationSeconds: settings.AttemptSeconds(),
			Retain:          settings.AttemptRetain,
			SubmitTimeout:   settings.SubmitTimeout,
		},
	)
	aiQuizContainer := aiquiz.NewContainer(ctx, settings.GeminiModel, settings.GeminiAPIKey, questionContainer.Service)

	return &Container{
		Settings:            settings,
		UserContainer:       userContainer,
		QuestionContainer:   questionContainer,
		ResultContainer:     resultContainer,
		AssessmentContainer: assessmentContainer,
		AIQuizContainer:     aiQuizContainer,
		AuthHandler:         auth.NewHandler(auth.Sessions, cookies),
		CategoryHandler:     category.NewHandler(),
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		AllowedOrigins:    c.Settings.AllowedOrigins,
		AuthHandler:       c.AuthHandler,
		UserHandler:       c.UserContainer.Handler,
		CategoryHandler:   c.CategoryHandler,
		QuestionHandler:   c.QuestionContainer.Handler,
		AssessmentHandler: c.AssessmentContainer.Handler,
		ResultHandler:     c.ResultContainer.Handler,
		AIQuizHandler:     c.AIQuizContainer.Handler,
	})
}

// Close stops in-flight attempts.
func (c *Container) Close() {
	c.AssessmentContainer.Manager.Close()
}
