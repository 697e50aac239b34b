package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/aiquiz"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"github.com/saulo-duarte/aptitude-lambda/internal/router"
	"github.com/saulo-duarte/aptitude-lambda/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noQuestions struct{}

func (noQuestions) QuestionsForCategory(ctx context.Context, category, lang string) ([]assessment.Question, error) {
	return nil, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	auth.Init("router-test-secret", time.Hour)

	sessions := auth.NewSessionManager()
	cookies := auth.CookieConfig{}
	questions := question.NewService(question.NewRepository(nil))
	results := result.NewService(result.NewRepository(nil))
	attempts := assessment.NewContainer(noQuestions{}, results, sessions, assessment.Options{})
	t.Cleanup(attempts.Manager.Close)

	return router.New(router.RouterConfig{
		AllowedOrigins:    []string{"http://localhost:3000"},
		AuthHandler:       auth.NewHandler(sessions, cookies),
		UserHandler:       user.NewHandler(user.NewService(user.NewRepository(nil)), results, sessions, cookies),
		CategoryHandler:   category.NewHandler(),
		QuestionHandler:   question.NewHandler(questions),
		AssessmentHandler: attempts.Handler,
		ResultHandler:     result.NewHandler(results),
		AIQuizHandler:     aiquiz.NewHandler(aiquiz.NewService(nil, questions)),
	})
}

func TestRoutes(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/categories", http.StatusOK},
		{http.MethodGet, "/categories/law", http.StatusOK},
		{http.MethodGet, "/categories/astrology", http.StatusNotFound},
		{http.MethodGet, "/questions/astrology", http.StatusNotFound},
		{http.MethodPost, "/questions", http.StatusUnauthorized},
		{http.MethodGet, "/questions/law/answers", http.StatusUnauthorized},
		{http.MethodPost, "/attempts", http.StatusUnauthorized},
		{http.MethodGet, "/results/dashboard", http.StatusUnauthorized},
		{http.MethodGet, "/users/me", http.StatusUnauthorized},
		{http.MethodPost, "/ai-quiz", http.StatusUnauthorized},
		{http.MethodPost, "/auth/logout", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRoutesRoleGuard(t *testing.T) {
	r := newRouter(t)
	_, token, err := auth.Sessions.Init(uuid.New(), "Student", "s@example.com", auth.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/ai-quiz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
