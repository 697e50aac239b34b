package result_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	results []*result.TestResult
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, r *result.TestResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, r)
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*result.TestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*result.TestResult
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TakenAt.After(out[j].TakenAt) })
	return out, nil
}

func TestSubmitFromAssessment(t *testing.T) {
	repo := &fakeRepo{}
	var sink assessment.ResultSink = result.NewService(repo)
	owner := uuid.New()

	err := sink.Submit(context.Background(), assessment.Submission{
		OwnerID: owner, Category: "Mathematics", Score: 0, TotalQuestions: 3, Accuracy: 0,
	})
	require.NoError(t, err)
	require.Len(t, repo.results, 1)
	assert.Equal(t, owner, repo.results[0].UserID)
	assert.Equal(t, "mathematics", repo.results[0].Category)
	assert.NotEqual(t, uuid.Nil, repo.results[0].ID)
	assert.False(t, repo.results[0].TakenAt.IsZero())
}

func TestSubmitResultValidation(t *testing.T) {
	svc := result.NewService(&fakeRepo{})
	owner := uuid.New()

	tests := []struct {
		name string
		dto  result.SubmitResultDTO
	}{
		{"score above total", result.SubmitResultDTO{Category: "law", Score: 4, TotalQuestions: 3, Accuracy: 100}},
		{"negative score", result.SubmitResultDTO{Category: "law", Score: -1, TotalQuestions: 3}},
		{"no questions", result.SubmitResultDTO{Category: "law", Score: 0, TotalQuestions: 0}},
		{"accuracy over 100", result.SubmitResultDTO{Category: "law", Score: 1, TotalQuestions: 1, Accuracy: 101}},
		{"unknown category", result.SubmitResultDTO{Category: "astrology", Score: 1, TotalQuestions: 1, Accuracy: 100}},
		{"missing category", result.SubmitResultDTO{Score: 1, TotalQuestions: 1, Accuracy: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitResult(context.Background(), owner, tt.dto)
			assert.ErrorIs(t, err, result.ErrInvalidResult)
		})
	}

	_, err := svc.SubmitResult(context.Background(), uuid.Nil, result.SubmitResultDTO{Category: "law", Score: 1, TotalQuestions: 1, Accuracy: 100})
	assert.ErrorIs(t, err, result.ErrNoOwner)
}

func TestSubmitRepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := result.NewService(&fakeRepo{err: boom})
	err := svc.Submit(context.Background(), assessment.Submission{OwnerID: uuid.New(), Category: "tax", Score: 1, TotalQuestions: 2, Accuracy: 50})
	assert.ErrorIs(t, err, boom)
}

func TestDashboard(t *testing.T) {
	repo := &fakeRepo{}
	svc := result.NewService(repo)
	owner := uuid.New()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	// 1/3, 2/3, 3/3, 0/2, 1/2, 2/2 -> percents 33.3, 66.7, 100, 0, 50, 100 -> mean 58.3
	scores := [][2]int{{1, 3}, {2, 3}, {3, 3}, {0, 2}, {1, 2}, {2, 2}}
	for i, s := range scores {
		repo.results = append(repo.results, &result.TestResult{
			ID: uuid.New(), UserID: owner, Category: "aptitude",
			Score: s[0], TotalQuestions: s[1], TakenAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	repo.results = append(repo.results, &result.TestResult{ID: uuid.New(), UserID: uuid.New(), Score: 0, TotalQuestions: 1})

	dash, err := svc.Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 6, dash.Stats.TestsTaken)
	assert.Equal(t, 58, dash.Stats.AverageScore)
	require.Len(t, dash.History, result.HistorySize)
	assert.Equal(t, 2, dash.History[0].Score)
	assert.Equal(t, 2, dash.History[0].TotalQuestions)
	assert.True(t, dash.History[0].TakenAt.Equal(base.Add(5*time.Hour)))
}

func TestDashboardEmpty(t *testing.T) {
	dash, err := result.NewService(&fakeRepo{}).Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, dash.Stats.TestsTaken)
	assert.Equal(t, 0, dash.Stats.AverageScore)
	assert.NotNil(t, dash.History)
	assert.Empty(t, dash.History)
}

func TestDashboardAverageRounding(t *testing.T) {
	repo := &fakeRepo{}
	owner := uuid.New()
	// 50 and 100 -> 75
	repo.results = []*result.TestResult{
		{UserID: owner, Score: 1, TotalQuestions: 2},
		{UserID: owner, Score: 1, TotalQuestions: 1},
	}
	dash, err := result.NewService(repo).Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 75, dash.Stats.AverageScore)

	repo.results = []*result.TestResult{
		{UserID: owner, Score: 1, TotalQuestions: 8},
		{UserID: owner, Score: 7, TotalQuestions: 8},
		{UserID: owner, Score: 1, TotalQuestions: 1},
		{UserID: owner, Score: 0, TotalQuestions: 1},
	}
	// 12.5, 87.5, 100, 0 -> 50
	dash, err = result.NewService(repo).Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 50, dash.Stats.AverageScore)
}
