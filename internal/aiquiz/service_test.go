package aiquiz

import (
	"context"
	"errors"
	"testing"

	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	drafts []Draft
	err    error
	user   string
}

func (f *fakeProvider) SendPrompt(ctx context.Context, system, user string) ([]Draft, error) {
	f.user = user
	return f.drafts, f.err
}

type fakeBank struct {
	added []*question.Question
	err   error
}

func (f *fakeBank) ListByCategory(ctx context.Context, categoryID string) ([]*question.Question, error) {
	return nil, nil
}

func (f *fakeBank) QuestionsForCategory(ctx context.Context, categoryID, lang string) ([]assessment.Question, error) {
	return nil, nil
}

func (f *fakeBank) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

func (f *fakeBank) AddQuestions(ctx context.Context, questions []*question.Question) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, questions...)
	return nil
}

func (f *fakeBank) ReplaceBank(ctx context.Context, questions []*question.Question) error {
	return nil
}

func draft(answer string) Draft {
	return Draft{
		Question:    "What is 7 x 8?",
		Options:     []string{"A) 54", "B) 56", "C) 58", "D) 64"},
		Answer:      answer,
		Explanation: "7 x 8 = 56.",
	}
}

func TestAnswerIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{"A", 0, false},
		{"c", 2, false},
		{"D) 64", 3, false},
		{" B ", 1, false},
		{"E", 0, true},
		{"", 0, true},
		{"Banana", 0, true},
		{"1", 0, true},
	}
	for _, tt := range tests {
		got, err := answerIndex(tt.in, 4)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalidAnswer, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGenerate(t *testing.T) {
	bad := draft("Z")
	sw := draft("B")
	sw.QuestionSW = "7 x 8 ni ngapi?"
	sw.OptionsSW = []string{"A) 54", "B) 56", "C) 58", "D) 64"}
	p := &fakeProvider{drafts: []Draft{draft("b"), bad, sw}}
	bank := &fakeBank{}
	svc := NewService(p, bank)

	resp, err := svc.Generate(context.Background(), GenerateRequest{Category: "Mathematics", Context: "multiplication tables"})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, 1, resp.Rejected)
	assert.False(t, resp.Saved)
	assert.Empty(t, bank.added)

	q := resp.Questions[0]
	assert.Equal(t, category.Mathematics, q.Category)
	assert.Equal(t, question.Beginner, q.Difficulty)
	assert.Equal(t, 1, q.CorrectIndex)
	assert.Equal(t, []string{"54", "56", "58", "64"}, q.Content.Data().EN.Options)
	assert.Equal(t, "7 x 8 ni ngapi?", resp.Questions[1].Localize("sw").Q)

	assert.Contains(t, p.user, "Write 3 beginner-level questions")
	assert.Contains(t, p.user, "multiplication tables")
}

func TestGenerateSaveAndClamp(t *testing.T) {
	drafts := make([]Draft, 12)
	for i := range drafts {
		drafts[i] = draft("A")
	}
	p := &fakeProvider{drafts: drafts}
	bank := &fakeBank{}

	resp, err := NewService(p, bank).Generate(context.Background(), GenerateRequest{
		Category: "ict", Difficulty: question.Expert, Count: 50, Save: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, MaxCount)
	assert.True(t, resp.Saved)
	assert.Len(t, bank.added, MaxCount)
	assert.Contains(t, p.user, "Write 10 expert-level questions")
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(&fakeProvider{}, &fakeBank{}).Generate(ctx, GenerateRequest{Category: "astrology"})
	assert.ErrorIs(t, err, category.ErrUnknownCategory)

	_, err = NewService(&fakeProvider{}, &fakeBank{}).Generate(ctx, GenerateRequest{Category: "law", Difficulty: "impossible"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewService(&fakeProvider{drafts: []Draft{draft("Q")}}, &fakeBank{}).Generate(ctx, GenerateRequest{Category: "law"})
	assert.ErrorIs(t, err, ErrNoValidDrafts)

	_, err = NewService(unavailableProvider{}, &fakeBank{}).Generate(ctx, GenerateRequest{Category: "law"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	boom := errors.New("db down")
	_, err = NewService(&fakeProvider{drafts: []Draft{draft("A")}}, &fakeBank{err: boom}).Generate(ctx, GenerateRequest{Category: "law", Save: true})
	assert.ErrorIs(t, err, boom)
}

func TestParseDrafts(t *testing.T) {
	drafts, err := parseDrafts("```json\n[{\"question\":\"q\",\"options\":[\"a\",\"b\"],\"answer\":\"A\"}]\n```")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "q", drafts[0].Question)

	_, err = parseDrafts("  ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = parseDrafts(`{"error":"nope"}`)
	assert.Error(t, err)
}
