package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoValidDrafts  = errors.New("model returned no usable questions")
	ErrInvalidAnswer  = errors.New("answer is not an option letter")
)

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type service struct {
	provider Provider
	bank     question.QuestionService
	validate *validator.Validate
}

func NewService(provider Provider, bank question.QuestionService) Service {
	return &service{provider: provider, bank: bank, validate: validator.New()}
}

var optionPrefix = regexp.MustCompile(`^\s*[A-Za-z][\).:]\s+`)

// answerIndex turns "C", "c)" or "C) text" into 2.
func answerIndex(answer string, n int) (int, error) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return 0, ErrInvalidAnswer
	}
	letter := strings.ToUpper(a[:1])[0]
	if letter < 'A' || letter > 'Z' {
		return 0, ErrInvalidAnswer
	}
	if len(a) > 1 && !strings.ContainsRune(").: ", rune(a[1])) {
		return 0, ErrInvalidAnswer
	}
	idx := int(letter - 'A')
	if idx >= n {
		return 0, fmt.Errorf("%w: %q with %d options", ErrInvalidAnswer, answer, n)
	}
	return idx, nil
}

func stripPrefixes(options []string) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = strings.TrimSpace(optionPrefix.ReplaceAllString(o, ""))
	}
	return out
}

func toQuestion(cat string, difficulty question.Difficulty, d Draft) (*question.Question, error) {
	options := stripPrefixes(d.Options)
	idx, err := answerIndex(d.Answer, len(options))
	if err != nil {
		return nil, err
	}

	content := question.Content{
		EN: question.Localized{Q: strings.TrimSpace(d.Question), Expl: strings.TrimSpace(d.Explanation), Options: options},
	}
	if strings.TrimSpace(d.QuestionSW) != "" {
		content.SW = question.Localized{Q: strings.TrimSpace(d.QuestionSW), Options: stripPrefixes(d.OptionsSW)}
	}

	q := question.New(cat, content, idx, difficulty)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	log := config.WithContext(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	cat, err := category.Lookup(req.Category)
	if err != nil {
		return nil, err
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = question.Beginner
	}
	count := clampCount(req.Count)

	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(cat, difficulty, count, req.Context))
	if err != nil {
		return nil, err
	}

	resp := &GenerateResponse{Questions: make([]*question.Question, 0, len(drafts))}
	for i, d := range drafts {
		if len(resp.Questions) == count {
			break
		}
		q, err := toQuestion(cat.ID, difficulty, d)
		if err != nil {
			log.WithError(err).WithField("draft", i).Warn("Discarding generated question")
			resp.Rejected++
			continue
		}
		resp.Questions = append(resp.Questions, q)
	}
	if len(resp.Questions) == 0 {
		return nil, ErrNoValidDrafts
	}

	if req.Save {
		if err := s.bank.AddQuestions(ctx, resp.Questions); err != nil {
			return nil, err
		}
		resp.Saved = true
	}

	log.WithField("category", cat.ID).Infof("Generated %d questions", len(resp.Questions))
	return resp, nil
}
