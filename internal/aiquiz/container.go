package aiquiz

import (
	"context"

	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
)

type Container struct {
	Handler *Handler
}

func NewContainer(ctx context.Context, model, apiKey string, bank question.QuestionService) *Container {
	provider, err := NewGeminiProvider(ctx, model, apiKey)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("AI question drafting disabled")
		provider = unavailableProvider{}
	}

	return &Container{
		Handler: NewHandler(NewService(provider, bank)),
	}
}
