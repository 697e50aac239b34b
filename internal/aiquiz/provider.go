package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"google.golang.org/genai"
)

var (
	ErrProviderUnavailable = errors.New("question generator is not configured")
	ErrEmptyResponse       = errors.New("empty response from model")
)

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]Draft, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider uses apiKey when set, otherwise the client falls back to
// the GEMINI_API_KEY / GOOGLE_API_KEY environment.
func NewGeminiProvider(ctx context.Context, model, apiKey string) (Provider, error) {
	var cc *genai.ClientConfig
	if apiKey != "" {
		cc = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]Draft, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		log.WithError(err).Error("Gemini request failed")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Gemini raw response:\n%s", raw)
	return parseDrafts(raw)
}

func parseDrafts(raw string) ([]Draft, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(strings.Trim(clean, "`"))
	if clean == "" {
		return nil, ErrEmptyResponse
	}

	var drafts []Draft
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}

type unavailableProvider struct{}

func (unavailableProvider) SendPrompt(ctx context.Context, system, user string) ([]Draft, error) {
	return nil, ErrProviderUnavailable
}
