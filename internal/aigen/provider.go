package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/learnsmart-app/learnsmart-api/internal/config"
)

const (
	modelName = "gemini-2.0-flash"

	// callTimeout bounds a single model call. There is no retry: a failed
	// topic is skipped by the caller, never re-attempted.
	callTimeout = 45 * time.Second

	// QuestionsPerTopic is how many questions the builder requests per topic.
	QuestionsPerTopic = 2
)

type Provider interface {
	Topics(ctx context.Context, text string) ([]string, error)
	Questions(ctx context.Context, topicTitle, fullText string, count int) ([]GeneratedQuestion, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) Topics(ctx context.Context, text string) ([]string, error) {
	raw, err := p.generate(ctx, BuildTopicsPrompt(text))
	if err != nil {
		return nil, err
	}

	var payload topicsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to decode topics JSON from model")
		return nil, fmt.Errorf("failed to decode topics JSON: %w", err)
	}
	return payload.Topics, nil
}

func (p *geminiProvider) Questions(ctx context.Context, topicTitle, fullText string, count int) ([]GeneratedQuestion, error) {
	raw, err := p.generate(ctx, BuildQuestionsPrompt(topicTitle, fullText, count))
	if err != nil {
		return nil, err
	}

	questions, err := decodeQuestions(raw)
	if err != nil {
		config.WithContext(ctx).WithError(err).Errorf("Failed to decode questions JSON for topic %q", topicTitle)
		return nil, err
	}
	return questions, nil
}

func (p *geminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	result, err := p.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return "", errors.New("empty response from model")
	}
	return stripFences(raw), nil
}

// stripFences removes the markdown code fences models like to wrap JSON in.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	return strings.TrimSpace(clean)
}

func decodeQuestions(raw string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions JSON: %w", err)
	}
	return questions, nil
}
