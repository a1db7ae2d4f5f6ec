// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hairrap/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrNoModel is returned when every configured model failed to answer.
var ErrNoModel = errors.New("no assistant model produced a reply")

// GeminiClient asks each configured model in turn until one answers.
type GeminiClient struct {
	client *genai.Client
	models []string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, modelNames []string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, models: modelNames, logger: logger}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Reply sends text with the salon context and prior history.
func (g *GeminiClient) Reply(ctx context.Context, history []models.ChatMessage, text string) (string, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(SystemContext)}},
		{Role: "model", Parts: []genai.Part{genai.Text(systemAck)}},
	}
	for _, m := range history {
		role := "user"
		if m.Sender == models.SenderAI {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Text)}})
	}

	for _, name := range g.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		cs := g.client.GenerativeModel(name).StartChat()
		cs.History = append([]*genai.Content(nil), contents...)

		resp, err := cs.SendMessage(ctx, genai.Text(text))
		if err != nil {
			g.logger.Warn("assistant: model failed", zap.String("model", name), zap.Error(err))
			continue
		}
		if reply := firstText(resp); reply != "" {
			g.logger.Debug("assistant: model answered", zap.String("model", name))
			return reply, nil
		}
		g.logger.Warn("assistant: model returned no text", zap.String("model", name))
	}
	return "", ErrNoModel
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}
