package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiCollaborator talks to Google's Gemini models.
type GeminiCollaborator struct {
	client    *genai.Client
	recommend *genai.GenerativeModel
	fast      *genai.GenerativeModel
	assistant *genai.GenerativeModel
	logger    *zap.Logger
}

// NewCollaborator returns a Gemini collaborator, or the unavailable one when no API key is configured.
func NewCollaborator(cfg *config.Config, logger *zap.Logger) (Collaborator, func(), error) {
	logger = logger.Named("gemini")
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; AI features will report as unavailable")
		return NewNopCollaborator(), func() {}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	recommend := client.GenerativeModel(cfg.GeminiFastModel)
	recommend.ResponseMIMEType = "application/json"
	recommend.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"categoryId": {Type: genai.TypeString},
			"reason":     {Type: genai.TypeString},
		},
		Required: []string{"categoryId", "reason"},
	}

	assistant := client.GenerativeModel(cfg.GeminiChatModel)
	assistant.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(assistantInstruction)}}

	g := &GeminiCollaborator{
		client:    client,
		recommend: recommend,
		fast:      client.GenerativeModel(cfg.GeminiFastModel),
		assistant: assistant,
		logger:    logger,
	}
	logger.Info("Gemini collaborator ready",
		zap.String("fast_model", cfg.GeminiFastModel),
		zap.String("chat_model", cfg.GeminiChatModel),
	)
	cleanup := func() {
		if err := g.Close(); err != nil {
			logger.Error("Error closing Gemini client", zap.Error(err))
		}
	}
	return g, cleanup, nil
}

func (g *GeminiCollaborator) Recommend(ctx context.Context, query string, categoryIDs []string) (*Recommendation, error) {
	resp, err := g.recommend.GenerateContent(ctx, genai.Text(recommendPrompt(query, categoryIDs)))
	if err != nil {
		return nil, fmt.Errorf("gemini recommend: %w", err)
	}
	var rec Recommendation
	if err := json.Unmarshal([]byte(responseText(resp)), &rec); err != nil {
		return nil, fmt.Errorf("gemini recommend: decoding answer: %w", err)
	}
	return &rec, nil
}

func (g *GeminiCollaborator) ChatReply(ctx context.Context, providerName, providerCategory string, history []domain.ChatMessage) (string, error) {
	resp, err := g.fast.GenerateContent(ctx, genai.Text(replyPrompt(providerName, providerCategory, history)))
	if err != nil {
		return "", fmt.Errorf("gemini chat reply: %w", err)
	}
	return strings.TrimSpace(responseText(resp)), nil
}

func (g *GeminiCollaborator) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := g.fast.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: audio},
		genai.Text(transcribeInstruction),
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}
	return strings.TrimSpace(responseText(resp)), nil
}

func (g *GeminiCollaborator) NewAssistant(_ context.Context) (AssistantSession, error) {
	return &geminiSession{cs: g.assistant.StartChat()}, nil
}

func (g *GeminiCollaborator) Close() error {
	return g.client.Close()
}

type geminiSession struct {
	cs *genai.ChatSession
}

func (s *geminiSession) SendMessage(ctx context.Context, text string) (string, error) {
	resp, err := s.cs.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini assistant: %w", err)
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
