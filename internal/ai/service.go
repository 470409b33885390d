package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"

	"go.uber.org/zap"
)

// Service wraps the collaborator with timeouts and user-facing fallbacks. Nothing here returns an error:
// an AI failure is never fatal to the caller.
type Service interface {
	Search(ctx context.Context, query string) SearchResult
	// ProviderReply returns the simulated provider's next message, or "" when there is nothing to append.
	ProviderReply(ctx context.Context, provider domain.Provider, history []domain.ChatMessage) string
	Transcribe(ctx context.Context, req TranscribeRequest) TranscribeResponse
	Ask(ctx context.Context, deviceID string, req AssistantRequest) AssistantResponse
}

type service struct {
	collaborator Collaborator
	categories   category.Service
	timeout      time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	sessions map[string]AssistantSession
}

// NewService creates the AI service.
func NewService(collaborator Collaborator, categories category.Service, cfg *config.Config, logger *zap.Logger) Service {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &service{
		collaborator: collaborator,
		categories:   categories,
		timeout:      timeout,
		logger:       logger.Named("ai"),
		sessions:     make(map[string]AssistantSession),
	}
}

func (s *service) Search(ctx context.Context, query string) SearchResult {
	query = strings.TrimSpace(query)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	all := s.categories.GetAll(ctx, category.ListQuery{})
	ids := make([]string, 0, len(all))
	for _, c := range all {
		ids = append(ids, c.ID)
	}

	rec, err := s.collaborator.Recommend(ctx, query, ids)
	if err != nil || rec == nil {
		s.logger.Warn("Category recommendation failed", zap.String("query", query), zap.Error(err))
		return SearchResult{Message: MsgUnavailable}
	}

	id, ok := s.categories.Normalize(ctx, rec.CategoryID)
	if !ok {
		s.logger.Info("Recommendation outside the catalog", zap.String("category_id", rec.CategoryID))
		return SearchResult{Available: true, Reason: rec.Reason, Message: MsgNoMatch}
	}
	cat, err := s.categories.Get(ctx, id)
	if err != nil {
		return SearchResult{Available: true, Reason: rec.Reason, Message: MsgNoMatch}
	}
	return SearchResult{
		Available: true,
		Category:  cat,
		Reason:    rec.Reason,
		Message:   fmt.Sprintf(MsgSuggestion, rec.Reason),
	}
}

func (s *service) ProviderReply(ctx context.Context, provider domain.Provider, history []domain.ChatMessage) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	specialty := provider.Category
	if cat, err := s.categories.Get(ctx, provider.Category); err == nil {
		specialty = cat.Title
	}

	reply, err := s.collaborator.ChatReply(ctx, provider.Name, specialty, history)
	if err != nil {
		s.logger.Warn("Provider reply failed", zap.Int64("provider_id", provider.ID), zap.Error(err))
		return MsgReplyFallback
	}
	return strings.TrimSpace(reply)
}

func (s *service) Transcribe(ctx context.Context, req TranscribeRequest) TranscribeResponse {
	raw := req.Audio
	if i := strings.Index(raw, ","); strings.HasPrefix(raw, "data:") && i >= 0 {
		raw = raw[i+1:]
	}
	audio, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(audio) == 0 {
		s.logger.Warn("Undecodable audio payload", zap.Error(err))
		return TranscribeResponse{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	text, err := s.collaborator.Transcribe(ctx, audio, req.MIMEType)
	if err != nil {
		s.logger.Warn("Transcription failed", zap.String("mime_type", req.MIMEType), zap.Error(err))
		return TranscribeResponse{}
	}
	return TranscribeResponse{Available: true, Text: text}
}

func (s *service) Ask(ctx context.Context, deviceID string, req AssistantRequest) AssistantResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.session(ctx, deviceID, req.Reset)
	if err != nil {
		s.logger.Warn("Assistant unavailable", zap.String("device_id", deviceID), zap.Error(err))
		return AssistantResponse{}
	}
	reply, err := session.SendMessage(ctx, req.Message)
	if err != nil {
		s.logger.Warn("Assistant turn failed", zap.String("device_id", deviceID), zap.Error(err))
		return AssistantResponse{}
	}
	return AssistantResponse{Available: true, Reply: reply}
}

func (s *service) session(ctx context.Context, deviceID string, reset bool) (AssistantSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[deviceID]; ok && !reset {
		return existing, nil
	}
	session, err := s.collaborator.NewAssistant(ctx)
	if err != nil {
		return nil, err
	}
	s.sessions[deviceID] = session
	return session, nil
}
