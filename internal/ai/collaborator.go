// Package ai is the boundary to the external text and speech model.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lsers_hub_backend/internal/domain"
)

// ErrUnavailable is returned by collaborators that cannot serve requests at all.
var ErrUnavailable = errors.New("ai: collaborator unavailable")

// Recommendation is a suggested service category for a free-text need.
type Recommendation struct {
	CategoryID string `json:"categoryId"`
	Reason     string `json:"reason"`
}

// AssistantSession is a running conversation with the general assistant.
type AssistantSession interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Collaborator is the external model. Implementations may fail; callers degrade.
type Collaborator interface {
	Recommend(ctx context.Context, query string, categoryIDs []string) (*Recommendation, error)
	ChatReply(ctx context.Context, providerName, providerCategory string, history []domain.ChatMessage) (string, error)
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	NewAssistant(ctx context.Context) (AssistantSession, error)
	Close() error
}

const assistantInstruction = "You are LSERS AI, a friendly and professional assistant for LSERS Professional Services, " +
	"Liberia's premier marketplace. You help users find verified professionals for home, tech, and creative services. " +
	"You answer questions about how the platform works, service categories (electricians, plumbers, etc.), " +
	"rewards points (25 pts per booking), and provider registration. Keep answers concise, helpful, and focused on LSERS."

const transcribeInstruction = "Please transcribe this audio input accurately. " +
	"Provide only the text of the transcription, with no additional commentary."

func recommendPrompt(query string, categoryIDs []string) string {
	return fmt.Sprintf(`You are a helpful assistant for LSERS Professional Services. The user is looking for help with: "%s".
Based on this query, recommend which service category they should look for from the following list: %s.

Return the answer in JSON format with two fields:
- categoryId: the exact string from the list above.
- reason: a short explanation of why this matches.`, query, strings.Join(categoryIDs, ", "))
}

func replyPrompt(providerName, providerCategory string, history []domain.ChatMessage) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
	return fmt.Sprintf(`You are a professional service provider named %[1]s, specializing as a %[2]s.
You are chatting with a potential customer on the LSERS app.
Keep your responses brief (1-2 sentences), professional, and helpful. Do not be overly conversational.

Here is the recent chat history:
%[3]s

Based on this, provide a suitable response as %[1]s. Only return your response text, no extra formatting or quotation marks.`,
		providerName, providerCategory, strings.Join(lines, "\n"))
}

type nopCollaborator struct{}

// NewNopCollaborator returns a collaborator that is always unavailable.
func NewNopCollaborator() Collaborator { return nopCollaborator{} }

func (nopCollaborator) Recommend(context.Context, string, []string) (*Recommendation, error) {
	return nil, ErrUnavailable
}

func (nopCollaborator) ChatReply(context.Context, string, string, []domain.ChatMessage) (string, error) {
	return "", ErrUnavailable
}

func (nopCollaborator) Transcribe(context.Context, []byte, string) (string, error) {
	return "", ErrUnavailable
}

func (nopCollaborator) NewAssistant(context.Context) (AssistantSession, error) {
	return nil, ErrUnavailable
}

func (nopCollaborator) Close() error { return nil }
