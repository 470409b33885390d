package ai

import "lsers_hub_backend/internal/category"

// User-facing outcomes of a smart search.
const (
	MsgSuggestion  = "LSERS AI suggests: %s"
	MsgNoMatch     = "AI couldn't find a matching category."
	MsgUnavailable = "AI search is unavailable."
	// MsgReplyFallback stands in for a provider reply when the model errors.
	MsgReplyFallback = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."
)

// RecommendRequest is a free-text description of what the user needs.
type RecommendRequest struct {
	Query string `json:"query" binding:"required,max=500"`
}

// SearchResult is the outcome of a smart search.
type SearchResult struct {
	Available bool                      `json:"available"`
	Category  *category.ServiceCategory `json:"category,omitempty"`
	Reason    string                    `json:"reason,omitempty"`
	Message   string                    `json:"message"`
}

// TranscribeRequest carries base64 audio, without the data URL prefix.
type TranscribeRequest struct {
	Audio    string `json:"audio" binding:"required"`
	MIMEType string `json:"mimeType" binding:"required"`
}

// TranscribeResponse holds the transcription; Available is false when it failed.
type TranscribeResponse struct {
	Available bool   `json:"available"`
	Text      string `json:"text,omitempty"`
}

// AssistantRequest is one user turn with the general assistant.
type AssistantRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
	Reset   bool   `json:"reset"`
}

// AssistantResponse is the assistant's turn.
type AssistantResponse struct {
	Available bool   `json:"available"`
	Reply     string `json:"reply,omitempty"`
}
