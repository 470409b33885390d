package chat

import "lsers_hub_backend/internal/domain"

// Thread is a chat as seen by its participant.
type Thread struct {
	ChatID   string               `json:"chatId"`
	Provider domain.Provider      `json:"provider"`
	Messages []domain.ChatMessage `json:"messages"`
}

// AdminThread is a chat as seen by an administrator.
type AdminThread struct {
	Thread
	User domain.User `json:"user"`
}

// Summary is one line of the admin chat index.
type Summary struct {
	ChatID       string `json:"chatId"`
	UserID       int64  `json:"userId"`
	ProviderID   int64  `json:"providerId"`
	MessageCount int    `json:"messageCount"`
	LastMessage  int64  `json:"lastMessageAt"`
}

// OpenRequest starts (or resumes) a chat with a provider.
type OpenRequest struct {
	ProviderID int64 `json:"providerId" binding:"required"`
}

// SendRequest is a user-authored message.
type SendRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}
