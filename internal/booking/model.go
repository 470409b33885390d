package booking

import (
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/domain"
)

// Request is a booking submitted from a provider profile.
type Request struct {
	ProviderID    int64  `json:"providerId" binding:"required"`
	CustomerName  string `json:"customerName" binding:"max=100"`
	CustomerPhone string `json:"customerPhone" binding:"max=30"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	Time          string `json:"time" binding:"required,max=60"`
	Description   string `json:"description" binding:"required,max=1000"`
}

// Choice is a submitted booking waiting for the user to pick a channel.
type Choice struct {
	Provider domain.Provider `json:"provider"`
	Request  Request         `json:"request"`
}

// Detail is one labelled line of a confirmation summary.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Confirmation summarizes a WhatsApp handoff before the user commits to it.
type Confirmation struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Details      []Detail `json:"details"`
	WhatsAppLink string   `json:"whatsappLink"`
	PointsEarned int      `json:"pointsEarned"`
}

// Confirmed is the outcome of confirming a handoff.
type Confirmed struct {
	WhatsAppLink string                    `json:"whatsappLink"`
	PointsEarned int                       `json:"pointsEarned"`
	Balance      int                       `json:"balance"`
	History      domain.BookingHistoryItem `json:"history"`
}

// InApp is the chat opened for an in-app booking.
type InApp struct {
	Thread *chat.Thread `json:"thread"`
}
