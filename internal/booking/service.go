// Package booking drives a booking from submission through the channel choice to either a
// WhatsApp handoff or an in-app chat.
package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/provider"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// ThreadOpener opens a chat thread, optionally seeding it with a system message.
type ThreadOpener interface {
	Open(ctx context.Context, deviceID string, session common.Session, providerID int64, systemText string) (*chat.Thread, error)
}

// PointsLedger credits rewards.
type PointsLedger interface {
	Credit(ctx context.Context, deviceID string, n int) (int, error)
}

// Service defines the booking workflow. Each device has at most one booking in flight.
type Service interface {
	Submit(ctx context.Context, session common.Session, req Request) (*Choice, error)
	Pending(deviceID string) (*Choice, *Confirmation)
	ChooseWhatsApp(ctx context.Context, session common.Session) (*Confirmation, error)
	ChooseInApp(ctx context.Context, session common.Session) (*InApp, error)
	// Cancel drops whatever is in flight without opening a chat or crediting points.
	Cancel(deviceID string)
	Confirm(ctx context.Context, deviceID string) (*Confirmed, error)
	History(ctx context.Context, deviceID string) []domain.BookingHistoryItem
}

type inFlight struct {
	choice       *Choice
	confirmation *Confirmation
}

type service struct {
	stores     *store.Manager
	categories category.Service
	chats      ThreadOpener
	points     PointsLedger
	reward     int
	logger     *zap.Logger

	mu      sync.Mutex
	flights map[string]*inFlight
}

// NewService creates the booking workflow service.
func NewService(stores *store.Manager, categories category.Service, chats ThreadOpener, points PointsLedger, cfg *config.Config, logger *zap.Logger) Service {
	reward := cfg.PointsPerBooking
	if reward <= 0 {
		reward = 25
	}
	return &service{
		stores:     stores,
		categories: categories,
		chats:      chats,
		points:     points,
		reward:     reward,
		logger:     logger.Named("booking"),
		flights:    make(map[string]*inFlight),
	}
}

func (s *service) Submit(ctx context.Context, session common.Session, req Request) (*Choice, error) {
	if !session.Unlocked {
		return nil, common.ErrUnauthorized.WithDetails("Unlock the hub to book a provider.")
	}
	p, found := s.stores.For(session.DeviceID).Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == req.ProviderID })
	if !found {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		req.CustomerName = session.UserName
	}

	choice := &Choice{Provider: p, Request: req}
	s.mu.Lock()
	s.flights[session.DeviceID] = &inFlight{choice: choice}
	s.mu.Unlock()

	s.logger.Info("Booking submitted",
		zap.String("device_id", session.DeviceID),
		zap.Int64("provider_id", p.ID),
		zap.String("date", req.Date),
	)
	return choice, nil
}

func (s *service) Pending(deviceID string) (*Choice, *Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[deviceID]
	if !ok {
		return nil, nil
	}
	return f.choice, f.confirmation
}

// takeChoice removes and returns the device's pending choice.
func (s *service) takeChoice(deviceID string) (*Choice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[deviceID]
	if !ok || f.choice == nil {
		return nil, common.ErrConflict.WithDetails("No booking is waiting for a channel choice.")
	}
	choice := f.choice
	f.choice = nil
	return choice, nil
}

// WhatsAppMessage is the templated booking text sent to the provider.
func WhatsAppMessage(req Request) string {
	return "🔥 NEW HUB BOOKING - LSERS\n\n" +
		fmt.Sprintf("📅 Date: %s\n", req.Date) +
		fmt.Sprintf("⏰ Time: %s\n", req.Time) +
		fmt.Sprintf("👤 Client: %s\n", req.CustomerName) +
		fmt.Sprintf("📝 Task: %s", req.Description)
}

func (s *service) ChooseWhatsApp(ctx context.Context, session common.Session) (*Confirmation, error) {
	choice, err := s.takeChoice(session.DeviceID)
	if err != nil {
		return nil, err
	}
	p, req := choice.Provider, choice.Request
	conf := &Confirmation{
		Title:    "Confirm Booking",
		Subtitle: fmt.Sprintf("Finalize session with %s", p.Name),
		Details: []Detail{
			{Label: "Category", Value: p.Category},
			{Label: "Date", Value: req.Date},
			{Label: "Slot", Value: req.Time},
		},
		WhatsAppLink: provider.WhatsAppLink(p.Phone, WhatsAppMessage(req)),
		PointsEarned: s.reward,
	}

	s.mu.Lock()
	s.flights[session.DeviceID] = &inFlight{choice: choice, confirmation: conf}
	s.mu.Unlock()
	return conf, nil
}

// InAppMessage is the system line that opens an in-app booking chat.
func InAppMessage(req Request) string {
	return fmt.Sprintf("Request: %s on %s (%s)", req.Description, req.Date, req.Time)
}

func (s *service) ChooseInApp(ctx context.Context, session common.Session) (*InApp, error) {
	choice, err := s.takeChoice(session.DeviceID)
	if err != nil {
		return nil, err
	}
	s.Cancel(session.DeviceID)

	thread, err := s.chats.Open(ctx, session.DeviceID, session, choice.Provider.ID, InAppMessage(choice.Request))
	if err != nil {
		return nil, err
	}
	return &InApp{Thread: thread}, nil
}

func (s *service) Cancel(deviceID string) {
	s.mu.Lock()
	delete(s.flights, deviceID)
	s.mu.Unlock()
}

func (s *service) Confirm(ctx context.Context, deviceID string) (*Confirmed, error) {
	s.mu.Lock()
	f, ok := s.flights[deviceID]
	if !ok || f.confirmation == nil {
		s.mu.Unlock()
		return nil, common.ErrConflict.WithDetails("There is no booking to confirm.")
	}
	conf, choice := f.confirmation, f.choice
	delete(s.flights, deviceID)
	s.mu.Unlock()

	balance, err := s.points.Credit(ctx, deviceID, conf.PointsEarned)
	if err != nil {
		return nil, err
	}

	item := s.historyItem(ctx, deviceID, choice)
	s.stores.For(deviceID).BookingHistory.Prepend(ctx, item)

	s.logger.Info("Booking confirmed",
		zap.String("device_id", deviceID),
		zap.Int64("provider_id", choice.Provider.ID),
		zap.Int("points", conf.PointsEarned),
	)
	return &Confirmed{
		WhatsAppLink: conf.WhatsAppLink,
		PointsEarned: conf.PointsEarned,
		Balance:      balance,
		History:      item,
	}, nil
}

func (s *service) historyItem(ctx context.Context, deviceID string, choice *Choice) domain.BookingHistoryItem {
	p := choice.Provider
	item := domain.BookingHistoryItem{
		ID:             fmt.Sprintf("bk%d", s.stores.For(deviceID).NextID()),
		Type:           "service",
		Name:           p.Category,
		ProviderOrHost: p.Name,
		Date:           choice.Request.Date,
		Status:         "Upcoming",
		Cost:           p.PriceValue,
	}
	if cat, err := s.categories.Get(ctx, p.Category); err == nil {
		item.Name = cat.Title
		item.Icon = cat.Icon
	}
	return item
}

func (s *service) History(ctx context.Context, deviceID string) []domain.BookingHistoryItem {
	return s.stores.For(deviceID).BookingHistory.All(ctx)
}
