// Package chat runs in-app conversations between users and providers. Provider turns are produced
// asynchronously by the reply generator after a short randomized delay.
package chat

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
)

// ReplyGenerator produces the provider's next message. An empty string means no reply.
type ReplyGenerator interface {
	ProviderReply(ctx context.Context, provider domain.Provider, history []domain.ChatMessage) string
}

// Service defines chat operations. History, Send and View return a nil result and a nil error
// when the chat's provider (or, for View, its user) no longer exists: nothing happens.
type Service interface {
	History(ctx context.Context, deviceID string, session common.Session, chatID string) (*Thread, error)
	// Open returns the thread for the pair, creating an empty one if needed. A non-empty
	// systemText is appended as a system message.
	Open(ctx context.Context, deviceID string, session common.Session, providerID int64, systemText string) (*Thread, error)
	Send(ctx context.Context, deviceID string, session common.Session, chatID, text string) (*domain.ChatMessage, error)
	Close(ctx context.Context, deviceID, chatID string)
	View(ctx context.Context, deviceID, chatID string) (*AdminThread, error)
	List(ctx context.Context, deviceID string) []Summary
	// Shutdown cancels every pending reply and waits for the workers to exit.
	Shutdown()
}

// Option tweaks a chat service at construction.
type Option func(*service)

// WithDelay replaces the randomized reply delay.
func WithDelay(fn func() time.Duration) Option {
	return func(s *service) { s.delay = fn }
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type pendingKey struct {
	deviceID string
	chatID   string
}

type service struct {
	stores        *store.Manager
	replies       ReplyGenerator
	logger        *zap.Logger
	cancelOnClose bool
	delay         func() time.Duration
	now           func() time.Time

	mu      sync.Mutex
	pending map[pendingKey]map[int]context.CancelFunc
	seq     int
	closed  bool
	wg      sync.WaitGroup
}

// NewService creates the chat service.
func NewService(stores *store.Manager, replies ReplyGenerator, cfg *config.Config, logger *zap.Logger, opts ...Option) Service {
	minDelay, maxDelay := cfg.ChatReplyMinDelay, cfg.ChatReplyMaxDelay
	s := &service{
		stores:        stores,
		replies:       replies,
		logger:        logger.Named("chat"),
		cancelOnClose: cfg.ChatCancelReplyOnClose,
		now:           time.Now,
		pending:       make(map[pendingKey]map[int]context.CancelFunc),
		delay: func() time.Duration {
			if maxDelay <= minDelay {
				return minDelay
			}
			return minDelay + rand.N(maxDelay-minDelay)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// participant resolves the provider of a chat the session is allowed to use.
// A nil provider with a nil error means the provider is gone.
func (s *service) participant(ctx context.Context, st *store.Store, session common.Session, chatID string) (*domain.Provider, error) {
	userID, providerID, ok := domain.ParseChatID(chatID)
	if !ok {
		return nil, common.ErrBadRequest.WithDetails("Invalid chat ID.")
	}
	if userID != session.UserID && !session.IsAdmin() {
		return nil, common.ErrForbidden.WithDetails("This chat belongs to another user.")
	}
	p, found := st.Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == providerID })
	if !found {
		s.logger.Debug("Chat provider no longer exists", zap.String("chat_id", chatID))
		return nil, nil
	}
	return &p, nil
}

func (s *service) History(ctx context.Context, deviceID string, session common.Session, chatID string) (*Thread, error) {
	st := s.stores.For(deviceID)
	p, err := s.participant(ctx, st, session, chatID)
	if err != nil || p == nil {
		return nil, err
	}
	return &Thread{ChatID: chatID, Provider: *p, Messages: messagesOf(st.ChatHistories.Get(ctx), chatID)}, nil
}

func (s *service) Open(ctx context.Context, deviceID string, session common.Session, providerID int64, systemText string) (*Thread, error) {
	st := s.stores.For(deviceID)
	p, found := st.Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == providerID })
	if !found {
		return nil, common.ErrNotFound.WithDetails("Provider not found.")
	}
	chatID := domain.ChatID(session.UserID, providerID)

	histories, err := st.ChatHistories.Update(ctx, func(h store.ChatHistories) (store.ChatHistories, error) {
		if h == nil {
			h = store.ChatHistories{}
		}
		thread := h[chatID]
		if thread == nil {
			thread = []domain.ChatMessage{}
		}
		if systemText != "" {
			thread = append(thread, domain.ChatMessage{Sender: domain.SenderSystem, Text: systemText, Timestamp: s.now().UnixMilli()})
		}
		h[chatID] = thread
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Chat opened", zap.String("device_id", deviceID), zap.String("chat_id", chatID))
	return &Thread{ChatID: chatID, Provider: p, Messages: messagesOf(histories, chatID)}, nil
}

func (s *service) Send(ctx context.Context, deviceID string, session common.Session, chatID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrBadRequest.WithDetails("Message text is required.")
	}
	st := s.stores.For(deviceID)
	p, err := s.participant(ctx, st, session, chatID)
	if err != nil || p == nil {
		return nil, err
	}

	msg := domain.ChatMessage{Sender: domain.SenderUser, Text: text, Timestamp: s.now().UnixMilli()}
	var snapshot []domain.ChatMessage
	_, err = st.ChatHistories.Update(ctx, func(h store.ChatHistories) (store.ChatHistories, error) {
		if h == nil {
			h = store.ChatHistories{}
		}
		h[chatID] = append(h[chatID], msg)
		snapshot = slices.Clone(h[chatID])
		return h, nil
	})
	if err != nil {
		return nil, err
	}

	s.scheduleReply(deviceID, chatID, *p, snapshot)
	return &msg, nil
}

func (s *service) scheduleReply(deviceID, chatID string, p domain.Provider, history []domain.ChatMessage) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	key := pendingKey{deviceID: deviceID, chatID: chatID}
	ctx, cancel := context.WithCancel(context.Background())
	s.seq++
	id := s.seq
	if s.pending[key] == nil {
		s.pending[key] = make(map[int]context.CancelFunc)
	}
	s.pending[key][id] = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.forget(key, id)

		timer := time.NewTimer(s.delay())
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.Debug("Pending reply cancelled", zap.String("chat_id", chatID))
			return
		case <-timer.C:
		}

		reply := s.replies.ProviderReply(ctx, p, history)
		if reply == "" || ctx.Err() != nil {
			return
		}
		st := s.stores.For(deviceID)
		_, _ = st.ChatHistories.Update(ctx, func(h store.ChatHistories) (store.ChatHistories, error) {
			if h == nil {
				h = store.ChatHistories{}
			}
			h[chatID] = append(h[chatID], domain.ChatMessage{Sender: domain.SenderProvider, Text: reply, Timestamp: s.now().UnixMilli()})
			return h, nil
		})
		s.logger.Debug("Provider reply appended", zap.String("device_id", deviceID), zap.String("chat_id", chatID))
	}()
}

func (s *service) forget(key pendingKey, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.pending[key][id]; ok {
		cancel()
		delete(s.pending[key], id)
	}
	if len(s.pending[key]) == 0 {
		delete(s.pending, key)
	}
}

func (s *service) Close(_ context.Context, deviceID, chatID string) {
	if !s.cancelOnClose {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pendingKey{deviceID: deviceID, chatID: chatID}
	for _, cancel := range s.pending[key] {
		cancel()
	}
}

func (s *service) Shutdown() {
	s.mu.Lock()
	s.closed = true
	for _, byID := range s.pending {
		for _, cancel := range byID {
			cancel()
		}
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *service) View(ctx context.Context, deviceID, chatID string) (*AdminThread, error) {
	userID, providerID, ok := domain.ParseChatID(chatID)
	if !ok {
		return nil, common.ErrBadRequest.WithDetails("Invalid chat ID.")
	}
	st := s.stores.For(deviceID)
	u, foundUser := st.Users.Find(ctx, func(u domain.User) bool { return u.ID == userID })
	p, foundProvider := st.Providers.Find(ctx, func(p domain.Provider) bool { return p.ID == providerID })
	if !foundUser || !foundProvider {
		s.logger.Debug("Chat participants no longer exist", zap.String("chat_id", chatID))
		return nil, nil
	}
	return &AdminThread{
		Thread: Thread{ChatID: chatID, Provider: p, Messages: messagesOf(st.ChatHistories.Get(ctx), chatID)},
		User:   u,
	}, nil
}

func (s *service) List(ctx context.Context, deviceID string) []Summary {
	histories := s.stores.For(deviceID).ChatHistories.Get(ctx)
	out := make([]Summary, 0, len(histories))
	for id, msgs := range histories {
		userID, providerID, ok := domain.ParseChatID(id)
		if !ok {
			continue
		}
		sum := Summary{ChatID: id, UserID: userID, ProviderID: providerID, MessageCount: len(msgs)}
		if len(msgs) > 0 {
			sum.LastMessage = msgs[len(msgs)-1].Timestamp
		}
		out = append(out, sum)
	}
	slices.SortFunc(out, func(a, b Summary) int {
		if a.LastMessage != b.LastMessage {
			if a.LastMessage > b.LastMessage {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ChatID, b.ChatID)
	})
	return out
}

func messagesOf(h store.ChatHistories, chatID string) []domain.ChatMessage {
	if msgs := h[chatID]; msgs != nil {
		return msgs
	}
	return []domain.ChatMessage{}
}
