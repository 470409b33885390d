package booking

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/rewards"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockThreadOpener struct {
	mock.Mock
}

func (m *MockThreadOpener) Open(ctx context.Context, deviceID string, session common.Session, providerID int64, systemText string) (*chat.Thread, error) {
	args := m.Called(ctx, deviceID, session, providerID, systemText)
	thread, _ := args.Get(0).(*chat.Thread)
	return thread, args.Error(1)
}

type fixture struct {
	svc     Service
	stores  *store.Manager
	chats   *MockThreadOpener
	rewards rewards.Service
}

var session = common.Session{DeviceID: "d", Unlocked: true, UserID: 1, UserName: "Test User", Role: domain.RoleUser}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := store.NewManager(kv.NewMemoryBackend(), zap.NewNop())
	points := rewards.NewService(stores, zap.NewNop())
	chats := new(MockThreadOpener)
	categories := category.NewService(category.NewStaticRepository(), zap.NewNop())
	return &fixture{
		svc:     NewService(stores, categories, chats, points, config.Default(), zap.NewNop()),
		stores:  stores,
		chats:   chats,
		rewards: points,
	}
}

func (f *fixture) setPhone(t *testing.T, providerID int64, phone string) {
	t.Helper()
	_, err := f.stores.For("d").Providers.Update(context.Background(), func(ps []domain.Provider) ([]domain.Provider, error) {
		for i := range ps {
			if ps[i].ID == providerID {
				ps[i].Phone = phone
			}
		}
		return ps, nil
	})
	require.NoError(t, err)
}

func sampleRequest() Request {
	return Request{
		ProviderID:   2,
		CustomerName: "Test User",
		Date:         "2024-07-15",
		Time:         "Morning (8AM-12PM)",
		Description:  "Fix the kitchen sink",
	}
}

func TestWhatsAppHandoff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setPhone(t, 2, "0776966080")

	choice, err := f.svc.Submit(ctx, session, sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), choice.Provider.ID)

	conf, err := f.svc.ChooseWhatsApp(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Confirm Booking", conf.Title)
	assert.Equal(t, "Finalize session with "+choice.Provider.Name, conf.Subtitle)
	assert.Equal(t, []Detail{
		{Label: "Category", Value: choice.Provider.Category},
		{Label: "Date", Value: "2024-07-15"},
		{Label: "Slot", Value: "Morning (8AM-12PM)"},
	}, conf.Details)
	assert.Equal(t, 25, conf.PointsEarned)

	assert.True(t, strings.HasPrefix(conf.WhatsAppLink, "https://wa.me/0776966080?text="))
	u, err := url.Parse(conf.WhatsAppLink)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "📅 Date: 2024-07-15")

	// Building the link credits nothing.
	assert.Equal(t, store.DefaultPoints, f.rewards.Balance(ctx, "d"))

	done, err := f.svc.Confirm(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultPoints+25, done.Balance)
	assert.Equal(t, conf.WhatsAppLink, done.WhatsAppLink)
	assert.Equal(t, "Upcoming", done.History.Status)

	_, err = f.svc.Confirm(ctx, "d")
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, store.DefaultPoints+25, f.rewards.Balance(ctx, "d"))

	history := f.svc.History(ctx, "d")
	assert.Equal(t, done.History.ID, history[0].ID)
	f.chats.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInAppChoiceOpensChatWithSystemMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	thread := &chat.Thread{ChatID: "u1-p2"}
	f.chats.On("Open", mock.Anything, "d", session, int64(2),
		"Request: Fix the kitchen sink on 2024-07-15 (Morning (8AM-12PM))").Return(thread, nil)

	_, err := f.svc.Submit(ctx, session, sampleRequest())
	require.NoError(t, err)
	res, err := f.svc.ChooseInApp(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "u1-p2", res.Thread.ChatID)
	f.chats.AssertExpectations(t)

	choice, conf := f.svc.Pending("d")
	assert.Nil(t, choice)
	assert.Nil(t, conf)
	assert.Equal(t, store.DefaultPoints, f.rewards.Balance(ctx, "d"))
}

func TestCancelAtChoiceCreatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Submit(ctx, session, sampleRequest())
	require.NoError(t, err)
	f.svc.Cancel("d")

	_, err = f.svc.ChooseInApp(ctx, session)
	assert.ErrorIs(t, err, common.ErrConflict)
	_, err = f.svc.ChooseWhatsApp(ctx, session)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, store.DefaultPoints, f.rewards.Balance(ctx, "d"))
	assert.Empty(t, f.stores.For("d").ChatHistories.Get(ctx))
	f.chats.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Submit(ctx, common.Session{DeviceID: "d"}, sampleRequest())
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	req := sampleRequest()
	req.ProviderID = 999999
	_, err = f.svc.Submit(ctx, session, req)
	assert.ErrorIs(t, err, common.ErrNotFound)

	req = sampleRequest()
	req.CustomerName = ""
	choice, err := f.svc.Submit(ctx, session, req)
	require.NoError(t, err)
	assert.Equal(t, "Test User", choice.Request.CustomerName)
}

func TestWhatsAppMessage(t *testing.T) {
	msg := WhatsAppMessage(sampleRequest())
	assert.Equal(t, "🔥 NEW HUB BOOKING - LSERS\n\n📅 Date: 2024-07-15\n⏰ Time: Morning (8AM-12PM)\n👤 Client: Test User\n📝 Task: Fix the kitchen sink", msg)
}
