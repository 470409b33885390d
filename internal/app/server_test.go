package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lsers_hub_backend/internal/ai"
	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/auth"
	"lsers_hub_backend/internal/booking"
	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/favorites"
	"lsers_hub_backend/internal/jobs"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/product"
	"lsers_hub_backend/internal/property"
	"lsers_hub_backend/internal/provider"
	"lsers_hub_backend/internal/review"
	"lsers_hub_backend/internal/rewards"
	"lsers_hub_backend/internal/sitecontent"
	"lsers_hub_backend/internal/store"
	"lsers_hub_backend/internal/upload"
	"lsers_hub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// envelope mirrors common.Envelope with the payload left raw.
type envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		TotalItems int64 `json:"total_items"`
	} `json:"pagination"`
}

// setupTestApp wires the full router against an in-memory backend and the offline AI collaborator.
func setupTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.GinMode = gin.TestMode
	cfg.PinHashCost = bcrypt.MinCost
	logger := zap.NewNop()

	manager := store.NewManager(kv.NewMemoryBackend(), logger)
	userService := user.NewService(user.NewStoreRepository(manager), cfg, logger)
	authService := auth.NewService(manager, userService, cfg, logger)
	categoryService := category.NewService(category.NewStaticRepository(), logger)
	assetService := assets.NewService(manager, logger)
	reviewService := review.NewService(manager, logger)
	providerService := provider.NewService(manager, assetService, categoryService, reviewService, cfg, logger)
	productService := product.NewService(manager, assetService, logger)
	aiService := ai.NewService(ai.NewNopCollaborator(), categoryService, cfg, logger)
	chatService := chat.NewService(manager, aiService, cfg, logger, chat.WithDelay(func() time.Duration { return time.Millisecond }))
	t.Cleanup(chatService.Shutdown)
	rewardsService := rewards.NewService(manager, logger)
	bookingService := booking.NewService(manager, categoryService, chatService, rewardsService, cfg, logger)
	favoritesService := favorites.NewService(manager, logger)
	siteService := sitecontent.NewService(manager, logger)
	propertyService := property.NewService(property.NewStaticRepository(), logger)
	imageService := upload.NewImageService(assetService, cfg, logger)

	handlers := &Handlers{
		Auth:        auth.NewHandler(authService, logger),
		User:        user.NewHandler(userService, authService, logger),
		Category:    category.NewHandler(categoryService, logger),
		Provider:    provider.NewHandler(providerService, logger),
		Review:      review.NewHandler(reviewService, logger),
		Product:     product.NewHandler(productService, logger),
		Booking:     booking.NewHandler(bookingService, logger),
		Chat:        chat.NewHandler(chatService, logger),
		Favorites:   favorites.NewHandler(favoritesService, logger),
		Rewards:     rewards.NewHandler(rewardsService, logger),
		AI:          ai.NewHandler(aiService, logger),
		SiteContent: sitecontent.NewHandler(siteService, logger),
		Property:    property.NewHandler(propertyService, logger),
		Upload:      upload.NewHandler(imageService, assetService, logger),
	}
	sweep := jobs.NewAssetSweepJob(manager, assetService, logger, cfg)

	server, err := NewServer(cfg, logger, handlers, authService, chatService, sweep)
	require.NoError(t, err)
	return server.Router()
}

func doRequest(t *testing.T, router *gin.Engine, method, path, deviceID string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// login walks the gate as a seeded account using the shared demo PIN.
func login(t *testing.T, router *gin.Engine, deviceID, name string) auth.GateView {
	t.Helper()
	w, _ := doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/login", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/name", deviceID, auth.NameRequest{Name: name})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/submit", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, d := range "1234" {
		w, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/digit", deviceID, auth.DigitRequest{Digit: string(d)})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, env := doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/submit", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view auth.GateView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}

func TestHealthSkipsDeviceHeader(t *testing.T) {
	router := setupTestApp(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeviceHeaderRequired(t *testing.T) {
	router := setupTestApp(t)

	t.Run("missing", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/categories", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("malformed", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/categories", "bad id!", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("present", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/categories", "device-integration-1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProvidersListingIsPublic(t *testing.T) {
	router := setupTestApp(t)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/providers?category=electrician&page=1&page_size=5", "device-integration-2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.Pagination)
	assert.Greater(t, env.Pagination.TotalItems, int64(0))

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 5)
}

func TestProvidersListingRequiresCategory(t *testing.T) {
	router := setupTestApp(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/providers", "device-integration-7", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLockedDeviceCannotBook(t *testing.T) {
	router := setupTestApp(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/bookings/history", "device-integration-3", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateLoginAndBookingFlow(t *testing.T) {
	router := setupTestApp(t)
	deviceID := "device-integration-4"

	view := login(t, router, deviceID, "Test User")
	require.True(t, view.Unlocked)
	require.NotNil(t, view.User)
	assert.Equal(t, "Test User", view.User.Name)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/points", deviceID, nil)
	var before rewards.BalanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &before))

	w, _ := doRequest(t, router, http.MethodPost, "/api/v1/bookings", deviceID, booking.Request{
		ProviderID:  1,
		Date:        "2026-11-02",
		Time:        "Morning",
		Description: "Rewire the kitchen",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/bookings/whatsapp", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmation booking.Confirmation
	require.NoError(t, json.Unmarshal(env.Data, &confirmation))
	assert.Contains(t, confirmation.WhatsAppLink, "https://wa.me/")

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/bookings/confirm", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmed booking.Confirmed
	require.NoError(t, json.Unmarshal(env.Data, &confirmed))
	assert.Equal(t, before.Points+confirmed.PointsEarned, confirmed.Balance)

	// A second confirm has nothing in flight.
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/bookings/confirm", deviceID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/points", deviceID, nil)
	var after rewards.BalanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Equal(t, confirmed.Balance, after.Points)
}

func TestGateRejectsWrongPin(t *testing.T) {
	router := setupTestApp(t)
	deviceID := "device-integration-5"

	doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/login", deviceID, nil)
	doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/name", deviceID, auth.NameRequest{Name: "John Doe"})
	doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/submit", deviceID, nil)
	for _, d := range "9999" {
		doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/digit", deviceID, auth.DigitRequest{Digit: string(d)})
	}
	w, env := doRequest(t, router, http.MethodPost, "/api/v1/auth/gate/submit", deviceID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view auth.GateView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.False(t, view.Unlocked)
	assert.Equal(t, auth.MsgIncorrectPin, view.Error)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router := setupTestApp(t)
	deviceID := "device-integration-6"

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/admin/providers", deviceID, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, router, deviceID, "John Doe")
	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/admin/providers", deviceID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/admin/chats", deviceID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
