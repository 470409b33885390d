package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"lsers_hub_backend/internal/platform/kv"

	"go.uber.org/zap"
)

const devicePrefix = "dev/"

// Manager owns one Store per device id. Each device sees only its own namespace.
type Manager struct {
	backend kv.Backend
	logger  *zap.Logger
	ids     *IDGenerator
	now     func() time.Time

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a new store manager on top of backend.
func NewManager(backend kv.Backend, logger *zap.Logger) *Manager {
	return &Manager{
		backend: backend,
		logger:  logger.Named("store"),
		ids:     NewIDGenerator(time.Now),
		now:     time.Now,
		stores:  make(map[string]*Store),
	}
}

// For returns the store of deviceID, creating it lazily.
func (m *Manager) For(deviceID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[deviceID]; ok {
		return s
	}
	s := New(kv.WithPrefix(m.backend, devicePrefix+deviceID+"/"), m.ids, m.now,
		m.logger.With(zap.String("device_id", deviceID)))
	m.stores[deviceID] = s
	return s
}

// Devices lists every device id with at least one durable slot.
func (m *Manager) Devices(ctx context.Context) ([]string, error) {
	keys, err := m.backend.Keys(ctx, devicePrefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, k := range keys {
		rest := strings.TrimPrefix(k, devicePrefix)
		id, _, ok := strings.Cut(rest, "/")
		if !ok || id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
