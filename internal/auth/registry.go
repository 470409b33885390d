package auth

import (
	"context"
	"slices"
	"strings"
	"sync"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/store"

	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

// hasher wraps bcrypt so the cost can follow configuration.
type hasher struct {
	cost int

	once        sync.Once
	defaultHash string
}

func newHasher(cost int) *hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &hasher{cost: cost}
}

func (h *hasher) hash(pin string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *hasher) matches(hash, pin string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// seededHash is the hash of the shared demo PIN, computed once.
func (h *hasher) seededHash() string {
	h.once.Do(func() {
		// bcrypt only fails on an out-of-range cost, which newHasher rules out.
		h.defaultHash, _ = h.hash(defaultPin)
	})
	return h.defaultHash
}

// registry merges seeded accounts with the accounts registered on a device.
type registry struct {
	st     *store.Store
	hasher *hasher
	logger *zap.Logger
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *registry) all(ctx context.Context) map[string]domain.RegisteredUser {
	out := make(map[string]domain.RegisteredUser)
	for _, u := range store.DefaultUsers() {
		out[registryKey(u.Name)] = domain.RegisteredUser{
			Name:              u.Name,
			PinHash:           r.hasher.seededHash(),
			SecurityQuestions: append([]domain.SecurityQuestionAnswer(nil), defaultRecovery...),
		}
	}
	for _, u := range r.st.UserRegistry.All(ctx) {
		out[registryKey(u.Name)] = u
	}
	return out
}

func (r *registry) find(ctx context.Context, name string) (domain.RegisteredUser, bool) {
	u, ok := r.all(ctx)[registryKey(name)]
	return u, ok
}

// save replaces any local entry with the same name and records the device credentials.
func (r *registry) save(ctx context.Context, name, pin string, questions []domain.SecurityQuestionAnswer) error {
	hash, err := r.hasher.hash(pin)
	if err != nil {
		return err
	}
	entry := domain.RegisteredUser{Name: name, PinHash: hash, SecurityQuestions: slices.Clone(questions)}
	_, _ = r.st.UserRegistry.Update(ctx, func(list []domain.RegisteredUser) ([]domain.RegisteredUser, error) {
		kept := list[:0]
		for _, u := range list {
			if registryKey(u.Name) != registryKey(name) {
				kept = append(kept, u)
			}
		}
		return append(kept, entry), nil
	})
	r.st.Pin.Save(ctx, hash)
	r.st.UserName.Save(ctx, name)
	return nil
}
