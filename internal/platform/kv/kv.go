// Package kv is the durable slot layer: one opaque value per string key.
//
// It stands in for browser key-value storage. Callers serialize whole
// collections into a slot and rewrite the slot on every mutation.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key has never been written or was deleted.
	ErrNotFound = errors.New("kv: key not found")
	// ErrQuotaExceeded is returned by Set when the value is larger than the configured slot quota.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Backend stores raw slot values.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type prefixed struct {
	inner  Backend
	prefix string
}

// WithPrefix namespaces every key under prefix. Keys returned by Keys have the prefix stripped.
func WithPrefix(b Backend, prefix string) Backend {
	return &prefixed{inner: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.inner.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, p.prefix))
	}
	return out, nil
}

type quota struct {
	Backend
	maxBytes int
}

// WithQuota rejects writes larger than maxBytes with ErrQuotaExceeded. maxBytes <= 0 disables the check.
func WithQuota(b Backend, maxBytes int) Backend {
	if maxBytes <= 0 {
		return b
	}
	return &quota{Backend: b, maxBytes: maxBytes}
}

func (q *quota) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > q.maxBytes {
		return fmt.Errorf("%w: slot %q needs %d bytes, limit is %d", ErrQuotaExceeded, key, len(value), q.maxBytes)
	}
	return q.Backend.Set(ctx, key, value)
}
