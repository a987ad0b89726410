package otp_repo

import (
	"context"
	"sync"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 10_000

// lruRepo - коды в памяти процесса. Размер ограничен, самые старые вытесняются.
// Срок жизни проверяется при чтении
type lruRepo struct {
	mtx   sync.Mutex
	cache *lru.Cache[string, model.OTPEntry]
	now   func() time.Time
}

func NewLRURepository(size int, now func() time.Time) (repository.OTPRepository, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if now == nil {
		now = time.Now
	}
	cache, err := lru.New[string, model.OTPEntry](size)
	if err != nil {
		return nil, err
	}
	return &lruRepo{cache: cache, now: now}, nil
}

func (r *lruRepo) Put(_ context.Context, key string, entry model.OTPEntry, ttl time.Duration) error {
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = r.now().Add(ttl)
	}
	r.cache.Add(key, entry)
	return nil
}

func (r *lruRepo) Get(_ context.Context, key string) (*model.OTPEntry, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entry, ok := r.cache.Get(key)
	if !ok {
		return nil, model.ErrOTPNotFound
	}
	if entry.Expired(r.now()) {
		r.cache.Remove(key)
		return nil, model.ErrOTPNotFound
	}
	return &entry, nil
}

func (r *lruRepo) Delete(_ context.Context, key string) error {
	r.cache.Remove(key)
	return nil
}
