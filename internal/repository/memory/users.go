package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"vault_backend/internal/model"

	"github.com/shopspring/decimal"
)

// UserRepo - пользователи в памяти процесса.
// Условное обновление спина выполняется под одной блокировкой, поэтому атомарно
type UserRepo struct {
	mtx    sync.RWMutex
	nextID int
	users  map[int]model.User
	emails map[string]int
}

func NewUserRepository() *UserRepo {
	return &UserRepo{
		nextID: 1,
		users:  make(map[int]model.User),
		emails: make(map[string]int),
	}
}

func (r *UserRepo) CreateUser(_ context.Context, user *model.User) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.emails[key]; ok {
		return 0, model.ErrEmailTaken
	}

	u := *user
	u.ID = r.nextID
	u.Version = 1
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.nextID++

	r.users[u.ID] = u
	r.emails[key] = u.ID
	return u.ID, nil
}

// GetUserByID Возвращает копию записи
func (r *UserRepo) GetUserByID(_ context.Context, id int) (*model.User, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	id, ok := r.emails[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *UserRepo) ListPlayers(_ context.Context) ([]model.User, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	players := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if !u.IsAdmin {
			players = append(players, u)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (r *UserRepo) UpdateBalance(_ context.Context, id int, balance decimal.Decimal) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Balance = balance
	u.Version++
	r.users[id] = u
	return nil
}

func (r *UserRepo) UpdateEmail(_ context.Context, id int, email string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	key := strings.ToLower(email)
	if owner, taken := r.emails[key]; taken && owner != id {
		return model.ErrEmailTaken
	}

	delete(r.emails, strings.ToLower(u.Email))
	u.Email = email
	u.Version++
	r.users[id] = u
	r.emails[key] = id
	return nil
}

func (r *UserRepo) UpdateSpinState(_ context.Context, id int, expectedVersion int64, balance decimal.Decimal, state model.SpinState) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	if u.Version != expectedVersion {
		return model.ErrPersistenceConflict
	}

	u.Balance = balance
	u.Spin = state
	u.Version++
	r.users[id] = u
	return nil
}
