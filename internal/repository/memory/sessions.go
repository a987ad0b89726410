package memory

import (
	"context"
	"sync"
	"vault_backend/internal/model"
)

type AuthRepo struct {
	mtx      sync.RWMutex
	sessions map[string]model.Session
	users    *UserRepo
}

func NewAuthRepository(users *UserRepo) *AuthRepo {
	return &AuthRepo{
		sessions: make(map[string]model.Session),
		users:    users,
	}
}

func (r *AuthRepo) CreateSession(_ context.Context, session *model.Session) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.sessions[session.ID] = *session
	return nil
}

func (r *AuthRepo) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &s, nil
}

func (r *AuthRepo) GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (string, error) {
	s, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return s.RefreshToken, nil
}

// DeleteSession Удаление отсутствующей сессии не считается ошибкой
func (r *AuthRepo) DeleteSession(_ context.Context, sessionID string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *AuthRepo) GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error) {
	s, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return r.users.GetUserByID(ctx, s.UserID)
}

func (r *AuthRepo) ListSessions(_ context.Context) ([]model.Session, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	sessions := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions, nil
}
