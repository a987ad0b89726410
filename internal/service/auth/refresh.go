package auth

import (
	"context"
	"vault_backend/internal/model"
	"vault_backend/internal/session"
	"vault_backend/pkg/token"

	"go.uber.org/zap"
)

// Refresh выдает новый access токен. Время логина переносится из сессии,
// поэтому refresh не продлевает жизнь сессии сверх лимита
func (s *serv) Refresh(ctx context.Context, sessionID, refreshToken string) (*model.AuthData, error) {
	sess, err := s.authRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Верификация переданного refresh токена с хэшем из хранилища
	if !token.MatchRefresh(refreshToken, sess.RefreshToken) {
		return nil, model.ErrInvalidRefreshToken
	}

	now := s.clock()
	if now.After(sess.ExpiresAt) {
		_ = s.authRepo.DeleteSession(ctx, sessionID)
		return nil, model.ErrInvalidRefreshToken
	}

	// Проверка возраста сессии
	verdict := session.Check(sess.Record(), now)
	if verdict.Expired {
		if err := s.authRepo.DeleteSession(ctx, sessionID); err != nil {
			return nil, err
		}
		s.metrics.SessionExpired(verdict.Kind)
		s.log.Warn("session expired on refresh",
			zap.String("kind", verdict.Kind),
			zap.Int("user_id", sess.UserID),
		)
		return nil, verdict.Err()
	}

	user, err := s.userRepo.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	rec := session.Preserve(sess.Record(), model.SessionRecord{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		LoginAt: now,
	}, now)

	accessToken, err := token.GenerateAccessToken(
		user,
		rec.LoginAt,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken: accessToken,
		SessionID:   sessionID,
		User:        user,
	}, nil
}
