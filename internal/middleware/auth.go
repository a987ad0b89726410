package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/session"
	"vault_backend/pkg/resp"
	"vault_backend/pkg/token"
)

type ctxKey int

const claimsKey ctxKey = iota

// Auth проверяет Bearer токен и возраст сессии.
// Просроченная сессия отклоняется на каждом запросе, не дожидаясь фонового обхода
func Auth(secretKey []byte, clock func() time.Time) func(http.Handler) http.Handler {
	if clock == nil {
		clock = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				resp.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "Unauthorized", "invalid access token")
				return
			}

			userID, err := token.UserID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "Unauthorized", "invalid access token")
				return
			}

			verdict := session.Check(model.SessionRecord{
				UserID:  userID,
				IsAdmin: claims.Admin,
				LoginAt: token.LoginTime(claims),
			}, clock())
			if verdict.Expired {
				resp.WriteError(w, http.StatusUnauthorized, "SessionExpired", verdict.Err().Error())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly Должен стоять после Auth
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.Admin {
			resp.WriteError(w, http.StatusForbidden, "Forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*model.UserClaims)
	return claims, ok
}

// UserIDFromContext ID пользователя, прошедшего Auth
func UserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, errors.New("no auth claims in context")
	}
	return token.UserID(claims)
}

// WithClaims кладет claims в контекст, используется в тестах обработчиков
func WithClaims(ctx context.Context, claims *model.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}
