package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"vault_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken - access токен с временем логина сессии.
// loginAt переносится из сессии при каждом refresh и не сдвигается.
func GenerateAccessToken(info *model.User, loginAt time.Time, secretKey []byte, ttl time.Duration) (string, error) {
	claims := model.UserClaims{
		LoginAt: loginAt.UnixMilli(),
		Admin:   info.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(info.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// UserID достает ID пользователя из claims
func UserID(claims *model.UserClaims) (int, error) {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("invalid subject: %w", err)
	}
	return id, nil
}

// LoginTime - время логина из claims
func LoginTime(claims *model.UserClaims) time.Time {
	if claims.LoginAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(claims.LoginAt)
}
