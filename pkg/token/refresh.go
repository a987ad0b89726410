package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const refreshTokenBytes = 32

// Refresh - выданный клиенту токен и его хеш для хранения в сессии.
// В хранилище попадает только Hash
type Refresh struct {
	Token string
	Hash  string
}

func NewRefresh() (Refresh, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return Refresh{}, fmt.Errorf("generate refresh token: %w", err)
	}

	raw := base64.RawURLEncoding.EncodeToString(b)
	return Refresh{Token: raw, Hash: hashRefresh(raw)}, nil
}

// MatchRefresh сравнивает предъявленный токен с сохраненным хешем за постоянное время
func MatchRefresh(presented, storedHash string) bool {
	if presented == "" || storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hashRefresh(presented)), []byte(storedHash)) == 1
}

func hashRefresh(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
