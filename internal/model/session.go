package model

import "time"

type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
	LoginAt      time.Time
	IsAdmin      bool
}

// SessionRecord - то, что нужно для проверки срока жизни сессии
type SessionRecord struct {
	UserID  int
	IsAdmin bool
	LoginAt time.Time
}

func (s *Session) Record() SessionRecord {
	return SessionRecord{
		UserID:  s.UserID,
		IsAdmin: s.IsAdmin,
		LoginAt: s.LoginAt,
	}
}
