package models

import "time"

// Session is a persisted browser session: the bearer token issued by the
// backend plus a cached copy of the user behind it. This is the server-side
// equivalent of the browser's local storage; the browser itself only holds
// the opaque SID cookie.
//
// Token may be empty while UserID is set: a legacy record bootstrapped from
// a cached user without a token, restorable only as a degraded session.
type Session struct {
	SID       string `gorm:"primaryKey;size:36"`
	Token     string `gorm:"size:2048"`
	UserID    int64
	Email     string `gorm:"size:255"`
	Name      *string
	AvatarURL *string
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}
