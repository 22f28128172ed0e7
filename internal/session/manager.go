package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adwyte/synergysphere-web/internal/models"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSession means the caller has no usable session: no record, an expired
// record, or a record the backend no longer recognizes.
var ErrNoSession = errors.New("no active session")

// AuthError carries a credential rejection from the backend. Its message is
// the backend's verbatim detail so the UI shows the same text the API sent.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// AuthAPI is the slice of the upstream client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	Signup(ctx context.Context, name, email, password string) (*upstream.User, error)
	Me(ctx context.Context, token string) (*upstream.User, error)
}

// Session is the live view of a persisted record. Degraded marks a session
// restored from a record that has a cached user but no token; reads that
// only need identity still work, authenticated calls will not.
type Session struct {
	SID      string
	Token    string
	User     upstream.User
	Degraded bool
}

// Manager owns the login/signup/logout/restore lifecycle. It is the
// server-side stand-in for what a browser keeps in local storage: one
// record per SID holding the token and the last known user.
type Manager struct {
	api   AuthAPI
	store Store
	ttl   time.Duration
}

func NewManager(api AuthAPI, store Store, ttl time.Duration) *Manager {
	return &Manager{api: api, store: store, ttl: ttl}
}

// Login authenticates against the backend and persists token and user
// together under a fresh SID. Nothing is stored on failure.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, credentialError(err)
	}
	return m.persist(ctx, res.AccessToken, res.User)
}

// Signup registers the account and then logs in with the same credentials,
// so a successful signup always yields a ready session. If the follow-up
// login fails the account exists but no session is stored.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	if _, err := m.api.Signup(ctx, name, email, password); err != nil {
		return nil, credentialError(err)
	}
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("account created but login failed: %w", err)
	}
	return m.persist(ctx, res.AccessToken, res.User)
}

// Logout drops the record for sid. It never fails: a missing record and a
// store error both leave the caller logged out, which is the point.
func (m *Manager) Logout(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		logger.Warn().Err(err).Str("sid", sid).Msg("session delete failed during logout")
	}
}

// Restore loads the record for sid and revalidates it against the backend.
// The record is cleared only when it is expired or the backend rejects the
// token; a network failure leaves it in place for the next attempt. A record
// with a cached user but no token comes back as a degraded session without
// touching the network.
func (m *Manager) Restore(ctx context.Context, sid string) (*Session, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	rec, err := m.store.Find(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return nil, ErrNoSession
	}
	now := time.Now()
	if now.After(rec.ExpiresAt) {
		m.clear(ctx, sid)
		return nil, ErrNoSession
	}
	if rec.Token == "" {
		if rec.UserID == 0 {
			m.clear(ctx, sid)
			return nil, ErrNoSession
		}
		return recordToSession(rec, true), nil
	}
	if tokenExpired(rec.Token, now) {
		m.clear(ctx, sid)
		return nil, ErrNoSession
	}

	user, err := m.api.Me(ctx, rec.Token)
	if err != nil {
		if upstream.IsAuthFailure(err) {
			m.clear(ctx, sid)
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("validate session: %w", err)
	}

	rec.UserID = user.ID
	rec.Email = user.Email
	rec.Name = user.Name
	rec.AvatarURL = user.AvatarURL
	if err := m.store.Save(ctx, rec); err != nil {
		logger.Warn().Err(err).Str("sid", sid).Msg("session refresh save failed")
	}
	return recordToSession(rec, false), nil
}

// PurgeExpired removes stale records; wired to the cron schedule.
func (m *Manager) PurgeExpired(ctx context.Context) {
	n, err := m.store.PurgeExpired(ctx, time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("session purge failed")
		return
	}
	if n > 0 {
		logger.Info().Int64("purged", n).Msg("expired sessions removed")
	}
}

func (m *Manager) persist(ctx context.Context, token string, user upstream.User) (*Session, error) {
	rec := &models.Session{
		SID:       uuid.NewString(),
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return recordToSession(rec, false), nil
}

func (m *Manager) clear(ctx context.Context, sid string) {
	if err := m.store.Delete(ctx, sid); err != nil {
		logger.Warn().Err(err).Str("sid", sid).Msg("session clear failed")
	}
}

func recordToSession(rec *models.Session, degraded bool) *Session {
	return &Session{
		SID:   rec.SID,
		Token: rec.Token,
		User: upstream.User{
			ID:        rec.UserID,
			Email:     rec.Email,
			Name:      rec.Name,
			AvatarURL: rec.AvatarURL,
		},
		Degraded: degraded,
	}
}

// credentialError re-tags 4xx rejections from login/signup as AuthError so
// handlers can show the backend's message; anything else passes through.
func credentialError(err error) error {
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Status >= 400 && ue.Status < 500 {
		return &AuthError{Message: ue.Body, Err: err}
	}
	return err
}

// tokenExpired reports whether token parses as a JWT whose exp has passed.
// The signature is not checked; this is only a shortcut to skip a backend
// round trip for a token that cannot possibly be accepted. Opaque tokens
// and tokens without exp are never treated as expired here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
