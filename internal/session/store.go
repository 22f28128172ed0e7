package session

import (
	"context"
	"errors"
	"time"

	"github.com/adwyte/synergysphere-web/internal/models"
	"gorm.io/gorm"
)

// Store persists session records. The gorm implementation backs production;
// tests substitute an in-memory one.
type Store interface {
	Save(ctx context.Context, rec *models.Session) error
	// Find returns (nil, nil) when no record exists for sid.
	Find(ctx context.Context, sid string) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
	// PurgeExpired removes records past their expiry and reports how many.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, rec *models.Session) error {
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *GormStore) Find(ctx context.Context, sid string) (*models.Session, error) {
	var rec models.Session
	err := s.db.WithContext(ctx).First(&rec, "sid = ?", sid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) Delete(ctx context.Context, sid string) error {
	return s.db.WithContext(ctx).Delete(&models.Session{}, "sid = ?", sid).Error
}

func (s *GormStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Session{}, "expires_at < ?", now)
	return res.RowsAffected, res.Error
}
