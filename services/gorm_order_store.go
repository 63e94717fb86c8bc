package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kendall-kelly/coffee-shop-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderStore implements OrderStore on a gorm database. It is meant to run
// on an in-memory SQLite database, so orders are gone when the process exits.
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore migrates the orders and sessions tables and returns a store backed by db
func NewGormOrderStore(db *gorm.DB) (*GormOrderStore, error) {
	if err := db.AutoMigrate(&models.Order{}, &models.Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate order tables: %w", err)
	}
	return &GormOrderStore{db: db}, nil
}

// Append stores order as the newest entry of the session's log
func (s *GormOrderStore) Append(ctx context.Context, sessionID string, order models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count session orders: %w", err)
		}

		order.SessionID = sessionID
		order.Seq = uint(count) + 1
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		session := models.Session{ID: sessionID, LastSeenAt: order.CreatedAt}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
		}).Create(&session).Error; err != nil {
			return fmt.Errorf("failed to record session activity: %w", err)
		}
		return nil
	})
}

// Latest returns the session's most recent order
func (s *GormOrderStore) Latest(ctx context.Context, sessionID string) (models.Order, bool, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq DESC").
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, false, nil
	}
	if err != nil {
		return models.Order{}, false, fmt.Errorf("failed to fetch latest order: %w", err)
	}
	return order, true, nil
}

// Count returns how many orders the session has placed
func (s *GormOrderStore) Count(ctx context.Context, sessionID string) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return int(count), nil
}

// List returns the session's orders, most recent first
func (s *GormOrderStore) List(ctx context.Context, sessionID string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// Touch moves the session's last activity forward; unknown sessions are ignored
func (s *GormOrderStore) Touch(ctx context.Context, sessionID string, at time.Time) error {
	if err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND last_seen_at < ?", sessionID, at).
		Update("last_seen_at", at).Error; err != nil {
		return fmt.Errorf("failed to record session activity: %w", err)
	}
	return nil
}

// Expire deletes the orders of every session idle since before cutoff
func (s *GormOrderStore) Expire(ctx context.Context, cutoff time.Time) (int, error) {
	var expired []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Session{}).Where("last_seen_at < ?", cutoff).Pluck("id", &expired).Error; err != nil {
			return fmt.Errorf("failed to find idle sessions: %w", err)
		}
		if len(expired) == 0 {
			return nil
		}
		if err := tx.Where("session_id IN ?", expired).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete idle session orders: %w", err)
		}
		if err := tx.Where("id IN ?", expired).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete idle sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}

// Discard deletes every order of the session
func (s *GormOrderStore) Discard(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to discard session orders: %w", err)
		}
		if err := tx.Where("id = ?", sessionID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to discard session: %w", err)
		}
		return nil
	})
}
