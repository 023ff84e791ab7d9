package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsertPlan persists a plan record, assigning an ID when missing.
func (s *Store) InsertPlan(ctx context.Context, p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(p).Error
}

// LatestPlan returns the most recently created plan, or nil when the user
// has never generated one.
func (s *Store) LatestPlan(ctx context.Context, userID string) (*Plan, error) {
	var p Plan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
