package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTopics returns every topic for a user regardless of status.
func (s *Store) ListTopics(ctx context.Context, userID string) ([]Topic, error) {
	var topics []Topic
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&topics).Error
	return topics, err
}

// ListPendingTopics returns the planner's input set: topics still pending.
func (s *Store) ListPendingTopics(ctx context.Context, userID string) ([]Topic, error) {
	var topics []Topic
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, TopicPending).
		Order("created_at ASC").
		Find(&topics).Error
	return topics, err
}

// TopicsForSubject returns all topics under one subject, oldest first.
func (s *Store) TopicsForSubject(ctx context.Context, userID, subjectID string) ([]Topic, error) {
	var topics []Topic
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("created_at ASC").
		Find(&topics).Error
	return topics, err
}

// TopicByID fetches a single topic scoped to the user.
func (s *Store) TopicByID(ctx context.Context, userID, id string) (*Topic, error) {
	var t Topic
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// CreateTopic inserts a new topic in pending status.
func (s *Store) CreateTopic(ctx context.Context, t *Topic) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TopicPending
	}
	if t.PriorityOverride == 0 {
		t.PriorityOverride = 1.0
	}
	t.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(t).Error
}

// UpdateTopic persists edits to title, estimate and priority override.
func (s *Store) UpdateTopic(ctx context.Context, t *Topic) error {
	res := s.db.WithContext(ctx).
		Model(&Topic{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{
			"title":             t.Title,
			"estimated_minutes": t.EstimatedMinutes,
			"priority_override": t.PriorityOverride,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleTopicStatus flips a topic between pending and completed and
// returns the new status.
func (s *Store) ToggleTopicStatus(ctx context.Context, userID, id string) (string, error) {
	t, err := s.TopicByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	next := TopicCompleted
	if t.Status == TopicCompleted {
		next = TopicPending
	}
	err = s.db.WithContext(ctx).
		Model(&Topic{}).
		Where("id = ?", id).
		Update("status", next).Error
	return next, err
}

// DeleteTopic removes a topic and its sessions.
func (s *Store) DeleteTopic(ctx context.Context, userID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Topic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("topic_id = ? AND user_id = ?", id, userID).Delete(&Session{}).Error
	})
}
