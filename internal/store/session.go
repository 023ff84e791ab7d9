package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkInsertSessions writes a generated batch in one statement.
func (s *Store) BulkInsertSessions(ctx context.Context, sessions []Session) error {
	if len(sessions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(sessions, 200).Error
}

// SessionsOnDate returns all sessions falling on the given calendar date.
func (s *Store) SessionsOnDate(ctx context.Context, userID string, date time.Time) ([]Session, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	var sessions []Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, block ASC").
		Find(&sessions).Error
	return sessions, err
}

// SessionsForPlan returns the full batch generated for one plan, in the
// order it was produced.
func (s *Store) SessionsForPlan(ctx context.Context, userID, planID string) ([]Session, error) {
	var sessions []Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Order("date ASC, created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

// BacklogSessions returns skipped sessions, oldest first.
func (s *Store) BacklogSessions(ctx context.Context, userID string) ([]Session, error) {
	var sessions []Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, SessionSkipped).
		Order("date ASC").
		Find(&sessions).Error
	return sessions, err
}

// SessionByID fetches a session scoped to the user.
func (s *Store) SessionByID(ctx context.Context, userID, id string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sess).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sess, nil
}

// CompleteSession marks a session completed and appends a StudyLog in the
// same transaction.
func (s *Store) CompleteSession(ctx context.Context, userID, id string, actualMinutes int, notes string) error {
	sess, err := s.SessionByID(ctx, userID, id)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Session{}).Where("id = ?", id).Updates(map[string]any{
			"status":         SessionCompleted,
			"actual_minutes": actualMinutes,
			"notes":          notes,
			"completed_at":   now,
		}).Error
		if err != nil {
			return err
		}
		return tx.Create(&StudyLog{
			ID:            uuid.NewString(),
			UserID:        userID,
			SessionID:     id,
			SubjectID:     sess.SubjectID,
			TopicID:       sess.TopicID,
			ActualMinutes: actualMinutes,
			Notes:         notes,
			LoggedAt:      now,
		}).Error
	})
}

// SkipSession moves a session to the backlog.
func (s *Store) SkipSession(ctx context.Context, userID, id string) error {
	return s.updateSession(ctx, userID, id, map[string]any{"status": SessionSkipped})
}

// RescheduleSession moves a session to a new date and block and resets it
// to pending.
func (s *Store) RescheduleSession(ctx context.Context, userID, id string, date time.Time, block string) error {
	return s.updateSession(ctx, userID, id, map[string]any{
		"date":   date,
		"block":  block,
		"status": SessionPending,
	})
}

// SetSessionNotes replaces a session's notes.
func (s *Store) SetSessionNotes(ctx context.Context, userID, id, notes string) error {
	return s.updateSession(ctx, userID, id, map[string]any{"notes": notes})
}

func (s *Store) updateSession(ctx context.Context, userID, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompletedSessionDates returns the timestamps at which sessions were
// completed. The streak calculation reduces these to calendar days.
func (s *Store) CompletedSessionDates(ctx context.Context, userID string) ([]time.Time, error) {
	var stamps []time.Time
	err := s.db.WithContext(ctx).
		Model(&Session{}).
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL", userID, SessionCompleted).
		Order("completed_at DESC").
		Pluck("completed_at", &stamps).Error
	return stamps, err
}
