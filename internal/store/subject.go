package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListSubjects returns all subjects for a user ordered by exam date,
// subjects without an exam date last.
func (s *Store) ListSubjects(ctx context.Context, userID string) ([]Subject, error) {
	var subjects []Subject
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("exam_date IS NULL, exam_date ASC").
		Find(&subjects).Error
	return subjects, err
}

// SubjectByID fetches a single subject scoped to the user.
func (s *Store) SubjectByID(ctx context.Context, userID, id string) (*Subject, error) {
	var sub Subject
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sub).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// CreateSubject inserts a new subject.
func (s *Store) CreateSubject(ctx context.Context, sub *Subject) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(sub).Error
}

// UpdateSubject persists edits to name, exam date, difficulty and color.
func (s *Store) UpdateSubject(ctx context.Context, sub *Subject) error {
	res := s.db.WithContext(ctx).
		Model(&Subject{}).
		Where("id = ? AND user_id = ?", sub.ID, sub.UserID).
		Updates(map[string]any{
			"name":       sub.Name,
			"exam_date":  sub.ExamDate,
			"difficulty": sub.Difficulty,
			"color":      sub.Color,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubject removes a subject and cascades to its topics and sessions.
func (s *Store) DeleteSubject(ctx context.Context, userID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Subject{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("subject_id = ? AND user_id = ?", id, userID).Delete(&Topic{}).Error; err != nil {
			return err
		}
		return tx.Where("subject_id = ? AND user_id = ?", id, userID).Delete(&Session{}).Error
	})
}

// UpcomingExams returns up to limit subjects whose exam date is today or
// later, soonest first.
func (s *Store) UpcomingExams(ctx context.Context, userID string, limit int) ([]Subject, error) {
	var subjects []Subject
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND exam_date >= ?", userID, time.Now()).
		Order("exam_date ASC").
		Limit(limit).
		Find(&subjects).Error
	return subjects, err
}
