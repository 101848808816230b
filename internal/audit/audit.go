// Package audit maintains the append-only action trail for applications.
package audit

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/models"
)

// Meta carries optional request metadata recorded with an entry.
type Meta struct {
	IPAddress string
	UserAgent string
}

// Store appends immutable ApplicationLog rows. Entries are never updated
// or deleted; a write failure is logged but never fails the calling flow.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Append records one action against an application.
func (s *Store) Append(applicationID uint, action, details, level string) {
	s.AppendWithMeta(applicationID, action, details, level, Meta{})
}

// AppendWithMeta records one action together with request metadata.
func (s *Store) AppendWithMeta(applicationID uint, action, details, level string, meta Meta) {
	entry := models.ApplicationLog{
		ApplicationID: applicationID,
		Action:        action,
		Details:       details,
		Level:         level,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error("audit append failed",
			zap.Uint("application_id", applicationID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// ForApplication returns the full trail for one application, oldest first.
// Writes within one attempt are sequential, so timestamp order (with the
// row id as tiebreaker) reconstructs the attempt history.
func (s *Store) ForApplication(applicationID uint) ([]models.ApplicationLog, error) {
	var entries []models.ApplicationLog
	err := s.db.
		Where("application_id = ?", applicationID).
		Order("timestamp asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
