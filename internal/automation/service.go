package automation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/audit"
	"github.com/applylikeprince/backend/internal/models"
)

// Service runs one automation attempt against an application, driving the
// PENDING -> IN_PROGRESS -> SUBMITTED|FAILED portion of the state machine
// and recording every transition in the audit trail.
type Service struct {
	db       *gorm.DB
	pool     Pool
	registry *Registry
	audit    *audit.Store
	log      *zap.Logger
}

func NewService(db *gorm.DB, pool Pool, registry *Registry, auditStore *audit.Store, log *zap.Logger) *Service {
	return &Service{
		db:       db,
		pool:     pool,
		registry: registry,
		audit:    auditStore,
		log:      log,
	}
}

// SubmitApplication performs a single attempt. app.Platform must be
// populated. The returned error reflects the attempt outcome; the FAILED
// status and audit entries have already been recorded when it is non-nil.
func (s *Service) SubmitApplication(ctx context.Context, app *models.JobApplication, resume *models.Resume) error {
	s.log.Info("starting automation",
		zap.Uint("application_id", app.ID),
		zap.String("platform", app.Platform.Name))

	// An attempt that has started runs to completion even if the caller
	// abandons the request; only the pool queue honors cancellation.
	runCtx := context.WithoutCancel(ctx)

	now := time.Now()
	app.Status = models.StatusInProgress
	app.AttemptCount++
	app.LastAttemptAt = &now
	if err := s.db.Save(app).Error; err != nil {
		return fmt.Errorf("persist attempt start: %w", err)
	}
	if app.AttemptCount > 1 {
		s.audit.Append(app.ID, models.ActionRetried,
			fmt.Sprintf("automation re-attempted (attempt %d)", app.AttemptCount), models.LevelInfo)
	}
	s.audit.Append(app.ID, models.ActionStarted, "automation attempt started", models.LevelInfo)

	session, err := s.pool.Acquire(ctx)
	if err != nil {
		return s.fail(app, err)
	}
	defer s.pool.Release(session)

	adapter := s.registry.Resolve(app.Platform.Name)
	payload, err := adapter.Submit(runCtx, session, app, resume)
	if err != nil {
		return s.fail(app, err)
	}

	applied := time.Now()
	app.Status = models.StatusSubmitted
	app.SubmittedData = payload
	app.AppliedAt = &applied
	app.ErrorMessage = ""
	if err := s.db.Save(app).Error; err != nil {
		return fmt.Errorf("persist submission: %w", err)
	}
	s.audit.Append(app.ID, models.ActionSubmitted,
		"submitted to "+app.Platform.DisplayName, models.LevelInfo)

	s.log.Info("application submitted",
		zap.Uint("application_id", app.ID),
		zap.String("platform", app.Platform.DisplayName))
	return nil
}

// fail records the FAILED transition and audit entry, then returns the
// original cause so the orchestrator can report it.
func (s *Service) fail(app *models.JobApplication, cause error) error {
	app.Status = models.StatusFailed
	app.ErrorMessage = cause.Error()
	if err := s.db.Save(app).Error; err != nil {
		s.log.Error("persist failure state",
			zap.Uint("application_id", app.ID), zap.Error(err))
	}
	s.audit.Append(app.ID, models.ActionFailed, cause.Error(), models.LevelError)

	s.log.Error("automation failed",
		zap.Uint("application_id", app.ID),
		zap.Error(cause))
	return cause
}
