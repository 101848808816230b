package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/audit"
	"github.com/applylikeprince/backend/internal/automation"
	"github.com/applylikeprince/backend/internal/dtos"
	"github.com/applylikeprince/backend/internal/models"
)

// ApplicationService orchestrates submissions: it creates one application
// per (resume, platform) pair, drafts cover letters, dispatches automation
// and serves the read side of the application history.
type ApplicationService struct {
	db         *gorm.DB
	platforms  *PlatformService
	resumes    *ResumeService
	ai         *AIService
	automation *automation.Service
	audit      *audit.Store
	log        *zap.Logger
}

func NewApplicationService(
	db *gorm.DB,
	platforms *PlatformService,
	resumes *ResumeService,
	ai *AIService,
	automationSvc *automation.Service,
	auditStore *audit.Store,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		db:         db,
		platforms:  platforms,
		resumes:    resumes,
		ai:         ai,
		automation: automationSvc,
		audit:      auditStore,
		log:        log,
	}
}

// ApplyToJobs submits one resume to every requested platform. Platforms
// are processed as independent units: a submission failure on one never
// aborts the others, and the response carries one result per requested
// platform in request order. Only an unknown resume or platform id fails
// the call as a whole.
func (s *ApplicationService) ApplyToJobs(ctx context.Context, userID uint, req *dtos.ApplyRequest) ([]dtos.ApplicationDTO, error) {
	resume, err := s.resumes.GetOwned(req.ResumeID, userID)
	if err != nil {
		return nil, err
	}

	results := make([]dtos.ApplicationDTO, len(req.PlatformIDs))

	// Units run in parallel, bounded downstream by driver pool capacity.
	var g errgroup.Group
	for i, platformID := range req.PlatformIDs {
		g.Go(func() error {
			dto, err := s.applyToPlatform(ctx, userID, resume, platformID, req)
			if err != nil {
				return err
			}
			results[i] = dto
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// applyToPlatform is one independent submission unit. The returned error
// is limited to platform resolution and persistence problems; automation
// faults are absorbed into the application's FAILED status.
func (s *ApplicationService) applyToPlatform(ctx context.Context, userID uint, resume *models.Resume, platformID uint, req *dtos.ApplyRequest) (dtos.ApplicationDTO, error) {
	platform, err := s.platforms.GetByID(platformID)
	if err != nil {
		return dtos.ApplicationDTO{}, err
	}

	app := &models.JobApplication{
		UserID:         userID,
		PlatformID:     platform.ID,
		Platform:       *platform,
		ResumeID:       &resume.ID,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobURL:         req.JobURL,
		Location:       req.Location,
		JobDescription: req.JobDescription,
		Status:         models.StatusPending,
		AttemptCount:   0,
	}

	if req.GenerateCoverLetter {
		letter, err := s.ai.GenerateCoverLetter(ctx, resume.RawContent, req.JobTitle, req.Company, req.JobDescription)
		if err != nil {
			// Never fatal: the submission proceeds without a letter.
			s.log.Warn("cover letter generation failed",
				zap.Uint("platform_id", platform.ID), zap.Error(err))
		} else {
			app.CoverLetter = letter
		}
	} else if req.CustomCoverLetter != "" {
		app.CoverLetter = req.CustomCoverLetter
	}

	if err := s.db.Create(app).Error; err != nil {
		return dtos.ApplicationDTO{}, fmt.Errorf("create application: %w", err)
	}
	s.audit.Append(app.ID, models.ActionCreated, "Application created", models.LevelInfo)

	// Faults are caught at this boundary: the automation service has
	// already recorded FAILED and its audit entry when err is non-nil.
	if err := s.automation.SubmitApplication(ctx, app, resume); err != nil {
		s.log.Error("automation failed",
			zap.Uint("application_id", app.ID),
			zap.String("platform", platform.Name),
			zap.Error(err))
	}

	return dtos.ApplicationFromModel(app), nil
}

// UpdateStatus applies a caller-reported status change. Any target status
// is accepted; the transition is recorded as STATUS_CHANGED.
func (s *ApplicationService) UpdateStatus(userID, applicationID uint, status string) (dtos.ApplicationDTO, error) {
	if !slices.Contains(models.ValidStatuses, status) {
		return dtos.ApplicationDTO{}, fmt.Errorf("invalid status %q", status)
	}

	app, err := s.getOwnedEntity(applicationID, userID)
	if err != nil {
		return dtos.ApplicationDTO{}, err
	}

	// Leaving FAILED through a caller update clears the stale error.
	if app.Status == models.StatusFailed && status != models.StatusFailed {
		app.ErrorMessage = ""
	}
	app.Status = status
	if err := s.db.Save(app).Error; err != nil {
		return dtos.ApplicationDTO{}, err
	}
	s.audit.Append(app.ID, models.ActionStatusChanged, "Status changed to "+status, models.LevelInfo)

	return dtos.ApplicationFromModel(app), nil
}

// GetHistory returns the user's applications, newest first, with paging.
func (s *ApplicationService) GetHistory(userID uint, page, size int) ([]dtos.ApplicationDTO, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	var total int64
	if err := s.db.Model(&models.JobApplication{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.JobApplication
	err := s.db.Preload("Platform").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(page * size).
		Limit(size).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(apps), total, nil
}

// GetRecent returns the user's ten most recent applications.
func (s *ApplicationService) GetRecent(userID uint) ([]dtos.ApplicationDTO, error) {
	var apps []models.JobApplication
	err := s.db.Preload("Platform").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(10).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return toDTOs(apps), nil
}

// GetByID returns one application owned by the user.
func (s *ApplicationService) GetByID(userID, applicationID uint) (dtos.ApplicationDTO, error) {
	app, err := s.getOwnedEntity(applicationID, userID)
	if err != nil {
		return dtos.ApplicationDTO{}, err
	}
	return dtos.ApplicationFromModel(app), nil
}

// GetAuditTrail returns the full audit history of one owned application.
func (s *ApplicationService) GetAuditTrail(userID, applicationID uint) ([]models.ApplicationLog, error) {
	if _, err := s.getOwnedEntity(applicationID, userID); err != nil {
		return nil, err
	}
	return s.audit.ForApplication(applicationID)
}

// GetDashboardStats aggregates per-status counts plus trailing 7- and
// 30-day creation counts for the user.
func (s *ApplicationService) GetDashboardStats(userID uint) (dtos.DashboardStats, error) {
	stats := dtos.DashboardStats{}

	base := func() *gorm.DB {
		return s.db.Model(&models.JobApplication{}).Where("user_id = ?", userID)
	}
	if err := base().Count(&stats.TotalApplications).Error; err != nil {
		return stats, err
	}

	byStatus := map[string]*int64{
		models.StatusPending:            &stats.PendingApplications,
		models.StatusSubmitted:          &stats.SubmittedApplications,
		models.StatusInterviewScheduled: &stats.InterviewsScheduled,
		models.StatusOfferReceived:      &stats.OffersReceived,
		models.StatusRejected:           &stats.Rejections,
	}
	for status, dest := range byStatus {
		if err := base().Where("status = ?", status).Count(dest).Error; err != nil {
			return stats, err
		}
	}

	weekStart := time.Now().AddDate(0, 0, -7)
	if err := base().Where("created_at > ?", weekStart).Count(&stats.ThisWeekApplications).Error; err != nil {
		return stats, err
	}
	monthStart := time.Now().AddDate(0, 0, -30)
	if err := base().Where("created_at > ?", monthStart).Count(&stats.ThisMonthApplications).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *ApplicationService) getOwnedEntity(applicationID, userID uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := s.db.Preload("Platform").
		Where("id = ? AND user_id = ?", applicationID, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func toDTOs(apps []models.JobApplication) []dtos.ApplicationDTO {
	out := make([]dtos.ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dtos.ApplicationFromModel(&apps[i]))
	}
	return out
}
