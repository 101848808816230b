package automation

import (
	"context"

	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

type linkedinAdapter struct {
	log *zap.Logger
}

func (a *linkedinAdapter) Name() string { return "linkedin" }

func (a *linkedinAdapter) Submit(ctx context.Context, session Session, app *models.JobApplication, resume *models.Resume) (string, error) {
	a.log.Info("processing LinkedIn application", zap.Uint("application_id", app.ID))

	target := app.JobURL
	if target == "" {
		target = "https://www.linkedin.com/jobs/"
	}
	if err := session.Navigate(ctx, target); err != nil {
		return "", err
	}
	if err := session.WaitVisible(ctx, "body"); err != nil {
		return "", err
	}

	// LinkedIn gates Easy Apply behind an authenticated profile; the
	// prepared payload is kept for manual review.
	payload := buildSubmissionPayload(app, resume)
	a.log.Info("LinkedIn application data prepared", zap.String("job_title", app.JobTitle))
	return payload, nil
}
