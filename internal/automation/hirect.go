package automation

import (
	"context"

	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

type hirectAdapter struct {
	log *zap.Logger
}

func (a *hirectAdapter) Name() string { return "hirect" }

func (a *hirectAdapter) Submit(ctx context.Context, session Session, app *models.JobApplication, resume *models.Resume) (string, error) {
	a.log.Info("processing Hirect application", zap.Uint("application_id", app.ID))

	target := app.JobURL
	if target == "" {
		target = "https://www.hirect.in/jobs"
	}
	if err := session.Navigate(ctx, target); err != nil {
		return "", err
	}

	payload := buildSubmissionPayload(app, resume)
	a.log.Info("Hirect application data prepared", zap.String("job_title", app.JobTitle))
	return payload, nil
}
