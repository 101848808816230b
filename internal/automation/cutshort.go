package automation

import (
	"context"

	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

type cutshortAdapter struct {
	log *zap.Logger
}

func (a *cutshortAdapter) Name() string { return "cutshort" }

func (a *cutshortAdapter) Submit(ctx context.Context, session Session, app *models.JobApplication, resume *models.Resume) (string, error) {
	a.log.Info("processing Cutshort application", zap.Uint("application_id", app.ID))

	target := app.JobURL
	if target == "" {
		target = "https://cutshort.io/jobs"
	}
	if err := session.Navigate(ctx, target); err != nil {
		return "", err
	}

	payload := buildSubmissionPayload(app, resume)
	a.log.Info("Cutshort application data prepared", zap.String("job_title", app.JobTitle))
	return payload, nil
}
