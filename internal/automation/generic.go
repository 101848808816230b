package automation

import (
	"context"

	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

// genericAdapter handles platforms without a dedicated adapter: it
// navigates to the job URL when one is present and captures the intended
// submission payload for manual follow-up.
type genericAdapter struct {
	log *zap.Logger
}

func (a *genericAdapter) Name() string { return "generic" }

func (a *genericAdapter) Submit(ctx context.Context, session Session, app *models.JobApplication, resume *models.Resume) (string, error) {
	a.log.Info("processing generic application",
		zap.String("platform", app.Platform.DisplayName),
		zap.Uint("application_id", app.ID))

	if app.JobURL != "" {
		if err := session.Navigate(ctx, app.JobURL); err != nil {
			return "", err
		}
	}
	return buildSubmissionPayload(app, resume), nil
}
