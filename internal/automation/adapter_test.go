package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

type recordingSession struct {
	navigated []string
	navErr    error
}

func (s *recordingSession) Navigate(_ context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	return s.navErr
}

func (s *recordingSession) WaitVisible(context.Context, string) error  { return s.navErr }
func (s *recordingSession) SendKeys(context.Context, string, string) error { return s.navErr }
func (s *recordingSession) Click(context.Context, string) error        { return s.navErr }

func TestRegistryResolveCaseInsensitive(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	lower := r.Resolve("linkedin")
	upper := r.Resolve("LinkedIn")
	shouty := r.Resolve("LINKEDIN")

	require.Equal(t, "linkedin", lower.Name())
	assert.Same(t, lower, upper)
	assert.Same(t, lower, shouty)
}

func TestRegistryUnknownNameFallsBack(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	a := r.Resolve("some-brand-new-platform")
	require.NotNil(t, a)
	assert.Equal(t, "generic", a.Name())
}

func TestGenericAdapterNavigatesToJobURL(t *testing.T) {
	a := &genericAdapter{log: zap.NewNop()}
	session := &recordingSession{}
	app := &models.JobApplication{
		Platform: models.Platform{Name: "newplatform", DisplayName: "New Platform"},
		JobTitle: "Backend Engineer",
		Company:  "Acme",
		JobURL:   "https://jobs.acme.test/123",
	}
	resume := &models.Resume{ExtractedName: "Jane Doe", ExtractedEmail: "jane@example.com"}

	payload, err := a.Submit(context.Background(), session, app, resume)
	require.NoError(t, err)
	require.Equal(t, []string{"https://jobs.acme.test/123"}, session.navigated)
	assert.Contains(t, payload, "Jane Doe")
	assert.Contains(t, payload, "Backend Engineer")
}

func TestGenericAdapterWithoutJobURLSkipsNavigation(t *testing.T) {
	a := &genericAdapter{log: zap.NewNop()}
	session := &recordingSession{}
	app := &models.JobApplication{Platform: models.Platform{Name: "x"}}

	payload, err := a.Submit(context.Background(), session, app, nil)
	require.NoError(t, err)
	assert.Empty(t, session.navigated)
	assert.Contains(t, payload, "Application Submission Data")
}

func TestLinkedinAdapterPropagatesNavigationError(t *testing.T) {
	a := &linkedinAdapter{log: zap.NewNop()}
	session := &recordingSession{navErr: errors.New("net::ERR_TIMED_OUT")}
	app := &models.JobApplication{Platform: models.Platform{Name: "linkedin"}}

	_, err := a.Submit(context.Background(), session, app, nil)
	require.Error(t, err)
}

func TestBuildSubmissionPayload(t *testing.T) {
	app := &models.JobApplication{
		JobTitle:    "SRE",
		Company:     "Acme",
		Location:    "Remote",
		CoverLetter: "Dear hiring team,",
	}
	resume := &models.Resume{
		ExtractedName:   "Jane Doe",
		ExtractedEmail:  "jane@example.com",
		ExtractedPhone:  "+10000000000",
		ExtractedSkills: "Go, Postgres",
	}

	payload := buildSubmissionPayload(app, resume)
	assert.Contains(t, payload, "Name: Jane Doe")
	assert.Contains(t, payload, "Email: jane@example.com")
	assert.Contains(t, payload, "Skills: Go, Postgres")
	assert.Contains(t, payload, "=== Cover Letter ===")
	assert.Contains(t, payload, "Dear hiring team,")

	// No cover letter section when none was produced.
	app.CoverLetter = ""
	payload = buildSubmissionPayload(app, resume)
	assert.NotContains(t, payload, "Cover Letter")
}
