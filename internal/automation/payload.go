package automation

import (
	"fmt"
	"strings"

	"github.com/applylikeprince/backend/internal/models"
)

// buildSubmissionPayload captures what was (or would be) submitted so the
// attempt can be audited and, if needed, replayed manually.
func buildSubmissionPayload(app *models.JobApplication, resume *models.Resume) string {
	var sb strings.Builder
	sb.WriteString("=== Application Submission Data ===\n")
	if resume != nil {
		fmt.Fprintf(&sb, "Name: %s\n", resume.ExtractedName)
		fmt.Fprintf(&sb, "Email: %s\n", resume.ExtractedEmail)
		fmt.Fprintf(&sb, "Phone: %s\n", resume.ExtractedPhone)
	}
	fmt.Fprintf(&sb, "Job Title: %s\n", app.JobTitle)
	fmt.Fprintf(&sb, "Company: %s\n", app.Company)
	fmt.Fprintf(&sb, "Location: %s\n", app.Location)
	if resume != nil {
		fmt.Fprintf(&sb, "Skills: %s\n", resume.ExtractedSkills)
	}
	if app.CoverLetter != "" {
		sb.WriteString("\n=== Cover Letter ===\n")
		sb.WriteString(app.CoverLetter)
		sb.WriteString("\n")
	}
	return sb.String()
}
