package dtos

import (
	"time"

	"github.com/applylikeprince/backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func UserFromModel(u *models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
	}
}

type UpdateProfileRequest struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	LinkedinURL    string `json:"linkedin_url"`
	GithubURL      string `json:"github_url"`
	PortfolioURL   string `json:"portfolio_url"`
	AdditionalInfo string `json:"additional_info"`
}

// ApplyRequest asks for one resume to be submitted to a set of platforms.
type ApplyRequest struct {
	ResumeID    uint   `json:"resume_id" binding:"required"`
	PlatformIDs []uint `json:"platform_ids" binding:"required,min=1"`

	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	JobURL         string `json:"job_url"`
	Location       string `json:"location"`
	JobDescription string `json:"job_description"`

	CustomCoverLetter   string `json:"custom_cover_letter"`
	GenerateCoverLetter bool   `json:"generate_cover_letter"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApplicationDTO struct {
	ID           uint       `json:"id"`
	PlatformID   uint       `json:"platform_id"`
	PlatformName string     `json:"platform_name"`
	ResumeID     *uint      `json:"resume_id"`
	JobTitle     string     `json:"job_title"`
	Company      string     `json:"company"`
	JobURL       string     `json:"job_url"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	CoverLetter  string     `json:"cover_letter,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	AttemptCount int        `json:"attempt_count"`
	AppliedAt    *time.Time `json:"applied_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ApplicationFromModel(a *models.JobApplication) ApplicationDTO {
	return ApplicationDTO{
		ID:           a.ID,
		PlatformID:   a.PlatformID,
		PlatformName: a.Platform.DisplayName,
		ResumeID:     a.ResumeID,
		JobTitle:     a.JobTitle,
		Company:      a.Company,
		JobURL:       a.JobURL,
		Location:     a.Location,
		Status:       a.Status,
		CoverLetter:  a.CoverLetter,
		ErrorMessage: a.ErrorMessage,
		AttemptCount: a.AttemptCount,
		AppliedAt:    a.AppliedAt,
		CreatedAt:    a.CreatedAt,
	}
}

type PlatformDTO struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Description   string `json:"description"`
	LogoURL       string `json:"logo_url"`
	BaseURL       string `json:"base_url"`
	Type          string `json:"type"`
	RequiresLogin bool   `json:"requires_login"`
}

func PlatformFromModel(p *models.Platform) PlatformDTO {
	return PlatformDTO{
		ID:            p.ID,
		Name:          p.Name,
		DisplayName:   p.DisplayName,
		Description:   p.Description,
		LogoURL:       p.LogoURL,
		BaseURL:       p.BaseURL,
		Type:          p.Type,
		RequiresLogin: p.RequiresLogin,
	}
}

type ResumeDTO struct {
	ID               uint      `json:"id"`
	OriginalFileName string    `json:"original_file_name"`
	FileType         string    `json:"file_type"`
	FileSize         int64     `json:"file_size"`
	ExtractedName    string    `json:"extracted_name"`
	ExtractedEmail   string    `json:"extracted_email"`
	ExtractedPhone   string    `json:"extracted_phone"`
	ExtractedSkills  string    `json:"extracted_skills"`
	IsPrimary        bool      `json:"is_primary"`
	CreatedAt        time.Time `json:"created_at"`
}

func ResumeFromModel(r *models.Resume) ResumeDTO {
	return ResumeDTO{
		ID:               r.ID,
		OriginalFileName: r.OriginalFileName,
		FileType:         r.FileType,
		FileSize:         r.FileSize,
		ExtractedName:    r.ExtractedName,
		ExtractedEmail:   r.ExtractedEmail,
		ExtractedPhone:   r.ExtractedPhone,
		ExtractedSkills:  r.ExtractedSkills,
		IsPrimary:        r.IsPrimary,
		CreatedAt:        r.CreatedAt,
	}
}

// ResumeFields holds the structured fields the AI extracts from a resume.
// A field the model could not determine stays empty.
type ResumeFields struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

type DashboardStats struct {
	TotalApplications     int64 `json:"total_applications"`
	PendingApplications   int64 `json:"pending_applications"`
	SubmittedApplications int64 `json:"submitted_applications"`
	InterviewsScheduled   int64 `json:"interviews_scheduled"`
	OffersReceived        int64 `json:"offers_received"`
	Rejections            int64 `json:"rejections"`
	ThisWeekApplications  int64 `json:"this_week_applications"`
	ThisMonthApplications int64 `json:"this_month_applications"`
}
