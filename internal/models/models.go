package models

import (
	"time"

	"gorm.io/gorm"
)

// Application lifecycle statuses. PENDING -> IN_PROGRESS -> SUBMITTED|FAILED
// is driven by automation; the later states are reported by the caller.
const (
	StatusPending            = "PENDING"
	StatusInProgress         = "IN_PROGRESS"
	StatusSubmitted          = "SUBMITTED"
	StatusFailed             = "FAILED"
	StatusViewed             = "VIEWED"
	StatusInterviewScheduled = "INTERVIEW_SCHEDULED"
	StatusRejected           = "REJECTED"
	StatusOfferReceived      = "OFFER_RECEIVED"
)

// ValidStatuses lists every status a caller may set on an application.
var ValidStatuses = []string{
	StatusPending,
	StatusInProgress,
	StatusSubmitted,
	StatusFailed,
	StatusViewed,
	StatusInterviewScheduled,
	StatusRejected,
	StatusOfferReceived,
}

// Audit log actions.
const (
	ActionCreated       = "CREATED"
	ActionStarted       = "STARTED"
	ActionFormFilled    = "FORM_FILLED"
	ActionSubmitted     = "SUBMITTED"
	ActionFailed        = "FAILED"
	ActionRetried       = "RETRIED"
	ActionStatusChanged = "STATUS_CHANGED"
	ActionViewed        = "VIEWED"
)

// Audit log levels.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelDebug   = "DEBUG"
)

// Platform categories.
const (
	PlatformJobPortal         = "JOB_PORTAL"
	PlatformCompanyCareerPage = "COMPANY_CAREER_PAGE"
	PlatformFreelance         = "FREELANCE"
	PlatformNetworking        = "NETWORKING"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"not null" json:"full_name"`
	Phone    string `json:"phone"`

	Skills         string `gorm:"type:text" json:"skills"`
	Experience     string `gorm:"type:text" json:"experience"`
	LinkedinURL    string `json:"linkedin_url"`
	GithubURL      string `json:"github_url"`
	PortfolioURL   string `json:"portfolio_url"`
	AdditionalInfo string `gorm:"type:text" json:"additional_info"`
}

type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	FileName         string `gorm:"not null" json:"file_name"`
	OriginalFileName string `gorm:"not null" json:"original_file_name"`
	FileType         string `gorm:"not null" json:"file_type"`
	FilePath         string `gorm:"not null" json:"file_path"`
	FileSize         int64  `json:"file_size"`

	RawContent    string `gorm:"type:text" json:"-"`
	ParsedContent string `gorm:"type:text" json:"-"`

	ExtractedName       string `gorm:"type:text" json:"extracted_name"`
	ExtractedEmail      string `json:"extracted_email"`
	ExtractedPhone      string `json:"extracted_phone"`
	ExtractedSkills     string `gorm:"type:text" json:"extracted_skills"`
	ExtractedExperience string `gorm:"type:text" json:"extracted_experience"`
	ExtractedEducation  string `gorm:"type:text" json:"extracted_education"`

	IsPrimary bool `gorm:"default:false" json:"is_primary"`
	IsActive  bool `gorm:"default:true" json:"is_active"`
}

type Platform struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Name is the canonical key used for adapter resolution.
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`

	BaseURL        string `gorm:"not null" json:"base_url"`
	LoginURL       string `json:"login_url"`
	ApplicationURL string `json:"application_url"`

	Type          string `gorm:"default:'JOB_PORTAL'" json:"type"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	RequiresLogin bool   `gorm:"default:true" json:"requires_login"`

	// Optional automation hints consumed by the generic adapter.
	AutomationScript string `gorm:"type:text" json:"-"`
	FieldMappings    string `gorm:"type:text" json:"-"`
}

// JobApplication is one attempt to submit a candidate's materials to a
// single platform. Never deleted, only moved to a terminal status.
type JobApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint     `gorm:"not null;index" json:"user_id"`
	PlatformID uint     `gorm:"not null" json:"platform_id"`
	Platform   Platform `json:"platform,omitempty"`
	ResumeID   *uint    `json:"resume_id"`
	Resume     *Resume  `json:"resume,omitempty"`

	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	JobURL         string `json:"job_url"`
	Location       string `json:"location"`
	JobDescription string `gorm:"type:text" json:"job_description"`

	Status string `gorm:"default:'PENDING'" json:"status"`

	CoverLetter   string `gorm:"type:text" json:"cover_letter"`
	SubmittedData string `gorm:"type:text" json:"submitted_data"`
	ErrorMessage  string `gorm:"type:text" json:"error_message"`

	AttemptCount  int        `json:"attempt_count"`
	AppliedAt     *time.Time `json:"applied_at"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`

	Logs []ApplicationLog `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
}

// ApplicationLog is an append-only record of one action taken against an
// application. Rows are never updated or deleted.
type ApplicationLog struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ApplicationID uint   `gorm:"not null;index" json:"application_id"`
	Action        string `gorm:"not null" json:"action"`
	Details       string `gorm:"type:text" json:"details"`
	Level         string `json:"level"`

	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
