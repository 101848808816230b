package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/dtos"
	"github.com/applylikeprince/backend/internal/models"
)

// PlatformService is the catalog of known hiring platforms.
type PlatformService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPlatformService(db *gorm.DB, log *zap.Logger) *PlatformService {
	return &PlatformService{db: db, log: log}
}

// SeedDefaults populates the fixed default catalog if the store is empty.
// Safe to call on every startup; it never duplicates rows.
func (s *PlatformService) SeedDefaults() error {
	var count int64
	if err := s.db.Model(&models.Platform{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count platforms: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Platform{
		{
			Name:           "linkedin",
			DisplayName:    "LinkedIn",
			Description:    "World's largest professional network",
			BaseURL:        "https://www.linkedin.com",
			LoginURL:       "https://www.linkedin.com/login",
			ApplicationURL: "https://www.linkedin.com/jobs",
			LogoURL:        "/platforms/linkedin.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
		{
			Name:           "hirect",
			DisplayName:    "Hirect",
			Description:    "Direct hiring app with chat-based recruitment",
			BaseURL:        "https://www.hirect.in",
			LoginURL:       "https://www.hirect.in/login",
			ApplicationURL: "https://www.hirect.in/jobs",
			LogoURL:        "/platforms/hirect.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
		{
			Name:           "cutshort",
			DisplayName:    "Cutshort",
			Description:    "AI-powered tech hiring platform",
			BaseURL:        "https://cutshort.io",
			LoginURL:       "https://cutshort.io/login",
			ApplicationURL: "https://cutshort.io/jobs",
			LogoURL:        "/platforms/cutshort.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
		{
			Name:           "indeed",
			DisplayName:    "Indeed",
			Description:    "Largest job search engine worldwide",
			BaseURL:        "https://www.indeed.com",
			LoginURL:       "https://secure.indeed.com/auth",
			ApplicationURL: "https://www.indeed.com/jobs",
			LogoURL:        "/platforms/indeed.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
		{
			Name:           "naukri",
			DisplayName:    "Naukri.com",
			Description:    "India's leading job portal",
			BaseURL:        "https://www.naukri.com",
			LoginURL:       "https://www.naukri.com/nlogin/login",
			ApplicationURL: "https://www.naukri.com/jobs",
			LogoURL:        "/platforms/naukri.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
		{
			Name:           "glassdoor",
			DisplayName:    "Glassdoor",
			Description:    "Job search with company insights",
			BaseURL:        "https://www.glassdoor.com",
			LoginURL:       "https://www.glassdoor.com/profile/login",
			ApplicationURL: "https://www.glassdoor.com/Job",
			LogoURL:        "/platforms/glassdoor.svg",
			Type:           models.PlatformJobPortal,
			RequiresLogin:  true,
			IsActive:       true,
		},
	}

	if err := s.db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("seed platforms: %w", err)
	}
	s.log.Info("seeded default platforms", zap.Int("count", len(defaults)))
	return nil
}

// ListActive returns active platforms in insertion order.
func (s *PlatformService) ListActive() ([]dtos.PlatformDTO, error) {
	var platforms []models.Platform
	if err := s.db.Where("is_active = ?", true).Order("id asc").Find(&platforms).Error; err != nil {
		return nil, err
	}
	out := make([]dtos.PlatformDTO, 0, len(platforms))
	for i := range platforms {
		out = append(out, dtos.PlatformFromModel(&platforms[i]))
	}
	return out, nil
}

// GetByID returns the platform entity or ErrNotFound.
func (s *PlatformService) GetByID(id uint) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.First(&platform, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("platform %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &platform, nil
}

// GetByName looks a platform up by its canonical name, case-insensitively.
// A missing platform returns (nil, nil).
func (s *PlatformService) GetByName(name string) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.Where("lower(name) = ?", strings.ToLower(name)).First(&platform).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &platform, nil
}
