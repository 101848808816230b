package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/dtos"
	"github.com/applylikeprince/backend/internal/models"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ResumeService handles upload, text extraction and AI parsing of resumes.
type ResumeService struct {
	db        *gorm.DB
	ai        *AIService
	uploadDir string
	log       *zap.Logger
}

func NewResumeService(db *gorm.DB, ai *AIService, uploadDir string, log *zap.Logger) *ResumeService {
	return &ResumeService{db: db, ai: ai, uploadDir: uploadDir, log: log}
}

// Upload stores the file, extracts its text and parses structured fields.
// AI parsing failures are logged and leave the extracted fields empty.
func (s *ResumeService) Upload(ctx context.Context, userID uint, originalName, contentType string, r io.Reader, size int64) (dtos.ResumeDTO, error) {
	if contentType != mimePDF && contentType != mimeDocx {
		return dtos.ResumeDTO{}, fmt.Errorf("invalid file type %q: only PDF and DOCX are supported", contentType)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return dtos.ResumeDTO{}, fmt.Errorf("read upload: %w", err)
	}

	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	if ext == "" {
		if contentType == mimePDF {
			ext = "pdf"
		} else {
			ext = "docx"
		}
	}
	fileName := uuid.NewString() + "." + ext

	dir := filepath.Join(s.uploadDir, fmt.Sprint(userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dtos.ResumeDTO{}, fmt.Errorf("create upload dir: %w", err)
	}
	filePath := filepath.Join(dir, fileName)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return dtos.ResumeDTO{}, fmt.Errorf("store upload: %w", err)
	}

	rawContent, err := extractText(contentType, data)
	if err != nil {
		s.log.Warn("text extraction failed", zap.String("file", originalName), zap.Error(err))
	}

	resume := models.Resume{
		UserID:           userID,
		FileName:         fileName,
		OriginalFileName: originalName,
		FileType:         contentType,
		FilePath:         filePath,
		FileSize:         size,
		RawContent:       rawContent,
		IsActive:         true,
	}

	// The first active resume becomes primary.
	var existing int64
	if err := s.db.Model(&models.Resume{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&existing).Error; err != nil {
		return dtos.ResumeDTO{}, err
	}
	resume.IsPrimary = existing == 0

	if err := s.db.Create(&resume).Error; err != nil {
		return dtos.ResumeDTO{}, fmt.Errorf("save resume: %w", err)
	}

	if rawContent != "" {
		s.parseWithAI(ctx, &resume)
	}
	return dtos.ResumeFromModel(&resume), nil
}

// parseWithAI fills the extracted fields from the AI parse. Any failure
// leaves the fields empty and never fails the upload.
func (s *ResumeService) parseWithAI(ctx context.Context, resume *models.Resume) {
	parsed := s.ai.ParseResume(ctx, resume.RawContent)
	fields := s.ai.ExtractResumeFields(parsed)

	resume.ParsedContent = parsed
	resume.ExtractedName = fields.Name
	resume.ExtractedEmail = fields.Email
	resume.ExtractedPhone = fields.Phone
	resume.ExtractedSkills = fields.Skills
	resume.ExtractedExperience = fields.Experience
	resume.ExtractedEducation = fields.Education

	if err := s.db.Save(resume).Error; err != nil {
		s.log.Error("persist parsed resume", zap.Uint("resume_id", resume.ID), zap.Error(err))
	}
}

// ListForUser returns the user's active resumes, newest first.
func (s *ResumeService) ListForUser(userID uint) ([]dtos.ResumeDTO, error) {
	var resumes []models.Resume
	err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Find(&resumes).Error
	if err != nil {
		return nil, err
	}
	out := make([]dtos.ResumeDTO, 0, len(resumes))
	for i := range resumes {
		out = append(out, dtos.ResumeFromModel(&resumes[i]))
	}
	return out, nil
}

// GetOwned returns the resume entity if it belongs to the user.
func (s *ResumeService) GetOwned(id, userID uint) (*models.Resume, error) {
	var resume models.Resume
	err := s.db.
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("resume %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Delete soft-deletes by flipping IsActive; applications keep their
// reference to the record.
func (s *ResumeService) Delete(id, userID uint) error {
	resume, err := s.GetOwned(id, userID)
	if err != nil {
		return err
	}
	return s.db.Model(resume).Update("is_active", false).Error
}

// SetPrimary marks one resume primary and clears the flag on the rest.
func (s *ResumeService) SetPrimary(id, userID uint) error {
	resume, err := s.GetOwned(id, userID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Resume{}).
			Where("user_id = ?", userID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(resume).Update("is_primary", true).Error
	})
}

func extractText(contentType string, data []byte) (string, error) {
	switch contentType {
	case mimePDF:
		return extractPDFText(data)
	case mimeDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", contentType)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
