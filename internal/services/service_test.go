package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/audit"
	"github.com/applylikeprince/backend/internal/automation"
	"github.com/applylikeprince/backend/internal/database"
	"github.com/applylikeprince/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

// fakeLLM satisfies llms.Model for tests.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// stubSession fails navigation to URLs containing failURLSubstr.
type stubSession struct {
	failURLSubstr string
}

func (s *stubSession) Navigate(_ context.Context, url string) error {
	if s.failURLSubstr != "" && strings.Contains(url, s.failURLSubstr) {
		return errors.New("navigation timeout")
	}
	return nil
}

func (s *stubSession) WaitVisible(context.Context, string) error      { return nil }
func (s *stubSession) SendKeys(context.Context, string, string) error { return nil }
func (s *stubSession) Click(context.Context, string) error            { return nil }

// stubPool satisfies automation.Pool without launching a browser.
type stubPool struct {
	mu         sync.Mutex
	inUse      int64
	acquireErr error
	newSession func() automation.Session
}

func (p *stubPool) Acquire(context.Context) (automation.Session, error) {
	if p.acquireErr != nil {
		return nil, fmt.Errorf("%w: %v", automation.ErrDriverUnavailable, p.acquireErr)
	}
	p.mu.Lock()
	p.inUse++
	p.mu.Unlock()
	return p.newSession(), nil
}

func (p *stubPool) Release(automation.Session) {
	p.mu.Lock()
	p.inUse--
	p.mu.Unlock()
}

func (p *stubPool) InUse() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

type testEnv struct {
	db           *gorm.DB
	audit        *audit.Store
	platforms    *PlatformService
	resumes      *ResumeService
	applications *ApplicationService
	pool         *stubPool
	llm          *fakeLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	zlog := zap.NewNop()

	store := audit.NewStore(db, zlog)
	platforms := NewPlatformService(db, zlog)
	require.NoError(t, platforms.SeedDefaults())

	llm := &fakeLLM{response: "Dear Hiring Manager, I am excited to apply."}
	ai := NewAIServiceWithModel(llm, zlog)
	resumes := NewResumeService(db, ai, t.TempDir(), zlog)

	pool := &stubPool{newSession: func() automation.Session { return &stubSession{} }}
	auto := automation.NewService(db, pool, automation.NewRegistry(zlog), store, zlog)

	applications := NewApplicationService(db, platforms, resumes, ai, auto, store, zlog)
	return &testEnv{
		db:           db,
		audit:        store,
		platforms:    platforms,
		resumes:      resumes,
		applications: applications,
		pool:         pool,
		llm:          llm,
	}
}

func (e *testEnv) platformID(t *testing.T, name string) uint {
	t.Helper()
	platform, err := e.platforms.GetByName(name)
	require.NoError(t, err)
	require.NotNil(t, platform)
	return platform.ID
}

func (e *testEnv) createResume(t *testing.T, userID uint) *models.Resume {
	t.Helper()
	resume := &models.Resume{
		UserID:           userID,
		FileName:         "resume.pdf",
		OriginalFileName: "resume.pdf",
		FileType:         mimePDF,
		FilePath:         "/tmp/resume.pdf",
		RawContent:       "Jane Doe. Go engineer with 6 years of experience.",
		ExtractedName:    "Jane Doe",
		ExtractedEmail:   "jane@example.com",
		ExtractedSkills:  "Go, Postgres",
		IsActive:         true,
		IsPrimary:        true,
	}
	require.NoError(t, e.db.Create(resume).Error)
	return resume
}

func (e *testEnv) auditActions(t *testing.T, appID uint) []string {
	t.Helper()
	entries, err := e.audit.ForApplication(appID)
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
