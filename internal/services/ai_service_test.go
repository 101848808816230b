package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractResumeFieldsWithCodeFences(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{}, zap.NewNop())

	blob := "```json\n" + `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+10000000000",
		"skills": "Go, Postgres",
		"experience": "6 years backend",
		"education": "BSc Computer Science"
	}` + "\n```"

	fields := svc.ExtractResumeFields(blob)
	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Equal(t, "jane@example.com", fields.Email)
	assert.Equal(t, "Go, Postgres", fields.Skills)
	assert.Equal(t, "BSc Computer Science", fields.Education)
}

func TestExtractResumeFieldsPlainJSON(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{}, zap.NewNop())

	fields := svc.ExtractResumeFields(`{"name": "Jane Doe"}`)
	assert.Equal(t, "Jane Doe", fields.Name)
	assert.Empty(t, fields.Email)
}

func TestExtractResumeFieldsMalformedInput(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{}, zap.NewNop())

	fields := svc.ExtractResumeFields("sorry, I could not parse that resume")
	assert.Empty(t, fields.Name)
	assert.Empty(t, fields.Email)
}

func TestExtractResumeFieldsNonStringValues(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{}, zap.NewNop())

	fields := svc.ExtractResumeFields(`{"name": "Jane", "phone": 5550000, "skills": ["Go"]}`)
	assert.Equal(t, "Jane", fields.Name)
	assert.Empty(t, fields.Phone)
	assert.Empty(t, fields.Skills)
}

func TestGenerateCoverLetter(t *testing.T) {
	llm := &fakeLLM{response: "  Dear Hiring Manager,\nI would love to join Acme.\n"}
	svc := NewAIServiceWithModel(llm, zap.NewNop())

	letter, err := svc.GenerateCoverLetter(context.Background(), "resume text", "Backend Engineer", "Acme", "")
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\nI would love to join Acme.", letter)
}

func TestGenerateCoverLetterError(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{err: assert.AnError}, zap.NewNop())

	_, err := svc.GenerateCoverLetter(context.Background(), "resume text", "SRE", "Acme", "desc")
	require.Error(t, err)
}

func TestParseResumeFailureReturnsEmptyObject(t *testing.T) {
	svc := NewAIServiceWithModel(&fakeLLM{err: assert.AnError}, zap.NewNop())

	out := svc.ParseResume(context.Background(), "resume text")
	assert.Equal(t, "{}", out)
}
