package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/dtos"
)

const resumeParsePrompt = `Parse the following resume and extract the key information.
Return the data as a JSON object with the following structure:
{
    "name": "Full Name",
    "email": "email@example.com",
    "phone": "+1234567890",
    "skills": "Comma-separated list of skills",
    "experience": "Summary of work experience",
    "education": "Summary of education"
}

Resume content:
%s
`

const coverLetterPrompt = `Generate a professional cover letter for the following job application.

Candidate Resume:
%s

Job Title: %s
Company: %s
Job Description: %s

Write a compelling cover letter that:
1. Highlights relevant skills and experience
2. Shows enthusiasm for the role and company
3. Is professional but personable
4. Is concise (about 250-300 words)

Return only the cover letter text, no JSON or extra formatting.
`

const resumeOptimizePrompt = `Analyze the following resume against the job description and provide specific suggestions
for optimizing the resume to better match the job requirements.

Resume:
%s

Job Description:
%s

Provide:
1. Key skills to highlight
2. Experience points to emphasize
3. Keywords to include
4. Any gaps to address

Return as a structured JSON response.
`

// AIService wraps the completion model used for cover letters and resume
// parsing. Callers treat any failure as "no output produced".
type AIService struct {
	llm llms.Model
	log *zap.Logger
}

// NewAIService initializes the Gemini-backed client.
func NewAIService(apiKey string, log *zap.Logger) (*AIService, error) {
	ctx := context.Background()
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &AIService{llm: llm, log: log}, nil
}

// NewAIServiceWithModel builds the service around any llms.Model.
func NewAIServiceWithModel(m llms.Model, log *zap.Logger) *AIService {
	return &AIService{llm: m, log: log}
}

// ParseResume asks the model for structured fields as a JSON blob.
// Failures return "{}" so ingestion can continue without fields.
func (s *AIService) ParseResume(ctx context.Context, resumeContent string) string {
	prompt := fmt.Sprintf(resumeParsePrompt, resumeContent)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		s.log.Error("resume parsing failed", zap.Error(err))
		return "{}"
	}
	return resp
}

// ExtractResumeFields parses an AI-produced JSON blob into named fields,
// tolerating surrounding markdown code fences. Missing or non-string
// fields stay empty; malformed input never hard-fails.
func (s *AIService) ExtractResumeFields(parsedJSON string) dtos.ResumeFields {
	clean := stripCodeFences(parsedJSON)

	var raw map[string]any
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		s.log.Error("failed to extract resume fields", zap.Error(err))
		return dtos.ResumeFields{}
	}
	return dtos.ResumeFields{
		Name:       stringField(raw, "name"),
		Email:      stringField(raw, "email"),
		Phone:      stringField(raw, "phone"),
		Skills:     stringField(raw, "skills"),
		Experience: stringField(raw, "experience"),
		Education:  stringField(raw, "education"),
	}
}

// GenerateCoverLetter drafts a cover letter from the resume text and job
// metadata. The error is advisory: submission proceeds without a letter.
func (s *AIService) GenerateCoverLetter(ctx context.Context, resumeContent, jobTitle, company, jobDescription string) (string, error) {
	if jobDescription == "" {
		jobDescription = "Not provided"
	}
	prompt := fmt.Sprintf(coverLetterPrompt, resumeContent, jobTitle, company, jobDescription)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("cover letter generation: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// OptimizeResumeForJob returns AI suggestions for tailoring a resume to a
// job description.
func (s *AIService) OptimizeResumeForJob(ctx context.Context, resumeContent, jobDescription string) (string, error) {
	prompt := fmt.Sprintf(resumeOptimizePrompt, resumeContent, jobDescription)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("resume optimization: %w", err)
	}
	return resp, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present.
func stripCodeFences(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
