package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resumeready/backend/internal/model"
	"github.com/resumeready/backend/internal/service"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Enrichment failure reasons, surfaced distinctly to the caller.
var (
	ErrNoResume         = errors.New("user resume not found")
	ErrNoJSONInResponse = errors.New("no JSON block in LLM response")
	ErrInvalidJSON      = errors.New("invalid JSON in LLM response")
)

const notSpecified = "Not Specified"

// Enricher turns a resume and a job description into AI-generated artifacts.
type Enricher interface {
	Build(ctx context.Context, resume, jobDescription string) (model.Application, error)
	GenerateQuestions(ctx context.Context, resume, jobDescription, questionType string, numQuestions int) ([]model.InterviewQuestion, error)
}

// EnrichmentUsecase builds complete Application records. It never writes to
// the store; persistence is the mutation service's job.
type EnrichmentUsecase struct {
	openAI service.OpenAIServiceInterface
}

func NewEnrichmentUsecase(openAI service.OpenAIServiceInterface) *EnrichmentUsecase {
	return &EnrichmentUsecase{openAI: openAI}
}

const analysisPrompt = `
You are an expert in resume analysis and job matching. Given the following resume and job description, provide an in-depth evaluation of how the resume can be refined to better match the job description.

Your analysis should be detailed and specific. Ensure each piece of feedback is separated by the word "POINT" to distinguish different suggestions. Provide at least 8-12 unique and constructive points to thoroughly enhance the resume:
- Identify specific sections of the resume that align well with the job description and explain why they are effective.
- Highlight any missing skills, experiences, or qualifications that are crucial for the job, and suggest specific additions.
- Point out any irrelevant sections or details that could detract from the application, and recommend their removal.
- Provide thorough suggestions for enhancing particular projects or experiences, including metrics worth adding and why.

Additionally, provide a concise summary of the job description that captures its main requirements and expectations, including the job location, the key skills required, and what the company is specifically looking for in a candidate. Extract all relevant details such as the company name, position, and location. Format all outputs strictly in the following JSON format, using "POINT" to separate each piece of feedback, without any additional text, labels, backticks, or explanations:

{
  "companyName": "Company Name Here",
  "position": "Position Here",
  "location": "Location Here",
  "jobDescription": "Concise summary of the job description highlighting the location, key skills required, and specific qualities the company is looking for in a candidate",
  "resumeFeedback": "Describe how your experience in X aligns with the job requirements, POINT Add metrics to the Y project to highlight its impact, POINT Remove references to outdated technologies that are not relevant to the job, etc."
}

**Resume**:
%s

**Job Description**:
%s

**JSON Response (plain text only)**:
`

const coverLetterPrompt = `
You are an expert in writing professional cover letters. Given the following resume and job description, generate a personalized cover letter body for the applicant starting from "Dear Hiring Manager,". Do not include any contact details or closing statements. Focus only on the content that would go in the main paragraphs of a cover letter.

The cover letter body should:
- Start with "Dear Hiring Manager,".
- Introduce the applicant and express interest in the position and company.
- Highlight the applicant's key qualifications, skills, and experiences that align with the job requirements.
- Discuss why the applicant is a great fit for the company and how they can contribute to the company's goals.

Ensure the cover letter body is formatted correctly with appropriate spacing and paragraphs, and is concise.

**Resume**:
%s

**Job Description**:
%s

**Cover Letter Body**:
`

const interviewPrompt = `
You are an expert in interview preparation. Given the job description and the user's resume, generate %d %s interview questions that could be asked for this position. Include both the question and a detailed model answer that demonstrates how to effectively answer each question.

Ensure that the response only includes questions of the following types:
- Technical: Questions that assess the candidate's technical skills and problem-solving abilities related to the job description.
- Behavioral: Questions that evaluate the candidate's past behavior and experiences to predict future performance in a work environment.

Format all outputs strictly in the following JSON format:

{
  "interviewQuestions": [
    {
      "type": "Behavioral",
      "question": "What is your greatest strength?",
      "answer": "My greatest strength is my ability to solve problems efficiently."
    }
  ]
}

Ensure that the response is valid JSON with no additional commentary, and include both the question type and answer in each question object.

**Resume**:
%s

**Job Description**:
%s

**JSON Response (plain text only)**:
`

type analysisResult struct {
	CompanyName    string `json:"companyName"`
	Position       string `json:"position"`
	Location       string `json:"location"`
	JobDescription string `json:"jobDescription"`
	ResumeFeedback string `json:"resumeFeedback"`
}

// Build runs the analysis and cover letter prompts in parallel (the two
// artifacts are independent), parses both strictly, and assembles the record.
// Any artifact failure fails the whole build; nothing partial is returned.
func (uc *EnrichmentUsecase) Build(ctx context.Context, resume, jobDescription string) (model.Application, error) {
	if strings.TrimSpace(resume) == "" {
		return model.Application{}, ErrNoResume
	}

	var (
		analysis    analysisResult
		coverLetter string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := uc.openAI.ChatCompletion(gctx, fmt.Sprintf(analysisPrompt, resume, jobDescription), 2500)
		if err != nil {
			return fmt.Errorf("analysis prompt: %w", err)
		}
		return decodeJSONBlock(raw, &analysis)
	})

	g.Go(func() error {
		raw, err := uc.openAI.ChatCompletion(gctx, fmt.Sprintf(coverLetterPrompt, resume, jobDescription), 1000)
		if err != nil {
			return fmt.Errorf("cover letter prompt: %w", err)
		}
		coverLetter = strings.TrimSpace(raw)
		if coverLetter == "" {
			return fmt.Errorf("no cover letter generated")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Application{}, err
	}

	return model.Application{
		ID:                 uuid.NewString(),
		CompanyName:        defaultIfEmpty(analysis.CompanyName),
		Position:           defaultIfEmpty(analysis.Position),
		Location:           defaultIfEmpty(analysis.Location),
		JobDescription:     defaultIfEmpty(analysis.JobDescription),
		ResumeFeedback:     defaultIfEmpty(analysis.ResumeFeedback),
		CoverLetter:        coverLetter,
		InterviewQuestions: []model.InterviewQuestion{},
		Status:             model.StatusSubmitted,
		DateCreated:        time.Now(),
	}, nil
}

// GenerateQuestions produces interview questions of the requested type. The
// result is returned to the caller; it is not persisted here.
func (uc *EnrichmentUsecase) GenerateQuestions(ctx context.Context, resume, jobDescription, questionType string, numQuestions int) ([]model.InterviewQuestion, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, ErrNoResume
	}
	if numQuestions <= 0 {
		numQuestions = 3
	}

	raw, err := uc.openAI.ChatCompletion(ctx, fmt.Sprintf(interviewPrompt, numQuestions, questionType, resume, jobDescription), 2000)
	if err != nil {
		return nil, fmt.Errorf("interview prompt: %w", err)
	}

	var parsed struct {
		InterviewQuestions []model.InterviewQuestion `json:"interviewQuestions"`
	}
	if err := decodeJSONBlock(raw, &parsed); err != nil {
		return nil, err
	}
	if parsed.InterviewQuestions == nil {
		parsed.InterviewQuestions = []model.InterviewQuestion{}
	}
	return parsed.InterviewQuestions, nil
}

func defaultIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return strings.TrimSpace(s)
}

// extractJSONBlock strips any code-fence markup the model wrapped around its
// output and isolates the outermost JSON object.
func extractJSONBlock(raw string) (string, error) {
	sanitized := strings.ReplaceAll(raw, "```json", "")
	sanitized = strings.ReplaceAll(sanitized, "```", "")
	sanitized = strings.TrimSpace(sanitized)

	start := strings.Index(sanitized, "{")
	end := strings.LastIndex(sanitized, "}")
	if start == -1 || end <= start {
		return "", ErrNoJSONInResponse
	}

	block := sanitized[start : end+1]
	if !gjson.Valid(block) {
		return "", ErrInvalidJSON
	}
	return block, nil
}

func decodeJSONBlock(raw string, v any) error {
	block, err := extractJSONBlock(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(block), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
