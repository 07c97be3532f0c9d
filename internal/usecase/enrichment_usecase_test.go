package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/resumeready/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI routes prompts by content, the way the real service routes them
// by endpoint. The builder fans prompts out concurrently, hence the mutex.
type fakeOpenAI struct {
	mu               sync.Mutex
	analysisReply    string
	analysisErr      error
	coverLetterReply string
	coverLetterErr   error
	interviewReply   string
	interviewErr     error
	calls            int
}

func (f *fakeOpenAI) ChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	switch {
	case strings.Contains(prompt, "cover letter"):
		return f.coverLetterReply, f.coverLetterErr
	case strings.Contains(prompt, "interview preparation"):
		return f.interviewReply, f.interviewErr
	default:
		return f.analysisReply, f.analysisErr
	}
}

const acmeAnalysis = `{
  "companyName": "Acme Corp",
  "position": "Backend Engineer",
  "location": "Remote",
  "jobDescription": "Backend role at Acme Corp, Remote, requires Go and distributed systems",
  "resumeFeedback": "Highlight your Go services in more detail, POINT Add throughput metrics to the pipeline project, POINT Remove the outdated PHP section"
}`

func TestBuildAssemblesApplication(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    acmeAnalysis,
		coverLetterReply: "Dear Hiring Manager,\n\nI am excited to apply.",
	}
	uc := NewEnrichmentUsecase(ai)

	app, err := uc.Build(context.Background(), "Experienced engineer...", "Backend role at Acme Corp, Remote, requires Go and distributed systems")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", app.CompanyName)
	assert.Equal(t, "Backend Engineer", app.Position)
	assert.Contains(t, app.Location, "Remote")
	assert.Contains(t, app.ResumeFeedback, model.FeedbackDelimiter)
	assert.Equal(t, model.StatusSubmitted, app.Status)
	assert.Equal(t, "Dear Hiring Manager,\n\nI am excited to apply.", app.CoverLetter)
	assert.NotEmpty(t, app.ID)
	assert.NotNil(t, app.InterviewQuestions)
	assert.Empty(t, app.InterviewQuestions)
	assert.False(t, app.DateCreated.IsZero())

	points := app.FeedbackPoints()
	require.GreaterOrEqual(t, len(points), 2)
	assert.Equal(t, "Highlight your Go services in more detail", points[0])
}

func TestBuildGeneratesFreshIDs(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    acmeAnalysis,
		coverLetterReply: "Dear Hiring Manager,",
	}
	uc := NewEnrichmentUsecase(ai)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		app, err := uc.Build(context.Background(), "resume", "job")
		require.NoError(t, err)
		require.False(t, seen[app.ID], "id %q generated twice", app.ID)
		seen[app.ID] = true
	}
}

func TestBuildStripsCodeFences(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    "```json\n" + acmeAnalysis + "\n```",
		coverLetterReply: "Dear Hiring Manager,",
	}
	uc := NewEnrichmentUsecase(ai)

	app, err := uc.Build(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", app.CompanyName)
}

func TestBuildDefaultsMissingFields(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    `{"companyName": "Acme Corp"}`,
		coverLetterReply: "Dear Hiring Manager,",
	}
	uc := NewEnrichmentUsecase(ai)

	app, err := uc.Build(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", app.CompanyName)
	assert.Equal(t, "Not Specified", app.Position)
	assert.Equal(t, "Not Specified", app.Location)
	assert.Equal(t, "Not Specified", app.JobDescription)
	assert.Equal(t, "Not Specified", app.ResumeFeedback)
}

func TestBuildRequiresResume(t *testing.T) {
	ai := &fakeOpenAI{}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.Build(context.Background(), "   ", "job")
	assert.ErrorIs(t, err, ErrNoResume)
	assert.Zero(t, ai.calls, "no prompt should be sent without a resume")
}

func TestBuildRejectsResponseWithoutJSON(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    "Sorry, I cannot help with that.",
		coverLetterReply: "Dear Hiring Manager,",
	}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.Build(context.Background(), "resume", "job")
	assert.ErrorIs(t, err, ErrNoJSONInResponse)
}

func TestBuildRejectsMalformedJSON(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:    `{"companyName": "Acme Corp", "position": }`,
		coverLetterReply: "Dear Hiring Manager,",
	}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.Build(context.Background(), "resume", "job")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestBuildFailsAtomicallyWhenCoverLetterFails(t *testing.T) {
	ai := &fakeOpenAI{
		analysisReply:  acmeAnalysis,
		coverLetterErr: fmt.Errorf("upstream unavailable"),
	}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.Build(context.Background(), "resume", "job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cover letter")
}

func TestGenerateQuestionsParsesTypedResult(t *testing.T) {
	ai := &fakeOpenAI{
		interviewReply: `{
  "interviewQuestions": [
    {"type": "Behavioral", "question": "Tell me about a conflict.", "answer": "I listened first."},
    {"type": "Technical", "question": "How do goroutines leak?", "answer": "Blocked channels without receivers."}
  ]
}`,
	}
	uc := NewEnrichmentUsecase(ai)

	questions, err := uc.GenerateQuestions(context.Background(), "resume", "job", "Technical", 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Behavioral", questions[0].Type)
	assert.Equal(t, "How do goroutines leak?", questions[1].Question)
}

func TestGenerateQuestionsRejectsMalformedResponse(t *testing.T) {
	ai := &fakeOpenAI{interviewReply: "no structured data here"}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.GenerateQuestions(context.Background(), "resume", "job", "Technical", 2)
	assert.ErrorIs(t, err, ErrNoJSONInResponse)
}

func TestGenerateQuestionsPropagatesUpstreamError(t *testing.T) {
	ai := &fakeOpenAI{interviewErr: errors.New("503")}
	uc := NewEnrichmentUsecase(ai)

	_, err := uc.GenerateQuestions(context.Background(), "resume", "job", "Technical", 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSONInResponse)
}

func TestExtractJSONBlockIgnoresSurroundingText(t *testing.T) {
	block, err := extractJSONBlock("Here is your result:\n```json\n{\"a\": 1}\n```\nHope it helps!")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, block)
}
