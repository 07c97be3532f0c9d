package dto

type AnalyzeTextRequest struct {
	UserID         string `json:"userId"`
	JobDescription string `json:"jobDescription"`
}

type AnalyzeURLRequest struct {
	UserID string `json:"userId"`
	URL    string `json:"url"`
}

type GenerateQuestionsRequest struct {
	UserID         string `json:"userId"`
	JobID          string `json:"jobId"`
	JobDescription string `json:"jobDescription"`
	QuestionType   string `json:"questionType"`
	NumQuestions   int    `json:"numQuestions"`
}

type UpdateStatusRequest struct {
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
	NewStatus     string `json:"newStatus"`
}

type DeleteApplicationRequest struct {
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
}
