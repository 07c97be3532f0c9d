package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership tiers.
const (
	MembershipFree = "free"
	MembershipPlus = "plus"
)

// Application status values. No other value is ever written.
const (
	StatusSubmitted     = "Application Submitted"
	StatusInterviewing  = "Interviewing"
	StatusReceivedOffer = "Received Offer"
	StatusAcceptedOffer = "Accepted Offer"
)

// FeedbackDelimiter separates discrete suggestions inside ResumeFeedback.
const FeedbackDelimiter = "POINT "

func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInterviewing, StatusReceivedOffer, StatusAcceptedOffer:
		return true
	}
	return false
}

type InterviewQuestion struct {
	Type     string `bson:"type" json:"type"` // "Behavioral" | "Technical"
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

type Application struct {
	ID                 string              `bson:"id" json:"id"`
	CompanyName        string              `bson:"companyName" json:"companyName"`
	Position           string              `bson:"position" json:"position"`
	Location           string              `bson:"location" json:"location"`
	JobDescription     string              `bson:"jobDescription" json:"jobDescription"`
	ResumeFeedback     string              `bson:"resumeFeedback" json:"resumeFeedback"`
	CoverLetter        string              `bson:"coverLetter" json:"coverLetter"`
	InterviewQuestions []InterviewQuestion `bson:"interviewQuestions" json:"interviewQuestions"`
	Status             string              `bson:"status" json:"status"`
	DateCreated        time.Time           `bson:"dateCreated" json:"dateCreated"`
}

// FeedbackPoints splits ResumeFeedback into its individual suggestions.
func (a Application) FeedbackPoints() []string {
	var points []string
	for _, p := range strings.Split(a.ResumeFeedback, FeedbackDelimiter) {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), ","))
		if p != "" {
			points = append(points, p)
		}
	}
	return points
}

// User is the single document stored per account. The applications list is
// embedded inline; there is no separate collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"userId" json:"userId"` // auth provider UID
	Email        string             `bson:"email" json:"email"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Membership   string             `bson:"membership" json:"membership"`
	Resume       string             `bson:"resume" json:"resume"`
	Applications []Application      `bson:"applications" json:"applications"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
