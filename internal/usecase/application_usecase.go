package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/resumeready/backend/internal/model"
	"github.com/resumeready/backend/internal/response"
)

// ErrInvalidStatus is returned when a status update carries a value outside
// the enumeration.
var ErrInvalidStatus = errors.New("invalid application status")

// UserStore is the document-store surface this usecase needs.
type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
	SetResume(ctx context.Context, userID, resume string) error
	SetMembership(ctx context.Context, userID, membership string) error
}

// ApplicationStore mutates the embedded applications list.
type ApplicationStore interface {
	Append(ctx context.Context, userID string, app model.Application) error
	AppendQuestions(ctx context.Context, userID, applicationID string, questions []model.InterviewQuestion) error
	UpdateStatus(ctx context.Context, userID, applicationID, status string) error
	Remove(ctx context.Context, userID, applicationID string) error
}

type ApplicationUsecase struct {
	users  UserStore
	apps   ApplicationStore
	enrich Enricher
}

func NewApplicationUsecase(users UserStore, apps ApplicationStore, enrich Enricher) *ApplicationUsecase {
	return &ApplicationUsecase{users: users, apps: apps, enrich: enrich}
}

func (uc *ApplicationUsecase) Signup(ctx context.Context, userID, email, firstName, lastName string) error {
	user := &model.User{
		UserID:       userID,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Membership:   model.MembershipFree,
		Resume:       "",
		Applications: []model.Application{},
		CreatedAt:    time.Now(),
	}
	return uc.users.Insert(ctx, user)
}

func (uc *ApplicationUsecase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return uc.users.FindByUserID(ctx, userID)
}

func (uc *ApplicationUsecase) SaveResume(ctx context.Context, userID, resume string) error {
	return uc.users.SetResume(ctx, userID, resume)
}

func (uc *ApplicationUsecase) ActivatePlus(ctx context.Context, userID string) error {
	return uc.users.SetMembership(ctx, userID, model.MembershipPlus)
}

// ListApplications returns one page of the user's applications, most recent
// first.
func (uc *ApplicationUsecase) ListApplications(ctx context.Context, userID string, page, pageSize int) ([]model.Application, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	user, err := uc.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	apps := make([]model.Application, len(user.Applications))
	copy(apps, user.Applications)
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].DateCreated.After(apps[j].DateCreated)
	})

	total := len(apps)
	from := (page - 1) * pageSize
	if from > total {
		from = total
	}
	to := from + pageSize
	if to > total {
		to = total
	}

	totalPages := int64((total + pageSize - 1) / pageSize)
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: int64(total),
		HasMore:    to < total,
		From:       from + 1,
		To:         to,
	}
	if total == 0 {
		pagination.From = 0
	}
	return apps[from:to], pagination, nil
}

// AnalyzeJobDescription is the full enrichment path: fetch the stored resume,
// build the record, then persist it. Compute and commit stay separate steps;
// a build failure writes nothing.
func (uc *ApplicationUsecase) AnalyzeJobDescription(ctx context.Context, userID, jobDescription string) (model.Application, error) {
	user, err := uc.users.FindByUserID(ctx, userID)
	if err != nil {
		return model.Application{}, err
	}
	if user.Resume == "" {
		return model.Application{}, ErrNoResume
	}

	app, err := uc.enrich.Build(ctx, user.Resume, jobDescription)
	if err != nil {
		return model.Application{}, err
	}

	if err := uc.apps.Append(ctx, userID, app); err != nil {
		return model.Application{}, fmt.Errorf("persist application: %w", err)
	}
	return app, nil
}

// GenerateQuestions appends freshly generated questions to an existing
// application. The list only ever grows; removal happens by deleting the
// whole application.
func (uc *ApplicationUsecase) GenerateQuestions(ctx context.Context, userID, applicationID, jobDescription, questionType string, numQuestions int) ([]model.InterviewQuestion, error) {
	user, err := uc.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Resume == "" {
		return nil, ErrNoResume
	}

	questions, err := uc.enrich.GenerateQuestions(ctx, user.Resume, jobDescription, questionType, numQuestions)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	if err := uc.apps.AppendQuestions(ctx, userID, applicationID, questions); err != nil {
		return nil, fmt.Errorf("persist interview questions: %w", err)
	}
	return questions, nil
}

func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, userID, applicationID, newStatus string) error {
	if !model.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	return uc.apps.UpdateStatus(ctx, userID, applicationID, newStatus)
}

func (uc *ApplicationUsecase) DeleteApplication(ctx context.Context, userID, applicationID string) error {
	return uc.apps.Remove(ctx, userID, applicationID)
}
