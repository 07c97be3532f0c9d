package repository

import (
	"context"
	"fmt"

	"github.com/resumeready/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationRepository mutates the applications list embedded in a user
// document. Appends always create a new entry; status updates and removals
// target an existing id and report ErrNotFound when nothing was modified.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection("users")}
}

func (r *ApplicationRepository) Append(ctx context.Context, userID string, app model.Application) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$push": bson.M{"applications": app}},
	)
	if err != nil {
		return fmt.Errorf("append application: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) AppendQuestions(ctx context.Context, userID, applicationID string, questions []model.InterviewQuestion) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "applications.id": applicationID},
		bson.M{"$push": bson.M{"applications.$.interviewQuestions": bson.M{"$each": questions}}},
	)
	if err != nil {
		return fmt.Errorf("append interview questions: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus rewrites only the status field of the matching application.
// Setting the same status twice reports a no-op, indistinguishable from a
// missing id.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, userID, applicationID, status string) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "applications.id": applicationID},
		bson.M{"$set": bson.M{"applications.$.status": status}},
	)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes the application and all its interview questions in one
// document update.
func (r *ApplicationRepository) Remove(ctx context.Context, userID, applicationID string) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"applications": bson.M{"id": applicationID}}},
	)
	if err != nil {
		return fmt.Errorf("remove application: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
