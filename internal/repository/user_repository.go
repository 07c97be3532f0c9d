package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/resumeready/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when the user document, or the targeted application
// inside it, does not exist. A zero-modified update is surfaced the same way.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when signup hits an existing userId.
var ErrAlreadyExists = errors.New("user already exists")

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	count, err := r.col.CountDocuments(ctx, bson.M{"userId": user.UserID})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) SetResume(ctx context.Context, userID, resume string) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"resume": resume}},
	)
	if err != nil {
		return fmt.Errorf("set resume: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetMembership(ctx context.Context, userID, membership string) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"membership": membership}},
	)
	if err != nil {
		return fmt.Errorf("set membership: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
