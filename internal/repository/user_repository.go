package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"emphub/internal/domain"
	"emphub/pkg/logger"
	"emphub/pkg/metrics"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewUserRepository(db *mongo.Database, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		collection: db.Collection(UsersCollection),
		logger:     logger,
	}
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, nil
	}

	start := time.Now()
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "$or", Value: or}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		metrics.RecordStoreOperation("find_one", UsersCollection, nil, time.Since(start))
		return nil, nil
	}
	metrics.RecordStoreOperation("find_one", UsersCollection, err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "User lookup failed", map[string]interface{}{"username": username, "email": email, "error": err.Error()})
		return nil, fmt.Errorf("finding user: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	start := time.Now()
	res, err := r.collection.InsertOne(ctx, doc)
	err = translate(err)
	metrics.RecordStoreOperation("insert_one", UsersCollection, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			r.logger.ErrorContext(ctx, "User insert failed", map[string]interface{}{"username": user.Username, "error": err.Error()})
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}
