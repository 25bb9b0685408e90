package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentorconnect/backend/internal/models"
)

type MongoReviewStore struct {
	collection *mongo.Collection
}

func NewMongoReviewStore(client *mongo.Client, dbName string) *MongoReviewStore {
	return &MongoReviewStore{
		collection: client.Database(dbName).Collection("reviews"),
	}
}

// Create inserts the review. The collection carries a unique compound index
// on (reviewed_by, session), so a concurrent duplicate surfaces as
// ErrDuplicate here even when the handler's existence check passed.
func (s *MongoReviewStore) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	_, err := s.collection.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoReviewStore) FindBySessionAndReviewer(ctx context.Context, sessionID, reviewerID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.collection.FindOne(ctx, bson.M{
		"session":     sessionID,
		"reviewed_by": reviewerID,
	}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *MongoReviewStore) FindByMentor(ctx context.Context, mentorID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.collection.Find(ctx, bson.M{"mentor": mentorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
