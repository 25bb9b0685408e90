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

type MongoMentorProfileStore struct {
	collection *mongo.Collection
}

func NewMongoMentorProfileStore(client *mongo.Client, dbName string) *MongoMentorProfileStore {
	return &MongoMentorProfileStore{
		collection: client.Database(dbName).Collection("mentor_profiles"),
	}
}

func (s *MongoMentorProfileStore) Create(ctx context.Context, profile *models.MentorProfile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	_, err := s.collection.InsertOne(ctx, profile)
	return err
}

func (s *MongoMentorProfileStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.MentorProfile, error) {
	var profile models.MentorProfile
	err := s.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoMentorProfileStore) FindAll(ctx context.Context) ([]models.MentorProfile, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoMentorProfileStore) FindByExpertise(ctx context.Context, expertise []string) ([]models.MentorProfile, error) {
	filter := bson.M{}
	if len(expertise) > 0 {
		filter["expertise"] = bson.M{"$in": expertise}
	}
	return s.findMany(ctx, filter)
}

func (s *MongoMentorProfileStore) findMany(ctx context.Context, filter bson.M) ([]models.MentorProfile, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.MentorProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *MongoMentorProfileStore) Update(ctx context.Context, userID primitive.ObjectID, input models.MentorProfileInput) (*models.MentorProfile, error) {
	set := bson.M{"updated_at": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Expertise != nil {
		set["expertise"] = *input.Expertise
	}
	if input.Experience != nil {
		set["experience"] = *input.Experience
	}
	if input.HourlyRate != nil {
		set["hourly_rate"] = *input.HourlyRate
	}
	if input.Availability != nil {
		set["availability"] = *input.Availability
	}
	if input.Education != nil {
		set["education"] = *input.Education
	}
	if input.WorkExperience != nil {
		set["work_experience"] = *input.WorkExperience
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var profile models.MentorProfile
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": set}, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ApplyRating recomputes the running average server-side in one update, so
// concurrent reviews for the same mentor cannot lose each other's increment.
func (s *MongoMentorProfileStore) ApplyRating(ctx context.Context, userID primitive.ObjectID, rating int) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "average_rating", Value: bson.D{{Key: "$divide", Value: bson.A{
				bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$multiply", Value: bson.A{"$average_rating", "$total_reviews"}}},
					rating,
				}}},
				bson.D{{Key: "$add", Value: bson.A{"$total_reviews", 1}}},
			}}}},
			{Key: "total_reviews", Value: bson.D{{Key: "$add", Value: bson.A{"$total_reviews", 1}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"user": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
