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

type MongoSessionStore struct {
	collection *mongo.Collection
}

func NewMongoSessionStore(client *mongo.Client, dbName string) *MongoSessionStore {
	return &MongoSessionStore{
		collection: client.Database(dbName).Collection("sessions"),
	}
}

func (s *MongoSessionStore) Create(ctx context.Context, session *models.Session) error {
	session.ID = primitive.NewObjectID()
	session.Status = models.StatusPending
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt

	_, err := s.collection.InsertOne(ctx, session)
	return err
}

func (s *MongoSessionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) FindAll(ctx context.Context) ([]models.Session, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoSessionStore) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Session, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"mentor": userID},
		bson.M{"mentee": userID},
	}}
	return s.findMany(ctx, filter)
}

func (s *MongoSessionStore) findMany(ctx context.Context, filter bson.M) ([]models.Session, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *MongoSessionStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.SessionStatus, meetingLink string) (*models.Session, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if meetingLink != "" {
		set["meeting_link"] = meetingLink
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var session models.Session
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
