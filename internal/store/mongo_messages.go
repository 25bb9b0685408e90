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

type MongoConversationStore struct {
	collection *mongo.Collection
}

func NewMongoConversationStore(client *mongo.Client, dbName string) *MongoConversationStore {
	return &MongoConversationStore{
		collection: client.Database(dbName).Collection("conversations"),
	}
}

func (s *MongoConversationStore) Create(ctx context.Context, conversation *models.Conversation) error {
	conversation.ID = primitive.NewObjectID()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt

	_, err := s.collection.InsertOne(ctx, conversation)
	return err
}

func (s *MongoConversationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *MongoConversationStore) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	filter := bson.M{"participants": bson.M{"$all": bson.A{a, b}}}

	var conversation models.Conversation
	err := s.collection.FindOne(ctx, filter).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *MongoConversationStore) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := s.collection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err = cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *MongoConversationStore) SetLastMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": conversationID}, bson.M{
		"$set": bson.M{
			"last_message": messageID,
			"updated_at":   time.Now(),
		},
	})
	return err
}

type MongoMessageStore struct {
	collection *mongo.Collection
}

func NewMongoMessageStore(client *mongo.Client, dbName string) *MongoMessageStore {
	return &MongoMessageStore{
		collection: client.Database(dbName).Collection("messages"),
	}
}

func (s *MongoMessageStore) Create(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.Read = false
	message.CreatedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, message)
	return err
}

func (s *MongoMessageStore) FindByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"conversation": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MongoMessageStore) MarkRead(ctx context.Context, conversationID, recipientID primitive.ObjectID) error {
	_, err := s.collection.UpdateMany(ctx, bson.M{
		"conversation": conversationID,
		"recipient":    recipientID,
		"read":         false,
	}, bson.M{
		"$set": bson.M{"read": true},
	})
	return err
}

func (s *MongoMessageStore) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{
		"recipient": recipientID,
		"read":      false,
	})
}
