// Package store persists the application's documents in MongoDB. Each
// collection gets a small interface so handlers can be exercised against
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/models"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate document")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, input models.UpdateProfileInput) (*models.User, error)
}

type MentorProfileStore interface {
	Create(ctx context.Context, profile *models.MentorProfile) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.MentorProfile, error)
	FindAll(ctx context.Context) ([]models.MentorProfile, error)
	// FindByExpertise returns profiles matching any of the given expertise
	// areas; an empty slice matches every profile.
	FindByExpertise(ctx context.Context, expertise []string) ([]models.MentorProfile, error)
	Update(ctx context.Context, userID primitive.ObjectID, input models.MentorProfileInput) (*models.MentorProfile, error)
	// ApplyRating folds one accepted rating into the profile's running
	// average and review count in a single document write. Returns
	// ErrNotFound when the mentor has no profile.
	ApplyRating(ctx context.Context, userID primitive.ObjectID, rating int) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	FindAll(ctx context.Context) ([]models.Session, error)
	// FindByParticipant returns sessions where the user is mentor or mentee.
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Session, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.SessionStatus, meetingLink string) (*models.Session, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindBySessionAndReviewer(ctx context.Context, sessionID, reviewerID primitive.ObjectID) (*models.Review, error)
	// FindByMentor returns a mentor's reviews newest-first.
	FindByMentor(ctx context.Context, mentorID primitive.ObjectID) ([]models.Review, error)
}

type ConversationStore interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	// FindByPair resolves the conversation whose participant set is exactly
	// {a, b}, in either order.
	FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	// FindByParticipant returns the user's conversations, most recently
	// updated first.
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID, messageID primitive.ObjectID) error
}

type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	// FindByConversation returns a conversation's messages oldest-first.
	FindByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error)
	// MarkRead flags every unread message addressed to recipient in the
	// conversation as read.
	MarkRead(ctx context.Context, conversationID, recipientID primitive.ObjectID) error
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
}
