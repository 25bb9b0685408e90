package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is the single messaging thread between an unordered pair of
// users. Participants always has exactly two entries.
type Conversation struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Participants []primitive.ObjectID `json:"participants" bson:"participants"`
	LastMessage  primitive.ObjectID   `json:"last_message,omitempty" bson:"last_message,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Conversation primitive.ObjectID `json:"conversation" bson:"conversation"`
	Sender       primitive.ObjectID `json:"sender" bson:"sender"`
	Recipient    primitive.ObjectID `json:"recipient" bson:"recipient"`
	Text         string             `json:"text" bson:"text"`
	Read         bool               `json:"read" bson:"read"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
