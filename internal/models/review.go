package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxReviewLength = 500

type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Mentor     primitive.ObjectID `json:"mentor" bson:"mentor"`
	ReviewedBy primitive.ObjectID `json:"reviewed_by" bson:"reviewed_by"`
	Session    primitive.ObjectID `json:"session" bson:"session"`
	Rating     int                `json:"rating" bson:"rating"`
	Text       string             `json:"text" bson:"text"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
