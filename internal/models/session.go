package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusConfirmed SessionStatus = "confirmed"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

type Session struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Mentor      primitive.ObjectID `json:"mentor" bson:"mentor"`
	Mentee      primitive.ObjectID `json:"mentee" bson:"mentee"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Date        time.Time          `json:"date" bson:"date"`
	StartTime   string             `json:"start_time" bson:"start_time"`
	EndTime     string             `json:"end_time" bson:"end_time"`
	Status      SessionStatus      `json:"status" bson:"status"`
	MeetingLink string             `json:"meeting_link,omitempty" bson:"meeting_link,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CanTransition reports whether a session may move from its current status to
// next. Completed and cancelled are terminal.
func CanTransition(current, next SessionStatus) bool {
	switch current {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// MentorOnlyTransition reports whether the transition to next is restricted to
// the session's mentor. Cancellation is open to either participant.
func MentorOnlyTransition(next SessionStatus) bool {
	return next == StatusConfirmed || next == StatusCompleted
}
