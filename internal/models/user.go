package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMentor UserRole = "mentor"
	RoleMentee UserRole = "mentee"
)

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty" bson:"github,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Role           UserRole           `json:"role" bson:"role"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Location       string             `json:"location,omitempty" bson:"location,omitempty"`
	Skills         []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	Interests      []string           `json:"interests,omitempty" bson:"interests,omitempty"`
	SocialLinks    SocialLinks        `json:"social_links,omitempty" bson:"social_links,omitempty"`
	ProfilePicture string             `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpdateProfileInput lists every optional profile field a user may change.
// A nil field means "leave unchanged".
type UpdateProfileInput struct {
	Name           *string      `json:"name"`
	Bio            *string      `json:"bio"`
	Location       *string      `json:"location"`
	Skills         *[]string    `json:"skills"`
	Interests      *[]string    `json:"interests"`
	SocialLinks    *SocialLinks `json:"social_links"`
	ProfilePicture *string      `json:"profile_picture"`
}
