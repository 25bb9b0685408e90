package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilitySlot struct {
	StartTime string `json:"start_time" bson:"start_time"` // e.g. "5:00 PM"
	EndTime   string `json:"end_time" bson:"end_time"`
}

type DayAvailability struct {
	Day   string             `json:"day" bson:"day"` // "Monday".."Sunday"
	Slots []AvailabilitySlot `json:"slots" bson:"slots"`
}

type Education struct {
	Institution  string    `json:"institution" bson:"institution"`
	Degree       string    `json:"degree" bson:"degree"`
	FieldOfStudy string    `json:"field_of_study" bson:"field_of_study"`
	From         time.Time `json:"from" bson:"from"`
	To           time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool      `json:"current" bson:"current"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
}

type WorkExperience struct {
	Company     string    `json:"company" bson:"company"`
	Position    string    `json:"position" bson:"position"`
	From        time.Time `json:"from" bson:"from"`
	To          time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool      `json:"current" bson:"current"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
}

type MentorProfile struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User           primitive.ObjectID `json:"user" bson:"user"`
	Title          string             `json:"title" bson:"title"`
	Expertise      []string           `json:"expertise" bson:"expertise"`
	Experience     string             `json:"experience" bson:"experience"`
	HourlyRate     float64            `json:"hourly_rate" bson:"hourly_rate"`
	Availability   []DayAvailability  `json:"availability" bson:"availability"`
	Education      []Education        `json:"education,omitempty" bson:"education,omitempty"`
	WorkExperience []WorkExperience   `json:"work_experience,omitempty" bson:"work_experience,omitempty"`
	AverageRating  float64            `json:"average_rating" bson:"average_rating"`
	TotalReviews   int                `json:"total_reviews" bson:"total_reviews"`
	IsVerified     bool               `json:"is_verified" bson:"is_verified"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// MentorProfileInput lists the fields a mentor may set on their own profile.
// The rating aggregate is never writable through this input.
type MentorProfileInput struct {
	Title          *string            `json:"title"`
	Expertise      *[]string          `json:"expertise"`
	Experience     *string            `json:"experience"`
	HourlyRate     *float64           `json:"hourly_rate"`
	Availability   *[]DayAvailability `json:"availability"`
	Education      *[]Education       `json:"education"`
	WorkExperience *[]WorkExperience  `json:"work_experience"`
}

// NextAverage folds one accepted rating into a running mean.
// With n prior reviews averaging a, the new aggregate is ((a*n)+r)/(n+1).
func NextAverage(average float64, total int, rating int) (float64, int) {
	newTotal := total + 1
	return (average*float64(total) + float64(rating)) / float64(newTotal), newTotal
}
