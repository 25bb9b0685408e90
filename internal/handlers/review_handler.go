package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/middleware"
	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

type ReviewHandler struct {
	reviews  store.ReviewStore
	sessions store.SessionStore
	profiles store.MentorProfileStore
}

func NewReviewHandler(reviews store.ReviewStore, sessions store.SessionStore, profiles store.MentorProfileStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, sessions: sessions, profiles: profiles}
}

// CreateReview accepts a mentee's review of a completed session. The checks
// run in a fixed order: session existence, completion, authorship, then
// duplication, so the first failing condition decides the error. After the
// review is stored the mentor's rating aggregate is updated best-effort; a
// failed aggregate update never rolls the review back.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reviewerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		Mentor  string `json:"mentor"`
		Session string `json:"session"`
		Rating  int    `json:"rating"`
		Text    string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	mentorID, err := primitive.ObjectIDFromHex(body.Mentor)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mentor ID")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(body.Session)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := h.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("create review: session lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if session.Status != models.StatusCompleted {
		respondError(w, http.StatusBadRequest, "Cannot review a session that is not completed")
		return
	}

	if session.Mentee != reviewerID {
		respondError(w, http.StatusUnauthorized, "Not authorized to review this session")
		return
	}

	_, err = h.reviews.FindBySessionAndReviewer(ctx, sessionID, reviewerID)
	if err == nil {
		respondError(w, http.StatusBadRequest, "Review already exists for this session")
		return
	}
	if err != store.ErrNotFound {
		log.Printf("create review: duplicate check failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	// Content validation sits after the session guards so a not-completed
	// session is reported as such regardless of the body's validity.
	if body.Rating < 1 || body.Rating > 5 {
		respondError(w, http.StatusBadRequest, "Please add a rating between 1 and 5")
		return
	}
	if body.Text == "" {
		respondError(w, http.StatusBadRequest, "Please add review text")
		return
	}
	if len(body.Text) > models.MaxReviewLength {
		respondError(w, http.StatusBadRequest, "Review cannot be more than 500 characters")
		return
	}

	review := models.Review{
		Mentor:     mentorID,
		ReviewedBy: reviewerID,
		Session:    sessionID,
		Rating:     body.Rating,
		Text:       body.Text,
	}
	if err := h.reviews.Create(ctx, &review); err != nil {
		if err == store.ErrDuplicate {
			respondError(w, http.StatusBadRequest, "Review already exists for this session")
			return
		}
		log.Printf("create review: insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	// Mentors without a profile simply get no aggregate.
	if err := h.profiles.ApplyRating(ctx, mentorID, body.Rating); err != nil && err != store.ErrNotFound {
		log.Printf("create review: rating aggregate update failed for mentor %s: %v", mentorID.Hex(), err)
	}

	respondJSON(w, http.StatusCreated, &review)
}

// GetMentorReviews returns a mentor's reviews, newest first.
func (h *ReviewHandler) GetMentorReviews(w http.ResponseWriter, r *http.Request) {
	mentorID, err := primitive.ObjectIDFromHex(mux.Vars(r)["mentorId"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Mentor not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reviews, err := h.reviews.FindByMentor(ctx, mentorID)
	if err != nil {
		log.Printf("get mentor reviews: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	respondList(w, http.StatusOK, len(reviews), reviews)
}
