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

type UserHandler struct {
	users         store.UserStore
	sessions      store.SessionStore
	conversations store.ConversationStore
}

func NewUserHandler(users store.UserStore, sessions store.SessionStore, conversations store.ConversationStore) *UserHandler {
	return &UserHandler{users: users, sessions: sessions, conversations: conversations}
}

// GetUser returns a user by id, without the password hash.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByID(ctx, objID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("get user: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile applies the caller's provided profile fields. Absent fields
// are left untouched.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input models.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.users.UpdateProfile(ctx, objID, input)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("update profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUserSessions returns every session where the user is mentor or mentee.
func (h *UserHandler) GetUserSessions(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := h.sessions.FindByParticipant(ctx, objID)
	if err != nil {
		log.Printf("get user sessions: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetUserConversations returns every conversation the user participates in.
func (h *UserHandler) GetUserConversations(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conversations, err := h.conversations.FindByParticipant(ctx, objID)
	if err != nil {
		log.Printf("get user conversations: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}

	respondJSON(w, http.StatusOK, conversations)
}
