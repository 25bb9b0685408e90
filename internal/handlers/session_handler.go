package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/middleware"
	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

// Notifier delivers best-effort emails. Nil disables notifications.
type Notifier interface {
	Send(to string, subject string, body string) error
}

type SessionHandler struct {
	sessions store.SessionStore
	users    store.UserStore
	mailer   Notifier
}

func NewSessionHandler(sessions store.SessionStore, users store.UserStore, mailer Notifier) *SessionHandler {
	return &SessionHandler{sessions: sessions, users: users, mailer: mailer}
}

// GetSessions lists every session. Admin only.
func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := h.sessions.FindAll(ctx)
	if err != nil {
		log.Printf("get sessions: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	respondJSON(w, http.StatusOK, sessions)
}

// CreateSession books a new session; the caller becomes the mentee.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	menteeID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		Mentor      string    `json:"mentor"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		StartTime   string    `json:"start_time"`
		EndTime     string    `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Title == "" || body.Description == "" || body.Date.IsZero() || body.StartTime == "" || body.EndTime == "" {
		respondError(w, http.StatusBadRequest, "Title, description, date, start time, and end time are required")
		return
	}

	mentorID, err := primitive.ObjectIDFromHex(body.Mentor)
	if err != nil {
		respondError(w, http.StatusNotFound, "Mentor not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mentor, err := h.users.FindByID(ctx, mentorID)
	if err != nil || mentor.Role != models.RoleMentor {
		respondError(w, http.StatusNotFound, "Mentor not found")
		return
	}

	session := models.Session{
		Mentor:      mentorID,
		Mentee:      menteeID,
		Title:       body.Title,
		Description: body.Description,
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	}
	if err := h.sessions.Create(ctx, &session); err != nil {
		log.Printf("create session: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if h.mailer != nil {
		subject := "New session request: " + session.Title
		emailBody := fmt.Sprintf("<p>You have a new mentoring session request for %s (%s to %s).</p>",
			session.Date.Format("January 2, 2006"), session.StartTime, session.EndTime)
		go func(to string) {
			if err := h.mailer.Send(to, subject, emailBody); err != nil {
				log.Printf("create session: notification email failed: %v", err)
			}
		}(mentor.Email)
	}

	respondJSON(w, http.StatusCreated, &session)
}

// GetMySessions lists the caller's sessions on either side.
func (h *SessionHandler) GetMySessions(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := h.sessions.FindByParticipant(ctx, objID)
	if err != nil {
		log.Printf("get my sessions: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetSession returns one session; only its participants may see it.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.loadParticipantSession(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// UpdateStatus moves a session through its lifecycle. Confirmation and
// completion belong to the mentor; either participant may cancel a session
// that has not finished.
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, caller, ok := h.loadParticipantSession(w, r)
	if !ok {
		return
	}

	var body struct {
		Status models.SessionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	switch body.Status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if !models.CanTransition(session.Status, body.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status transition")
		return
	}
	if models.MentorOnlyTransition(body.Status) && caller != session.Mentor {
		respondError(w, http.StatusForbidden, "Not authorized")
		return
	}

	meetingLink := ""
	if body.Status == models.StatusConfirmed && session.MeetingLink == "" {
		meetingLink = "https://meet.mentorconnect.app/" + uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := h.sessions.UpdateStatus(ctx, session.ID, body.Status, meetingLink)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("update session status: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteSession removes a session; only its participants may do so.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := h.loadParticipantSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.sessions.Delete(ctx, session.ID); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("delete session: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

// loadParticipantSession fetches the routed session and rejects callers who
// are neither its mentor nor its mentee. On failure it has already written
// the response.
func (h *SessionHandler) loadParticipantSession(w http.ResponseWriter, r *http.Request) (*models.Session, primitive.ObjectID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, primitive.NilObjectID, false
	}
	caller, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return nil, primitive.NilObjectID, false
	}

	sessionID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return nil, primitive.NilObjectID, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := h.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Session not found")
			return nil, primitive.NilObjectID, false
		}
		log.Printf("load session: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return nil, primitive.NilObjectID, false
	}

	if session.Mentor != caller && session.Mentee != caller {
		respondError(w, http.StatusForbidden, "Not authorized")
		return nil, primitive.NilObjectID, false
	}

	return session, caller, true
}
