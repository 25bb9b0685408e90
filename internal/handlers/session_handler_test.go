package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/models"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
	done chan struct{}
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{done: make(chan struct{}, 1)}
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, to)
	m.mu.Unlock()
	select {
	case m.done <- struct{}{}:
	default:
	}
	return nil
}

type sessionFixture struct {
	handler  *SessionHandler
	sessions *fakeSessionStore
	users    *fakeUserStore
	mailer   *recordingMailer
	mentor   primitive.ObjectID
	mentee   primitive.ObjectID
}

func newSessionFixture() *sessionFixture {
	sessions := newFakeSessionStore()
	users := newFakeUserStore()
	mailer := newRecordingMailer()

	mentor := users.add(models.User{Name: "Mentor", Email: "mentor@example.com", Role: models.RoleMentor})
	mentee := users.add(models.User{Name: "Mentee", Email: "mentee@example.com", Role: models.RoleMentee})

	return &sessionFixture{
		handler:  NewSessionHandler(sessions, users, mailer),
		sessions: sessions,
		users:    users,
		mailer:   mailer,
		mentor:   mentor,
		mentee:   mentee,
	}
}

func (f *sessionFixture) updateStatus(t *testing.T, caller, sessionID primitive.ObjectID, next models.SessionStatus) *httptest.ResponseRecorder {
	t.Helper()
	body := map[string]string{"status": string(next)}
	r := authRequest(t, http.MethodPut, "/api/sessions/"+sessionID.Hex()+"/status", body, caller, models.RoleMentee)
	r = muxSetVars(r, map[string]string{"id": sessionID.Hex()})
	w := httptest.NewRecorder()
	f.handler.UpdateStatus(w, r)
	return w
}

// Requirement: booking creates a pending session with the caller as mentee
// and notifies the mentor by email.
func TestCreateSession(t *testing.T) {
	f := newSessionFixture()

	body := map[string]interface{}{
		"mentor":      f.mentor.Hex(),
		"title":       "System design intro",
		"description": "Walk through a design interview",
		"date":        time.Now().Add(48 * time.Hour),
		"start_time":  "5:00 PM",
		"end_time":    "6:00 PM",
	}
	w := httptest.NewRecorder()
	f.handler.CreateSession(w, authRequest(t, http.MethodPost, "/api/sessions", body, f.mentee, models.RoleMentee))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data models.Session `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", envelope.Data.Status)
	}
	if envelope.Data.Mentee != f.mentee {
		t.Errorf("mentee = %s, want caller", envelope.Data.Mentee.Hex())
	}

	select {
	case <-f.mailer.done:
	case <-time.After(time.Second):
		t.Fatal("mentor notification email was not sent")
	}
	f.mailer.mu.Lock()
	defer f.mailer.mu.Unlock()
	if len(f.mailer.sent) != 1 || f.mailer.sent[0] != "mentor@example.com" {
		t.Errorf("mail recipients = %v", f.mailer.sent)
	}
}

// Requirement: booking against a non-mentor or unknown user is a 404.
func TestCreateSession_MentorNotFound(t *testing.T) {
	f := newSessionFixture()

	for _, mentorID := range []primitive.ObjectID{primitive.NewObjectID(), f.mentee} {
		body := map[string]interface{}{
			"mentor":      mentorID.Hex(),
			"title":       "t",
			"description": "d",
			"date":        time.Now(),
			"start_time":  "1:00 PM",
			"end_time":    "2:00 PM",
		}
		w := httptest.NewRecorder()
		f.handler.CreateSession(w, authRequest(t, http.MethodPost, "/api/sessions", body, f.mentee, models.RoleMentee))
		if w.Code != http.StatusNotFound {
			t.Errorf("mentor %s: status = %d, want 404", mentorID.Hex(), w.Code)
		}
	}
}

// Requirement: the lifecycle is pending→confirmed→completed with
// cancellation from pending or confirmed; terminal states reject everything.
func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		current models.SessionStatus
		next    models.SessionStatus
		caller  string // "mentor" or "mentee"
		want    int
	}{
		{name: "mentor confirms pending", current: models.StatusPending, next: models.StatusConfirmed, caller: "mentor", want: http.StatusOK},
		{name: "mentee cannot confirm", current: models.StatusPending, next: models.StatusConfirmed, caller: "mentee", want: http.StatusForbidden},
		{name: "mentor completes confirmed", current: models.StatusConfirmed, next: models.StatusCompleted, caller: "mentor", want: http.StatusOK},
		{name: "mentee cannot complete", current: models.StatusConfirmed, next: models.StatusCompleted, caller: "mentee", want: http.StatusForbidden},
		{name: "cannot complete pending", current: models.StatusPending, next: models.StatusCompleted, caller: "mentor", want: http.StatusBadRequest},
		{name: "mentee cancels pending", current: models.StatusPending, next: models.StatusCancelled, caller: "mentee", want: http.StatusOK},
		{name: "mentor cancels confirmed", current: models.StatusConfirmed, next: models.StatusCancelled, caller: "mentor", want: http.StatusOK},
		{name: "cannot cancel completed", current: models.StatusCompleted, next: models.StatusCancelled, caller: "mentor", want: http.StatusBadRequest},
		{name: "cannot revive cancelled", current: models.StatusCancelled, next: models.StatusConfirmed, caller: "mentor", want: http.StatusBadRequest},
		{name: "cannot move back to pending", current: models.StatusConfirmed, next: models.StatusPending, caller: "mentor", want: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newSessionFixture()
			sessionID := f.sessions.add(models.Session{
				Mentor: f.mentor,
				Mentee: f.mentee,
				Status: test.current,
			})

			caller := f.mentor
			if test.caller == "mentee" {
				caller = f.mentee
			}

			w := f.updateStatus(t, caller, sessionID, test.next)
			if w.Code != test.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, test.want, w.Body.String())
			}

			stored, _ := f.sessions.FindByID(nil, sessionID)
			if test.want == http.StatusOK {
				if stored.Status != test.next {
					t.Errorf("session status = %q, want %q", stored.Status, test.next)
				}
			} else if stored.Status != test.current {
				t.Errorf("rejected transition mutated status to %q", stored.Status)
			}
		})
	}
}

// Requirement: confirming a session without a meeting link generates one.
func TestUpdateStatus_ConfirmGeneratesMeetingLink(t *testing.T) {
	f := newSessionFixture()
	sessionID := f.sessions.add(models.Session{
		Mentor: f.mentor,
		Mentee: f.mentee,
		Status: models.StatusPending,
	})

	w := f.updateStatus(t, f.mentor, sessionID, models.StatusConfirmed)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	stored, _ := f.sessions.FindByID(nil, sessionID)
	if stored.MeetingLink == "" {
		t.Error("confirmed session has no meeting link")
	}

	// A pre-set link survives confirmation.
	f2 := newSessionFixture()
	presetID := f2.sessions.add(models.Session{
		Mentor:      f2.mentor,
		Mentee:      f2.mentee,
		Status:      models.StatusPending,
		MeetingLink: "https://example.com/room",
	})
	f2.updateStatus(t, f2.mentor, presetID, models.StatusConfirmed)
	stored, _ = f2.sessions.FindByID(nil, presetID)
	if stored.MeetingLink != "https://example.com/room" {
		t.Errorf("meeting link overwritten: %q", stored.MeetingLink)
	}
}

// Requirement: only participants see or delete a session.
func TestSessionParticipantGuard(t *testing.T) {
	f := newSessionFixture()
	sessionID := f.sessions.add(models.Session{
		Mentor: f.mentor,
		Mentee: f.mentee,
		Status: models.StatusPending,
	})
	stranger := f.users.add(models.User{Name: "Eve", Email: "eve@example.com", Role: models.RoleMentee})

	r := authRequest(t, http.MethodGet, "/api/sessions/"+sessionID.Hex(), nil, stranger, models.RoleMentee)
	r = muxSetVars(r, map[string]string{"id": sessionID.Hex()})
	w := httptest.NewRecorder()
	f.handler.GetSession(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("get by stranger: status = %d, want 403", w.Code)
	}

	r = authRequest(t, http.MethodDelete, "/api/sessions/"+sessionID.Hex(), nil, stranger, models.RoleMentee)
	r = muxSetVars(r, map[string]string{"id": sessionID.Hex()})
	w = httptest.NewRecorder()
	f.handler.DeleteSession(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("delete by stranger: status = %d, want 403", w.Code)
	}

	// The mentee may delete their own session.
	r = authRequest(t, http.MethodDelete, "/api/sessions/"+sessionID.Hex(), nil, f.mentee, models.RoleMentee)
	r = muxSetVars(r, map[string]string{"id": sessionID.Hex()})
	w = httptest.NewRecorder()
	f.handler.DeleteSession(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("delete by mentee: status = %d, want 200", w.Code)
	}
	if _, err := f.sessions.FindByID(nil, sessionID); err == nil {
		t.Error("session still present after delete")
	}
}
