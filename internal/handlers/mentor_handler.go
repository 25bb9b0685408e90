package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/middleware"
	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

type MentorHandler struct {
	users    store.UserStore
	profiles store.MentorProfileStore
}

func NewMentorHandler(users store.UserStore, profiles store.MentorProfileStore) *MentorHandler {
	return &MentorHandler{users: users, profiles: profiles}
}

// mentorProfileView pairs a profile with its owning user, the Go equivalent
// of the document store's reference population.
type mentorProfileView struct {
	Profile models.MentorProfile `json:"profile"`
	User    *models.User         `json:"user,omitempty"`
}

// GetMentors lists every user with the mentor role.
func (h *MentorHandler) GetMentors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mentors, err := h.users.FindByRole(ctx, models.RoleMentor)
	if err != nil {
		log.Printf("get mentors: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if mentors == nil {
		mentors = []models.User{}
	}

	respondList(w, http.StatusOK, len(mentors), mentors)
}

// GetProfiles lists every mentor profile with its user attached.
func (h *MentorHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profiles, err := h.profiles.FindAll(ctx)
	if err != nil {
		log.Printf("get mentor profiles: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	views := h.attachUsers(ctx, profiles)
	respondList(w, http.StatusOK, len(views), views)
}

// GetProfile returns the mentor profile for a given user id.
func (h *MentorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Mentor profile not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profiles.FindByUser(ctx, objID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Mentor profile not found")
			return
		}
		log.Printf("get mentor profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	view := mentorProfileView{Profile: *profile}
	if user, err := h.users.FindByID(ctx, profile.User); err == nil {
		view.User = user
	}

	respondJSON(w, http.StatusOK, view)
}

// UpsertProfile creates the caller's mentor profile, or updates it when one
// already exists. Only mentors reach this handler. The rating aggregate is
// never writable here.
func (h *MentorHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
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

	var input models.MentorProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := h.profiles.FindByUser(ctx, objID)
	if err != nil && err != store.ErrNotFound {
		log.Printf("upsert mentor profile: lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if existing != nil {
		profile, err := h.profiles.Update(ctx, objID, input)
		if err != nil {
			log.Printf("upsert mentor profile: update failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Server Error")
			return
		}
		respondJSON(w, http.StatusOK, profile)
		return
	}

	if input.Title == nil || input.Expertise == nil || input.Experience == nil ||
		input.HourlyRate == nil || input.Availability == nil {
		respondError(w, http.StatusBadRequest, "Title, expertise, experience, hourly rate, and availability are required")
		return
	}

	profile := models.MentorProfile{
		User:         objID,
		Title:        *input.Title,
		Expertise:    *input.Expertise,
		Experience:   *input.Experience,
		HourlyRate:   *input.HourlyRate,
		Availability: *input.Availability,
	}
	if input.Education != nil {
		profile.Education = *input.Education
	}
	if input.WorkExperience != nil {
		profile.WorkExperience = *input.WorkExperience
	}

	if err := h.profiles.Create(ctx, &profile); err != nil {
		log.Printf("upsert mentor profile: insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusCreated, &profile)
}

// SearchMentors filters mentor profiles by expertise, then narrows by the
// owning user's skills, location, and the profile's hourly rate.
func (h *MentorHandler) SearchMentors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var expertise []string
	if raw := query.Get("expertise"); raw != "" {
		expertise = strings.Split(raw, ",")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profiles, err := h.profiles.FindByExpertise(ctx, expertise)
	if err != nil {
		log.Printf("search mentors: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	views := h.attachUsers(ctx, profiles)

	skills := query.Get("skills")
	location := query.Get("location")
	maxRate := query.Get("max_rate")
	if maxRate == "" {
		maxRate = query.Get("maxRate")
	}

	if skills != "" || location != "" || maxRate != "" {
		filtered := views[:0]
		for _, view := range views {
			if !matchesSearch(view, skills, location, maxRate) {
				continue
			}
			filtered = append(filtered, view)
		}
		views = filtered
	}

	respondList(w, http.StatusOK, len(views), views)
}

func matchesSearch(view mentorProfileView, skills, location, maxRate string) bool {
	if skills != "" {
		if view.User == nil {
			return false
		}
		wanted := strings.Split(skills, ",")
		found := false
		for _, have := range view.User.Skills {
			for _, want := range wanted {
				if have == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}

	if location != "" {
		if view.User == nil || !strings.Contains(strings.ToLower(view.User.Location), strings.ToLower(location)) {
			return false
		}
	}

	if maxRate != "" {
		rate, err := strconv.ParseFloat(maxRate, 64)
		if err == nil && view.Profile.HourlyRate > rate {
			return false
		}
	}

	return true
}

func (h *MentorHandler) attachUsers(ctx context.Context, profiles []models.MentorProfile) []mentorProfileView {
	views := make([]mentorProfileView, 0, len(profiles))
	for _, profile := range profiles {
		view := mentorProfileView{Profile: profile}
		if user, err := h.users.FindByID(ctx, profile.User); err == nil {
			view.User = user
		}
		views = append(views, view)
	}
	return views
}
