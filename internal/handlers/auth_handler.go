package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorconnect/backend/internal/auth"
	"github.com/mentorconnect/backend/internal/middleware"
	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

type AuthHandler struct {
	users  store.UserStore
	tokens *auth.TokenManager
}

func NewAuthHandler(users store.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type authUserSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type tokenResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    authUserSummary `json:"user"`
}

// Register handles new account creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if !strings.Contains(body.Email, "@") {
		respondError(w, http.StatusBadRequest, "Please include a valid email")
		return
	}
	if len(body.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if body.Role != models.RoleMentee && body.Role != models.RoleMentor {
		respondError(w, http.StatusBadRequest, "Role must be either mentee or mentor")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := h.users.FindByEmail(ctx, body.Email); err == nil {
		respondError(w, http.StatusBadRequest, "User already exists")
		return
	} else if err != store.ErrNotFound {
		log.Printf("register: email lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	user := models.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hashedPassword),
		Role:     body.Role,
	}
	if err := h.users.Create(ctx, &user); err != nil {
		if err == store.ErrDuplicate {
			respondError(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("register: insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	h.sendTokenResponse(w, http.StatusCreated, &user)
}

// Login authenticates a user and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, body.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.sendTokenResponse(w, http.StatusOK, user)
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.users.FindByID(ctx, objID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout clears the token cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/api",
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{})
}

func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Generate(user.ID.Hex(), string(user.Role))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Path:     "/api",
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(tokenResponse{
		Success: true,
		Token:   token,
		User: authUserSummary{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
