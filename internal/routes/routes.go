package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mentorconnect/backend/internal/auth"
	"github.com/mentorconnect/backend/internal/handlers"
	"github.com/mentorconnect/backend/internal/middleware"
	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

// SetupRouter wires every endpoint. Fixed paths register before variable
// ones so "/messages/conversations" is not swallowed by the conversation-id
// route.
func SetupRouter(client *mongo.Client, dbName string, tokens *auth.TokenManager, mailer handlers.Notifier) *mux.Router {
	users := store.NewMongoUserStore(client, dbName)
	profiles := store.NewMongoMentorProfileStore(client, dbName)
	sessions := store.NewMongoSessionStore(client, dbName)
	reviews := store.NewMongoReviewStore(client, dbName)
	conversations := store.NewMongoConversationStore(client, dbName)
	messages := store.NewMongoMessageStore(client, dbName)

	authHandler := handlers.NewAuthHandler(users, tokens)
	userHandler := handlers.NewUserHandler(users, sessions, conversations)
	mentorHandler := handlers.NewMentorHandler(users, profiles)
	sessionHandler := handlers.NewSessionHandler(sessions, users, mailer)
	reviewHandler := handlers.NewReviewHandler(reviews, sessions, profiles)
	messageHandler := handlers.NewMessageHandler(users, conversations, messages)

	authMW := middleware.NewAuthMiddleware(tokens)
	protect := authMW.Protect
	mentorOnly := authMW.Authorize(models.RoleMentor)
	adminOnly := authMW.Authorize(models.RoleAdmin)

	router := mux.NewRouter()
	router.Use(middleware.AccessLog)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.Handle("/auth/me", protect(http.HandlerFunc(authHandler.Me))).Methods("GET")
	api.Handle("/auth/logout", protect(http.HandlerFunc(authHandler.Logout))).Methods("POST")

	api.Handle("/users/update-profile", protect(http.HandlerFunc(userHandler.UpdateProfile))).Methods("PUT")
	api.Handle("/users/{id}/sessions", protect(http.HandlerFunc(userHandler.GetUserSessions))).Methods("GET")
	api.Handle("/users/{id}/conversations", protect(http.HandlerFunc(userHandler.GetUserConversations))).Methods("GET")
	api.Handle("/users/{id}", protect(http.HandlerFunc(userHandler.GetUser))).Methods("GET")

	api.HandleFunc("/mentors", mentorHandler.GetMentors).Methods("GET")
	api.HandleFunc("/mentors/profiles", mentorHandler.GetProfiles).Methods("GET")
	api.HandleFunc("/mentors/search", mentorHandler.SearchMentors).Methods("GET")
	api.HandleFunc("/mentors/profile/{userId}", mentorHandler.GetProfile).Methods("GET")
	api.Handle("/mentors/profile", protect(mentorOnly(http.HandlerFunc(mentorHandler.UpsertProfile)))).Methods("POST")

	api.Handle("/sessions", protect(adminOnly(http.HandlerFunc(sessionHandler.GetSessions)))).Methods("GET")
	api.Handle("/sessions", protect(http.HandlerFunc(sessionHandler.CreateSession))).Methods("POST")
	api.Handle("/sessions/my-sessions", protect(http.HandlerFunc(sessionHandler.GetMySessions))).Methods("GET")
	api.Handle("/sessions/{id}/status", protect(http.HandlerFunc(sessionHandler.UpdateStatus))).Methods("PUT")
	api.Handle("/sessions/{id}", protect(http.HandlerFunc(sessionHandler.GetSession))).Methods("GET")
	api.Handle("/sessions/{id}", protect(http.HandlerFunc(sessionHandler.DeleteSession))).Methods("DELETE")

	api.Handle("/reviews", protect(http.HandlerFunc(reviewHandler.CreateReview))).Methods("POST")
	api.HandleFunc("/reviews/mentor/{mentorId}", reviewHandler.GetMentorReviews).Methods("GET")

	api.Handle("/messages", protect(http.HandlerFunc(messageHandler.SendMessage))).Methods("POST")
	api.Handle("/messages/conversations", protect(http.HandlerFunc(messageHandler.GetConversations))).Methods("GET")
	api.Handle("/messages/unread/count", protect(http.HandlerFunc(messageHandler.GetUnreadCount))).Methods("GET")
	api.Handle("/messages/{conversationId}", protect(http.HandlerFunc(messageHandler.GetMessages))).Methods("GET")

	return router
}
