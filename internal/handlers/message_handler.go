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

type MessageHandler struct {
	users         store.UserStore
	conversations store.ConversationStore
	messages      store.MessageStore
}

func NewMessageHandler(users store.UserStore, conversations store.ConversationStore, messages store.MessageStore) *MessageHandler {
	return &MessageHandler{users: users, conversations: conversations, messages: messages}
}

// SendMessage delivers a message to a recipient, lazily creating the
// conversation for the pair. The pair has one conversation regardless of who
// messaged first.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	senderID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		RecipientID string `json:"recipient_id"`
		Text        string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Text == "" {
		respondError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(body.RecipientID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Recipient not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := h.users.FindByID(ctx, recipientID); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Recipient not found")
			return
		}
		log.Printf("send message: recipient lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	conversation, err := h.conversations.FindByPair(ctx, senderID, recipientID)
	if err == store.ErrNotFound {
		conversation = &models.Conversation{
			Participants: []primitive.ObjectID{senderID, recipientID},
		}
		err = h.conversations.Create(ctx, conversation)
	}
	if err != nil {
		log.Printf("send message: conversation resolution failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	message := models.Message{
		Conversation: conversation.ID,
		Sender:       senderID,
		Recipient:    recipientID,
		Text:         body.Text,
	}
	if err := h.messages.Create(ctx, &message); err != nil {
		log.Printf("send message: insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := h.conversations.SetLastMessage(ctx, conversation.ID, message.ID); err != nil {
		log.Printf("send message: last-message update failed: %v", err)
	}

	respondJSON(w, http.StatusCreated, &message)
}

// GetConversations lists the caller's conversations, most recent first.
func (h *MessageHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
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

	conversations, err := h.conversations.FindByParticipant(ctx, objID)
	if err != nil {
		log.Printf("get conversations: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}

	respondList(w, http.StatusOK, len(conversations), conversations)
}

// GetMessages returns a conversation's messages oldest-first. Reading the
// list marks the caller's unread messages in it as read.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	readerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	conversationID, err := primitive.ObjectIDFromHex(mux.Vars(r)["conversationId"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conversation, err := h.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("get messages: conversation lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if !conversation.HasParticipant(readerID) {
		respondError(w, http.StatusUnauthorized, "Not authorized to access this conversation")
		return
	}

	messages, err := h.messages.FindByConversation(ctx, conversationID)
	if err != nil {
		log.Printf("get messages: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	if err := h.messages.MarkRead(ctx, conversationID, readerID); err != nil {
		log.Printf("get messages: mark-read failed: %v", err)
	}

	respondList(w, http.StatusOK, len(messages), messages)
}

// GetUnreadCount returns how many unread messages the caller has in total.
func (h *MessageHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
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

	count, err := h.messages.CountUnread(ctx, objID)
	if err != nil {
		log.Printf("get unread count: %v", err)
		respondError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondJSON(w, http.StatusOK, count)
}
