package handlers

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mentorconnect/backend/internal/models"
	"github.com/mentorconnect/backend/internal/store"
)

// In-memory stores backing handler tests. They mirror the Mongo
// implementations' contracts: sentinel errors, sort orders, and the running
// average recomputation.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) add(user models.User) primitive.ObjectID {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = &user
	return user.ID
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) FindByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, user := range s.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, input models.UpdateProfileInput) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Skills != nil {
		user.Skills = *input.Skills
	}
	if input.Interests != nil {
		user.Interests = *input.Interests
	}
	if input.SocialLinks != nil {
		user.SocialLinks = *input.SocialLinks
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

type fakeMentorProfileStore struct {
	profiles map[primitive.ObjectID]*models.MentorProfile // keyed by user id
	applyErr error
}

func newFakeMentorProfileStore() *fakeMentorProfileStore {
	return &fakeMentorProfileStore{profiles: make(map[primitive.ObjectID]*models.MentorProfile)}
}

func (s *fakeMentorProfileStore) Create(_ context.Context, profile *models.MentorProfile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	copied := *profile
	s.profiles[profile.User] = &copied
	return nil
}

func (s *fakeMentorProfileStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.MentorProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *fakeMentorProfileStore) FindAll(_ context.Context) ([]models.MentorProfile, error) {
	var out []models.MentorProfile
	for _, profile := range s.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

func (s *fakeMentorProfileStore) FindByExpertise(_ context.Context, expertise []string) ([]models.MentorProfile, error) {
	var out []models.MentorProfile
	for _, profile := range s.profiles {
		if len(expertise) == 0 {
			out = append(out, *profile)
			continue
		}
		for _, have := range profile.Expertise {
			matched := false
			for _, want := range expertise {
				if have == want {
					out = append(out, *profile)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	return out, nil
}

func (s *fakeMentorProfileStore) Update(_ context.Context, userID primitive.ObjectID, input models.MentorProfileInput) (*models.MentorProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if input.Title != nil {
		profile.Title = *input.Title
	}
	if input.Expertise != nil {
		profile.Expertise = *input.Expertise
	}
	if input.Experience != nil {
		profile.Experience = *input.Experience
	}
	if input.HourlyRate != nil {
		profile.HourlyRate = *input.HourlyRate
	}
	if input.Availability != nil {
		profile.Availability = *input.Availability
	}
	if input.Education != nil {
		profile.Education = *input.Education
	}
	if input.WorkExperience != nil {
		profile.WorkExperience = *input.WorkExperience
	}
	profile.UpdatedAt = time.Now()
	copied := *profile
	return &copied, nil
}

func (s *fakeMentorProfileStore) ApplyRating(_ context.Context, userID primitive.ObjectID, rating int) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	profile.AverageRating, profile.TotalReviews = models.NextAverage(profile.AverageRating, profile.TotalReviews, rating)
	return nil
}

type fakeSessionStore struct {
	sessions map[primitive.ObjectID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[primitive.ObjectID]*models.Session)}
}

func (s *fakeSessionStore) add(session models.Session) primitive.ObjectID {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	s.sessions[session.ID] = &session
	return session.ID
}

func (s *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	session.ID = primitive.NewObjectID()
	session.Status = models.StatusPending
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *fakeSessionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) FindAll(_ context.Context) ([]models.Session, error) {
	var out []models.Session
	for _, session := range s.sessions {
		out = append(out, *session)
	}
	return out, nil
}

func (s *fakeSessionStore) FindByParticipant(_ context.Context, userID primitive.ObjectID) ([]models.Session, error) {
	var out []models.Session
	for _, session := range s.sessions {
		if session.Mentor == userID || session.Mentee == userID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.SessionStatus, meetingLink string) (*models.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	session.Status = status
	if meetingLink != "" {
		session.MeetingLink = meetingLink
	}
	session.UpdatedAt = time.Now()
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

type fakeReviewStore struct {
	reviews []*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{}
}

func (s *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	for _, existing := range s.reviews {
		if existing.ReviewedBy == review.ReviewedBy && existing.Session == review.Session {
			return store.ErrDuplicate
		}
	}
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	copied := *review
	s.reviews = append(s.reviews, &copied)
	return nil
}

func (s *fakeReviewStore) FindBySessionAndReviewer(_ context.Context, sessionID, reviewerID primitive.ObjectID) (*models.Review, error) {
	for _, review := range s.reviews {
		if review.Session == sessionID && review.ReviewedBy == reviewerID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeReviewStore) FindByMentor(_ context.Context, mentorID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, review := range s.reviews {
		if review.Mentor == mentorID {
			out = append(out, *review)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type fakeConversationStore struct {
	conversations map[primitive.ObjectID]*models.Conversation
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{conversations: make(map[primitive.ObjectID]*models.Conversation)}
}

func (s *fakeConversationStore) Create(_ context.Context, conversation *models.Conversation) error {
	conversation.ID = primitive.NewObjectID()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	copied := *conversation
	s.conversations[conversation.ID] = &copied
	return nil
}

func (s *fakeConversationStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	conversation, ok := s.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *conversation
	return &copied, nil
}

func (s *fakeConversationStore) FindByPair(_ context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	for _, conversation := range s.conversations {
		if conversation.HasParticipant(a) && conversation.HasParticipant(b) {
			copied := *conversation
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeConversationStore) FindByParticipant(_ context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, conversation := range s.conversations {
		if conversation.HasParticipant(userID) {
			out = append(out, *conversation)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *fakeConversationStore) SetLastMessage(_ context.Context, conversationID, messageID primitive.ObjectID) error {
	conversation, ok := s.conversations[conversationID]
	if !ok {
		return store.ErrNotFound
	}
	conversation.LastMessage = messageID
	conversation.UpdatedAt = time.Now()
	return nil
}

type fakeMessageStore struct {
	messages []*models.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{}
}

func (s *fakeMessageStore) Create(_ context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.Read = false
	message.CreatedAt = time.Now()
	copied := *message
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *fakeMessageStore) FindByConversation(_ context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	var out []models.Message
	for _, message := range s.messages {
		if message.Conversation == conversationID {
			out = append(out, *message)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeMessageStore) MarkRead(_ context.Context, conversationID, recipientID primitive.ObjectID) error {
	for _, message := range s.messages {
		if message.Conversation == conversationID && message.Recipient == recipientID && !message.Read {
			message.Read = true
		}
	}
	return nil
}

func (s *fakeMessageStore) CountUnread(_ context.Context, recipientID primitive.ObjectID) (int64, error) {
	var count int64
	for _, message := range s.messages {
		if message.Recipient == recipientID && !message.Read {
			count++
		}
	}
	return count, nil
}
