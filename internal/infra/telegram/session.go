package telegram

import (
	"sync"

	"habit_reminder_bot/internal/domain/habit"
)

// SessionState marks what kind of free-text input the bot expects next
// from a chat.
type SessionState int

const (
	StateNone SessionState = iota
	StateAwaitingTime
	StateAwaitingCustomText
	StateAwaitingName
	StateAwaitingFeedback
)

// Session is the in-progress conversation state of one chat: the category
// the user picked from the menu and what input the bot is waiting for.
type Session struct {
	State           SessionState
	PendingCategory habit.Category
}

// SessionStore keeps per-chat conversation state. Every chat has its own
// entry, so concurrent users never see each other's pending category.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]Session)}
}

// Get returns the chat's session; a chat without one gets the zero session.
func (s *SessionStore) Get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[chatID]
}

func (s *SessionStore) Put(chatID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = session
}

// Reset clears the chat's conversation state.
func (s *SessionStore) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
