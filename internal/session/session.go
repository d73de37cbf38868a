package session

import (
	"context"
	"errors"
)

// ErrNotFound reports that no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Interaction is one turn of conversation kept in the session history.
type Interaction struct {
	Intent      string `json:"intent" dynamodbav:"intent"`
	UserInput   string `json:"user_input" dynamodbav:"user_input"`
	BotResponse string `json:"bot_response" dynamodbav:"bot_response"`
}

// Session is the per-user conversational state, keyed by an opaque
// identifier supplied by the caller. It is overwritten wholesale on
// every save; concurrent writers to the same id are last-write-wins.
type Session struct {
	SessionID   string         `json:"session_id" dynamodbav:"session_id"`
	History     []Interaction  `json:"conversation_history" dynamodbav:"conversation_history"`
	IntentCount map[string]int `json:"intent_count" dynamodbav:"intent_count"`
	// Version supports conditional writes on stores that offer them.
	// The engine itself does not rely on it.
	Version int64 `json:"version" dynamodbav:"version"`
}

// New returns an empty session for the id.
func New(id string) Session {
	return Session{
		SessionID:   id,
		History:     []Interaction{},
		IntentCount: map[string]int{},
	}
}

// Record appends a turn to the history, bumps the intent counter and
// truncates the history to the most recent limit entries.
func (s *Session) Record(intent, input, response string, limit int) {
	if s.IntentCount == nil {
		s.IntentCount = map[string]int{}
	}
	s.IntentCount[intent]++
	s.History = append(s.History, Interaction{
		Intent:      intent,
		UserInput:   input,
		BotResponse: response,
	})
	if limit > 0 && len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
}

// Store persists sessions by id. Get returns ErrNotFound for an
// unknown id; Put overwrites the whole value.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, s Session) error
}
