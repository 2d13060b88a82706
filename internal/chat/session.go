package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// Session carries the per-conversation state: the transcript and the
// accumulated profile. One session belongs to one user; the profile survives
// across sessions via the store, the transcript does not.
type Session struct {
	ID      string
	UserID  string
	Turns   []model.Turn
	Profile *model.BusinessProfile
}

// NewSession starts a fresh session for a user with a default profile.
func NewSession(userID string) *Session {
	return &Session{
		ID:      uuid.NewString(),
		UserID:  userID,
		Profile: model.NewDefaultProfile(),
	}
}

// Resume starts a session over an existing profile loaded from the store.
func Resume(userID string, profile *model.BusinessProfile) *Session {
	s := NewSession(userID)
	if profile != nil {
		s.Profile = profile
	}
	return s
}

// Append records a turn in the transcript.
func (s *Session) Append(role model.Role, text string) {
	s.Turns = append(s.Turns, model.Turn{Role: role, Text: text, Timestamp: time.Now()})
}

// Reset clears the transcript and profile and issues a new session id.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.Turns = nil
	s.Profile = model.NewDefaultProfile()
}
