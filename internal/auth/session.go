package auth

import (
	"github.com/google/uuid"
)

// Session is the authenticated identity attached to a request.
type Session struct {
	userID uuid.UUID
	role   string
}

func NewSession(userID uuid.UUID, role string) Session {
	return Session{userID: userID, role: role}
}

func (s Session) GetUserID() string {
	return s.userID.String()
}

func (s Session) UserID() uuid.UUID {
	return s.userID
}

func (s Session) GetRole() string {
	return s.role
}
