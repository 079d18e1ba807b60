package model

import "strings"

// Room is a named collection of tasks and members identified by a short code.
type Room struct {
	Code      string   `json:"code"`
	Owner     string   `json:"owner,omitempty"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// IsMember reports whether name is in the room, ignoring case.
func (r Room) IsMember(name string) bool {
	for _, m := range r.Members {
		if SameUser(m, name) {
			return true
		}
	}
	return false
}

// SameUser compares two user names case-insensitively. Empty names never match.
func SameUser(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// Session identifies who is looking at which room on which server. It is
// passed explicitly into every call that needs it.
type Session struct {
	Origin string
	Room   string
	User   string
}

// NewSession builds a session with the room code normalised to upper case.
func NewSession(origin, room, user string) Session {
	return Session{
		Origin: origin,
		Room:   NormalizeRoomCode(room),
		User:   strings.TrimSpace(user),
	}
}

// NormalizeRoomCode trims and upper-cases a room code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Ready reports whether both the room and the user are known.
func (s Session) Ready() bool {
	return s.Room != "" && s.User != ""
}
