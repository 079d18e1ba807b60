package invite

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/nissyi-gh/taskroom/internal/model"
)

// Link returns the web address that opens the room for the session's user.
func Link(origin string, sess model.Session) string {
	q := url.Values{}
	q.Set("room", sess.Room)
	if sess.User != "" {
		q.Set("name", sess.User)
	}
	return strings.TrimRight(origin, "/") + "/tasks.html?" + q.Encode()
}

// Text returns a message that can be pasted into a chat to invite someone.
func Text(origin string, sess model.Session) string {
	var sb strings.Builder

	sb.WriteString("Join my task room!\n")
	sb.WriteString(fmt.Sprintf("Room code: %s\n", sess.Room))
	if sess.User != "" {
		sb.WriteString(fmt.Sprintf("Invited by: %s\n", sess.User))
	}
	sb.WriteString("\n")
	// The invitee picks their own name.
	sb.WriteString(Link(origin, model.Session{Room: sess.Room}))
	sb.WriteString("\n")

	return sb.String()
}

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
