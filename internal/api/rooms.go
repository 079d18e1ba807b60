package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/model"
)

type roomRequest struct {
	Username string `json:"username"`
	RoomCode string `json:"room_code,omitempty"`
}

// CreateRoom creates a room owned by user and returns its code.
func (c *Client) CreateRoom(ctx context.Context, user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", ErrMissingUser
	}

	var resp struct {
		RoomCode string `json:"room_code"`
	}
	if err := c.do(ctx, http.MethodPost, "/rooms", nil, roomRequest{Username: user}, &resp); err != nil {
		return "", err
	}
	if resp.RoomCode == "" {
		return "", errors.New("no room code returned")
	}
	return model.NormalizeRoomCode(resp.RoomCode), nil
}

// JoinRoom adds the session's user to the session's room.
func (c *Client) JoinRoom(ctx context.Context, sess model.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/rooms/join", nil, roomRequest{Username: sess.User, RoomCode: sess.Room}, nil)
}

// Room fetches the room's code and members.
func (c *Client) Room(ctx context.Context, sess model.Session) (model.Room, error) {
	if sess.Room == "" {
		return model.Room{}, ErrMissingRoom
	}
	var room model.Room
	if err := c.do(ctx, http.MethodGet, "/rooms/"+url.PathEscape(sess.Room), nil, nil, &room); err != nil {
		return model.Room{}, err
	}
	if room.Code == "" {
		room.Code = sess.Room
	}
	return room, nil
}

func requireSession(sess model.Session) error {
	if sess.User == "" {
		return ErrMissingUser
	}
	if sess.Room == "" {
		return ErrMissingRoom
	}
	return nil
}
