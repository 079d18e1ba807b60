package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/model"
)

type taskEnvelope struct {
	Task model.Task `json:"task"`
}

// Tasks lists the room's tasks, optionally narrowed by filter.
func (c *Client) Tasks(ctx context.Context, sess model.Session, filter model.Filter) ([]model.Task, error) {
	if sess.Room == "" {
		return nil, ErrMissingRoom
	}
	q := roomQuery(sess.Room)
	if filter.Status != "" {
		q.Set("status", strings.ToLower(filter.Status))
	}
	if filter.Priority != "" {
		q.Set("priority", strings.ToLower(filter.Priority))
	}

	var resp struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask adds a task to the room and returns it as stored.
func (c *Client) CreateTask(ctx context.Context, sess model.Session, t model.NewTask) (model.Task, error) {
	if sess.Room == "" {
		return model.Task{}, ErrMissingRoom
	}
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/tasks", roomQuery(sess.Room), t, &resp); err != nil {
		return model.Task{}, err
	}
	return resp.Task, nil
}

// UpdateTask changes the non-nil fields of patch.
func (c *Client) UpdateTask(ctx context.Context, sess model.Session, id int, patch model.TaskPatch) (model.Task, error) {
	if sess.Room == "" {
		return model.Task{}, ErrMissingRoom
	}
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPut, taskPath(id), roomQuery(sess.Room), patch, &resp); err != nil {
		return model.Task{}, err
	}
	return resp.Task, nil
}

// DeleteTask removes a task from the room.
func (c *Client) DeleteTask(ctx context.Context, sess model.Session, id int) error {
	if sess.Room == "" {
		return ErrMissingRoom
	}
	return c.do(ctx, http.MethodDelete, taskPath(id), roomQuery(sess.Room), nil, nil)
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, sess model.Session, id int) error {
	if sess.Room == "" {
		return ErrMissingRoom
	}
	return c.do(ctx, http.MethodPost, taskPath(id)+"/complete", roomQuery(sess.Room), nil, nil)
}

// Stats fetches the room's counters.
func (c *Client) Stats(ctx context.Context, sess model.Session) (model.Stats, error) {
	if sess.Room == "" {
		return model.Stats{}, ErrMissingRoom
	}
	var stats model.Stats
	if err := c.do(ctx, http.MethodGet, "/tasks/stats", roomQuery(sess.Room), nil, &stats); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

func taskPath(id int) string {
	return "/tasks/" + strconv.Itoa(id)
}
