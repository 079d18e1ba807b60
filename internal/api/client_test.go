package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/nissyi-gh/taskroom/internal/api/apitest"
	"github.com/nissyi-gh/taskroom/internal/model"
)

func newTestClient(t *testing.T) (*Client, *apitest.Backend) {
	t.Helper()
	backend := apitest.New()
	backend.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local) }
	srv := backend.Start()
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), backend
}

func TestClient_RoomLifecycle(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, _ := newTestClient(t)

	code, err := c.CreateRoom(ctx, "  Alice ")
	is.NoErr(err)
	is.True(code != "")

	sess := model.NewSession(c.BaseURL, code, "Bob")
	is.NoErr(c.JoinRoom(ctx, sess))
	is.NoErr(c.JoinRoom(ctx, sess)) // joining twice keeps one membership

	room, err := c.Room(ctx, sess)
	is.NoErr(err)
	is.Equal(room.Code, code)
	is.Equal(room.Members, []string{"Alice", "Bob"})
}

func TestClient_TaskLifecycle(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, backend := newTestClient(t)
	sess := model.NewSession(c.BaseURL, backend.AddRoom("abc123", "alice"), "alice")

	overdue := "2024-05-01"
	created, err := c.CreateTask(ctx, sess, model.NewTask{Title: "Write report", Priority: "HIGH", DueDate: &overdue})
	is.NoErr(err)
	is.Equal(created.ID, 1)
	is.Equal(created.Priority, "high")
	is.Equal(*created.DueDate, "2024-05-01 00:00:00")

	_, err = c.CreateTask(ctx, sess, model.NewTask{Title: "Buy milk"})
	is.NoErr(err)

	tasks, err := c.Tasks(ctx, sess, model.Filter{})
	is.NoErr(err)
	is.Equal(len(tasks), 2)

	stats, err := c.Stats(ctx, sess)
	is.NoErr(err)
	is.Equal(stats, model.Stats{TotalTasks: 2, PendingTasks: 2, OverdueTasks: 1})

	low := "low"
	updated, err := c.UpdateTask(ctx, sess, 2, model.TaskPatch{Priority: &low})
	is.NoErr(err)
	is.Equal(updated.Priority, "low")

	is.NoErr(c.CompleteTask(ctx, sess, 1))
	done, err := c.Tasks(ctx, sess, model.Filter{Status: "completed"})
	is.NoErr(err)
	is.Equal(len(done), 1)
	is.True(done[0].Completed)
	is.True(done[0].CompletedAt != nil)

	lows, err := c.Tasks(ctx, sess, model.Filter{Priority: "Low"})
	is.NoErr(err)
	is.Equal(len(lows), 1)
	is.Equal(lows[0].Title, "Buy milk")

	is.NoErr(c.DeleteTask(ctx, sess, 2))
	is.Equal(len(backend.Tasks(sess.Room)), 1)

	stats, err = c.Stats(ctx, sess)
	is.NoErr(err)
	is.Equal(stats.CompletedTasks, 1)
	is.Equal(stats.OverdueTasks, 0) // completed tasks do not count
}

func TestClient_ErrorMessages(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, backend := newTestClient(t)

	_, err := c.Room(ctx, model.NewSession(c.BaseURL, "nope", "alice"))
	is.Equal(err.Error(), "room 'NOPE' not found")
	is.Equal(StatusCode(err), http.StatusNotFound)

	sess := model.NewSession(c.BaseURL, backend.AddRoom("abc123", "alice"), "alice")
	_, err = c.CreateTask(ctx, sess, model.NewTask{Title: "   "})
	is.Equal(err.Error(), "Missing task title")
	is.Equal(StatusCode(err), http.StatusBadRequest)

	err = c.DeleteTask(ctx, sess, 99)
	var apiErr *Error
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Message, "Task not found")
}

func TestClient_StatusTextFallback(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream down</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Stats(context.Background(), model.NewSession(srv.URL, "abc", "alice"))
	is.Equal(err.Error(), "Bad Gateway")
	is.Equal(StatusCode(err), http.StatusBadGateway)
}

func TestClient_LocalValidation(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c, backend := newTestClient(t)

	_, err := c.CreateRoom(ctx, " ")
	is.True(errors.Is(err, ErrMissingUser))
	is.True(errors.Is(c.JoinRoom(ctx, model.NewSession(c.BaseURL, "", "alice")), ErrMissingRoom))
	is.True(errors.Is(c.JoinRoom(ctx, model.NewSession(c.BaseURL, "ABC", "")), ErrMissingUser))
	_, err = c.Tasks(ctx, model.Session{}, model.Filter{})
	is.True(errors.Is(err, ErrMissingRoom))

	is.Equal(backend.Requests(""), 0) // nothing reached the backend
}

func TestClient_TransportError(t *testing.T) {
	is := is.New(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Room(context.Background(), model.NewSession(url, "abc", "alice"))
	is.True(err != nil)
	is.Equal(StatusCode(err), 0) // not a backend response
}

func TestClient_RequestID(t *testing.T) {
	is := is.New(t)
	c, backend := newTestClient(t)
	sess := model.NewSession(c.BaseURL, backend.AddRoom("abc123", "alice"), "alice")

	_, err := c.Stats(context.Background(), sess)
	is.NoErr(err)
	is.Equal(len(backend.LastRequestID()), 36) // uuid string
	is.Equal(backend.Requests("GET /tasks/stats"), 1)
}
