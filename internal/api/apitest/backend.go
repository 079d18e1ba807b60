// Package apitest runs an in-memory rooms and tasks backend for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nissyi-gh/taskroom/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

type room struct {
	model.Room
	tasks []model.Task
}

// Backend keeps rooms in memory and serves the same routes as the real API.
type Backend struct {
	mu     sync.Mutex
	rooms  map[string]*room
	issued int

	// Now is the backend clock, used for timestamps and overdue counts.
	Now func() time.Time

	requests  map[string]int
	requestID string
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		rooms:    map[string]*room{},
		Now:      time.Now,
		requests: map[string]int{},
	}
}

// Start serves the backend on a local test server.
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b.Router())
}

// AddRoom seeds a room and returns its code.
func (b *Backend) AddRoom(code, owner string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	code = model.NormalizeRoomCode(code)
	b.rooms[code] = &room{Room: model.Room{
		Code:      code,
		Owner:     owner,
		Members:   []string{owner},
		CreatedAt: b.now(),
	}}
	return code
}

// Tasks returns a copy of a room's tasks.
func (b *Backend) Tasks(code string) []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.rooms[model.NormalizeRoomCode(code)]
	if !ok {
		return nil
	}
	return append([]model.Task(nil), r.tasks...)
}

// Requests returns how many requests matched "METHOD /path", or the total
// when key is empty.
func (b *Backend) Requests(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if key != "" {
		return b.requests[key]
	}
	n := 0
	for _, v := range b.requests {
		n += v
	}
	return n
}

// LastRequestID returns the X-Request-ID header of the latest request.
func (b *Backend) LastRequestID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requestID
}

// Router builds the gin engine.
func (b *Backend) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(b.record)

	r.POST("/rooms", b.createRoom)
	r.POST("/rooms/join", b.joinRoom)
	r.GET("/rooms/:code", b.getRoom)

	r.GET("/tasks", b.listTasks)
	r.POST("/tasks", b.createTask)
	r.GET("/tasks/stats", b.stats)
	r.PUT("/tasks/:id", b.updateTask)
	r.DELETE("/tasks/:id", b.deleteTask)
	r.POST("/tasks/:id/complete", b.completeTask)
	return r
}

func (b *Backend) record(c *gin.Context) {
	b.mu.Lock()
	b.requests[c.Request.Method+" "+c.Request.URL.Path]++
	b.requestID = c.GetHeader("X-Request-ID")
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) now() string {
	return b.Now().Format(timeLayout)
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// requireRoom must be called with b.mu held.
func (b *Backend) requireRoom(c *gin.Context, code string) (*room, bool) {
	code = model.NormalizeRoomCode(code)
	if code == "" {
		fail(c, http.StatusBadRequest, "room is required. Provide ?room=ROOM_CODE or body.room_code")
		return nil, false
	}
	r, ok := b.rooms[code]
	if !ok {
		fail(c, http.StatusNotFound, fmt.Sprintf("room '%s' not found", code))
		return nil, false
	}
	return r, true
}

func (b *Backend) createRoom(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
	}
	_ = c.ShouldBindJSON(&body)
	name := strings.TrimSpace(body.Username)
	if name == "" {
		fail(c, http.StatusBadRequest, "username is required")
		return
	}

	b.mu.Lock()
	b.issued++
	code := fmt.Sprintf("R%05d", b.issued)
	b.mu.Unlock()
	b.AddRoom(code, name)

	c.JSON(http.StatusCreated, gin.H{"message": "room created", "room_code": code})
}

func (b *Backend) joinRoom(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		RoomCode string `json:"room_code"`
	}
	_ = c.ShouldBindJSON(&body)
	name := strings.TrimSpace(body.Username)
	if name == "" || strings.TrimSpace(body.RoomCode) == "" {
		fail(c, http.StatusBadRequest, "username and room_code are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, body.RoomCode)
	if !ok {
		return
	}
	if !contains(r.Members, name) {
		r.Members = append(r.Members, name)
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined room", "room_code": r.Code})
}

func (b *Backend) getRoom(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, c.Param("code"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r.Room)
}

func (b *Backend) listTasks(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, c.Query("room"))
	if !ok {
		return
	}

	status := strings.ToLower(c.Query("status"))
	priority := strings.ToLower(c.Query("priority"))
	tasks := []model.Task{}
	for _, t := range r.tasks {
		if status == "completed" && !t.Completed || status == "pending" && t.Completed {
			continue
		}
		if priority != "" && strings.ToLower(t.Priority) != priority {
			continue
		}
		tasks = append(tasks, t)
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks), "total_all": len(r.tasks)})
}

func (b *Backend) createTask(c *gin.Context) {
	var body struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Priority    string  `json:"priority"`
		DueDate     *string `json:"due_date"`
	}
	_ = c.ShouldBindJSON(&body)

	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, c.Query("room"))
	if !ok {
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		fail(c, http.StatusBadRequest, "Missing task title")
		return
	}
	dueDate, ok := normalizeDue(body.DueDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid due_date format. Use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
		return
	}
	priority := strings.ToLower(body.Priority)
	if priority == "" {
		priority = string(model.PriorityMedium)
	}

	t := model.Task{
		ID:          len(r.tasks) + 1,
		Title:       title,
		Description: body.Description,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   b.now(),
	}
	r.tasks = append(r.tasks, t)
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": t})
}

func (b *Backend) updateTask(c *gin.Context) {
	var patch model.TaskPatch
	_ = c.ShouldBindJSON(&patch)

	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.findTask(c)
	if !ok {
		return
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = strings.ToLower(*patch.Priority)
	}
	if patch.Completed != nil {
		b.setCompleted(t, *patch.Completed)
	}
	if patch.DueDate != nil {
		d, ok := normalizeDue(patch.DueDate)
		if !ok {
			fail(c, http.StatusBadRequest, "Invalid due_date format. Use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
			return
		}
		t.DueDate = d
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": t})
}

func (b *Backend) deleteTask(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, c.Query("room"))
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully", "deleted_task": t})
			return
		}
	}
	fail(c, http.StatusNotFound, "Task not found")
}

func (b *Backend) completeTask(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.findTask(c)
	if !ok {
		return
	}
	b.setCompleted(t, true)
	c.JSON(http.StatusOK, gin.H{"message": "Task marked as completed", "task": t})
}

func (b *Backend) stats(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.requireRoom(c, c.Query("room"))
	if !ok {
		return
	}

	now := b.Now()
	var s model.Stats
	s.TotalTasks = len(r.tasks)
	for _, t := range r.tasks {
		if t.Completed {
			s.CompletedTasks++
		}
		if t.IsOverdue(now) {
			s.OverdueTasks++
		}
	}
	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		s.CompletionRate = float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
	}
	c.JSON(http.StatusOK, s)
}

// findTask must be called with b.mu held.
func (b *Backend) findTask(c *gin.Context) (*model.Task, bool) {
	r, ok := b.requireRoom(c, c.Query("room"))
	if !ok {
		return nil, false
	}
	id, _ := strconv.Atoi(c.Param("id"))
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return &r.tasks[i], true
		}
	}
	fail(c, http.StatusNotFound, "Task not found")
	return nil, false
}

func (b *Backend) setCompleted(t *model.Task, done bool) {
	t.Completed = done
	t.CompletedAt = nil
	if done {
		at := b.now()
		t.CompletedAt = &at
	}
}

// normalizeDue accepts the two layouts the real backend stores.
func normalizeDue(raw *string) (*string, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	for _, layout := range []string{timeLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, *raw, time.Local); err == nil {
			s := t.Format(timeLayout)
			return &s, true
		}
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
