// Package board groups a room's tasks into display buckets and derives the
// per-row due-date state. It knows nothing about the markup target.
package board

import (
	"fmt"
	"time"

	"github.com/nissyi-gh/taskroom/internal/due"
	"github.com/nissyi-gh/taskroom/internal/model"
)

// Bucket is one of the display groupings.
type Bucket string

const (
	High      Bucket = "high"
	Medium    Bucket = "medium"
	Low       Bucket = "low"
	Completed Bucket = "completed"
)

// Order is the display order of the buckets.
var Order = []Bucket{High, Medium, Low, Completed}

// Title is the heading shown above a bucket.
func (b Bucket) Title() string {
	switch b {
	case High:
		return "High priority"
	case Medium:
		return "Medium priority"
	case Low:
		return "Low priority"
	case Completed:
		return "Completed"
	}
	return string(b)
}

// Options select the layout variant.
type Options struct {
	ShowDescriptions bool
	GroupCompleted   bool
}

// DefaultOptions shows descriptions and keeps completed tasks in their own bucket.
func DefaultOptions() Options {
	return Options{ShowDescriptions: true, GroupCompleted: true}
}

// Row is a task together with its derived due-date state.
type Row struct {
	Task     model.Task
	Due      *time.Time
	DueLabel string // DD-MM-YYYY
	TimeLeft string
	Overdue  bool
}

// Group is a bucket and its rows in input order.
type Group struct {
	Bucket Bucket
	Rows   []Row
}

// Board is the grouped view of a room at a point in time.
type Board struct {
	Options Options
	Now     time.Time
	Groups  []Group
}

// BucketFor returns the bucket a task is displayed in.
func BucketFor(t model.Task, opts Options) Bucket {
	if t.Completed && opts.GroupCompleted {
		return Completed
	}
	return Bucket(model.NormalizePriority(t.Priority))
}

// NewRow derives the due-date state of t at now.
func NewRow(t model.Task, now time.Time) Row {
	r := Row{Task: t}
	if d, ok := t.Due(); ok {
		r.Due = &d
		r.DueLabel = due.FormatDMY(d)
		r.TimeLeft = due.FormatTimeLeft(d, now)
		r.Overdue = due.IsOverdue(t.Completed, d, now)
	}
	return r
}

// Build groups tasks into buckets. It has no side effects; the same tasks
// and now always produce the same board.
func Build(tasks []model.Task, now time.Time, opts Options) Board {
	buckets := Order
	if !opts.GroupCompleted {
		buckets = Order[:3]
	}
	index := make(map[Bucket]int, len(buckets))
	groups := make([]Group, len(buckets))
	for i, b := range buckets {
		index[b] = i
		groups[i] = Group{Bucket: b}
	}

	for _, t := range tasks {
		i := index[BucketFor(t, opts)]
		groups[i].Rows = append(groups[i].Rows, NewRow(t, now))
	}

	return Board{Options: opts, Now: now, Groups: groups}
}

// Rows returns the rows of bucket b, or nil if the board has no such bucket.
func (b Board) Rows(bucket Bucket) []Row {
	for _, g := range b.Groups {
		if g.Bucket == bucket {
			return g.Rows
		}
	}
	return nil
}

// Len returns the number of rows across all buckets.
func (b Board) Len() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g.Rows)
	}
	return n
}

// At returns the i-th row in display order.
func (b Board) At(i int) (Row, bool) {
	if i < 0 {
		return Row{}, false
	}
	for _, g := range b.Groups {
		if i < len(g.Rows) {
			return g.Rows[i], true
		}
		i -= len(g.Rows)
	}
	return Row{}, false
}

// StatsLine renders the backend counters as a single line.
func StatsLine(s model.Stats) string {
	return fmt.Sprintf("Total: %d, Completed: %d, Pending: %d, Overdue: %d",
		s.TotalTasks, s.CompletedTasks, s.PendingTasks, s.OverdueTasks)
}
