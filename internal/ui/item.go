package ui

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/board"
)

// RowItem is one entry of the terminal board: either a bucket heading or a
// task row.
type RowItem struct {
	Heading board.Bucket // set for heading lines only
	Count   int          // rows under the heading

	Row   board.Row
	Index int // position in board.At order, -1 for headings
	// Prefix holds the tree-drawing characters, e.g. " ├─ "
	Prefix string
	// DescPrefix holds the continuation for the description lines
	DescPrefix string
}

func (i RowItem) IsHeading() bool {
	return i.Heading != ""
}

func (i RowItem) Title() string {
	if i.IsHeading() {
		return fmt.Sprintf("%s (%d)", i.Heading.Title(), i.Count)
	}
	check := "[ ]"
	if i.Row.Task.Completed {
		check = "[x]"
	}
	dueMark := ""
	if i.Row.Overdue {
		dueMark = "⚠️ "
	}
	return fmt.Sprintf("%s%s %s%s", i.Prefix, check, dueMark, i.Row.Task.Title)
}

// Description returns the detail lines shown under a row: the description
// and the due date with its time-left label.
func (i RowItem) Description() string {
	if i.IsHeading() {
		return ""
	}
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(i.Row.Task.Description), "\n") {
		if l != "" {
			lines = append(lines, i.DescPrefix+"    "+l)
		}
	}
	if i.Row.Due != nil {
		lines = append(lines, fmt.Sprintf("%s    Due: %s (%s)", i.DescPrefix, i.Row.DueLabel, i.Row.TimeLeft))
	}
	return strings.Join(lines, "\n")
}
