// Package render writes a board as HTML markup.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/board"
	"github.com/nissyi-gh/taskroom/internal/model"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape makes user text safe to place in markup.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// HTML writes one tbody per bucket followed by the stats line.
func HTML(w io.Writer, b board.Board, stats model.Stats) error {
	var sb strings.Builder
	sb.WriteString(`<div id="task-tables">` + "\n")
	for _, g := range b.Groups {
		fmt.Fprintf(&sb, "<table class=\"bucket\">\n<caption>%s</caption>\n<tbody id=\"%s-body\">\n",
			Escape(g.Bucket.Title()), g.Bucket)
		for _, r := range g.Rows {
			writeRow(&sb, r, b.Options)
		}
		sb.WriteString("</tbody>\n</table>\n")
	}
	sb.WriteString("</div>\n")
	fmt.Fprintf(&sb, "<p id=\"stats\">%s</p>\n", Escape(board.StatsLine(stats)))

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, r board.Row, opts board.Options) {
	classes := "task-row"
	if r.Task.Completed {
		classes += " completed"
	}
	if r.Overdue {
		classes += " overdue"
	}
	fmt.Fprintf(sb, "<tr data-id=\"%d\" class=\"%s\"><td><div class=\"task-title\">%s</div></td></tr>\n",
		r.Task.ID, classes, Escape(r.Task.Title))

	if !opts.ShowDescriptions {
		return
	}

	descClasses := "desc-row"
	if r.Overdue {
		descClasses += " overdue"
	}
	fmt.Fprintf(sb, "<tr class=\"%s\"><td><div class=\"desc-box\">", descClasses)
	fmt.Fprintf(sb, "<div class=\"desc-content\">%s</div>", Escape(r.Task.Description))
	if r.Due != nil {
		tl := "time-left"
		if r.Overdue {
			tl += " overdue"
		}
		fmt.Fprintf(sb, "<div class=\"due-info\"><span class=\"due-date\"><small>Due: %s</small></span> <span class=\"%s\">(%s)</span></div>",
			r.DueLabel, tl, Escape(r.TimeLeft))
	}
	sb.WriteString("<div class=\"actions\">")
	if !r.Task.Completed {
		sb.WriteString(`<button class="action-btn complete" data-action="complete">Complete</button>`)
	}
	sb.WriteString(`<button class="action-btn delete" data-action="delete">Delete</button>`)
	sb.WriteString("</div></div></td></tr>\n")
}

// Members writes the room's member list, marking user with a badge.
func Members(w io.Writer, room model.Room, user string) error {
	var sb strings.Builder
	sb.WriteString(`<ul id="member-list">` + "\n")
	if len(room.Members) == 0 {
		sb.WriteString("<li>No members yet.</li>\n")
	}
	for _, name := range room.Members {
		if name == "" {
			name = "Unknown"
		}
		if model.SameUser(name, user) {
			fmt.Fprintf(&sb, "<li class=\"me\"><span>%s</span> <span class=\"badge\">You</span></li>\n", Escape(name))
			continue
		}
		fmt.Fprintf(&sb, "<li><span>%s</span></li>\n", Escape(name))
	}
	sb.WriteString("</ul>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
