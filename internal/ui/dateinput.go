package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldYear = iota
	fieldMonth
	fieldDay
	fieldHour
	fieldMinute
	fieldCount
)

// dateInput edits a due date as separate YYYY, MM, DD and optional HH:MM fields.
type dateInput struct {
	fields [fieldCount]textinput.Model
	focus  int
}

func newDateInput() dateInput {
	placeholders := [fieldCount]string{"YYYY", "MM", "DD", "HH", "MM"}
	charLimits := [fieldCount]int{4, 2, 2, 2, 2}

	var fields [fieldCount]textinput.Model
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = charLimits[i]
		ti.Width = charLimits[i] + 2
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return dateInput{fields: fields}
}

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

func (d *dateInput) Focus() tea.Cmd {
	return d.focusField(fieldYear)
}

func (d *dateInput) FocusLast() tea.Cmd {
	return d.focusField(fieldCount - 1)
}

func (d *dateInput) Blur() {
	for i := range d.fields {
		d.fields[i].Blur()
	}
}

// AtStart and AtEnd report whether tab navigation would leave the widget.
func (d dateInput) AtStart() bool { return d.focus == 0 }
func (d dateInput) AtEnd() bool   { return d.focus == fieldCount-1 }

// SetValue fills the fields from "YYYY-MM-DD" or "YYYY-MM-DD HH:MM[:SS]".
func (d *dateInput) SetValue(date string) {
	datePart, timePart, _ := strings.Cut(strings.TrimSpace(date), " ")
	parts := strings.SplitN(datePart, "-", 3)
	if timePart != "" {
		hm := strings.SplitN(timePart, ":", 3)
		parts = append(parts, hm[:min(len(hm), 2)]...)
	}
	for i := range d.fields {
		if i < len(parts) {
			d.fields[i].SetValue(parts[i])
		} else {
			d.fields[i].SetValue("")
		}
	}
}

// Value returns the date in the backend's format. A blank year or month
// defaults to the one in now; the day is required. The time is optional but
// hour and minute go together.
func (d *dateInput) Value(now time.Time) (string, error) {
	yyyy := strings.TrimSpace(d.fields[fieldYear].Value())
	mm := strings.TrimSpace(d.fields[fieldMonth].Value())
	dd := strings.TrimSpace(d.fields[fieldDay].Value())
	hh := strings.TrimSpace(d.fields[fieldHour].Value())
	mi := strings.TrimSpace(d.fields[fieldMinute].Value())

	if yyyy == "" {
		yyyy = fmt.Sprintf("%04d", now.Year())
	}
	if mm == "" {
		mm = fmt.Sprintf("%02d", int(now.Month()))
	}
	if dd == "" {
		return "", fmt.Errorf("day is required")
	}

	dateStr := fmt.Sprintf("%s-%s-%s", yyyy, padLeft(mm, 2), padLeft(dd, 2))
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return "", fmt.Errorf("invalid date: %s", dateStr)
	}
	if hh == "" && mi == "" {
		return dateStr, nil
	}
	if hh == "" || mi == "" {
		return "", fmt.Errorf("enter both hour and minute, or neither")
	}

	full := fmt.Sprintf("%s %s:%s:00", dateStr, padLeft(hh, 2), padLeft(mi, 2))
	if _, err := time.Parse("2006-01-02 15:04:05", full); err != nil {
		return "", fmt.Errorf("invalid time: %s:%s", hh, mi)
	}
	return full, nil
}

func padLeft(s string, length int) string {
	for len(s) < length {
		s = "0" + s
	}
	return s
}

func (d *dateInput) IsEmpty() bool {
	for _, f := range d.fields {
		if f.Value() != "" {
			return false
		}
	}
	return true
}

func (d *dateInput) focusField(idx int) tea.Cmd {
	d.focus = idx
	var cmds []tea.Cmd
	for i := range d.fields {
		if i == idx {
			cmds = append(cmds, d.fields[i].Focus())
		} else {
			d.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (d dateInput) Update(msg tea.Msg) (dateInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if d.focus < fieldCount-1 {
				cmd := d.focusField(d.focus + 1)
				return d, cmd
			}
			return d, nil
		case "shift+tab", "left":
			if d.focus > 0 {
				cmd := d.focusField(d.focus - 1)
				return d, cmd
			}
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return d, cmd
}

func (d dateInput) View() string {
	f := d.fields
	return f[fieldYear].View() + " - " + f[fieldMonth].View() + " - " + f[fieldDay].View() +
		"  " + f[fieldHour].View() + " : " + f[fieldMinute].View()
}
