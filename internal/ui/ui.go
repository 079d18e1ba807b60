package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/taskroom/internal/api"
	"github.com/nissyi-gh/taskroom/internal/board"
	"github.com/nissyi-gh/taskroom/internal/invite"
	"github.com/nissyi-gh/taskroom/internal/model"
)

type appState int

const (
	stateLanding appState = iota
	stateBoard
	stateAdd
	stateConfirm
	stateDueDate
)

const (
	landingCreateName = iota
	landingJoinName
	landingJoinCode
	landingFieldCount
)

const (
	addTitle = iota
	addDesc
	addPriority
	addDue
	addFieldCount
)

const requestTimeout = 15 * time.Second

// header, blank line, help and error banner
const chromeHeight = 6

var (
	errNameRequired     = errors.New("please enter your name")
	errNameCodeRequired = errors.New("please enter your name and the room code")
	errTitleRequired    = errors.New("please enter a task title")
)

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	confirmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	sidebarStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))

	priorityColors = map[model.Priority]string{
		model.PriorityHigh:   "196",
		model.PriorityMedium: "214",
		model.PriorityLow:    "148",
	}
)

// SessionSaver remembers the session once the user has entered a room.
type SessionSaver interface {
	SaveSession(sess model.Session) error
}

// Model is the top-level BubbleTea model for the taskroom TUI.
type Model struct {
	state   appState
	client  *api.Client
	saver   SessionSaver
	sess    model.Session
	refresh time.Duration
	now     func() time.Time

	room   model.Room
	tasks  []model.Task
	stats  model.Stats
	opts   board.Options
	cursor int

	// seq identifies the latest refresh; results from older ones are dropped.
	seq     int
	loading bool
	ticking bool

	landing      [landingFieldCount]textinput.Model
	landingFocus int

	titleInput textinput.Model
	descInput  textarea.Model
	priority   model.Priority
	dateInput  dateInput
	addFocus   int

	// target of the confirm and due-date screens, fixed when they open
	targetID    int
	targetTitle string

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	err    error
	status string
	width  int
	height int
}

type refreshedMsg struct {
	seq   int
	room  model.Room
	tasks []model.Task
	stats model.Stats
}

// errMsg carries a failure. seq is zero for anything but a refresh.
type errMsg struct {
	seq int
	err error
}

type tickMsg time.Time
type mutatedMsg struct{ action string }
type enteredMsg struct{ sess model.Session }
type copiedMsg struct{ what string }

// NewModel creates a new TUI model. It opens on the board when sess names
// both a room and a user, and on the landing form otherwise.
func NewModel(c *api.Client, saver SessionSaver, sess model.Session, refresh time.Duration) Model {
	var landing [landingFieldCount]textinput.Model
	placeholders := [landingFieldCount]string{"Your name", "Your name", "Room code"}
	for i := range landing {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		landing[i] = ti
	}
	landing[landingCreateName].SetValue(sess.User)
	landing[landingJoinName].SetValue(sess.User)
	landing[landingJoinCode].SetValue(sess.Room)
	landing[landingCreateName].Focus()

	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256

	ta := textarea.New()
	ta.Placeholder = "Task description..."
	ta.CharLimit = 4096
	ta.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	m := Model{
		state:      stateLanding,
		client:     c,
		saver:      saver,
		sess:       sess,
		refresh:    refresh,
		now:        time.Now,
		opts:       board.DefaultOptions(),
		landing:    landing,
		titleInput: ti,
		descInput:  ta,
		priority:   model.PriorityMedium,
		dateInput:  newDateInput(),
		viewport:   viewport.New(0, 0),
		spinner:    sp,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	if sess.Ready() {
		m.state = stateBoard
		m.seq = 1
		m.loading = true
		m.ticking = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == stateLanding {
		return textinput.Blink
	}
	return tea.Batch(m.fetch(m.seq), m.spinner.Tick, m.tick())
}

// fetch loads the room, its tasks and the stats in one go.
func (m Model) fetch(seq int) tea.Cmd {
	c, sess := m.client, m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		room, err := c.Room(ctx, sess)
		if err != nil {
			return errMsg{seq: seq, err: fmt.Errorf("load room: %w", err)}
		}
		tasks, err := c.Tasks(ctx, sess, model.Filter{})
		if err != nil {
			return errMsg{seq: seq, err: fmt.Errorf("load tasks: %w", err)}
		}
		stats, err := c.Stats(ctx, sess)
		if err != nil {
			return errMsg{seq: seq, err: fmt.Errorf("load stats: %w", err)}
		}
		return refreshedMsg{seq: seq, room: room, tasks: tasks, stats: stats}
	}
}

func (m Model) startRefresh() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, tea.Batch(m.fetch(m.seq), m.spinner.Tick)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// mutate runs fn against the backend and asks for a refresh when it succeeds.
func (m Model) mutate(action string, fn func(ctx context.Context, c *api.Client, sess model.Session) error) tea.Cmd {
	c, sess := m.client, m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := fn(ctx, c, sess); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{action: action}
	}
}

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		if err := invite.Copy(text); err != nil {
			return errMsg{err: err}
		}
		return copiedMsg{what: what}
	}
}

func (m Model) board() board.Board {
	return board.Build(m.tasks, m.now(), m.opts)
}

func (m Model) selected() (board.Row, bool) {
	return m.board().At(m.cursor)
}

func (m *Model) clampCursor() {
	n := m.board().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncViewport()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case refreshedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.room = msg.room
		m.tasks = msg.tasks
		m.stats = msg.stats
		m.err = nil
		m.clampCursor()
		return m, nil

	case errMsg:
		if msg.seq != 0 {
			if msg.seq != m.seq {
				return m, nil
			}
			m.loading = false
		}
		log.Printf("ui: %v", msg.err)
		m.err = msg.err
		return m, nil

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
		next, cmd := m.startRefresh()
		return next, tea.Batch(cmd, next.tick())

	case mutatedMsg:
		m.status = msg.action
		return m.startRefresh()

	case enteredMsg:
		m.sess = msg.sess
		m.state = stateBoard
		m.err = nil
		if m.saver != nil {
			if err := m.saver.SaveSession(msg.sess); err != nil {
				log.Printf("ui: save session: %v", err)
				m.err = err
			}
		}
		next, cmd := m.startRefresh()
		if !next.ticking {
			next.ticking = true
			cmd = tea.Batch(cmd, next.tick())
		}
		return next, cmd

	case copiedMsg:
		m.status = "Copied " + msg.what
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case stateLanding:
		return m.updateLanding(msg)
	case stateAdd:
		return m.updateAdd(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateDueDate:
		return m.updateDueDate(msg)
	default:
		return m.updateBoard(msg)
	}
}

func (m *Model) resize() {
	h, v := appStyle.GetFrameSize()
	contentWidth := m.width - h
	sideWidth := contentWidth * 30 / 100
	m.viewport.Width = contentWidth - sideWidth
	m.viewport.Height = max(1, m.height-v-chromeHeight)
	m.help.Width = contentWidth
	m.descInput.SetWidth(max(10, contentWidth-4))
}

func (m *Model) focusLanding(idx int) tea.Cmd {
	m.landingFocus = idx
	var cmd tea.Cmd
	for i := range m.landing {
		if i == idx {
			cmd = m.landing[i].Focus()
		} else {
			m.landing[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateLanding(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			cmd := m.focusLanding((m.landingFocus + 1) % landingFieldCount)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.focusLanding((m.landingFocus + landingFieldCount - 1) % landingFieldCount)
			return m, cmd
		case "enter":
			if m.landingFocus == landingCreateName {
				return m.createRoom()
			}
			return m.joinRoom()
		}
	}

	var cmd tea.Cmd
	m.landing[m.landingFocus], cmd = m.landing[m.landingFocus].Update(msg)
	return m, cmd
}

func (m Model) createRoom() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.landing[landingCreateName].Value())
	if name == "" {
		m.err = errNameRequired
		cmd := m.focusLanding(landingCreateName)
		return m, cmd
	}
	m.err = nil
	c, origin := m.client, m.sess.Origin
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		code, err := c.CreateRoom(ctx, name)
		if err != nil {
			return errMsg{err: fmt.Errorf("create room: %w", err)}
		}
		return enteredMsg{sess: model.NewSession(origin, code, name)}
	}
}

func (m Model) joinRoom() (Model, tea.Cmd) {
	sess := model.NewSession(m.sess.Origin, m.landing[landingJoinCode].Value(), m.landing[landingJoinName].Value())
	if !sess.Ready() {
		m.err = errNameCodeRequired
		field := landingJoinCode
		if sess.User == "" {
			field = landingJoinName
		}
		cmd := m.focusLanding(field)
		return m, cmd
	}
	m.err = nil
	c := m.client
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := c.JoinRoom(ctx, sess); err != nil {
			return errMsg{err: fmt.Errorf("join room: %w", err)}
		}
		return enteredMsg{sess: sess}
	}
}

func (m Model) updateBoard(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.board().Len()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Add):
		m.state = stateAdd
		cmd := m.resetAddForm()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Complete):
		row, ok := m.selected()
		if !ok || row.Task.Completed {
			return m, nil
		}
		id := row.Task.ID
		return m, m.mutate("Completed "+row.Task.Title, func(ctx context.Context, c *api.Client, sess model.Session) error {
			return c.CompleteTask(ctx, sess, id)
		})
	case key.Matches(keyMsg, m.keys.Delete):
		if row, ok := m.selected(); ok {
			m.state = stateConfirm
			m.targetID = row.Task.ID
			m.targetTitle = row.Task.Title
		}
	case key.Matches(keyMsg, m.keys.DueDate):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.state = stateDueDate
		m.targetID = row.Task.ID
		m.targetTitle = row.Task.Title
		m.err = nil
		m.dateInput = newDateInput()
		if row.Due != nil {
			m.dateInput.SetValue(row.Due.Format("2006-01-02 15:04"))
		}
		cmd := m.dateInput.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Priority):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		id := row.Task.ID
		next := string(model.NormalizePriority(row.Task.Priority).Next())
		return m, m.mutate("Priority set to "+next, func(ctx context.Context, c *api.Client, sess model.Session) error {
			_, err := c.UpdateTask(ctx, sess, id, model.TaskPatch{Priority: &next})
			return err
		})
	case key.Matches(keyMsg, m.keys.Descriptions):
		m.opts.ShowDescriptions = !m.opts.ShowDescriptions
	case key.Matches(keyMsg, m.keys.Group):
		m.opts.GroupCompleted = !m.opts.GroupCompleted
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.CopyCode):
		return m, copyCmd("room code", m.sess.Room)
	case key.Matches(keyMsg, m.keys.CopyInvite):
		return m, copyCmd("invite", invite.Text(m.sess.Origin, m.sess))
	case key.Matches(keyMsg, m.keys.Refresh):
		return m.startRefresh()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resetAddForm() tea.Cmd {
	m.err = nil
	m.titleInput.Reset()
	m.descInput.Reset()
	m.priority = model.PriorityMedium
	m.dateInput = newDateInput()
	return m.focusAdd(addTitle, false)
}

// focusAdd moves the add form focus. fromEnd enters the date widget at its
// last field.
func (m *Model) focusAdd(idx int, fromEnd bool) tea.Cmd {
	m.addFocus = idx
	m.titleInput.Blur()
	m.descInput.Blur()
	m.dateInput.Blur()
	switch idx {
	case addTitle:
		return m.titleInput.Focus()
	case addDesc:
		return m.descInput.Focus()
	case addDue:
		if fromEnd {
			return m.dateInput.FocusLast()
		}
		return m.dateInput.Focus()
	}
	return nil
}

func (m Model) updateAdd(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = stateBoard
			m.err = nil
			return m, nil
		case "ctrl+s":
			return m.submitAdd()
		case "enter":
			if m.addFocus != addDesc {
				return m.submitAdd()
			}
		case "tab":
			if m.addFocus != addDue || m.dateInput.AtEnd() {
				cmd := m.focusAdd((m.addFocus+1)%addFieldCount, false)
				return m, cmd
			}
		case "shift+tab":
			if m.addFocus != addDue || m.dateInput.AtStart() {
				cmd := m.focusAdd((m.addFocus+addFieldCount-1)%addFieldCount, true)
				return m, cmd
			}
		case "right", " ":
			if m.addFocus == addPriority {
				m.priority = m.priority.Next()
				return m, nil
			}
		case "left":
			if m.addFocus == addPriority {
				m.priority = m.priority.Next().Next()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.addFocus {
	case addTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case addDesc:
		m.descInput, cmd = m.descInput.Update(msg)
	case addDue:
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAdd() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.err = errTitleRequired
		cmd := m.focusAdd(addTitle, false)
		return m, cmd
	}
	nt := model.NewTask{
		Title:       title,
		Description: strings.TrimSpace(m.descInput.Value()),
		Priority:    string(m.priority),
	}
	if !m.dateInput.IsEmpty() {
		val, err := m.dateInput.Value(m.now())
		if err != nil {
			m.err = err
			return m, nil
		}
		nt.DueDate = &val
	}

	m.state = stateBoard
	m.err = nil
	return m, m.mutate("Added "+title, func(ctx context.Context, c *api.Client, sess model.Session) error {
		_, err := c.CreateTask(ctx, sess, nt)
		return err
	})
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			m.state = stateBoard
			id := m.targetID
			return m, m.mutate("Deleted "+m.targetTitle, func(ctx context.Context, c *api.Client, sess model.Session) error {
				return c.DeleteTask(ctx, sess, id)
			})
		case "n", "esc":
			m.state = stateBoard
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateDueDate(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			// An empty string clears the due date.
			val := ""
			if !m.dateInput.IsEmpty() {
				v, err := m.dateInput.Value(m.now())
				if err != nil {
					m.err = err
					return m, nil
				}
				val = v
			}
			m.state = stateBoard
			m.err = nil
			id := m.targetID
			action := "Due date cleared"
			if val != "" {
				action = "Due date set"
			}
			return m, m.mutate(action, func(ctx context.Context, c *api.Client, sess model.Session) error {
				_, err := c.UpdateTask(ctx, sess, id, model.TaskPatch{DueDate: &val})
				return err
			})
		case "esc":
			m.state = stateBoard
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m *Model) syncViewport() {
	if m.state != stateBoard {
		return
	}
	content, line := m.renderBoard()
	m.viewport.SetContent(content)
	if m.viewport.Height <= 0 {
		return
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// renderBoard returns the styled board and the line the cursor is on.
func (m Model) renderBoard() (string, int) {
	b := m.board()
	var lines []string
	cursorLine := 0
	for _, item := range BuildTree(b) {
		if item.IsHeading() {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, headingStyle.Render(item.Title()))
			if item.Count == 0 {
				lines = append(lines, statusStyle.Render("   └─ No tasks"))
			}
			continue
		}

		style := lipgloss.NewStyle()
		switch {
		case item.Row.Task.Completed:
			style = doneStyle
		case item.Row.Overdue:
			style = errorStyle
		}
		line := "  " + style.Render(item.Title())
		if item.Index == m.cursor {
			cursorLine = len(lines)
			line = selectedStyle.Render("> ") + style.Render(item.Title())
		}
		if !b.Options.GroupCompleted && item.Row.Task.Completed {
			line += " " + priorityTag(item.Row.Task.Priority)
		}
		lines = append(lines, line)

		if b.Options.ShowDescriptions {
			if desc := item.Description(); desc != "" {
				for _, l := range strings.Split(desc, "\n") {
					lines = append(lines, "  "+statusStyle.Render(l))
				}
			}
		}
	}
	return strings.Join(lines, "\n"), cursorLine
}

func priorityTag(raw string) string {
	p := model.NormalizePriority(raw)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColors[p])).Render("[" + string(p) + "]")
}

func (m Model) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Room "+m.sess.Room) + "\n")
	if m.room.Owner != "" {
		sb.WriteString(statusStyle.Render("owner: "+m.room.Owner) + "\n")
	}

	sb.WriteString("\nMembers\n")
	if len(m.room.Members) == 0 {
		sb.WriteString(statusStyle.Render("No members yet.") + "\n")
	} else if !m.room.IsMember(m.sess.User) {
		sb.WriteString(statusStyle.Render("viewing as "+m.sess.User) + "\n")
	}
	for _, name := range m.room.Members {
		line := " • " + name
		if model.SameUser(name, m.sess.User) {
			line += " " + badgeStyle.Render("You")
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + board.StatsLine(m.stats) + "\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%.0f%% complete", m.stats.CompletionRate)))
	return sb.String()
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateLanding:
		f := m.landing
		return appStyle.Render(
			titleStyle.Render("taskroom") + "\n\n" +
				headingStyle.Render("Create a room") + "\n" +
				"  " + f[landingCreateName].View() + "\n\n" +
				headingStyle.Render("Join a room") + "\n" +
				"  " + f[landingJoinName].View() + "\n" +
				"  " + f[landingJoinCode].View() + "\n\n" +
				statusStyle.Render("tab: next field • enter: create/join • esc: quit") +
				errView,
		)
	case stateAdd:
		var choices []string
		for _, p := range model.Priorities {
			if p == m.priority {
				choices = append(choices, priorityTag(string(p)))
			} else {
				choices = append(choices, statusStyle.Render(string(p)))
			}
		}
		pri := strings.Join(choices, " ")
		if m.addFocus == addPriority {
			pri = "‹ " + pri + " ›"
		}
		return appStyle.Render(
			titleStyle.Render("New Task") + "\n\n" +
				m.titleInput.View() + "\n\n" +
				m.descInput.View() + "\n\n" +
				"Priority: " + pri + "\n\n" +
				"Due: " + m.dateInput.View() + "\n\n" +
				statusStyle.Render("tab: next field • ←/→: priority • enter/ctrl+s: save • esc: cancel") +
				errView,
		)
	case stateDueDate:
		return appStyle.Render(
			titleStyle.Render("Set Due Date") + "\n\n" +
				"  " + m.targetTitle + "\n\n" +
				m.dateInput.View() + "\n\n" +
				statusStyle.Render("tab/→: next field • enter: save (empty clears) • esc: cancel") +
				errView,
		)
	case stateConfirm:
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + m.targetTitle + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	default:
		header := titleStyle.Render("taskroom")
		if m.loading {
			header += " " + m.spinner.View()
		}
		if m.status != "" {
			header += "  " + statusStyle.Render(m.status)
		}

		h, _ := appStyle.GetFrameSize()
		sideWidth := max(0, m.width-h-m.viewport.Width-sidebarStyle.GetHorizontalFrameSize())
		sidebar := sidebarStyle.
			Width(sideWidth).
			Height(m.viewport.Height).
			Render(m.renderSidebar())
		content := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), sidebar)
		return appStyle.Render(header + "\n\n" + content + "\n" + m.help.View(m.keys) + errView)
	}
}
