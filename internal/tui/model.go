package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/dates"
	"lifequest/internal/engine"
	"lifequest/internal/habit"
	"lifequest/internal/ui"
)

type calendarModel struct {
	ctx     context.Context
	svc     *engine.Service
	habitID string

	habit *habit.Habit
	today dates.Day

	// first day of the displayed month
	month dates.Day
	// currently selected day
	selected dates.Day

	width   int
	height  int
	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	habit *habit.Habit
	today dates.Day
	err   error
}

type toggledMsg struct {
	log string
	err error
}

func newCalendarModel(ctx context.Context, svc *engine.Service, habitID string) calendarModel {
	return calendarModel{
		ctx:     ctx,
		svc:     svc,
		habitID: habitID,
		loading: true,
		lastLog: "Loading…",
	}
}

func (m calendarModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m calendarModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		h, err := m.svc.GetHabit(m.ctx, m.habitID)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{habit: h, today: m.svc.Today()}
	}
}

func (m calendarModel) toggleCmd(d dates.Day) tea.Cmd {
	return func() tea.Msg {
		if m.habit.History.CompletedOn(d) {
			res, err := m.svc.UncompleteHabit(m.ctx, m.habit.ID, d)
			if err != nil {
				return toggledMsg{err: err}
			}
			log := fmt.Sprintf("Unmarked %s (-%d XP)", d, res.XPDeducted)
			if res.LeveledDown {
				log += " " + ui.BadgeLevelDown
			}
			return toggledMsg{log: log}
		}

		res, err := m.svc.CompleteHabit(m.ctx, m.habit.ID, d)
		if err != nil {
			return toggledMsg{err: err}
		}
		log := fmt.Sprintf("Completed %s (+%d XP, streak %d)", d, res.XPAwarded, res.StreakCurrent)
		if res.LeveledUp {
			log += " " + ui.BadgeLevelUp
		}
		return toggledMsg{log: log}
	}
}

func firstOfMonth(d dates.Day) dates.Day {
	return d.AddDays(-(d.DayOfMonth() - 1))
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.habit = msg.habit
		m.today = msg.today
		if m.selected.IsZero() {
			m.selected = msg.today
		}
		if m.month.IsZero() {
			m.month = firstOfMonth(m.selected)
		}
		m.lastLog = fmt.Sprintf("Loaded %q.", m.habit.Title)
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.habit == nil {
			if s := msg.String(); s == "q" || s == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "left", "h":
			m.selected = m.selected.AddDays(-1)
		case "right", "l":
			m.selected = m.selected.AddDays(1)
		case "up", "k":
			m.selected = m.selected.AddDays(-7)
		case "down", "j":
			m.selected = m.selected.AddDays(7)
		case "[", "pgup":
			m.month = firstOfMonth(m.month.AddDays(-1))
			m.selected = m.month
			return m, nil
		case "]", "pgdown":
			m.month = m.month.Add(dates.Interval{Count: 1, Unit: dates.UnitMonths})
			m.selected = m.month
			return m, nil
		case "t":
			m.selected = m.today
		case " ", "enter":
			return m, m.toggleCmd(m.selected)
		}
		m.month = firstOfMonth(m.selected)
		return m, nil
	}
	return m, nil
}

func (m calendarModel) View() string {
	if m.loading {
		return "Loading…\n"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder

	cur, best := habit.Streaks(m.habit)
	header := fmt.Sprintf("%s %s  %s  %s",
		ui.IconHabit,
		ui.Title.Render(m.habit.Title),
		ui.Muted.Render(m.habit.Every.String()),
		ui.Muted.Render(fmt.Sprintf("%s %d (best %d)", ui.IconStreak, cur, best)),
	)
	b.WriteString(header + "\n")
	b.WriteString(ui.H2.Render(m.month.Time().Format("January 2006")) + "\n\n")

	b.WriteString(ui.Muted.Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	// Leading blanks up to the month's first weekday (Monday start).
	offset := (int(m.month.Weekday()) + 6) % 7
	col := 0
	for ; col < offset; col++ {
		b.WriteString("    ")
	}

	for d := m.month; d.Month() == m.month.Month(); d = d.AddDays(1) {
		b.WriteString(m.renderDay(d))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.renderSelected() + "\n")
	b.WriteString(ui.Muted.Render("←↓↑→ move · [/] month · t today · space toggle · r refresh · q quit") + "\n")
	if m.lastLog != "" {
		b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	}
	return b.String()
}

func (m calendarModel) renderDay(d dates.Day) string {
	cell := fmt.Sprintf("%3d", d.DayOfMonth())

	switch {
	case d.Equal(m.selected):
		cell = ui.SelectedDay.Render(cell)
	case m.habit.History.CompletedOn(d):
		cell = ui.Good.Render(cell)
	case habit.CouldBeCompletedOn(m.habit, d, m.today):
		// plain: an enabled, open day
	default:
		cell = ui.Muted.Render(cell)
	}
	return cell + " "
}

func (m calendarModel) renderSelected() string {
	d := m.selected
	state := ""
	switch {
	case m.habit.History.CompletedOn(d):
		state = ui.Good.Render(ui.IconDone + " completed")
	case habit.CouldBeCompletedOn(m.habit, d, m.today):
		state = ui.Warn.Render("open")
	default:
		state = ui.Muted.Render("unavailable")
	}
	next := habit.NextExpected(m.habit, d)
	return fmt.Sprintf("%s  %s  %s", ui.Key.Render(d.Key()), state, ui.Muted.Render("next expected "+next.Key()))
}
