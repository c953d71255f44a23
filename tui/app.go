package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"seat-booking-cli/booking"
	"seat-booking-cli/model"
	"seat-booking-cli/store"
)

const (
	cellWidth      = 3
	rowLabelWidth  = 1
	toastFadeDelay = 4 * time.Second
	// The grid starts after the title, the meta line and one blank line.
	gridTopLine = 3
)

type Options struct {
	Logger     *slog.Logger
	ShowPrices bool
	// SavePreferences persists UI preferences. Nil disables saving.
	SavePreferences func(store.Preferences) error
}

type toastKind int

const (
	toastInfo toastKind = iota
	toastError
)

type appModel struct {
	session *booking.Session
	notices *noticeQueue
	logger  *slog.Logger

	rows      [][]model.Seat
	cursorRow int
	cursorCol int

	showPrices      bool
	savePreferences func(store.Preferences) error

	width  int
	height int

	keys keyMap
	help help.Model

	toast     string
	toastKind toastKind
	toastSeq  int
}

type toastFadeMsg struct {
	seq int
}

// noticeQueue collects notifier messages raised while the session handles
// an event so Update can turn them into a toast.
type noticeQueue struct {
	pending []string
}

func (q *noticeQueue) Notify(message string) {
	q.pending = append(q.pending, message)
}

func (q *noticeQueue) drain() []string {
	out := q.pending
	q.pending = nil
	return out
}

func New(opts Options) tea.Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notices := &noticeQueue{}
	return appModel{
		session:         booking.NewSession(notices, logger),
		notices:         notices,
		logger:          logger,
		rows:            booking.Rows(),
		showPrices:      opts.ShowPrices,
		savePreferences: opts.SavePreferences,
		keys:            defaultKeyMap(),
		help:            help.New(),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case toastFadeMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case logRecordMsg:
		kind := toastInfo
		if msg.level >= slog.LevelError {
			kind = toastError
		}
		return m, m.showToast(msg.summary, kind)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.session.IsDialogOpen() {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			receipt := m.session.Confirm()
			text := fmt.Sprintf("Booked %s for %s", seatList(receipt.Seats), booking.FormatPrice(receipt.Total))
			return m, m.showToast(text, toastInfo)
		case key.Matches(msg, m.keys.Dismiss):
			m.session.Dismiss()
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSeat(m.cursorRow, m.cursorCol)
	case key.Matches(msg, m.keys.BookNow):
		if err := m.session.BookNow(); err != nil && !errors.Is(err, booking.ErrEmptySelection) {
			return m, m.showToast(err.Error(), toastError)
		}
	case key.Matches(msg, m.keys.Prices):
		m.showPrices = !m.showPrices
		if m.savePreferences != nil {
			if err := m.savePreferences(store.Preferences{ShowPrices: m.showPrices}); err != nil {
				m.logger.Warn("save preferences failed", "error", err)
			}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.session.IsDialogOpen() {
		return m, nil
	}
	row, col, ok := m.seatAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursorRow, m.cursorCol = row, col
	return m.toggleSeat(row, col)
}

// seatAt maps screen coordinates to a grid cell.
func (m appModel) seatAt(x int, y int) (int, int, bool) {
	row := y - gridTopLine
	if row < 0 || row >= len(m.rows) {
		return 0, 0, false
	}
	offset := x - (rowLabelWidth + 1)
	if offset < 0 {
		return 0, 0, false
	}
	col := offset / (cellWidth + 1)
	if offset%(cellWidth+1) == cellWidth || col >= len(m.rows[row]) {
		return 0, 0, false
	}
	return row, col, true
}

func (m *appModel) moveCursor(dRow int, dCol int) {
	m.cursorRow = clamp(m.cursorRow+dRow, 0, len(m.rows)-1)
	m.cursorCol = clamp(m.cursorCol+dCol, 0, len(m.rows[m.cursorRow])-1)
}

func (m appModel) toggleSeat(row int, col int) (tea.Model, tea.Cmd) {
	seat := m.rows[row][col]
	if _, err := m.session.Toggle(seat.Id); err != nil && !errors.Is(err, booking.ErrSelectionFull) {
		m.logger.Error("toggle seat failed", "seat", seat.Id, "error", err)
	}
	var cmd tea.Cmd
	for _, notice := range m.notices.drain() {
		cmd = m.showToast(notice, toastError)
	}
	return m, cmd
}

func (m *appModel) showToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastKind = kind
	seq := m.toastSeq
	return tea.Tick(toastFadeDelay, func(time.Time) tea.Msg {
		return toastFadeMsg{seq: seq}
	})
}

func (m appModel) View() string {
	snap := m.session.Snapshot()

	sections := []string{
		m.headerView(),
		m.gridView(),
		m.legendView(),
		m.summaryView(snap),
	}
	if len(snap.Seats) > 0 {
		sections = append(sections, m.totalBarView(snap.Total))
	}
	if m.toast != "" {
		sections = append(sections, m.toastView())
	}
	if snap.DialogOpen {
		sections = append(sections, m.help.View(dialogKeyMap{m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	view := strings.Join(sections, "\n\n")

	if snap.DialogOpen {
		dialog := strings.Split(m.dialogView(snap), "\n")
		dialogWidth := ansi.StringWidth(dialog[0])
		width := m.width
		if width == 0 {
			width = lipgloss.Width(view)
		}
		height := m.height
		if height == 0 {
			height = lipgloss.Height(view)
		}
		view = spliceOverlay(view, dialog, centerOffset(width, dialogWidth), centerOffset(height, len(dialog)))
	}
	return view
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("BOOK YOUR SEAT")
	layout := model.DefaultLayout
	meta := fmt.Sprintf("%d rows • %d seats per row • up to %d seats per booking", layout.Rows, layout.SeatsPerRow, layout.MaxSelection)
	return title + "\n" + hint(meta)
}

func (m appModel) gridView() string {
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("34"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Underline(true).Reverse(true)

	var b strings.Builder
	for r, row := range m.rows {
		label := string(rune('A' + r))
		b.WriteString(fmt.Sprintf("%*s ", rowLabelWidth, label))
		for c, seat := range row {
			text := padCell(seat.Id, cellWidth)
			style := tierStyle(seat.Tier)
			if m.session.IsSelected(seat.Id) {
				style = selectedStyle
			}
			if r == m.cursorRow && c == m.cursorCol {
				style = style.Inherit(cursorStyle)
			}
			b.WriteString(style.Render(text))
			if c < len(row)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	gridWidth := model.DefaultLayout.SeatsPerRow*(cellWidth+1) - 1
	indent := strings.Repeat(" ", rowLabelWidth+1)
	barLines := strings.Split(screenBar(gridWidth, "SCREEN"), "\n")
	for i, line := range barLines {
		b.WriteString(indent + line)
		if i < len(barLines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) legendView() string {
	tiers := []model.Tier{model.Platinum, model.Gold, model.Silver}
	parts := make([]string, 0, len(tiers)+1)
	for _, tier := range tiers {
		chip := tierStyle(tier).Render("  ")
		text := tier.String()
		if m.showPrices {
			text += " " + booking.FormatPrice(model.PriceTable[tier])
		}
		parts = append(parts, chip+" "+text)
	}
	selected := lipgloss.NewStyle().Background(lipgloss.Color("34")).Render("  ")
	parts = append(parts, selected+" Selected")
	return strings.Join(parts, "   ")
}

func (m appModel) summaryView(snap booking.Snapshot) string {
	if len(snap.Seats) == 0 {
		return lipgloss.NewStyle().Italic(true).Faint(true).Render("Seats are waiting for you! Choose your favorites.")
	}

	title := lipgloss.NewStyle().Bold(true).Italic(true).Render("Booking Summary")
	width := model.DefaultLayout.SeatsPerRow*(cellWidth+1) - 1
	lines := make([]string, 0, len(snap.Seats))
	for _, seat := range snap.Seats {
		price := booking.FormatPrice(seat.Price)
		gap := max(1, width-ansi.StringWidth(seat.Id)-ansi.StringWidth(price))
		lines = append(lines, seat.Id+strings.Repeat(" ", gap)+price)
	}
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(strings.Join(lines, "\n"))
	return title + "\n" + box
}

func (m appModel) totalBarView(total int) string {
	totalText := lipgloss.NewStyle().Bold(true).Render("Total Cost: " + booking.FormatPrice(total))
	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("160")).
		Padding(0, 2).
		Render("Book Now [b]")
	return lipgloss.JoinHorizontal(lipgloss.Center, totalText, "   ", button)
}

func (m appModel) toastView() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("63")).Padding(0, 1)
	if m.toastKind == toastError {
		style = style.Background(lipgloss.Color("160"))
	}
	return style.Render(m.toast)
}

func (m appModel) dialogView(snap booking.Snapshot) string {
	check := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("34")).
		Padding(0, 1).
		Render("✓")
	heading := lipgloss.NewStyle().Bold(true).Render("Awesome!")
	body := hint("Your booking has been confirmed.")
	detail := fmt.Sprintf("%d seat(s) • %s", len(snap.Seats), booking.FormatPrice(snap.Total))
	ok := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("34")).
		Padding(0, 3).
		Render("OK")

	content := lipgloss.JoinVertical(lipgloss.Center, check, "", heading, body, detail, "", ok)
	return lipgloss.NewStyle().
		Width(40).
		Align(lipgloss.Center).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("34")).
		Render(content)
}

func tierStyle(tier model.Tier) lipgloss.Style {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
	switch tier {
	case model.Platinum:
		return base.Background(lipgloss.Color("248"))
	case model.Gold:
		return base.Background(lipgloss.Color("178"))
	case model.Silver:
		return base.Background(lipgloss.Color("255"))
	default:
		return base.Background(lipgloss.Color("252"))
	}
}

func seatList(seats []model.SelectedSeat) string {
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.Id)
	}
	return strings.Join(ids, ", ")
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// padCell centers text in a cell of the given display width, with any odd
// column of padding on the right. Text wider than the cell is cut.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	textWidth := ansi.StringWidth(text)
	if textWidth >= width {
		return ansi.Truncate(text, width, "")
	}
	left := (width - textWidth) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-textWidth-left)
}

// screenBar draws the rounded "SCREEN" marker spanning width columns.
func screenBar(width int, label string) string {
	inner := max(width-2, ansi.StringWidth(label)+2)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("214")).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center).
		Render(label)
}
