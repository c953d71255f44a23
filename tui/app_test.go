package tui

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seat-booking-cli/booking"
	"seat-booking-cli/store"
)

func newTestModel() appModel {
	return New(Options{ShowPrices: true}).(appModel)
}

func press(t *testing.T, m appModel, keys ...tea.KeyMsg) appModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestUpdate_ToggleSeatUnderCursor(t *testing.T) {
	m := newTestModel()

	m = press(t, m, space)
	if !m.session.IsSelected("A1") {
		t.Fatal("expected A1 to be selected")
	}

	m = press(t, m, space)
	if m.session.IsSelected("A1") {
		t.Fatal("expected A1 to be deselected")
	}
}

func TestUpdate_CursorClampsToGrid(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 20; i++ {
		m = press(t, m, down, right)
	}
	if m.cursorRow != 5 || m.cursorCol != 9 {
		t.Fatalf("expected cursor at F10, got row %d col %d", m.cursorRow, m.cursorCol)
	}
	m = press(t, m, runes("k"), runes("h"))
	if m.cursorRow != 4 || m.cursorCol != 8 {
		t.Fatalf("expected cursor at E9, got row %d col %d", m.cursorRow, m.cursorCol)
	}
}

func TestView_SummaryScenario(t *testing.T) {
	m := newTestModel()

	// A1, then F3.
	m = press(t, m, space, down, down, down, down, down, right, right, space)
	if m.session.Total() != 300 {
		t.Fatalf("expected total 300, got %d", m.session.Total())
	}

	view := m.View()
	for _, want := range []string{"Booking Summary", "A1", "₹200", "F3", "₹100", "Total Cost: ₹300", "Book Now"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	m = press(t, m, runes("k"), runes("k"), runes("k"), runes("k"), runes("k"), runes("h"), runes("h"), space)
	if m.session.IsSelected("A1") || m.session.Total() != 100 {
		t.Fatalf("expected only F3 selected, got %+v", m.session.Snapshot())
	}
	if !strings.Contains(m.View(), "Total Cost: ₹100") {
		t.Fatal("expected total bar to show ₹100")
	}
}

func TestView_EmptyState(t *testing.T) {
	m := newTestModel()
	view := m.View()
	if !strings.Contains(view, "Seats are waiting for you! Choose your favorites.") {
		t.Fatal("expected empty-state message")
	}
	if strings.Contains(view, "Total Cost") {
		t.Fatal("total bar must be hidden without a selection")
	}
}

func TestUpdate_NinthSeatShowsToast(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 8; i++ {
		m = press(t, m, space, right)
	}
	if len(m.session.Selected()) != 8 {
		t.Fatalf("expected 8 seats, got %d", len(m.session.Selected()))
	}

	next, cmd := m.Update(space)
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("expected a fade command for the toast")
	}
	if len(m.session.Selected()) != 8 || m.session.IsSelected("A9") {
		t.Fatal("expected the ninth seat to be rejected")
	}
	if m.toast != "You can only select up to 8 seats." {
		t.Fatalf("unexpected toast %q", m.toast)
	}

	next, _ = m.Update(toastFadeMsg{seq: m.toastSeq})
	m = next.(appModel)
	if m.toast != "" {
		t.Fatalf("expected toast to fade, got %q", m.toast)
	}
}

func TestUpdate_StaleFadeKeepsNewerToast(t *testing.T) {
	m := newTestModel()
	_ = m.showToast("first", toastInfo)
	stale := m.toastSeq
	_ = m.showToast("second", toastInfo)

	next, _ := m.Update(toastFadeMsg{seq: stale})
	m = next.(appModel)
	if m.toast != "second" {
		t.Fatalf("expected newer toast to stay, got %q", m.toast)
	}
}

func TestUpdate_BookingDialogFlow(t *testing.T) {
	m := newTestModel()

	m = press(t, m, runes("b"))
	if m.session.IsDialogOpen() {
		t.Fatal("dialog must not open without seats")
	}

	m = press(t, m, space, runes("b"))
	if !m.session.IsDialogOpen() {
		t.Fatal("expected dialog to open")
	}
	view := m.View()
	if !strings.Contains(view, "Awesome!") || !strings.Contains(view, "Your booking has been confirmed.") {
		t.Fatal("expected confirmation dialog in view")
	}

	// Toggles are ignored behind the dialog.
	m = press(t, m, right, space)
	if m.session.IsSelected("A2") {
		t.Fatal("expected seat toggles to be ignored while the dialog is open")
	}

	m = press(t, m, enter)
	snap := m.session.Snapshot()
	if snap.DialogOpen || len(snap.Seats) != 0 || snap.Total != 0 || snap.State != booking.StateIdle {
		t.Fatalf("expected reset session, got %+v", snap)
	}
	if !strings.Contains(m.toast, "Booked A1") {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestUpdate_EscDismissesDialog(t *testing.T) {
	m := newTestModel()
	m = press(t, m, space, runes("b"), esc)
	if m.session.IsDialogOpen() || !m.session.IsSelected("A1") {
		t.Fatalf("expected dialog closed with selection kept, got %+v", m.session.Snapshot())
	}
}

func TestUpdate_TogglePricesSavesPreferences(t *testing.T) {
	var saved []store.Preferences
	m := New(Options{
		ShowPrices: true,
		SavePreferences: func(p store.Preferences) error {
			saved = append(saved, p)
			return nil
		},
	}).(appModel)

	if !strings.Contains(m.legendView(), "₹200") {
		t.Fatal("expected prices in legend")
	}
	m = press(t, m, runes("p"))
	if m.showPrices || strings.Contains(m.legendView(), "₹200") {
		t.Fatal("expected prices hidden")
	}
	if len(saved) != 1 || saved[0].ShowPrices {
		t.Fatalf("unexpected saved preferences %+v", saved)
	}
}

func TestUpdate_PreferenceSaveErrorStillTogglesPrices(t *testing.T) {
	m := New(Options{
		SavePreferences: func(store.Preferences) error { return errors.New("disk full") },
	}).(appModel)
	m = press(t, m, runes("p"))
	if !m.showPrices {
		t.Fatal("expected prices toggled on despite save failure")
	}
}

// toastWatcher reports every log record the running program receives.
type toastWatcher struct {
	tea.Model
	records chan string
}

func (w toastWatcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if rec, ok := msg.(logRecordMsg); ok {
		select {
		case w.records <- rec.summary:
		default:
		}
	}
	next, cmd := w.Model.Update(msg)
	w.Model = next
	return w, cmd
}

func TestProgram_PreferenceSaveFailureReachesToastAndQuits(t *testing.T) {
	var logged bytes.Buffer
	handler := NewLogHandler(slog.LevelWarn, slog.NewJSONHandler(&logged, nil))
	watcher := toastWatcher{
		Model: New(Options{
			Logger:          slog.New(handler),
			SavePreferences: func(store.Preferences) error { return errors.New("disk full") },
		}),
		records: make(chan string, 1),
	}
	program := tea.NewProgram(watcher, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	handler.SetProgram(program)

	done := make(chan error, 1)
	go func() {
		_, err := program.Run()
		done <- err
	}()

	program.Send(runes("p"))
	select {
	case summary := <-watcher.records:
		if !strings.Contains(summary, "save preferences failed") || !strings.Contains(summary, "disk full") {
			t.Fatalf("unexpected log record %q", summary)
		}
	case <-time.After(3 * time.Second):
		program.Kill()
		t.Fatal("log record never reached the program")
	}

	program.Send(runes("q"))
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(3 * time.Second):
		program.Kill()
		t.Fatal("program did not exit after q")
	}

	if !strings.Contains(logged.String(), "save preferences failed") {
		t.Fatalf("expected record in the file handler, got %s", logged.String())
	}
}

func TestUpdate_MouseClickTogglesSeat(t *testing.T) {
	m := newTestModel()

	// Row C (index 2), column 4 (index 3).
	x := rowLabelWidth + 1 + 3*(cellWidth+1) + 1
	y := gridTopLine + 2
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(appModel)
	if !m.session.IsSelected("C4") {
		t.Fatalf("expected C4 selected, got %+v", m.session.Selected())
	}
	if m.cursorRow != 2 || m.cursorCol != 3 {
		t.Fatalf("expected cursor to follow the click, got %d,%d", m.cursorRow, m.cursorCol)
	}
}

func TestSeatAt_OutsideGrid(t *testing.T) {
	m := newTestModel()
	cases := []struct{ x, y int }{
		{0, gridTopLine},
		{rowLabelWidth + 1 + cellWidth, gridTopLine},
		{5, gridTopLine - 1},
		{5, gridTopLine + 6},
		{200, gridTopLine},
	}
	for _, tc := range cases {
		if _, _, ok := m.seatAt(tc.x, tc.y); ok {
			t.Fatalf("expected (%d,%d) to miss the grid", tc.x, tc.y)
		}
	}
}

func TestUpdate_LogRecordShowsToast(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(logRecordMsg{summary: "save preferences failed (error=disk full)"})
	m = next.(appModel)
	if cmd == nil || !strings.Contains(m.toast, "disk full") {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "abcdef\nghijkl\nmnopqr"
	got := spliceOverlay(view, []string{"XY"}, 2, 1)
	lines := strings.Split(got, "\n")
	if lines[0] != "abcdef" || lines[2] != "mnopqr" {
		t.Fatalf("untouched lines changed: %q", got)
	}
	if !strings.HasPrefix(lines[1], "gh") || !strings.Contains(lines[1], "XY") || !strings.HasSuffix(lines[1], "kl") {
		t.Fatalf("unexpected spliced line %q", lines[1])
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("A1", 3); got != "A1 " {
		t.Fatalf("expected %q, got %q", "A1 ", got)
	}
	if got := padCell("A10", 3); got != "A10" {
		t.Fatalf("expected %q, got %q", "A10", got)
	}
	if got := padCell("F1", 5); got != " F1  " {
		t.Fatalf("expected %q, got %q", " F1  ", got)
	}
	if got := padCell("SCREEN", 3); got != "SCR" {
		t.Fatalf("expected %q, got %q", "SCR", got)
	}
}

func TestScreenBar_SpansGrid(t *testing.T) {
	gridWidth := 39
	bar := screenBar(gridWidth, "SCREEN")
	lines := strings.Split(bar, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), bar)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w != gridWidth {
			t.Fatalf("expected width %d, got %d for %q", gridWidth, w, line)
		}
	}
	if !strings.Contains(lines[1], "SCREEN") {
		t.Fatalf("expected label on the middle line, got %q", lines[1])
	}
}
