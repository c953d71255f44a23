package booking

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"seat-booking-cli/model"
)

type State int

const (
	StateIdle State = iota
	StateSelecting
	StateConfirmPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateConfirmPending:
		return "confirm_pending"
	default:
		return "unknown"
	}
}

// Receipt is what the confirmation dialog showed when the user pressed OK.
// It is not stored anywhere.
type Receipt struct {
	Seats []model.SelectedSeat
	Total int
}

type Snapshot struct {
	State      State
	Seats      []model.SelectedSeat
	Total      int
	DialogOpen bool
}

// Session holds the state of one booking flow: the selection and whether
// the confirmation dialog is open. It is not safe for concurrent use.
type Session struct {
	selection  *Selection
	dialogOpen bool
	notifier   Notifier
	logger     *slog.Logger
}

// NewSession creates an empty session. A nil notifier or logger discards
// output.
func NewSession(notifier Notifier, logger *slog.Logger) *Session {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		selection: NewSelection(),
		notifier:  notifier,
		logger:    logger,
	}
}

// Toggle flips the selection of seatID. When the cap is reached the
// notifier receives the cap message once and nothing changes. Toggles are
// ignored while the confirmation dialog is open.
func (s *Session) Toggle(seatID string) (ToggleResult, error) {
	if s.dialogOpen {
		return Rejected, nil
	}
	seat, ok := LookupSeat(seatID)
	if !ok {
		return Rejected, fmt.Errorf("%w: %q", ErrUnknownSeat, seatID)
	}
	result, err := s.selection.Toggle(seat.Id, seat.Price)
	if errors.Is(err, ErrSelectionFull) {
		s.logger.Debug("seat cap reached", "seat", seat.Id, "selected", s.selection.Len())
		s.notifier.Notify(SelectionFullNotice)
		return result, err
	}
	s.logger.Debug("seat toggled", "seat", seat.Id, "result", result.String(), "total", s.selection.Total())
	return result, err
}

// BookNow opens the confirmation dialog. It requires at least one seat.
func (s *Session) BookNow() error {
	if s.selection.Len() == 0 {
		return ErrEmptySelection
	}
	s.dialogOpen = true
	s.logger.Info("booking requested", "seats", s.selection.Len(), "total", s.selection.Total())
	return nil
}

// Confirm acknowledges the dialog and resets the session to idle.
func (s *Session) Confirm() Receipt {
	receipt := Receipt{
		Seats: s.selection.Seats(),
		Total: s.selection.Total(),
	}
	s.selection.Clear()
	s.dialogOpen = false
	s.logger.Info("booking confirmed", "seats", len(receipt.Seats), "total", receipt.Total)
	return receipt
}

// Dismiss closes the dialog and keeps the selection.
func (s *Session) Dismiss() {
	s.dialogOpen = false
}

func (s *Session) State() State {
	switch {
	case s.dialogOpen:
		return StateConfirmPending
	case s.selection.Len() > 0:
		return StateSelecting
	default:
		return StateIdle
	}
}

func (s *Session) IsSelected(seatID string) bool {
	return s.selection.Contains(seatID)
}

func (s *Session) Selected() []model.SelectedSeat {
	return s.selection.Seats()
}

func (s *Session) Total() int {
	return s.selection.Total()
}

func (s *Session) IsDialogOpen() bool {
	return s.dialogOpen
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:      s.State(),
		Seats:      s.selection.Seats(),
		Total:      s.selection.Total(),
		DialogOpen: s.dialogOpen,
	}
}

// FormatPrice renders a rupee amount the way the summary shows it.
func FormatPrice(price int) string {
	return fmt.Sprintf("₹%d", price)
}

// SummaryLines returns the "A1: ₹200" rows of the booking summary.
func SummaryLines(seats []model.SelectedSeat) []string {
	lines := make([]string, 0, len(seats))
	for _, seat := range seats {
		lines = append(lines, fmt.Sprintf("%s: %s", seat.Id, FormatPrice(seat.Price)))
	}
	return lines
}
