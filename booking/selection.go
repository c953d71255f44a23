package booking

import (
	"errors"
	"fmt"

	"seat-booking-cli/model"
)

// SelectionFullNotice is the message shown to the user when the seat cap
// rejects a toggle.
var SelectionFullNotice = fmt.Sprintf("You can only select up to %d seats.", model.DefaultLayout.MaxSelection)

var (
	// ErrSelectionFull is returned when a toggle would exceed the seat cap.
	ErrSelectionFull = errors.New("selection is full")
	// ErrEmptySelection is returned when booking is requested with no seats.
	ErrEmptySelection = errors.New("no seats selected")
	// ErrUnknownSeat is returned for ids outside the seat grid.
	ErrUnknownSeat = errors.New("unknown seat")
)

type ToggleResult int

const (
	Rejected ToggleResult = iota
	Added
	Removed
)

func (r ToggleResult) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "rejected"
	}
}

// Selection is the ordered set of seats picked by the user, unique by id
// and capped at the layout's MaxSelection.
type Selection struct {
	seats []model.SelectedSeat
	limit int
}

func NewSelection() *Selection {
	return &Selection{limit: model.DefaultLayout.MaxSelection}
}

// Toggle removes seatID when it is selected and adds it otherwise. Adding
// past the cap returns ErrSelectionFull and leaves the selection untouched.
func (s *Selection) Toggle(seatID string, price int) (ToggleResult, error) {
	if i := s.indexOf(seatID); i >= 0 {
		s.seats = append(s.seats[:i:i], s.seats[i+1:]...)
		return Removed, nil
	}
	if len(s.seats) >= s.limit {
		return Rejected, ErrSelectionFull
	}
	s.seats = append(s.seats, model.SelectedSeat{Id: seatID, Price: price})
	return Added, nil
}

// Total is always derived from the current seats.
func (s *Selection) Total() int {
	total := 0
	for _, seat := range s.seats {
		total += seat.Price
	}
	return total
}

func (s *Selection) Seats() []model.SelectedSeat {
	out := make([]model.SelectedSeat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Selection) Contains(seatID string) bool {
	return s.indexOf(seatID) >= 0
}

func (s *Selection) Len() int {
	return len(s.seats)
}

func (s *Selection) Clear() {
	s.seats = nil
}

func (s *Selection) indexOf(seatID string) int {
	for i, seat := range s.seats {
		if seat.Id == seatID {
			return i
		}
	}
	return -1
}
