package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"seat-booking-cli/booking"
	"seat-booking-cli/model"
)

const (
	pickBookNow = "Book Now"
	pickQuit    = "Quit"
)

func newPickCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick seats with line-mode prompts",
		Long:  `Pick seats one prompt at a time, for terminals where the full-screen picker is not available`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			defer closeLog()

			session := booking.NewSession(stderrNotifier(cmd.ErrOrStderr()), logger)
			return runPick(cmd.OutOrStdout(), session)
		},
	}
}

func runPick(out io.Writer, session *booking.Session) error {
	seats := booking.GenerateSeats()
	cursor := 0
	for {
		items := pickItems(session, seats)
		selectSeat := promptui.Select{
			Label:     pickLabel(session),
			Items:     items,
			Size:      model.DefaultLayout.SeatsPerRow,
			CursorPos: cursor,
			Searcher: func(input string, index int) bool {
				return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
			},
		}

		index, _, err := selectSeat.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		cursor = index

		switch {
		case index < len(seats):
			_, err := session.Toggle(seats[index].Id)
			if err != nil && !errors.Is(err, booking.ErrSelectionFull) {
				return err
			}
		case items[index] == pickBookNow:
			if err := session.BookNow(); err != nil {
				fmt.Fprintln(out, "Select at least one seat first.")
				continue
			}
			fmt.Fprintln(out, renderSummary(session.Snapshot()))
			ok, err := promptConfirm("Confirm booking")
			if err != nil {
				return err
			}
			if !ok {
				session.Dismiss()
				continue
			}
			receipt := session.Confirm()
			fmt.Fprintln(out, "Awesome! Your booking has been confirmed.")
			fmt.Fprintf(out, "Seats: %s • Total: %s\n", strings.Join(receiptIDs(receipt), ", "), booking.FormatPrice(receipt.Total))
			cursor = 0
		default:
			return nil
		}
	}
}

// pickItems lists every seat followed by the Book Now and Quit actions.
func pickItems(session *booking.Session, seats []model.Seat) []string {
	items := make([]string, 0, len(seats)+2)
	for _, seat := range seats {
		mark := "[ ]"
		if session.IsSelected(seat.Id) {
			mark = "[x]"
		}
		items = append(items, fmt.Sprintf("%s %-3s %-8s %s", mark, seat.Id, seat.Tier, booking.FormatPrice(seat.Price)))
	}
	return append(items, pickBookNow, pickQuit)
}

func pickLabel(session *booking.Session) string {
	selected := session.Selected()
	if len(selected) == 0 {
		return "Seats are waiting for you! Choose your favorites."
	}
	return fmt.Sprintf("Selected %d/%d • Total Cost: %s", len(selected), model.DefaultLayout.MaxSelection, booking.FormatPrice(session.Total()))
}
