package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"seat-booking-cli/booking"
)

type confirmFunc func(label string) (bool, error)

func newBookCmd(root *rootOptions) *cobra.Command {
	var seats []string
	var yes bool

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Select seats by id and confirm the booking",
		Long:  `Toggle the given seat ids in order, print the booking summary and confirm it`,
		Example: `  seatbook book --seats A1,F3
  seatbook book --seats A1 --seats B2 --yes`,
		Args: cobra.NoArgs,
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

			confirm := promptConfirm
			if yes {
				confirm = nil
			}
			session := booking.NewSession(stderrNotifier(cmd.ErrOrStderr()), logger)
			return runBook(cmd.OutOrStdout(), session, seats, confirm)
		},
	}
	cmd.Flags().StringSliceVar(&seats, "seats", nil, "seat ids to select, e.g. A1,F3")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm without prompting")
	_ = cmd.MarkFlagRequired("seats")
	return cmd
}

// runBook drives a session through the booking flow. A nil confirm
// accepts the booking without asking.
func runBook(out io.Writer, session *booking.Session, seatIDs []string, confirm confirmFunc) error {
	for _, id := range seatIDs {
		if _, err := session.Toggle(id); err != nil && !errors.Is(err, booking.ErrSelectionFull) {
			return err
		}
	}

	if err := session.BookNow(); err != nil {
		return err
	}
	fmt.Fprintln(out, renderSummary(session.Snapshot()))

	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Book %d seat(s) for %s", len(session.Selected()), booking.FormatPrice(session.Total())))
		if err != nil {
			return err
		}
		if !ok {
			session.Dismiss()
			fmt.Fprintln(out, "Booking cancelled.")
			return nil
		}
	}

	receipt := session.Confirm()
	fmt.Fprintln(out, "Awesome! Your booking has been confirmed.")
	fmt.Fprintf(out, "Seats: %s • Total: %s\n", strings.Join(receiptIDs(receipt), ", "), booking.FormatPrice(receipt.Total))
	return nil
}

func renderSummary(snap booking.Snapshot) string {
	t := table.NewWriter()
	t.SetTitle("Booking Summary")
	t.AppendHeader(table.Row{"Seat", "Tier", "Price"})
	for _, selected := range snap.Seats {
		tier := "-"
		if seat, ok := booking.LookupSeat(selected.Id); ok {
			tier = seat.Tier.String()
		}
		t.AppendRow(table.Row{selected.Id, tier, booking.FormatPrice(selected.Price)})
	}
	t.AppendFooter(table.Row{"", "Total Cost", booking.FormatPrice(snap.Total)})
	return t.Render()
}

func receiptIDs(receipt booking.Receipt) []string {
	ids := make([]string, 0, len(receipt.Seats))
	for _, seat := range receipt.Seats {
		ids = append(ids, seat.Id)
	}
	return ids
}

func stderrNotifier(w io.Writer) booking.Notifier {
	return booking.NotifierFunc(func(message string) {
		fmt.Fprintln(w, message)
	})
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
