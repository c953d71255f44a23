package cmd

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"seat-booking-cli/booking"
	"seat-booking-cli/model"
)

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the seat chart",
		Long:  `Print every seat id by row together with the row's tier and price`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderGrid())
		},
	}
}

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the price of each seat tier",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderTiers())
		},
	}
}

func renderGrid() string {
	t := table.NewWriter()
	header := table.Row{"Row"}
	for col := 1; col <= model.DefaultLayout.SeatsPerRow; col++ {
		header = append(header, col)
	}
	header = append(header, "Tier", "Price")
	t.AppendHeader(header)

	for i, row := range booking.Rows() {
		tier := booking.TierForRow(i)
		items := table.Row{string(rune('A' + i))}
		for _, seat := range row {
			items = append(items, seat.Id)
		}
		items = append(items, tier.String(), booking.FormatPrice(model.PriceTable[tier]))
		t.AppendRow(items)
		if i+1 < model.DefaultLayout.Rows && booking.TierForRow(i+1) != tier {
			t.AppendSeparator()
		}
	}
	return t.Render()
}

func renderTiers() string {
	tiers := maps.Keys(model.PriceTable)
	sort.Slice(tiers, func(i, j int) bool {
		return model.PriceTable[tiers[i]] > model.PriceTable[tiers[j]]
	})

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Tier", "Rows", "Price"})
	for _, tier := range tiers {
		t.AppendRow(table.Row{tier.String(), tierRows(tier), booking.FormatPrice(model.PriceTable[tier])})
	}
	return t.Render()
}

func tierRows(tier model.Tier) string {
	first, last := -1, -1
	for i := 0; i < model.DefaultLayout.Rows; i++ {
		if booking.TierForRow(i) != tier {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return "-"
	}
	if first == last {
		return string(rune('A' + first))
	}
	return fmt.Sprintf("%c-%c", 'A'+first, 'A'+last)
}
