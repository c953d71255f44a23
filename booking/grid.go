package booking

import (
	"strconv"
	"strings"

	"seat-booking-cli/model"
)

// TierForRow returns the pricing tier for a zero-based row index.
func TierForRow(rowIndex int) model.Tier {
	if rowIndex <= 1 {
		return model.Platinum
	}
	if rowIndex <= 3 {
		return model.Gold
	}
	return model.Silver
}

// SeatID builds the display id for a seat, e.g. row 0 column 0 is "A1".
func SeatID(rowIndex int, columnIndex int) string {
	return string(rune('A'+rowIndex)) + strconv.Itoa(columnIndex+1)
}

// GenerateSeats returns every seat of the default layout in row-major order.
func GenerateSeats() []model.Seat {
	layout := model.DefaultLayout
	seats := make([]model.Seat, 0, layout.Rows*layout.SeatsPerRow)
	for rowIndex := 0; rowIndex < layout.Rows; rowIndex++ {
		tier := TierForRow(rowIndex)
		for seatIndex := 0; seatIndex < layout.SeatsPerRow; seatIndex++ {
			seats = append(seats, model.Seat{
				Id:     SeatID(rowIndex, seatIndex),
				Row:    rowIndex,
				Column: seatIndex,
				Price:  model.PriceTable[tier],
				Tier:   tier,
			})
		}
	}
	return seats
}

// Rows groups GenerateSeats by row.
func Rows() [][]model.Seat {
	layout := model.DefaultLayout
	seats := GenerateSeats()
	rows := make([][]model.Seat, layout.Rows)
	for i := range rows {
		rows[i] = seats[i*layout.SeatsPerRow : (i+1)*layout.SeatsPerRow]
	}
	return rows
}

// LookupSeat resolves a seat id such as "a1" or " F10 ".
func LookupSeat(id string) (model.Seat, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) < 2 {
		return model.Seat{}, false
	}
	layout := model.DefaultLayout
	row := int(id[0] - 'A')
	if row < 0 || row >= layout.Rows {
		return model.Seat{}, false
	}
	if id[1] < '1' || id[1] > '9' {
		return model.Seat{}, false
	}
	column, err := strconv.Atoi(id[1:])
	if err != nil || column > layout.SeatsPerRow {
		return model.Seat{}, false
	}
	tier := TierForRow(row)
	return model.Seat{
		Id:     SeatID(row, column-1),
		Row:    row,
		Column: column - 1,
		Price:  model.PriceTable[tier],
		Tier:   tier,
	}, true
}
