package model

type Tier int

const (
	Platinum Tier = iota
	Gold
	Silver
)

func (t Tier) String() string {
	switch t {
	case Platinum:
		return "Platinum"
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	default:
		return "Unknown"
	}
}

// PriceTable maps each tier to its per-seat price in rupees.
var PriceTable = map[Tier]int{
	Silver:   100,
	Gold:     150,
	Platinum: 200,
}

type Seat struct {
	Id     string `json:"id"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Price  int    `json:"price"`
	Tier   Tier   `json:"tier"`
}

type SelectedSeat struct {
	Id    string `json:"id"`
	Price int    `json:"price"`
}

type Layout struct {
	Rows         int `json:"rows"`
	SeatsPerRow  int `json:"seatsPerRow"`
	MaxSelection int `json:"maxSelection"`
}

var DefaultLayout = Layout{
	Rows:         6,
	SeatsPerRow:  10,
	MaxSelection: 8,
}
