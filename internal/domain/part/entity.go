package part

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeStock     = errors.New("stock on hand cannot be negative")
	ErrNegativeReserved  = errors.New("reserved cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Part is the ledger view of one physical part: what is on the shelf and how
// much of it is earmarked for bookings. Reserved may exceed stock on hand:
// waiting bookings hold reservations against future replenishment.
type Part struct {
	id          uuid.UUID
	name        string
	unitPrice   decimal.Decimal
	stockOnHand int
	reserved    int
}

func NewPart(id uuid.UUID, name string, unitPrice decimal.Decimal, stockOnHand, reserved int) (*Part, error) {
	if stockOnHand < 0 {
		return nil, ErrNegativeStock
	}
	if reserved < 0 {
		return nil, ErrNegativeReserved
	}
	return &Part{id: id, name: name, unitPrice: unitPrice, stockOnHand: stockOnHand, reserved: reserved}, nil
}

// Available is what an entirely new booking could get. Negative when waiting
// bookings have over-reserved the part.
func (p *Part) Available() int {
	return p.stockOnHand - p.reserved
}

// AvailableFor answers "how much could this specific booking get if
// promoted", excluding the quantity it already holds from the scarcity
// calculation.
func (p *Part) AvailableFor(alreadyReserved int) int {
	return p.stockOnHand - p.reserved + alreadyReserved
}

// LineCost prices a required quantity of this part.
func (p *Part) LineCost(quantity int) decimal.Decimal {
	return p.unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func (p *Part) IsLowStock(threshold int) bool {
	return p.Available() <= threshold
}

func (p *Part) ID() uuid.UUID              { return p.id }
func (p *Part) Name() string               { return p.name }
func (p *Part) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *Part) StockOnHand() int           { return p.stockOnHand }
func (p *Part) Reserved() int              { return p.reserved }
