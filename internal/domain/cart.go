package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds the pending selection of one session.
type Cart struct {
	SessionID string     `json:"-"`
	Lines     []CartLine `json:"lineItems"`
}

// CartLine references a product by id. Name, price and image are copied at add
// time so an orphaned line can still be displayed.
type CartLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID int) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Remove drops the line for productID if present.
func (c *Cart) Remove(productID int) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

// Subtotal is the sum of price * quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(LineTotal(l.Price, l.Quantity))
	}
	return total
}

// ItemCount is the total quantity across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}
