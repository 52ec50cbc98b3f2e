package cart

import (
	"fmt"

	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line pairs a catalog book with a purchase quantity. Quantity is always
// at least 1.
type Line struct {
	Book     models.Book
	Quantity int
}

// Subtotal is quantity times the book's current price.
func (l Line) Subtotal() decimal.Decimal {
	return l.Book.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates a session's pending purchase. It lives only in memory and
// belongs to exactly one authenticated session, so it needs no locking.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity copies of book into the cart. Re-adding a book the cart
// already holds increases that line's quantity instead of appending a
// duplicate line.
func (c *Cart) Add(book models.Book, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity,
			fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}

	for i := range c.lines {
		if c.lines[i].Book.ID == book.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{Book: book, Quantity: quantity})
	return nil
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (c *Cart) Clear() {
	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a snapshot of the cart in insertion order. Mutating the
// returned slice does not affect the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total sums quantity times price across all lines. An empty cart totals
// zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
