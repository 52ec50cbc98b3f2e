package cart

import (
	"testing"

	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func book(id int64, price float64) models.Book {
	return models.Book{ID: id, Title: "Book", Price: decimal.NewFromFloat(price)}
}

func TestAddAccumulatesTotal(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(book(1, 20.0), 2))
	require.NoError(t, c.Add(book(2, 15.0), 1))

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(55.0)), "got %s", c.Total())
}

func TestAddMergesDuplicateBook(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(book(1, 10.0), 1))
	require.NoError(t, c.Add(book(1, 10.0), 3))

	require.Equal(t, 1, c.Len(), "re-adding the same book must not create a second line")
	lines := c.Lines()
	assert.Equal(t, 4, lines[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(40.0)))
}

func TestAddRejectsBadQuantity(t *testing.T) {
	c := New()

	for _, qty := range []int{0, -1, -100} {
		err := c.Add(book(1, 5.0), qty)
		require.Error(t, err, "quantity %d", qty)
		assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity))
	}
	assert.True(t, c.Empty(), "rejected adds must not touch the cart")
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(book(3, 1.0), 1))
	require.NoError(t, c.Add(book(1, 1.0), 1))
	require.NoError(t, c.Add(book(2, 1.0), 1))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].Book.ID)
	assert.Equal(t, int64(1), lines[1].Book.ID)
	assert.Equal(t, int64(2), lines[2].Book.ID)
}

func TestLinesIsASnapshot(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(book(1, 1.0), 1))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestClearIsIdempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(book(1, 9.99), 2))

	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())

	c.Clear()
	assert.True(t, c.Empty())
}

func TestNoLineEverBelowOne(t *testing.T) {
	c := New()
	adds := []struct {
		id  int64
		qty int
	}{
		{1, 2}, {2, 1}, {1, -5}, {3, 0}, {2, 4},
	}
	for _, a := range adds {
		_ = c.Add(book(a.id, 3.0), a.qty)
	}
	for _, line := range c.Lines() {
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
	// 2 + (1+4) lines of id 1 and 2 at price 3.0
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(21.0)), "got %s", c.Total())
}
