package session

import (
	"context"
	"fmt"

	"github.com/bookhaven/bookstore/internal/accounts"
	"github.com/bookhaven/bookstore/internal/cart"
	"github.com/bookhaven/bookstore/internal/catalog"
	"github.com/bookhaven/bookstore/internal/orders"
	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/bookhaven/bookstore/pkg/logger"
	"github.com/shopspring/decimal"
)

// Confirmation summarizes a completed checkout for display.
type Confirmation struct {
	Username string
	OrderID  string
	Total    string
	Lines    []string
}

// Controller drives one interactive session. It owns the login state and the
// pending cart, and delegates everything durable to the services underneath.
// Browsing the catalog needs no login; everything cart- or order-related does.
type Controller struct {
	accounts accounts.Service
	catalog  *catalog.Service
	orders   orders.Service
	log      *logger.Logger

	user *models.User
	cart *cart.Cart
}

// NewController builds a session controller.
func NewController(accountsSvc accounts.Service, catalogSvc *catalog.Service, ordersSvc orders.Service, log *logger.Logger) (*Controller, error) {
	if accountsSvc == nil {
		return nil, fmt.Errorf("accounts service required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Controller{
		accounts: accountsSvc,
		catalog:  catalogSvc,
		orders:   ordersSvc,
		log:      log,
		cart:     cart.New(),
	}, nil
}

// LoggedIn reports whether a user is authenticated.
func (c *Controller) LoggedIn() bool {
	return c.user != nil
}

// CurrentUser returns the authenticated user, or nil.
func (c *Controller) CurrentUser() *models.User {
	return c.user
}

// Search queries the catalog. Available without logging in.
func (c *Controller) Search(ctx context.Context, query string) ([]models.Book, error) {
	return c.catalog.Search(ctx, query)
}

// Browse lists the whole catalog. Available without logging in.
func (c *Controller) Browse(ctx context.Context) ([]models.Book, error) {
	return c.catalog.List(ctx)
}

// Register creates a new account. It does not log the new user in and does
// not disturb whoever is currently logged in.
func (c *Controller) Register(ctx context.Context, input RegisterInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	user, err := c.accounts.Register(ctx, input.Username, input.Password)
	if err != nil {
		return err
	}
	c.log.Info(c.log.WithUsername(ctx, user.Username), "account registered")
	return nil
}

// Login authenticates and starts a fresh session with an empty cart. A
// failed login leaves the current session untouched.
func (c *Controller) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	user, err := c.accounts.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	c.user = user
	c.cart = cart.New()
	ctx = c.log.WithUserID(ctx, user.ID.String())
	c.log.Info(c.log.WithUsername(ctx, user.Username), "logged in")
	return user, nil
}

// Logout ends the session and discards the cart. Safe to call when nobody is
// logged in.
func (c *Controller) Logout(ctx context.Context) {
	if c.user != nil {
		c.log.Info(c.log.WithUsername(ctx, c.user.Username), "logged out")
	}
	c.user = nil
	c.cart = cart.New()
}

// AddToCart resolves the book and adds it to the session cart.
func (c *Controller) AddToCart(ctx context.Context, input AddToCartInput) (*models.Book, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	book, err := c.catalog.Get(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if err := c.cart.Add(*book, input.Quantity); err != nil {
		return nil, err
	}
	return book, nil
}

// Cart returns the session cart's lines.
func (c *Controller) Cart() ([]cart.Line, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.cart.Lines(), nil
}

// CartTotal returns the running total of the session cart.
func (c *Controller) CartTotal() (string, error) {
	if err := c.requireLogin(); err != nil {
		return "", err
	}
	return c.cart.Total().StringFixed(2), nil
}

// ClearCart empties the session cart.
func (c *Controller) ClearCart() error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	c.cart.Clear()
	return nil
}

// Checkout turns the cart into a persisted order and empties the cart. The
// cart survives intact when checkout fails.
func (c *Controller) Checkout(ctx context.Context) (*Confirmation, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	if c.cart.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart contains no items")
	}

	order, err := c.orders.Checkout(ctx, c.user.ID, c.cart.Lines())
	if err != nil {
		return nil, err
	}
	c.cart.Clear()

	confirmation := &Confirmation{
		Username: c.user.Username,
		OrderID:  order.ID.String(),
		Total:    order.Total.StringFixed(2),
		Lines:    c.describeItems(ctx, order.Items),
	}
	ctx = c.log.WithUserID(ctx, c.user.ID.String())
	c.log.Info(c.log.WithUsername(ctx, c.user.Username), "checkout complete")
	return confirmation, nil
}

// History returns the user's past orders formatted for display, newest
// first.
func (c *Controller) History(ctx context.Context) ([]models.Order, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	return c.orders.History(ctx, c.user.ID)
}

func (c *Controller) requireLogin() error {
	if c.user == nil {
		return pkgerrors.New(pkgerrors.CodeNotLoggedIn, "log in first")
	}
	return nil
}

func (c *Controller) describeItems(ctx context.Context, items []models.OrderItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		title := fmt.Sprintf("book %d", item.BookID)
		if book, err := c.catalog.Get(ctx, item.BookID); err == nil {
			title = book.Title
		} else {
			c.log.Warn(c.log.WithField(ctx, "book_id", item.BookID), "could not resolve book title for confirmation")
		}
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, fmt.Sprintf("%s - Quantity: %d - Total: $%s", title, item.Quantity, subtotal.StringFixed(2)))
	}
	return lines
}
