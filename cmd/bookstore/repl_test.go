package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bookhaven/bookstore/internal/accounts"
	"github.com/bookhaven/bookstore/internal/catalog"
	"github.com/bookhaven/bookstore/internal/orders"
	"github.com/bookhaven/bookstore/internal/session"
	"github.com/bookhaven/bookstore/pkg/config"
	"github.com/bookhaven/bookstore/pkg/logger"
	"github.com/bookhaven/bookstore/pkg/migrate"
	"github.com/bookhaven/bookstore/pkg/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newScriptedREPL(t *testing.T, script string, passwords ...string) (*repl, *bytes.Buffer) {
	t.Helper()

	dsn := "file:repl_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Up(context.Background(), sqlDB))

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	require.NoError(t, err)
	_, err = catalogSvc.Import(context.Background(), []catalog.BookInput{
		{Title: "Fiction Tales", Author: "Ann Writer", Genre: "Mystery", Price: decimal.NewFromFloat(20.0)},
		{Title: "Deep Work", Author: "Cal Newport", Genre: "Non-Fiction", Price: decimal.NewFromFloat(15.0)},
	})
	require.NoError(t, err)

	verifier := security.NewVerifier(config.SecurityConfig{CredentialScheme: "plain"})
	accountsSvc, err := accounts.NewService(accounts.NewRepository(conn), verifier)
	require.NoError(t, err)

	ordersSvc, err := orders.NewService(gormTxRunner{db: conn}, orders.NewRepository(conn), orders.NewCatalogLoader(catalog.NewRepository(conn)))
	require.NoError(t, err)

	log := logger.New(logger.Options{ServiceName: "repl-test", Output: io.Discard})
	controller, err := session.NewController(accountsSvc, catalogSvc, ordersSvc, log)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	r := newREPL(controller, strings.NewReader(script), out)
	r.readPassword = func(prompt string) (string, error) {
		require.NotEmpty(t, passwords, "script asked for more passwords than provided")
		next := passwords[0]
		passwords = passwords[1:]
		return next, nil
	}
	return r, out
}

func TestREPLPurchaseSession(t *testing.T) {
	script := strings.Join([]string{
		"register",
		"alice",
		"login",
		"alice",
		"add",
		"1",
		"2",
		"add",
		"2",
		"1",
		"cart",
		"checkout",
		"history",
		"exit",
	}, "\n") + "\n"

	r, out := newScriptedREPL(t, script, "pw1", "pw1")
	r.run(context.Background())

	text := out.String()
	assert.Contains(t, text, `Account "alice" created`)
	assert.Contains(t, text, "Welcome back, alice!")
	assert.Contains(t, text, `Added 2 x "Fiction Tales"`)
	assert.Contains(t, text, "Cart total: $55.00")
	assert.Contains(t, text, "Order placed for alice:")
	assert.Contains(t, text, "Fiction Tales - Quantity: 2 - Total: $40.00")
	assert.Contains(t, text, "Order total: $55.00")
	assert.Contains(t, text, "Goodbye!")
}

func TestREPLSearchWithoutLogin(t *testing.T) {
	script := "search\nfiction\nexit\n"
	r, out := newScriptedREPL(t, script)
	r.run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Fiction Tales by Ann Writer")
	assert.NotContains(t, text, "Deep Work", "genre matches must not surface")
}

func TestREPLGuardsCartCommands(t *testing.T) {
	script := "cart\ncheckout\nexit\n"
	r, out := newScriptedREPL(t, script)
	r.run(context.Background())

	assert.Contains(t, out.String(), "Error:")
}

func TestREPLRejectsWrongPassword(t *testing.T) {
	script := strings.Join([]string{
		"register",
		"alice",
		"login",
		"alice",
		"exit",
	}, "\n") + "\n"

	r, out := newScriptedREPL(t, script, "pw1", "wrong")
	r.run(context.Background())

	assert.Contains(t, out.String(), "Error:")
	assert.NotContains(t, out.String(), "Welcome back")
}

func TestREPLUnknownCommand(t *testing.T) {
	r, out := newScriptedREPL(t, "frobnicate\nexit\n")
	r.run(context.Background())

	assert.Contains(t, out.String(), "Unknown command")
}
