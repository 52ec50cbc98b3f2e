package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"

	"github.com/bookhaven/bookstore/internal/session"
	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"golang.org/x/term"
)

type repl struct {
	controller *session.Controller
	scanner    *bufio.Scanner
	out        io.Writer
	// replaced in tests where stdin is not a terminal
	readPassword func(prompt string) (string, error)
}

func newREPL(controller *session.Controller, in io.Reader, out io.Writer) *repl {
	r := &repl{
		controller: controller,
		scanner:    bufio.NewScanner(in),
		out:        out,
	}
	r.readPassword = r.readPasswordMasked
	return r
}

func (r *repl) run(ctx context.Context) {
	fmt.Fprintln(r.out, "Welcome to the bookstore!")
	r.printHelp()

	for {
		fmt.Fprint(r.out, "\n> ")
		if !r.scanner.Scan() {
			return
		}
		cmd := strings.TrimSpace(r.scanner.Text())

		switch cmd {
		case "":
		case "search":
			r.handleSearch(ctx)
		case "browse":
			r.handleBrowse(ctx)
		case "register":
			r.handleRegister(ctx)
		case "login":
			r.handleLogin(ctx)
		case "logout":
			r.controller.Logout(ctx)
			fmt.Fprintln(r.out, "Logged out.")
		case "add":
			r.handleAdd(ctx)
		case "cart":
			r.handleCart()
		case "clear":
			r.handleClear()
		case "checkout":
			r.handleCheckout(ctx)
		case "history":
			r.handleHistory(ctx)
		case "help":
			r.printHelp()
		case "exit":
			fmt.Fprintln(r.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(r.out, "Unknown command. Type 'help' to see the available commands.")
		}
	}
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, "Available commands:")
	fmt.Fprintln(r.out, "  Catalog: search, browse")
	fmt.Fprintln(r.out, "  Account: register, login, logout")
	fmt.Fprintln(r.out, "  Cart:    add, cart, clear, checkout")
	fmt.Fprintln(r.out, "  Orders:  history")
	fmt.Fprintln(r.out, "  System:  help, exit")
}

func (r *repl) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

func (r *repl) readPasswordMasked(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(r.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (r *repl) fail(err error) {
	fmt.Fprintf(r.out, "Error: %s\n", pkgerrors.PublicMessage(err))
}

func (r *repl) handleSearch(ctx context.Context) {
	query, ok := r.prompt("Search (title or author): ")
	if !ok {
		return
	}
	books, err := r.controller.Search(ctx, query)
	if err != nil {
		r.fail(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(r.out, "No books found.")
		return
	}
	r.printBooks(books)
}

func (r *repl) handleBrowse(ctx context.Context) {
	books, err := r.controller.Browse(ctx)
	if err != nil {
		r.fail(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(r.out, "The catalog is empty.")
		return
	}
	r.printBooks(books)
}

func (r *repl) printBooks(books []models.Book) {
	for _, book := range books {
		fmt.Fprintf(r.out, "  [%d] %s by %s (%s) - $%s\n",
			book.ID, book.Title, book.Author, book.Genre, book.Price.StringFixed(2))
		if book.Description != "" {
			fmt.Fprintf(r.out, "      %s\n", book.Description)
		}
	}
}

func (r *repl) handleRegister(ctx context.Context) {
	username, ok := r.prompt("Username: ")
	if !ok {
		return
	}
	password, err := r.readPassword("Password: ")
	if err != nil {
		r.fail(err)
		return
	}
	if err := r.controller.Register(ctx, session.RegisterInput{Username: username, Password: password}); err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "Account %q created. Use 'login' to sign in.\n", username)
}

func (r *repl) handleLogin(ctx context.Context) {
	username, ok := r.prompt("Username: ")
	if !ok {
		return
	}
	password, err := r.readPassword("Password: ")
	if err != nil {
		r.fail(err)
		return
	}
	user, err := r.controller.Login(ctx, session.LoginInput{Username: username, Password: password})
	if err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "Welcome back, %s!\n", user.Username)
}

func (r *repl) handleAdd(ctx context.Context) {
	idText, ok := r.prompt("Book ID: ")
	if !ok {
		return
	}
	bookID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		fmt.Fprintln(r.out, "Error: book id must be a number.")
		return
	}
	qtyText, ok := r.prompt("Quantity: ")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(qtyText)
	if err != nil {
		fmt.Fprintln(r.out, "Error: quantity must be a number.")
		return
	}
	book, err := r.controller.AddToCart(ctx, session.AddToCartInput{BookID: bookID, Quantity: quantity})
	if err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "Added %d x %q to your cart.\n", quantity, book.Title)
}

func (r *repl) handleCart() {
	lines, err := r.controller.Cart()
	if err != nil {
		r.fail(err)
		return
	}
	if len(lines) == 0 {
		fmt.Fprintln(r.out, "Your cart is empty.")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(r.out, "  %s - Quantity: %d - Total: $%s\n",
			line.Book.Title, line.Quantity, line.Subtotal().StringFixed(2))
	}
	total, err := r.controller.CartTotal()
	if err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "Cart total: $%s\n", total)
}

func (r *repl) handleClear() {
	if err := r.controller.ClearCart(); err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintln(r.out, "Cart cleared.")
}

func (r *repl) handleCheckout(ctx context.Context) {
	confirmation, err := r.controller.Checkout(ctx)
	if err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "Order placed for %s:\n", confirmation.Username)
	for _, line := range confirmation.Lines {
		fmt.Fprintf(r.out, "  %s\n", line)
	}
	fmt.Fprintf(r.out, "Order total: $%s\n", confirmation.Total)
}

func (r *repl) handleHistory(ctx context.Context) {
	history, err := r.controller.History(ctx)
	if err != nil {
		r.fail(err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(r.out, "No past orders.")
		return
	}
	for _, order := range history {
		fmt.Fprintf(r.out, "Order %s on %s - $%s\n",
			order.ID, order.OrderDate.Format("2006-01-02 15:04"), order.Total.StringFixed(2))
		for _, item := range order.Items {
			fmt.Fprintf(r.out, "  Book %d - Quantity: %d - Unit price: $%s\n",
				item.BookID, item.Quantity, item.UnitPrice.StringFixed(2))
		}
	}
}
