// Package console implements the interactive text menu of the catalog.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abgdnv/gocatalog/internal/catalog"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/shopspring/decimal"
)

const labelWidth = 15

// Menu reads options from in and writes prompts and results to out.
type Menu struct {
	service service.ProductService
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger

	lines   chan string
	done    chan struct{}
	scanErr error
}

// NewMenu creates a Menu driving the given service.
func NewMenu(svc service.ProductService, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	return &Menu{
		service: svc,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger.With("component", "console"),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is cancelled.
// A cancelled ctx interrupts a pending prompt and is returned as the error.
// Run must be called at most once per Menu.
func (m *Menu) Run(ctx context.Context) error {
	m.lines = make(chan string)
	m.done = make(chan struct{})
	defer close(m.done)
	go m.scan()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		option, ok := m.readLine(ctx, "Choose an option: ")
		if !ok {
			m.println("")
			return m.stopErr(ctx)
		}
		m.logger.DebugContext(ctx, "Menu option selected", "option", option)

		var done bool
		switch option {
		case "1":
			done = m.createProduct(ctx)
		case "2":
			done = m.viewProducts(ctx)
		case "3":
			done = m.report(ctx, m.service.LoadProducts(ctx, service.LoadMerge).Message)
		case "4":
			done = m.report(ctx, m.service.SaveProducts(ctx).Message)
		case "5":
			done = m.updateProduct(ctx)
		case "6":
			done = m.removeProduct(ctx)
		case "0":
			m.println("Exiting program.")
			return nil
		default:
			done = m.report(ctx, "Invalid option. Please try again.")
		}
		if done {
			return m.stopErr(ctx)
		}
	}
}

func (m *Menu) printMenu() {
	m.println("")
	m.println("1. New Product")
	m.println("2. View Products")
	m.println("3. Load Products From File")
	m.println("4. Save Products To File")
	m.println("5. Update Product")
	m.println("6. Remove Product")
	m.println("0. Exit Program")
	m.println("")
}

// The action handlers return true when the input ended.

func (m *Menu) createProduct(ctx context.Context) bool {
	in, ok := m.readInput(ctx)
	if !ok {
		return true
	}
	return m.report(ctx, m.service.CreateProduct(ctx, in).Message)
}

func (m *Menu) viewProducts(ctx context.Context) bool {
	res := m.service.GetProducts(ctx)
	m.println("")
	for _, p := range res.Result {
		m.printProduct(p)
		m.println("")
	}
	return m.report(ctx, res.Message)
}

func (m *Menu) updateProduct(ctx context.Context) bool {
	id, ok := m.readRequired(ctx, "Enter product id: ", "Product id cannot be empty. Please try again.")
	if !ok {
		return true
	}
	current := m.service.GetProduct(ctx, id)
	if !current.Success {
		return m.report(ctx, current.Message)
	}
	m.println("")
	m.printProduct(*current.Result)
	in, ok := m.readInput(ctx)
	if !ok {
		return true
	}
	return m.report(ctx, m.service.UpdateProduct(ctx, id, in).Message)
}

func (m *Menu) removeProduct(ctx context.Context) bool {
	id, ok := m.readRequired(ctx, "Enter product id: ", "Product id cannot be empty. Please try again.")
	if !ok {
		return true
	}
	res := m.service.RemoveProduct(ctx, id)
	if res.Success {
		return m.report(ctx, fmt.Sprintf("%s (%d removed)", res.Message, res.Result))
	}
	return m.report(ctx, res.Message)
}

// readInput asks for every user editable product field.
func (m *Menu) readInput(ctx context.Context) (catalog.ProductInput, bool) {
	var in catalog.ProductInput
	var ok bool
	if in.Title, ok = m.readRequired(ctx, "Enter product title: ", "Title cannot be empty. Please try again."); !ok {
		return in, false
	}
	if in.Price, ok = m.readPrice(ctx); !ok {
		return in, false
	}
	if in.Category, ok = m.readRequired(ctx, "Enter category name: ", "Category name cannot be empty. Please try again."); !ok {
		return in, false
	}
	if in.Manufacturer, ok = m.readRequired(ctx, "Enter manufacturer name: ", "Manufacturer name cannot be empty. Please try again."); !ok {
		return in, false
	}
	return in, true
}

func (m *Menu) readRequired(ctx context.Context, prompt, retry string) (string, bool) {
	for {
		value, ok := m.readLine(ctx, prompt)
		if !ok {
			return "", false
		}
		if !catalog.IsBlank(value) {
			return value, true
		}
		m.println(retry)
	}
}

func (m *Menu) readPrice(ctx context.Context) (decimal.Decimal, bool) {
	for {
		value, ok := m.readLine(ctx, "Enter product price: ")
		if !ok {
			return decimal.Zero, false
		}
		price, err := catalog.ParsePrice(value)
		if err == nil && catalog.IsValidPrice(price) {
			return price, true
		}
		m.println("Please enter a valid price greater than zero.")
	}
}

func (m *Menu) printProduct(p catalog.Product) {
	m.printField("Id:", p.ID)
	m.printField("Title:", p.Title)
	m.printField("Price:", p.Price.String())
	m.printField("Category:", p.Category.Name)
	m.printField("Manufacturer:", p.Manufacturer.Name)
}

func (m *Menu) printField(label, value string) {
	m.println(fmt.Sprintf("%-*s%s", labelWidth, label, value))
}

// report prints the outcome of an action and waits for Enter.
func (m *Menu) report(ctx context.Context, message string) bool {
	m.println("")
	m.println(message + " Press Enter to continue.")
	_, ok := m.readLine(ctx, "")
	return !ok
}

// scan feeds input lines to readLine until the input ends or Run returns.
func (m *Menu) scan() {
	defer close(m.lines)
	for m.in.Scan() {
		select {
		case m.lines <- m.in.Text():
		case <-m.done:
			return
		}
	}
	m.scanErr = m.in.Err()
}

// readLine returns the next trimmed input line, or false when the input ended or ctx is done.
func (m *Menu) readLine(ctx context.Context, prompt string) (string, bool) {
	if prompt != "" {
		_, _ = fmt.Fprint(m.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// stopErr reports why reading stopped. scanErr is only read once lines is closed.
func (m *Menu) stopErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.scanErr
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
