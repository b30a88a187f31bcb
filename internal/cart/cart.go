// Package cart is the terminal's in-memory shopping cart. Every mutation
// is checked against the product's current stock.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"sarisari-pos/internal/catalog"
	"sarisari-pos/internal/events"
	"sarisari-pos/internal/metrics"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock available")
)

// Line is one product in the cart. Name and Price are captured when the
// product is first added and do not follow later catalog changes.
type Line struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MarshalJSON adds the computed subtotal.
func (l Line) MarshalJSON() ([]byte, error) {
	type line Line
	return json.Marshal(struct {
		line
		Subtotal decimal.Decimal `json:"subtotal"`
	}{line(l), l.Subtotal()})
}

// Total sums the subtotals of lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Snapshot is a detached copy of the cart.
type Snapshot struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Items int             `json:"items"`
}

// ProductLookup returns the current catalog entry for an id.
type ProductLookup func(id string) (catalog.Product, bool)

type Cart struct {
	lookup ProductLookup
	pub    events.Publisher

	mu    sync.Mutex
	lines []Line
}

func New(lookup ProductLookup, pub events.Publisher) *Cart {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Cart{lookup: lookup, pub: pub}
}

// Add puts one unit of p in the cart. It fails when p has no stock or when
// the cart already holds all of it.
func (c *Cart) Add(p catalog.Product) error {
	c.mu.Lock()
	if p.Stock <= 0 {
		c.mu.Unlock()
		return c.reject("out_of_stock", fmt.Errorf("%w: %s", ErrOutOfStock, p.Name))
	}

	if i := c.indexOf(p.ID); i >= 0 {
		if c.lines[i].Quantity >= p.Stock {
			c.mu.Unlock()
			return c.reject("stock_limit", fmt.Errorf("%w: only %d %s in stock", ErrOutOfStock, p.Stock, p.Name))
		}
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, Line{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    1,
		})
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(snap)
	return nil
}

// UpdateQuantity moves a line's quantity by delta. Unknown products and
// results below one are ignored; removal is a separate action. A result
// above the product's stock fails and leaves the line as it was.
func (c *Cart) UpdateQuantity(productID string, delta int) error {
	p, ok := c.lookup(productID)
	if !ok {
		return nil
	}

	c.mu.Lock()
	i := c.indexOf(productID)
	if i < 0 {
		c.mu.Unlock()
		return nil
	}

	qty := c.lines[i].Quantity + delta
	if qty <= 0 {
		c.mu.Unlock()
		return nil
	}
	if qty > p.Stock {
		c.mu.Unlock()
		return c.reject("stock_limit", fmt.Errorf("%w: only %d %s in stock", ErrInsufficientStock, p.Stock, p.Name))
	}

	c.lines[i].Quantity = qty
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(snap)
	return nil
}

func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	i := c.indexOf(productID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(snap)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(snap)
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Line(productID string) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() Snapshot {
	lines := append([]Line{}, c.lines...)
	items := 0
	for _, l := range lines {
		items += l.Quantity
	}
	return Snapshot{Lines: lines, Total: Total(lines), Items: items}
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// changed must be called without c.mu held: subscribers may read the cart.
func (c *Cart) changed(snap Snapshot) {
	metrics.CartLines.Set(float64(len(snap.Lines)))
	c.pub.Publish(events.TopicCartChanged, snap)
}

func (c *Cart) reject(reason string, err error) error {
	metrics.CartRejections.WithLabelValues(reason).Inc()
	return err
}
