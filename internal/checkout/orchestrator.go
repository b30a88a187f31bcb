// Package checkout sequences a sale from an assembled cart to a recorded
// transaction and its receipt.
//
// The orchestrator moves through Idle, PaymentOpen, Submitting and
// ReceiptOpen. Only the backend call runs outside the lock; while it is in
// flight the state is Submitting and every other command is refused.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sarisari-pos/internal/backend"
	"sarisari-pos/internal/cart"
	"sarisari-pos/internal/events"
	"sarisari-pos/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type State string

const (
	Idle        State = "Idle"
	PaymentOpen State = "PaymentOpen"
	Submitting  State = "Submitting"
	ReceiptOpen State = "ReceiptOpen"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrPaymentNotOpen       = errors.New("payment is not open")
	ErrCheckoutInProgress   = errors.New("checkout already in progress")
	ErrReceiptOpen          = errors.New("dismiss the open receipt first")
	ErrUnknownPaymentMethod = errors.New("payment method not accepted")
	ErrInsufficientCash     = errors.New("cash received is less than the total")
	ErrTotalMismatch        = errors.New("payment total does not match the items")
	ErrSubmissionFailed     = errors.New("sale could not be recorded")
)

// Cart is the part of the cart engine the orchestrator drives.
type Cart interface {
	IsEmpty() bool
	Lines() []cart.Line
	Clear()
}

// Submitter records the sale with the backend.
type Submitter interface {
	CreateTransaction(ctx context.Context, req backend.TransactionRequest) (*backend.TransactionResult, error)
}

// Cashier identifies who is ringing up the sale.
type Cashier interface {
	CashierName() string
	UserID() string
}

// Journal keeps a local copy of completed receipts.
type Journal interface {
	Record(ctx context.Context, r Receipt) error
}

type Log interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

type Options struct {
	// Methods lists accepted payment methods; empty accepts Cash and Card.
	Methods   []string
	Timeout   time.Duration
	Journal   Journal
	Publisher events.Publisher
	Log       Log
}

// Status is what the UI renders.
type Status struct {
	State   State    `json:"state"`
	Receipt *Receipt `json:"receipt,omitempty"`
	Methods []string `json:"payment_methods"`
}

// StateChange is published on every transition.
type StateChange struct {
	From State `json:"from"`
	To   State `json:"to"`
}

type Orchestrator struct {
	cart      Cart
	submitter Submitter
	cashier   Cashier
	journal   Journal
	pub       events.Publisher
	log       Log
	methods   []string
	timeout   time.Duration
	now       func() time.Time

	mu      sync.Mutex
	state   State
	receipt *Receipt
}

func New(c Cart, submitter Submitter, cashier Cashier, opts Options) *Orchestrator {
	o := &Orchestrator{
		cart:      c,
		submitter: submitter,
		cashier:   cashier,
		journal:   opts.Journal,
		pub:       opts.Publisher,
		log:       opts.Log,
		methods:   opts.Methods,
		timeout:   opts.Timeout,
		now:       time.Now,
		state:     Idle,
	}
	if o.pub == nil {
		o.pub = events.Nop{}
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if len(o.methods) == 0 {
		o.methods = []string{Cash, Card}
	}
	if o.timeout <= 0 {
		o.timeout = 15 * time.Second
	}
	return o
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Receipt returns the most recent receipt, or nil.
func (o *Orchestrator) Receipt() *Receipt {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.receipt == nil {
		return nil
	}
	return o.receipt.clone()
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Status{State: o.state, Methods: append([]string(nil), o.methods...)}
	if o.state == ReceiptOpen && o.receipt != nil {
		s.Receipt = o.receipt.clone()
	}
	return s
}

// RequestCheckout opens the payment capture for a non-empty cart.
func (o *Orchestrator) RequestCheckout() error {
	o.mu.Lock()
	switch o.state {
	case PaymentOpen:
		o.mu.Unlock()
		return nil
	case Submitting:
		o.mu.Unlock()
		return ErrCheckoutInProgress
	case ReceiptOpen:
		o.mu.Unlock()
		return ErrReceiptOpen
	}
	if o.cart.IsEmpty() {
		o.mu.Unlock()
		metrics.Checkouts.WithLabelValues("rejected").Inc()
		return ErrEmptyCart
	}
	o.state = PaymentOpen
	o.mu.Unlock()

	o.transitioned(Idle, PaymentOpen)
	return nil
}

// CancelPayment closes the payment capture without touching the cart.
func (o *Orchestrator) CancelPayment() error {
	o.mu.Lock()
	switch o.state {
	case Idle:
		o.mu.Unlock()
		return nil
	case Submitting:
		o.mu.Unlock()
		return ErrCheckoutInProgress
	case ReceiptOpen:
		o.mu.Unlock()
		return ErrPaymentNotOpen
	}
	o.state = Idle
	o.mu.Unlock()

	o.transitioned(PaymentOpen, Idle)
	return nil
}

// DismissReceipt closes the receipt view.
func (o *Orchestrator) DismissReceipt() {
	o.mu.Lock()
	if o.state != ReceiptOpen {
		o.mu.Unlock()
		return
	}
	o.state = Idle
	o.mu.Unlock()

	o.transitioned(ReceiptOpen, Idle)
}

// CompletePayment records the sale. On success the receipt is built from
// p.Items, the payment capture closes, the receipt opens and only then is
// the cart cleared. On failure the orchestrator stays in PaymentOpen and
// the cart is not touched.
func (o *Orchestrator) CompletePayment(ctx context.Context, p Payment) (*Receipt, error) {
	o.mu.Lock()
	switch o.state {
	case PaymentOpen:
	case Submitting:
		o.mu.Unlock()
		metrics.Checkouts.WithLabelValues("rejected").Inc()
		return nil, ErrCheckoutInProgress
	default:
		o.mu.Unlock()
		return nil, ErrPaymentNotOpen
	}

	items, total, err := o.validate(&p)
	if err != nil {
		o.mu.Unlock()
		metrics.Checkouts.WithLabelValues("rejected").Inc()
		return nil, err
	}
	o.state = Submitting
	o.mu.Unlock()
	o.transitioned(PaymentOpen, Submitting)

	saleID := uuid.NewString()
	cashierName, userID := o.cashierIdentity()
	req := transactionRequest(userID, cashierName, p.Method, total, items)

	res, err := o.submit(ctx, req)
	if err != nil {
		o.mu.Lock()
		o.state = PaymentOpen
		o.mu.Unlock()

		metrics.Checkouts.WithLabelValues("failed").Inc()
		o.log.Error("sale submission failed", zap.String("sale_id", saleID), zap.Error(err))
		o.pub.Publish(events.TopicSaleFailed, map[string]string{"sale_id": saleID, "error": err.Error()})
		o.transitioned(Submitting, PaymentOpen)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	// (1) receipt from the items handed in, not from the live cart
	receipt := newReceipt(res, saleID, p, items, total, cashierName, o.now())

	// (2) close payment and (3) open the receipt
	o.mu.Lock()
	o.receipt = receipt.clone()
	o.state = ReceiptOpen
	o.mu.Unlock()
	o.pub.Publish(events.TopicSaleCompleted, *receipt.clone())
	o.transitioned(Submitting, ReceiptOpen)

	// (4) clear the cart last
	o.cart.Clear()

	metrics.Checkouts.WithLabelValues("ok").Inc()
	o.log.Info("sale completed",
		zap.String("sale_id", saleID),
		zap.String("receipt", receipt.Number),
		zap.String("total", total.StringFixed(2)),
		zap.String("payment_method", p.Method))

	o.record(ctx, *receipt.clone())
	return &receipt, nil
}

// validate checks p and rewrites its method to the configured spelling.
func (o *Orchestrator) validate(p *Payment) ([]cart.Line, decimal.Decimal, error) {
	if len(p.Items) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}
	method, ok := o.canonical(p.Method)
	if !ok {
		return nil, decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, p.Method)
	}
	p.Method = method

	items := append([]cart.Line(nil), p.Items...)
	total := cart.Total(items)
	if !p.Total.IsZero() && !p.Total.Equal(total) {
		return nil, decimal.Zero, fmt.Errorf("%w: got %s, items add up to %s", ErrTotalMismatch, p.Total, total)
	}
	if strings.EqualFold(p.Method, Cash) && p.CashReceived.LessThan(total) {
		return nil, decimal.Zero, fmt.Errorf("%w: received %s, total %s", ErrInsufficientCash, p.CashReceived, total)
	}
	return items, total, nil
}

// canonical returns the configured spelling of method.
func (o *Orchestrator) canonical(method string) (string, bool) {
	method = strings.TrimSpace(method)
	for _, m := range o.methods {
		if strings.EqualFold(m, method) {
			return m, true
		}
	}
	return "", false
}

func (o *Orchestrator) cashierIdentity() (string, string) {
	if o.cashier == nil {
		return "Cashier", ""
	}
	return o.cashier.CashierName(), o.cashier.UserID()
}

func (o *Orchestrator) submit(ctx context.Context, req backend.TransactionRequest) (*backend.TransactionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	res, err := o.submitter.CreateTransaction(ctx, req)
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	// An acknowledged sale is recorded even if the deadline has since passed.
	return res, nil
}

func (o *Orchestrator) record(ctx context.Context, r Receipt) {
	if o.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := o.journal.Record(ctx, r); err != nil {
		o.log.Warn("failed to journal receipt", zap.String("receipt", r.Number), zap.Error(err))
	}
}

// transitioned publishes a state change. Callers must not hold o.mu.
func (o *Orchestrator) transitioned(from, to State) {
	o.pub.Publish(events.TopicCheckoutState, StateChange{From: from, To: to})
}
