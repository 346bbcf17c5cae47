package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTerminalState is returned when a transition is attempted on an order
	// whose status is terminal. Terminal orders never move again; callers must
	// surface this, not retry.
	ErrTerminalState = errors.New("order is in a terminal state and cannot transition")

	// ErrIllegalTransition is returned when the target status is not reachable
	// from the order's current status. Backward and skipping moves are
	// rejected; the privileged admin override is a distinct operation.
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrConflict is returned when a status write loses a compare-and-swap
	// race: the status observed by the caller is no longer current. Callers
	// must re-fetch the order and retry; the system never silently overwrites
	// a newer observed status.
	ErrConflict = errors.New("order was modified concurrently, re-fetch and retry")

	// ErrNoNextStatus is returned by advancement when the current status has
	// no deterministic next step.
	ErrNoNextStatus = errors.New("order status has no next happy-path step")
)

// OrderType distinguishes how an order is fulfilled.
type OrderType string

const (
	DineIn   OrderType = "dine_in"
	Pickup   OrderType = "pickup"
	Delivery OrderType = "delivery"
)

// ParseOrderType validates and converts a wire value into an OrderType.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case DineIn, Pickup, Delivery:
		return OrderType(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%q is not a known order type", s))
	}
}

// PaymentMethod records how the customer intends to pay.
// Payment capture itself is out of scope; the method is informational.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayOnline PaymentMethod = "online"
)

// ParsePaymentMethod validates and converts a wire value into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayCard, PayOnline:
		return PaymentMethod(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not a known payment method", s))
	}
}

// Customer carries the identity fields snapshotted onto an order.
// Anonymous dine-in orders may leave both empty.
type Customer struct {
	Name  string
	Phone string
}

// Note is one entry in the order's append-only note history. Notes are a
// display convenience tagged with the status they were written under; the
// audit log is the only authoritative structured history.
type Note struct {
	Status Status
	Text   string
	At     time.Time
}

// Totals bundles the three authoritative money figures of an order.
type Totals struct {
	Subtotal kernel.Money
	Tax      kernel.Money
	Total    kernel.Money
}

// Order is the aggregate root that owns an order's canonical lifecycle.
// It is created once as a unit with its items at checkout and afterwards
// mutated only through Transition, OverrideStatus and AppendNote. The status
// field is owned exclusively by this aggregate; storage enforces the
// compare-and-swap but never decides transitions.
//
// Order invariants:
//   - Items are immutable snapshots, fixed at construction
//   - Status changes follow the Status state machine
//   - Terminal orders never change again
//   - The note history only grows
type Order struct {
	id               kernel.UUID
	orderNumber      int64
	status           Status
	orderType        OrderType
	paymentMethod    PaymentMethod
	tableNumber      *int
	locationID       *kernel.UUID
	customer         Customer
	totals           Totals
	verificationCode string
	notes            []Note
	modified         bool
	items            []Item
	createdAt        time.Time
	updatedAt        time.Time

	isConstructed bool
}

// NewVerificationCode generates the opaque capability token that lets an
// unauthenticated customer track their own order. 16 random bytes, hex.
func NewVerificationCode() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewOrder creates an order in status New together with its item snapshots.
// Totals must come from the pricing service; NewOrder checks structure, not
// arithmetic. The order number is zero until storage assigns one.
func NewOrder(
	id kernel.UUID,
	orderType OrderType,
	paymentMethod PaymentMethod,
	tableNumber *int,
	locationID *kernel.UUID,
	customer Customer,
	items []Item,
	totals Totals,
	verificationCode string,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseOrderType(string(orderType)); err != nil {
		return nil, err
	}
	if _, err := ParsePaymentMethod(string(paymentMethod)); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if tableNumber != nil && *tableNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("table number", fmt.Errorf("%d is not greater than 0", *tableNumber))
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return nil, err
		}
	}
	if verificationCode == "" {
		return nil, errs.NewValueIsRequiredError("verification code")
	}

	return &Order{
		id:               id,
		status:           New,
		orderType:        orderType,
		paymentMethod:    paymentMethod,
		tableNumber:      tableNumber,
		locationID:       locationID,
		customer:         customer,
		totals:           totals,
		verificationCode: verificationCode,
		items:            items,
		createdAt:        now,
		updatedAt:        now,
		isConstructed:    true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
func RestoreOrder(
	id kernel.UUID,
	orderNumber int64,
	status Status,
	orderType OrderType,
	paymentMethod PaymentMethod,
	tableNumber *int,
	locationID *kernel.UUID,
	customer Customer,
	items []Item,
	totals Totals,
	verificationCode string,
	notes []Note,
	modified bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:               id,
		orderNumber:      orderNumber,
		status:           status,
		orderType:        orderType,
		paymentMethod:    paymentMethod,
		tableNumber:      tableNumber,
		locationID:       locationID,
		customer:         customer,
		totals:           totals,
		verificationCode: verificationCode,
		notes:            notes,
		modified:         modified,
		items:            items,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the monotonically increasing order number, or 0 if the
// order has not been persisted yet.
func (o *Order) Number() int64 {
	return o.orderNumber
}

// SetNumber records the storage-assigned order number. It may be set once.
func (o *Order) SetNumber(n int64) error {
	if o.orderNumber != 0 {
		return errs.NewValueIsInvalidError("order number is already assigned")
	}
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%d is not greater than 0", n))
	}
	o.orderNumber = n
	return nil
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Type returns the fulfillment type.
func (o *Order) Type() OrderType {
	return o.orderType
}

// PaymentMethod returns the recorded payment method.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// TableNumber returns the table the order belongs to, or nil.
func (o *Order) TableNumber() *int {
	return o.tableNumber
}

// LocationID returns the restaurant site the order was placed at, or nil.
func (o *Order) LocationID() *kernel.UUID {
	return o.locationID
}

// Customer returns the customer identity snapshot.
func (o *Order) Customer() Customer {
	return o.customer
}

// Totals returns the authoritative subtotal, tax and total.
func (o *Order) Totals() Totals {
	return o.totals
}

// VerificationCode returns the customer tracking capability token.
func (o *Order) VerificationCode() string {
	return o.verificationCode
}

// Items returns the immutable order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Notes returns a copy of the append-only note history.
func (o *Order) Notes() []Note {
	out := make([]Note, len(o.notes))
	copy(out, o.notes)
	return out
}

// IsModified reports whether an operator has edited the live order.
// The flag annotates the current status, it never replaces it.
func (o *Order) IsModified() bool {
	return o.modified
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// NextStatus returns the deterministic next happy-path status, or
// ErrNoNextStatus when the current status is terminal or Ready.
func (o *Order) NextStatus() (Status, error) {
	next, ok := o.status.Next()
	if !ok {
		return Unknown, fmt.Errorf("%w: current status is %s", ErrNoNextStatus, o.status)
	}
	return next, nil
}

// Transition moves the order to target if the state machine permits it.
// A non-empty note is appended to the note history tagged with the target
// status and timestamp. The caller is responsible for persisting the change
// with a compare-and-swap on the previously observed status and for writing
// the audit entry.
//
// Returns ErrTerminalState when the order is closed and ErrIllegalTransition
// for backward or skipping moves.
func (o *Order) Transition(target Status, note string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrTerminalState, o.status)
	}
	if !o.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.status, target)
	}

	o.status = target
	if note != "" {
		o.notes = append(o.notes, Note{Status: target, Text: note, At: now})
	}
	o.updatedAt = now
	return nil
}

// OverrideStatus is the privileged escape hatch for administrators: it sets
// any valid status regardless of the adjacency rules, including reopening
// work that took a wrong turn. Terminal protection still applies so closed
// orders stay closed. Every override must be audited by the caller exactly
// like a regular transition.
func (o *Order) OverrideStatus(target Status, note string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrTerminalState, o.status)
	}

	o.status = target
	if note != "" {
		o.notes = append(o.notes, Note{Status: target, Text: note, At: now})
	}
	o.modified = true
	o.updatedAt = now
	return nil
}

// AppendNote adds a display note under the current status without changing
// state. The history is append-only.
func (o *Order) AppendNote(text string, now time.Time) error {
	if text == "" {
		return errs.NewValueIsRequiredError("note text")
	}
	o.notes = append(o.notes, Note{Status: o.status, Text: text, At: now})
	o.updatedAt = now
	return nil
}

// MarkModified flags the order as operator-edited alongside its real status.
func (o *Order) MarkModified(now time.Time) {
	o.modified = true
	o.updatedAt = now
}
