package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierIsRequired is returned when a transition to Assigned is requested
	// without a courier. Assignment must go through Assign so the courier ID and
	// the status change together.
	ErrCourierIsRequired = errors.New("transition to Assigned requires a courier, use Assign")
)

// Order represents a customer order in the fulfillment system. It is the
// aggregate root that owns the order's status; no other entity may hold
// authoritative status.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer, and restaurant
//   - Total always equals the sum of line price times quantity; it is
//     recomputed from the line snapshots, never accepted from input
//   - Status transitions follow the table in Status
//   - The courier ID changes only together with the Assigned status
//   - deliveredAt is recorded once, when the order reaches Delivered
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID string

	// restaurantID identifies the restaurant preparing the order
	restaurantID kernel.UUID

	// lines are the immutable item snapshots captured at creation
	lines []Line

	// total is the derived sum of line subtotals, in cents
	total int64

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is set once at creation and never changes
	createdAt time.Time

	// deliveredAt is fixed when the order reaches Delivered (nil before)
	deliveredAt *time.Time

	// courierID is the assigned courier's ID (nil while unassigned)
	courierID *kernel.UUID

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with the given line
// snapshots. The total is computed from the lines; createdAt is fixed to
// the current time.
//
// An empty line set is permitted at the aggregate level; rejecting empty
// carts is the creation use case's responsibility.
func NewOrder(id kernel.UUID, customerID string, restaurantID kernel.UUID, lines []Line) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.total = sumLines(o.lines)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All invariants are
// re-checked: the status must be a valid enumeration member, the courier
// assignment must be consistent with the status, and the total is
// recomputed from the lines rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	customerID string,
	restaurantID kernel.UUID,
	lines []Line,
	status Status,
	createdAt time.Time,
	deliveredAt *time.Time,
	courierID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
		o.setStatus(status),
		o.setCourier(courierID),
	); err != nil {
		return nil, err
	}

	o.total = sumLines(o.lines)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. Called when reconstructing orders from persistence.
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

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// RestaurantID returns the identifier of the restaurant preparing the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Lines returns a copy of the order's line snapshots.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the derived order total in cents.
func (o *Order) Total() int64 {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery timestamp, or nil if not delivered yet.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// ChangeStatus applies a transition to the requested status.
//
// Rules enforced:
//   - The pair (current, requested) must appear in the transition table;
//     otherwise *InvalidTransitionError is returned and the order is
//     left unmodified
//   - Assigned cannot be reached here: it requires a courier, so callers
//     must use Assign (ErrCourierIsRequired)
//   - Reaching Delivered fixes the delivery timestamp exactly once;
//     terminal states reject any further call instead of re-timestamping
func (o *Order) ChangeStatus(target Status) error {
	if target == Assigned {
		return ErrCourierIsRequired
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if newStatus == Delivered && o.deliveredAt == nil {
		now := time.Now().UTC()
		o.deliveredAt = &now
	}

	o.status = newStatus
	return nil
}

// Assign assigns the order to a courier and moves it to Assigned.
// The courier ID and the status change together: if either validation
// fails, neither field is modified.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCourier validates consistency between courier assignment and status:
// Assigned, OnTheWay, and Delivered orders must carry a courier; earlier
// statuses and Cancelled must not.
func (o *Order) setCourier(courierID *kernel.UUID) error {
	hasCourier := courierID != nil
	requiresCourier := o.status == Assigned || o.status == OnTheWay || o.status == Delivered

	if hasCourier {
		if err := courierID.Validate(); err != nil {
			return err
		}
		if !requiresCourier {
			return errs.NewValueIsInvalidError("courier is not allowed in status " + o.status.String())
		}
	} else if requiresCourier {
		return errs.NewValueIsRequiredError("courier in status " + o.status.String())
	}

	o.courierID = courierID
	return nil
}

func sumLines(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
