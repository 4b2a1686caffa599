package order

import "time"

// Event names broadcast to subscribers. The name identifies the payload
// shape: snapshot events carry a full OrderSnapshot, statusChanged carries
// the minimal StatusChangedPayload.
const (
	EventOrderCreated  = "orderCreated"
	EventOrderUpdated  = "orderUpdated"
	EventOrderAssigned = "orderAssigned"
	EventStatusChanged = "statusChanged"
)

// Event is an immutable value delivered to every live subscriber.
// Events are not stored; delivery is best-effort to connections live at
// broadcast time, with no replay or backlog.
type Event struct {
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	EmittedAt time.Time `json:"emittedAt"`
}

// OrderSnapshot is the wire representation of a full order, used as the
// payload of orderCreated, orderUpdated, and orderAssigned events and by
// the HTTP layer.
type OrderSnapshot struct {
	ID                string         `json:"id"`
	CustomerID        string         `json:"customerId"`
	RestaurantID      string         `json:"restaurantId"`
	Lines             []LineSnapshot `json:"lines"`
	Total             int64          `json:"total"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	DeliveredAt       *time.Time     `json:"deliveredAt,omitempty"`
	AssignedCourierID *string        `json:"assignedCourierId,omitempty"`
}

// LineSnapshot is the wire representation of one order line.
type LineSnapshot struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

// StatusChangedPayload is the minimal projection carried by statusChanged
// events.
type StatusChangedPayload struct {
	OrderID string    `json:"orderId"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// Snapshot returns the wire representation of the order's current state.
func (o *Order) Snapshot() OrderSnapshot {
	lines := make([]LineSnapshot, len(o.lines))
	for i, line := range o.lines {
		lines[i] = LineSnapshot{
			MenuItemID: line.MenuItemID().String(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice(),
			Quantity:   line.Quantity(),
		}
	}

	var courierID *string
	if o.courierID != nil {
		s := o.courierID.String()
		courierID = &s
	}

	return OrderSnapshot{
		ID:                o.id.String(),
		CustomerID:        o.customerID,
		RestaurantID:      o.restaurantID.String(),
		Lines:             lines,
		Total:             o.total,
		Status:            o.status.String(),
		CreatedAt:         o.createdAt,
		DeliveredAt:       o.deliveredAt,
		AssignedCourierID: courierID,
	}
}

// NewSnapshotEvent builds a snapshot-carrying event for the order.
// The name should be one of EventOrderCreated, EventOrderUpdated,
// or EventOrderAssigned.
func NewSnapshotEvent(name string, o *Order) Event {
	return Event{
		Name:      name,
		Payload:   o.Snapshot(),
		EmittedAt: time.Now().UTC(),
	}
}

// NewStatusChangedEvent builds a statusChanged event for the order's
// current status.
func NewStatusChangedEvent(o *Order) Event {
	now := time.Now().UTC()
	return Event{
		Name: EventStatusChanged,
		Payload: StatusChangedPayload{
			OrderID: o.id.String(),
			Status:  o.status.String(),
			At:      now,
		},
		EmittedAt: now,
	}
}
