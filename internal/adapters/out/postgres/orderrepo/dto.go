// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It handles the conversion between the order
// aggregate and its two-table database representation: one row per order
// plus one row per line snapshot.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed for the two hot lookups: stale-pending scans
// (status plus created_at) and courier assignment.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   string     `gorm:"index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Lines        []LineDTO  `gorm:"foreignKey:OrderID;references:ID"`
	Total        int64
	Status       int        `gorm:"index:idx_orders_status_created_at"`
	CreatedAt    time.Time  `gorm:"index:idx_orders_status_created_at"`
	DeliveredAt  *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one immutable line snapshot of an order. Lines are
// written once together with the order and never updated.
type LineDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  int64
	Quantity   int
}

// TableName specifies the database table name for line snapshots.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation,
// including the line snapshots.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	lines := aggregate.Lines()
	lineDTOs := make([]LineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, LineDTO{
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: line.MenuItemID().Bytes(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice(),
			Quantity:   line.Quantity(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		CourierID:    courierID,
		Lines:        lineDTOs,
		Total:        aggregate.Total(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		DeliveredAt:  aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO back into an order aggregate.
// RestoreOrder re-checks all invariants, so a row corrupted outside the
// application surfaces as an error here instead of a broken aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		menuItemID, lineErr := kernel.UUIDFromBytes(lineDTO.MenuItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(menuItemID, lineDTO.Name, lineDTO.UnitPrice, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}

		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		restaurantID,
		lines,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.DeliveredAt,
		courierID,
	)
}
