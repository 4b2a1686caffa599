package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order projection from the
// database. Reads bypass the aggregate and scan rows directly.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order with its lines.
// Returns errs.ObjectNotFoundError when the ID is unknown.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			total,
			status,
			created_at,
			delivered_at,
			courier_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	response, err := scanOrderRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	lines, err := loadOrderLines(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	response.Lines = lines

	return response, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow maps one orders row to a response. Shared by the single
// and list query handlers, which select the same column set.
func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		id          uuid.UUID
		customerID  string
		restaurant  uuid.UUID
		total       int64
		status      int
		createdAt   sql.NullTime
		deliveredAt sql.NullTime
		courierID   uuid.NullUUID
	)

	if err := row.Scan(
		&id,
		&customerID,
		&restaurant,
		&total,
		&status,
		&createdAt,
		&deliveredAt,
		&courierID,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(restaurant[:])
	if err != nil {
		return OrderResponse{}, err
	}

	response := OrderResponse{
		ID:           orderID,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Total:        total,
		Status:       order.Status(status).String(),
		CreatedAt:    createdAt.Time,
	}

	if deliveredAt.Valid {
		t := deliveredAt.Time
		response.DeliveredAt = &t
	}

	if courierID.Valid {
		courier, courierErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if courierErr != nil {
			return OrderResponse{}, courierErr
		}
		response.CourierID = &courier
	}

	return response, nil
}

func loadOrderLines(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			unit_price,
			quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)

	for rows.Next() {
		var (
			menuItem  uuid.UUID
			name      string
			unitPrice int64
			quantity  int
		)

		if err = rows.Scan(&menuItem, &name, &unitPrice, &quantity); err != nil {
			return nil, err
		}

		menuItemID, idErr := kernel.UUIDFromBytes(menuItem[:])
		if idErr != nil {
			return nil, idErr
		}

		lines = append(lines, OrderLineResponse{
			MenuItemID: menuItemID,
			Name:       name,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
