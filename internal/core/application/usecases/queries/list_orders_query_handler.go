package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order projections from the database,
// newest first. Lines are loaded per order; listings in this system are
// small and bounded by the filters.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns matching orders with their lines,
// sorted by creation time descending.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
		WHERE 1=1
	`
	args := make([]any, 0, 2)

	if query.CustomerID() != "" {
		sql += " AND customer_id = ?"
		args = append(args, query.CustomerID())
	}
	if query.RestaurantID() != nil {
		sql += " AND restaurant_id = ?"
		args = append(args, query.RestaurantID().Bytes())
	}

	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]OrderResponse, 0)

	for rows.Next() {
		response, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range responses {
		lines, linesErr := loadOrderLines(ctx, h.db, responses[i].ID)
		if linesErr != nil {
			return nil, linesErr
		}
		responses[i].Lines = lines
	}

	return responses, nil
}
