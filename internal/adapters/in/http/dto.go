package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// createOrderRequest is the body of POST /orders/from-cart.
type createOrderRequest struct {
	CustomerID   string             `json:"customerId"`
	RestaurantID string             `json:"restaurantId"`
	Lines        []orderLineRequest `json:"lines"`
}

type orderLineRequest struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

// assignCourierRequest is the body of PUT /orders/:id/assign-courier.
type assignCourierRequest struct {
	CourierID string `json:"courierId"`
}

// ErrorResponse is the JSON error envelope for all failure statuses.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderResponse is the JSON representation of an order on the read
// endpoints. It matches the snapshot payload broadcast on the stream.
type orderResponse struct {
	ID                string              `json:"id"`
	CustomerID        string              `json:"customerId"`
	RestaurantID      string              `json:"restaurantId"`
	Lines             []orderLineResponse `json:"lines"`
	Total             int64               `json:"total"`
	Status            string              `json:"status"`
	CreatedAt         time.Time           `json:"createdAt"`
	DeliveredAt       *time.Time          `json:"deliveredAt,omitempty"`
	AssignedCourierID *string             `json:"assignedCourierId,omitempty"`
}

type orderLineResponse struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

func toOrderResponse(r queries.OrderResponse) orderResponse {
	lines := make([]orderLineResponse, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, orderLineResponse{
			MenuItemID: line.MenuItemID.String(),
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	var courierID *string
	if r.CourierID != nil {
		s := r.CourierID.String()
		courierID = &s
	}

	return orderResponse{
		ID:                r.ID.String(),
		CustomerID:        r.CustomerID,
		RestaurantID:      r.RestaurantID.String(),
		Lines:             lines,
		Total:             r.Total,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		DeliveredAt:       r.DeliveredAt,
		AssignedCourierID: courierID,
	}
}
