package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is an immutable snapshot of one menu item at order-creation time.
// The name and unit price are captured when the order is placed; later
// changes to the menu catalog never affect existing orders.
//
// Prices are stored in minor currency units (cents).
type Line struct {
	// menuItemID references the catalog item the snapshot was taken from
	menuItemID kernel.UUID

	// name is the item name as shown to the customer at purchase time
	name string

	// unitPrice is the captured price per unit, in cents
	unitPrice int64

	// quantity is the number of units ordered (must be positive)
	quantity int

	// isConstructed ensures the line was created via NewLine
	isConstructed bool
}

// NewLine creates a validated line snapshot.
//
// Validation rules:
//   - menuItemID must be a constructed UUID
//   - name must not be empty
//   - unitPrice must not be negative
//   - quantity must be positive
func NewLine(menuItemID kernel.UUID, name string, unitPrice int64, quantity int) (Line, error) {
	line := Line{isConstructed: true}

	if err := errors.Join(
		line.setMenuItemID(menuItemID),
		line.setName(name),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the Line instance was properly constructed through NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}

	return nil
}

// MenuItemID returns the catalog item identifier the snapshot refers to.
func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Name returns the item name captured at order-creation time.
func (l Line) Name() string {
	return l.name
}

// UnitPrice returns the captured price per unit, in cents.
func (l Line) UnitPrice() int64 {
	return l.unitPrice
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unit price times quantity, in cents.
func (l Line) Subtotal() int64 {
	return l.unitPrice * int64(l.quantity)
}

func (l *Line) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	l.menuItemID = menuItemID
	return nil
}

func (l *Line) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line name")
	}
	l.name = name
	return nil
}

func (l *Line) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%d is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
