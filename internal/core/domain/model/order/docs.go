// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root together with the
// status state machine and the events emitted on every transition.
//
// The package includes:
//   - Order: the aggregate root owning identity, line snapshots, total,
//     status, and courier assignment
//   - Line: an immutable snapshot of a menu item at order-creation time
//   - Status: a state machine that enforces valid lifecycle transitions
//   - Event: immutable values broadcast to live subscribers
//
// Key business rules:
//   - The total always equals the sum of line price times quantity; it is
//     recomputed on construction and restore, never trusted from input
//   - Status follows the transition table:
//     Pending -> Preparing | Cancelled, Accepted -> Preparing,
//     Preparing -> Assigned, Assigned -> OnTheWay, OnTheWay -> Delivered;
//     Delivered and Cancelled are terminal
//   - Assignment sets the courier and the Assigned status together
//   - The delivery timestamp is recorded once when the order reaches
//     Delivered and is never overwritten
package order
