// Package kernel provides core domain primitives shared across the
// fulfillment domain model. Currently it contains the UUID value object
// used as the identity type for orders and their collaborators.
package kernel
