package quote

import (
	"errors"
	"fmt"
)

// Sentinel errors for the quoting pipeline. Every error the core returns
// wraps exactly one of these, so callers can map outcomes with errors.Is.
var (
	// ErrNotFound indicates a referenced seller, customer, product or
	// warehouse does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNoWarehouseAvailable indicates no warehouse holds enough stock
	// (or capacity, when the capacity policy is on) for the requested
	// quantity.
	ErrNoWarehouseAvailable = errors.New("no warehouse available with sufficient stock")

	// ErrDistanceExceeded indicates the delivery distance is beyond the
	// maximum serviceable distance.
	ErrDistanceExceeded = errors.New("delivery location not supported")

	// ErrInvalidInput indicates malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable indicates a collaborator lookup timed out or
	// failed transiently.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// EntityKind names the kind of entity a not-found error refers to.
type EntityKind string

const (
	KindSeller    EntityKind = "seller"
	KindCustomer  EntityKind = "customer"
	KindProduct   EntityKind = "product"
	KindWarehouse EntityKind = "warehouse"
	KindInventory EntityKind = "inventory"
)

// NotFoundError reports an absent entity, carrying its kind and id.
type NotFoundError struct {
	Kind EntityKind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is makes every NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError for the given entity.
func NotFound(kind EntityKind, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvalidInput wraps ErrInvalidInput with a field-specific message.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Upstream wraps a transient collaborator failure as ErrUpstreamUnavailable.
func Upstream(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, op, cause)
}
