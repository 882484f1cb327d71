package workflow

import "fmt"

// Status is a lifecycle state shared by moderated entities and orders.
type Status string

const (
	// Moderation states (brands, products, ads). Orders also start pending.
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"

	// Order fulfilment states.
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ErrInvalidTransition is returned when a requested transition is not in the
// transition table for the entity kind.
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition from '%s' to '%s'", e.From, e.To)
}

// moderationTransitions is the full transition table for brands, products and
// ads. Accepted and rejected are terminal: nothing ever leaves them.
var moderationTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusRejected},
}

// orderTransitions is the full transition table for orders. Cancellation is
// only possible before shipping; delivered and cancelled are terminal.
var orderTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Moderate validates a moderation transition. It returns an
// *ErrInvalidTransition when the move is not allowed.
func Moderate(from, to Status) error {
	if !contains(moderationTransitions[from], to) {
		return &ErrInvalidTransition{From: from, To: to}
	}
	return nil
}

// AdvanceOrder validates an order status transition against the fulfilment
// table. It returns an *ErrInvalidTransition when the move is not allowed.
func AdvanceOrder(from, to Status) error {
	if !contains(orderTransitions[from], to) {
		return &ErrInvalidTransition{From: from, To: to}
	}
	return nil
}

// IsModerationTerminal reports whether a moderation status admits no further
// transitions.
func IsModerationTerminal(s Status) bool {
	return len(moderationTransitions[s]) == 0
}

// IsOrderTerminal reports whether an order status admits no further
// transitions.
func IsOrderTerminal(s Status) bool {
	return len(orderTransitions[s]) == 0
}

// ValidOrderStatus reports whether s is a status an order can ever hold.
func ValidOrderStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
