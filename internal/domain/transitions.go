package domain

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrTerminalOrder     = errors.New("order is in a terminal status")
)

// transitions lists the legal next statuses for each status. Completed and
// Cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusAccepted, StatusInProgress, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func IsTerminal(s OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition applies a status change in place. Completing an order forces
// the payment status to Paid regardless of payment method.
func (o *Order) Transition(to OrderStatus) error {
	if IsTerminal(o.OrderStatus) {
		return ErrTerminalOrder
	}
	if !CanTransition(o.OrderStatus, to) {
		return ErrInvalidTransition
	}
	o.OrderStatus = to
	if to == StatusCompleted {
		o.PaymentStatus = PaymentPaid
	}
	return nil
}
