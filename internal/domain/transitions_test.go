package domain

import "testing"

func TestCancelFromInProgress(t *testing.T) {
	o := Order{OrderID: "o1", OrderStatus: StatusInProgress}
	if err := o.Transition(StatusCancelled); err != nil {
		t.Fatal(err)
	}
	if o.OrderStatus != StatusCancelled {
		t.Fatalf("want Cancelled, got %s", o.OrderStatus)
	}
}

func TestCancelCompletedRejected(t *testing.T) {
	o := Order{OrderID: "o1", OrderStatus: StatusCompleted, PaymentStatus: PaymentPaid}
	if err := o.Transition(StatusCancelled); err == nil {
		t.Fatal("expected error cancelling a completed order")
	}
	if o.OrderStatus != StatusCompleted {
		t.Fatalf("status must not change on rejected transition, got %s", o.OrderStatus)
	}
}

func TestCompleteForcesPaid(t *testing.T) {
	o := Order{OrderID: "o1", OrderStatus: StatusInProgress, PaymentMethod: PaymentCash, PaymentStatus: PaymentUnpaid}
	if err := o.Transition(StatusCompleted); err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != PaymentPaid {
		t.Fatalf("completing must force Paid, got %s", o.PaymentStatus)
	}
}

func TestSkipAcceptedAllowed(t *testing.T) {
	// Pending can go straight to InProgress.
	if !CanTransition(StatusPending, StatusInProgress) {
		t.Fatal("Pending -> InProgress must be legal")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatal("Pending -> Completed must be illegal")
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusCancelled) {
		t.Fatal("Completed and Cancelled are terminal")
	}
	if IsTerminal(StatusPending) || IsTerminal(StatusAccepted) || IsTerminal(StatusInProgress) {
		t.Fatal("non-terminal status reported terminal")
	}
}
