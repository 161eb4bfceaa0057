package models

import "fmt"

// BookingState is the combined payment/booking lifecycle. Every state maps to
// exactly one pair of status columns, so "confirmed implies paid" holds by
// construction.
type BookingState int

const (
	StatePendingPayment BookingState = iota
	StatePaid
	StateConfirmed
	StateFailed
)

var stateColumns = map[BookingState][2]string{
	StatePendingPayment: {PaymentStatusPending, BookingStatusPending},
	StatePaid:           {PaymentStatusPaid, BookingStatusPending},
	StateConfirmed:      {PaymentStatusPaid, BookingStatusConfirmed},
	StateFailed:         {PaymentStatusFailed, BookingStatusPending},
}

// Columns returns the (payment_status, booking_status) pair for s.
func (s BookingState) Columns() (paymentStatus, bookingStatus string) {
	c, ok := stateColumns[s]
	if !ok {
		panic(fmt.Sprintf("unknown booking state %d", int(s)))
	}
	return c[0], c[1]
}

func (s BookingState) String() string {
	switch s {
	case StatePendingPayment:
		return "pending_payment"
	case StatePaid:
		return "paid"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("BookingState(%d)", int(s))
}

// StateFromColumns rejects pairs no state maps to, e.g. (pending, confirmed).
func StateFromColumns(paymentStatus, bookingStatus string) (BookingState, error) {
	for s, c := range stateColumns {
		if c[0] == paymentStatus && c[1] == bookingStatus {
			return s, nil
		}
	}
	return 0, fmt.Errorf("invalid booking status pair (%s, %s)", paymentStatus, bookingStatus)
}

// PaymentOutcome is a gateway payment status this service acts on.
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeCanceled  PaymentOutcome = "canceled"
)

// ParsePaymentOutcome returns false for statuses that cause no transition
// (pending, waiting_for_capture and anything unknown).
func ParsePaymentOutcome(status string) (PaymentOutcome, bool) {
	switch PaymentOutcome(status) {
	case OutcomeSucceeded:
		return OutcomeSucceeded, true
	case OutcomeCanceled:
		return OutcomeCanceled, true
	}
	return "", false
}

// Target is the state a booking moves to on this outcome.
func (o PaymentOutcome) Target() BookingState {
	if o == OutcomeSucceeded {
		return StateConfirmed
	}
	return StateFailed
}

// Sources lists the states from which the outcome applies. A success also
// lifts a failed booking, since a retried payment may still succeed. A
// cancellation never downgrades a paid booking.
func (o PaymentOutcome) Sources() []BookingState {
	switch o {
	case OutcomeSucceeded:
		return []BookingState{StatePendingPayment, StatePaid, StateFailed}
	case OutcomeCanceled:
		return []BookingState{StatePendingPayment}
	}
	return nil
}
