package domain

import (
	"fmt"
	"time"
)

// OrderStatus tracks an order from checkout to delivery.
type OrderStatus string

// Order statuses.
const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderFailed    OrderStatus = "failed"
)

// Order is a paid ritual request.
type Order struct {
	ID            string
	SessionID     string
	Email         string
	Submission    *Submission
	Status        OrderStatus
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
	ResultID      string
	PDFURL        string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanFulfil reports whether the order may be (re)fulfilled.
func (o *Order) CanFulfil() bool {
	return o.Status == OrderPaid || o.Status == OrderFulfilled || o.Status == OrderFailed
}

// RecordPayment copies the processor's view of a checkout onto the order.
// The order becomes paid only once the payment is settled; delayed payment
// methods leave it pending until the processor reports success.
func (o *Order) RecordPayment(p Payment, now time.Time) {
	if o.Status == OrderPaid && !p.Settled() {
		// a late completion event must not undo a settled payment
		return
	}

	if p.Settled() {
		o.Status = OrderPaid
	}

	o.SessionID = p.SessionID
	o.PaymentStatus = p.PaymentStatus
	o.AmountTotal = p.AmountTotal
	o.Currency = p.Currency
	o.Metadata = p.Metadata
	o.UpdatedAt = now

	if p.Email != "" {
		o.Email = p.Email
	}
}

// MarkFulfilled records delivery.
func (o *Order) MarkFulfilled(resultID, pdfURL string, now time.Time) {
	o.Status = OrderFulfilled
	o.ResultID = resultID
	o.PDFURL = pdfURL
	o.FailureReason = ""
	o.UpdatedAt = now
}

// MarkFailed records a failed fulfilment attempt.
func (o *Order) MarkFailed(reason string, now time.Time) {
	o.Status = OrderFailed
	o.FailureReason = reason
	o.UpdatedAt = now
}

// Checkout payment statuses reported by the processor.
const (
	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"
)

// Payment is a completed checkout as reported by the payment processor.
type Payment struct {
	EventID       string
	SessionID     string
	OrderID       string
	Email         string
	AmountTotal   int64
	Currency      string
	PaymentStatus string
	Metadata      map[string]string
}

// Settled reports whether the money has been collected.
func (p Payment) Settled() bool {
	return p.PaymentStatus == PaymentStatusPaid || p.PaymentStatus == PaymentStatusNoPaymentRequired
}

// CheckoutRequest describes the session to open with the payment processor.
type CheckoutRequest struct {
	OrderID        string
	Email          string
	ProductName    string
	Description    string
	UnitAmount     int64
	Currency       string
	SuccessURL     string
	CancelURL      string
	MarketingOptIn bool
}

// CheckoutSession is an opened hosted checkout page.
type CheckoutSession struct {
	ID  string
	URL string
}

// ProductName is the line item name shown at checkout.
func ProductName(spell SpellType) string {
	return fmt.Sprintf("Custom %s Ritual", spell)
}

// ProductDescription is the line item description shown at checkout.
const ProductDescription = "Personalized ritual, mantra, and tarot reading."

// PaymentEventType is the subset of processor events the service reacts to.
type PaymentEventType string

// Payment event types.
const (
	PaymentEventCheckoutCompleted     PaymentEventType = "checkout.session.completed"
	PaymentEventAsyncPaymentSucceeded PaymentEventType = "checkout.session.async_payment_succeeded"
	PaymentEventOther                 PaymentEventType = "other"
)

// CarriesPayment reports whether events of this type hold a checkout session.
func (t PaymentEventType) CarriesPayment() bool {
	return t == PaymentEventCheckoutCompleted || t == PaymentEventAsyncPaymentSucceeded
}

// PaymentEvent is a verified webhook event.
type PaymentEvent struct {
	ID      string
	Type    PaymentEventType
	RawType string
	Payment *Payment
}
