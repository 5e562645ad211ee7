// Package capture runs one payment capture: it opens the gateway, and on a
// successful charge records exactly one order for the payment reference,
// through the remote order function or the local fallback.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// Kind is the terminal result of a capture.
type Kind int

const (
	Completed Kind = iota + 1
	Failed
	Cancelled
	Finalizing
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	case Finalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// Outcome is reported back to the checkout session.
type Outcome struct {
	Kind         Kind
	Confirmation order.Confirmation
	Error        fault.Classification
	Warning      string
}

// Event converts the outcome into the session event that records it.
func (o Outcome) Event() checkout.Event {
	switch o.Kind {
	case Completed:
		return checkout.PaymentCompleted{Confirmation: o.Confirmation}
	case Cancelled:
		return checkout.PaymentCancelled{}
	case Finalizing:
		return checkout.PaymentFinalizing{Message: o.Error.Message}
	default:
		return checkout.PaymentFailed{Error: o.Error}
	}
}

// Buyer identifies who is paying.
type Buyer struct {
	ID    kernel.UUID
	Email string
}

// Charge is everything needed to take one payment.
type Charge struct {
	Summary   order.Summary
	Buyer     Buyer
	Reference payment.Reference
}

// Classifier normalises raw gateway errors.
type Classifier interface {
	Classify(raw any) fault.Classification
}

// OrderLookup finds an order already recorded for a payment reference.
type OrderLookup interface {
	GetByReference(ctx context.Context, reference payment.Reference) (*order.Order, error)
}

// FallbackRecorder writes the local fallback order.
type FallbackRecorder interface {
	Handle(ctx context.Context, cmd commands.RecordFallbackOrderCommand) (*order.Order, error)
}

// Coordinator settles gateway callbacks. Concurrent success callbacks for
// the same reference share a single settlement.
type Coordinator struct {
	gateway    ports.PaymentGateway
	verifier   ports.TransactionVerifier
	orders     OrderLookup
	functions  ports.OrderFunction
	encryptor  ports.AddressEncryptor
	fallback   FallbackRecorder
	classifier Classifier
	logger     *slog.Logger

	flight singleflight.Group
	now    func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithVerifier enables server-side verification of reported transactions.
func WithVerifier(v ports.TransactionVerifier) Option {
	return func(c *Coordinator) { c.verifier = v }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator creates a coordinator.
func NewCoordinator(
	gateway ports.PaymentGateway,
	orders OrderLookup,
	functions ports.OrderFunction,
	encryptor ports.AddressEncryptor,
	fallback FallbackRecorder,
	classifier Classifier,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		gateway:    gateway,
		orders:     orders,
		functions:  functions,
		encryptor:  encryptor,
		fallback:   fallback,
		classifier: classifier,
		logger:     logger.With("component", "payment_capture"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request builds the gateway request for a charge.
func (c *Coordinator) Request(charge Charge) payment.Request {
	s := charge.Summary
	return payment.Request{
		Email:            charge.Buyer.Email,
		AmountMinorUnits: s.TotalPrice().MinorUnits(),
		Reference:        charge.Reference,
		Metadata: map[string]string{
			"item_id":             s.ItemID().String(),
			"item_title":          s.ItemTitle(),
			"seller_id":           s.SellerID().String(),
			"buyer_id":            charge.Buyer.ID.String(),
			"payment_destination": s.PaymentDestination(),
			"delivery_method":     s.Delivery().Label(),
		},
	}
}

// Begin reserves the gateway window for charge and returns the request the
// buyer's payment window is opened with. Callbacks for the reference are
// accepted from this point on.
func (c *Coordinator) Begin(charge Charge) (payment.Request, error) {
	request := c.Request(charge)
	if err := c.gateway.Register(request); err != nil {
		return payment.Request{}, err
	}
	return request, nil
}

// Capture opens the gateway and settles whichever callback fires.
func (c *Coordinator) Capture(ctx context.Context, charge Charge) Outcome {
	result, err := c.gateway.Open(ctx, c.Request(charge))
	if err != nil {
		c.logger.WarnContext(ctx, "Payment gateway could not be opened",
			"reference", charge.Reference.String(), "error", err)
		return Outcome{Kind: Failed, Error: c.classifier.Classify(err)}
	}
	return c.Settle(ctx, charge, result)
}

// Settle handles one gateway callback. An error callback never touches
// orders and a close has no side effects. After a success the buyer is
// never asked to pay again: if no order can be recorded the outcome is
// Finalizing.
func (c *Coordinator) Settle(ctx context.Context, charge Charge, result payment.GatewayResult) Outcome {
	if !result.Reference.IsZero() && result.Reference != charge.Reference {
		c.logger.ErrorContext(ctx, "Gateway callback for another payment ignored",
			"expected", charge.Reference.String(), "got", result.Reference.String())
		return Outcome{Kind: Failed, Error: fault.Classification{
			Kind:    fault.ValidationError,
			Message: "The payment response did not match this checkout.",
		}}
	}

	switch result.Outcome {
	case payment.OutcomeClosed:
		return Outcome{Kind: Cancelled}
	case payment.OutcomeError:
		cl := c.classifier.Classify(result.Err)
		c.logger.InfoContext(ctx, "Payment failed",
			"reference", charge.Reference.String(), "kind", cl.Kind.String())
		return Outcome{Kind: Failed, Error: cl}
	case payment.OutcomeSuccess:
		// Money has moved; nothing below may be cancelled by the caller.
		ctx = context.WithoutCancel(ctx)
		v, _, _ := c.flight.Do(charge.Reference.String(), func() (any, error) {
			return c.recordOrder(ctx, charge, result), nil
		})
		return v.(Outcome)
	default:
		return Outcome{Kind: Failed, Error: c.classifier.Classify(fmt.Sprintf("unexpected gateway outcome %s", result.Outcome))}
	}
}

func (c *Coordinator) recordOrder(ctx context.Context, charge Charge, result payment.GatewayResult) Outcome {
	ref := charge.Reference
	log := c.logger.With("reference", ref.String())

	var warning string
	if c.verifier != nil {
		if err := c.verifier.Verify(ctx, ref, result.TransactionID); err != nil {
			log.WarnContext(ctx, "Transaction verification failed, continuing",
				"transaction_id", result.TransactionID, "error", err)
			warning = "We could not verify the payment with the gateway yet."
		}
	}

	existing, err := c.orders.GetByReference(ctx, ref)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Order already recorded for reference", "order_id", existing.ID().String())
		return Outcome{Kind: Completed, Confirmation: order.ConfirmationOf(existing), Warning: warning}
	case !errors.Is(err, errs.ErrObjectNotFound):
		log.WarnContext(ctx, "Existing order lookup failed", "error", err)
	}

	payload := order.BuildPayload(charge.Summary, charge.Buyer.ID, ref)

	encrypted, err := c.encryptor.Encrypt(ctx, payload.ShippingAddress)
	if err != nil {
		log.ErrorContext(ctx, "Shipping address encryption failed, recording fallback order", "error", err)
	} else {
		payload = payload.WithEncryptedAddress(encrypted)
		created, err := c.functions.CreateOrder(ctx, payload)
		if err == nil {
			log.InfoContext(ctx, "Order created", "order_id", created.ID.String(), "source", order.SourcePrimary)
			return Outcome{Kind: Completed, Confirmation: order.NewConfirmation(created.ID, payload, created.CreatedAt), Warning: warning}
		}
		log.ErrorContext(ctx, "Order function failed, recording fallback order", "error", err)
	}

	o, err := c.recordFallback(ctx, payload)
	if err != nil {
		log.ErrorContext(ctx, "Fallback order failed, payment needs manual finalisation", "error", err)
		return Outcome{Kind: Finalizing, Error: fault.Classification{
			Kind:    fault.OrderCreationFailed,
			Message: finalizingMessage(ref),
		}}
	}

	log.InfoContext(ctx, "Order created", "order_id", o.ID().String(), "source", o.Source())
	return Outcome{Kind: Completed, Confirmation: order.ConfirmationOf(o), Warning: warning}
}

func (c *Coordinator) recordFallback(ctx context.Context, payload order.Payload) (*order.Order, error) {
	cmd, err := commands.NewRecordFallbackOrderCommand(kernel.NewUUID(), payload, c.now())
	if err != nil {
		return nil, err
	}
	return c.fallback.Handle(ctx, cmd)
}

func finalizingMessage(ref payment.Reference) string {
	return fmt.Sprintf(
		"Your payment succeeded and your order is being finalized. Contact support with reference %s if it does not appear shortly.",
		ref,
	)
}
