// Package orchestrator drives a checkout session from the item summary to
// the order confirmation. Every session change goes through
// checkout.Transition inside the session store; remote calls are made
// outside the store lock.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"checkout/internal/core/application/addressing"
	"checkout/internal/core/application/capture"
	"checkout/internal/core/application/quoting"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const defaultParcelWeightKg = 2.0

var (
	ErrItemUnavailable = fault.New(fault.ValidationError, "This item has already been sold.")
	ErrOwnItem         = fault.New(fault.ValidationError, "You cannot buy your own listing.")
	ErrPayoutsMissing  = fault.New(fault.SellerNotReady, "This seller has not set up payouts yet. Checkout is unavailable for this item.")
	ErrForeignPayment  = fault.New(fault.ValidationError, "The payment reference does not belong to this checkout.")
)

// AddressResolver finds party addresses and backfills the item's payment
// destination.
type AddressResolver interface {
	Resolve(ctx context.Context, partyID kernel.UUID, role addressing.Role) (*kernel.Address, error)
	EnsurePaymentDestination(ctx context.Context, it *item.Item) (bool, error)
}

// QuoteSource returns delivery options between two addresses. It never fails.
type QuoteSource interface {
	GetQuotes(ctx context.Context, from, to kernel.Address, weightKg float64) quoting.Quotes
}

// PaymentCapturer takes one payment and reports its terminal outcome.
type PaymentCapturer interface {
	Begin(charge capture.Charge) (payment.Request, error)
	Capture(ctx context.Context, charge capture.Charge) capture.Outcome
	Settle(ctx context.Context, charge capture.Charge, result payment.GatewayResult) capture.Outcome
}

// CallbackSink hands a gateway callback to the capture waiting for its
// reference, returning errs.ObjectNotFoundError when none is.
type CallbackSink interface {
	Deliver(result payment.GatewayResult) error
}

// Classifier normalises errors for display.
type Classifier interface {
	Classify(raw any) fault.Classification
}

// Orchestrator is the checkout entry point.
type Orchestrator struct {
	sessions   ports.SessionStore
	items      ports.ItemRepository
	buyers     ports.BuyerDirectory
	addresses  AddressResolver
	quotes     QuoteSource
	payments   PaymentCapturer
	callbacks  CallbackSink
	cart       ports.CartStore
	notifier   ports.Notifier
	classifier Classifier
	logger     *slog.Logger

	parcelWeightKg float64
	now            func() time.Time

	captures sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithParcelWeight sets the weight quoted for items without one.
func WithParcelWeight(kg float64) Option {
	return func(o *Orchestrator) {
		if kg > 0 {
			o.parcelWeightKg = kg
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// Deps groups the collaborators of an Orchestrator.
type Deps struct {
	Sessions   ports.SessionStore
	Items      ports.ItemRepository
	Buyers     ports.BuyerDirectory
	Addresses  AddressResolver
	Quotes     QuoteSource
	Payments   PaymentCapturer
	Callbacks  CallbackSink
	Cart       ports.CartStore
	Notifier   ports.Notifier
	Classifier Classifier
	Logger     *slog.Logger
}

// New creates an orchestrator.
func New(deps Deps, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sessions:       deps.Sessions,
		items:          deps.Items,
		buyers:         deps.Buyers,
		addresses:      deps.Addresses,
		quotes:         deps.Quotes,
		payments:       deps.Payments,
		callbacks:      deps.Callbacks,
		cart:           deps.Cart,
		notifier:       deps.Notifier,
		classifier:     deps.Classifier,
		logger:         deps.Logger.With("component", "checkout_orchestrator"),
		parcelWeightKg: defaultParcelWeightKg,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Initialize opens a checkout for userID buying itemID. The seller address,
// the buyer address and the buyer email are resolved concurrently. A seller
// without an address or payout destination makes the item unpurchasable:
// no session is stored and SellerNotReady is returned.
func (o *Orchestrator) Initialize(ctx context.Context, itemID, userID kernel.UUID) (checkout.Session, error) {
	if err := errors.Join(itemID.Validate(), userID.Validate()); err != nil {
		return checkout.Session{}, err
	}

	it, err := o.items.Get(ctx, itemID)
	if err != nil {
		return checkout.Session{}, err
	}
	if !it.IsAvailable() {
		return checkout.Session{}, ErrItemUnavailable
	}
	if it.SellerID().IsEqual(userID) {
		return checkout.Session{}, ErrOwnItem
	}

	var (
		seller, buyer *kernel.Address
		email         string
		payable       bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seller, err = o.addresses.Resolve(gctx, it.SellerID(), addressing.Seller)
		return err
	})
	g.Go(func() error {
		var err error
		buyer, err = o.addresses.Resolve(gctx, userID, addressing.Buyer)
		return err
	})
	g.Go(func() error {
		var err error
		payable, err = o.addresses.EnsurePaymentDestination(gctx, it)
		return err
	})
	g.Go(func() error {
		var err error
		if email, err = o.buyers.Email(gctx, userID); err != nil {
			o.logger.WarnContext(gctx, "Buyer email lookup failed", "buyer_id", userID.String(), "error", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return checkout.Session{}, err
	}

	log := o.logger.With("item_id", itemID.String(), "buyer_id", userID.String())
	if seller == nil {
		log.InfoContext(ctx, "Checkout unavailable, seller has no address", "seller_id", it.SellerID().String())
		return checkout.Session{}, fault.New(fault.SellerNotReady, "")
	}
	if !payable {
		log.InfoContext(ctx, "Checkout unavailable, seller has no payment destination", "seller_id", it.SellerID().String())
		return checkout.Session{}, ErrPayoutsMissing
	}

	s, err := checkout.NewSession(kernel.NewUUID(), userID, email, it, *seller, buyer, payment.NewReference(), o.now())
	if err != nil {
		return checkout.Session{}, err
	}
	if err = o.sessions.Create(ctx, s); err != nil {
		return checkout.Session{}, err
	}

	log.InfoContext(ctx, "Checkout started",
		"session_id", s.ID.String(), "reference", s.Reference().String(), "buyer_address", buyer != nil)
	return s, nil
}

// Get returns the current session.
func (o *Orchestrator) Get(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error) {
	return o.sessions.Get(ctx, sessionID)
}

// Advance moves the session to step. Entering the delivery step with a
// known buyer address fetches quotes before returning.
func (o *Orchestrator) Advance(ctx context.Context, sessionID kernel.UUID, step checkout.Step) (checkout.Session, error) {
	s, err := o.apply(ctx, sessionID, checkout.StepRequested{Step: step})
	if err != nil {
		return s, err
	}
	if needsQuotes(s) {
		return o.fetchQuotes(ctx, s)
	}
	return s, nil
}

// SelectDelivery records the buyer's delivery option.
func (o *Orchestrator) SelectDelivery(ctx context.Context, sessionID kernel.UUID, optionID string) (checkout.Session, error) {
	return o.apply(ctx, sessionID, checkout.DeliverySelected{OptionID: optionID})
}

// EditAddress returns the buyer to address entry on the delivery step.
func (o *Orchestrator) EditAddress(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error) {
	return o.apply(ctx, sessionID, checkout.AddressEditRequested{})
}

// UpdateAddress replaces the buyer address and refetches quotes for it.
// Quotes computed for an earlier address are discarded when they arrive.
func (o *Orchestrator) UpdateAddress(ctx context.Context, sessionID kernel.UUID, fields kernel.AddressFields) (checkout.Session, error) {
	address, err := kernel.NewAddress(fields)
	if err != nil {
		return o.fail(ctx, sessionID, fault.Wrap(fault.AddressIncomplete, "", err))
	}

	s, err := o.apply(ctx, sessionID, checkout.AddressUpdated{Address: address})
	if err != nil {
		return s, err
	}
	return o.fetchQuotes(ctx, s)
}

// DismissError clears the error shown on the session.
func (o *Orchestrator) DismissError(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error) {
	return o.apply(ctx, sessionID, checkout.ErrorDismissed{})
}

// Abandon discards the session. A session whose charge succeeded without
// an order yet cannot be abandoned.
func (o *Orchestrator) Abandon(ctx context.Context, sessionID kernel.UUID) error {
	if _, err := o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
		return s, s.CanAbandon()
	}); err != nil {
		return err
	}
	if err := o.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	o.logger.InfoContext(ctx, "Checkout abandoned", "session_id", sessionID.String())
	return nil
}

// StartPayment moves the attempt to processing, reserves the gateway window
// and runs the capture in the background. It returns the gateway request the
// buyer's window is opened with; callbacks for it are accepted from then on.
// The capture is not bound to ctx.
func (o *Orchestrator) StartPayment(ctx context.Context, sessionID kernel.UUID) (payment.Request, error) {
	charge, request, err := o.beginPayment(ctx, sessionID)
	if err != nil {
		return payment.Request{}, err
	}

	bg := context.WithoutCancel(ctx)
	o.captures.Add(1)
	go func() {
		defer o.captures.Done()
		o.finish(bg, sessionID, o.payments.Capture(bg, charge))
	}()

	return request, nil
}

// CapturePayment is StartPayment that waits for the outcome.
func (o *Orchestrator) CapturePayment(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error) {
	charge, _, err := o.beginPayment(ctx, sessionID)
	if err != nil {
		return checkout.Session{}, err
	}
	bg := context.WithoutCancel(ctx)
	return o.finish(bg, sessionID, o.payments.Capture(bg, charge))
}

// DeliverPayment settles a gateway callback for the session. A waiting
// capture takes it. A success callback that no capture is waiting for,
// because the window expired or the buyer closed it first, is settled here:
// the buyer has been charged and an order is recorded for the reference.
func (o *Orchestrator) DeliverPayment(ctx context.Context, sessionID kernel.UUID, result payment.GatewayResult) error {
	s, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if result.Reference != s.Reference() {
		return ErrForeignPayment
	}

	err = o.callbacks.Deliver(result)
	if err == nil || !errors.Is(err, errs.ErrObjectNotFound) || !awaitsCharge(s, result) {
		return err
	}

	o.logger.WarnContext(ctx, "Success callback without a waiting capture, settling it",
		"session_id", sessionID.String(), "reference", result.Reference.String(), "attempt", s.Payment.Status.String())
	bg := context.WithoutCancel(ctx)
	charge := capture.Charge{
		Summary:   *s.PaymentSummary,
		Buyer:     capture.Buyer{ID: s.BuyerID, Email: s.BuyerEmail},
		Reference: s.Reference(),
	}
	_, err = o.finish(bg, sessionID, o.payments.Settle(bg, charge, result))
	return err
}

// Wait blocks until background captures have finished.
func (o *Orchestrator) Wait() {
	o.captures.Wait()
}

// CompletePayment records the confirmation and moves to the confirmation
// step. Removing the item from the buyer's cart and notifying both parties
// are best effort and happen once per session.
func (o *Orchestrator) CompletePayment(ctx context.Context, sessionID kernel.UUID, confirmation order.Confirmation) (checkout.Session, error) {
	var firstCompletion bool
	s, err := o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
		was := s.Completed()
		next, err := checkout.Transition(s, checkout.PaymentCompleted{Confirmation: confirmation})
		if err != nil {
			return s, err
		}
		firstCompletion = !was && next.Completed()
		next.UpdatedAt = o.now()
		return next, nil
	})
	if err != nil {
		return s, err
	}
	if !firstCompletion {
		return s, nil
	}

	log := o.logger.With("session_id", sessionID.String(), "order_id", confirmation.OrderID().String())
	log.InfoContext(ctx, "Checkout completed",
		"reference", confirmation.PaymentReference().String(), "source", confirmation.Source())

	if err = o.cart.Remove(ctx, s.BuyerID, confirmation.ItemID()); err != nil {
		log.WarnContext(ctx, "Removing purchased item from cart failed", "error", err)
	}
	if err = o.notifier.NotifyOrderConfirmed(ctx, confirmation); err != nil {
		log.WarnContext(ctx, "Order confirmation notification failed", "error", err)
	}
	return s, nil
}

func (o *Orchestrator) beginPayment(ctx context.Context, sessionID kernel.UUID) (capture.Charge, payment.Request, error) {
	s, err := o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
		next, err := checkout.Transition(s, checkout.PaymentStarted{})
		if err != nil {
			return s, err
		}
		next.UpdatedAt = o.now()
		return next, nil
	})
	if err != nil {
		return capture.Charge{}, payment.Request{}, err
	}

	charge := capture.Charge{
		Summary:   *s.PaymentSummary,
		Buyer:     capture.Buyer{ID: s.BuyerID, Email: s.BuyerEmail},
		Reference: s.Reference(),
	}
	request, err := o.payments.Begin(charge)
	if err != nil {
		o.logger.WarnContext(ctx, "Payment window could not be reserved",
			"session_id", sessionID.String(), "reference", charge.Reference.String(), "error", err)
		o.finish(ctx, sessionID, capture.Outcome{Kind: capture.Failed, Error: o.classify(err)})
		return capture.Charge{}, payment.Request{}, err
	}

	o.logger.InfoContext(ctx, "Payment started",
		"session_id", sessionID.String(), "reference", charge.Reference.String(), "total", charge.Summary.TotalPrice().Format())
	return charge, request, nil
}

func (o *Orchestrator) finish(ctx context.Context, sessionID kernel.UUID, out capture.Outcome) (checkout.Session, error) {
	log := o.logger.With("session_id", sessionID.String(), "outcome", out.Kind.String())

	var (
		s   checkout.Session
		err error
	)
	if out.Kind == capture.Completed {
		s, err = o.CompletePayment(ctx, sessionID, out.Confirmation)
	} else {
		s, err = o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
			if s.Confirmation != nil || (s.Payment.Charged() && out.Kind != capture.Finalizing) {
				// A late success was settled first.
				return s, nil
			}
			next, err := checkout.Transition(s, out.Event())
			if err != nil {
				return s, err
			}
			next.UpdatedAt = o.now()
			return next, nil
		})
	}
	if err != nil {
		log.ErrorContext(ctx, "Payment outcome could not be recorded on the session", "error", err)
		return s, err
	}

	if out.Warning != "" {
		s, _ = o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
			s.Warning = out.Warning
			return s, nil
		})
	}
	return s, nil
}

// apply runs ev through the session. A rejected event is stored on the
// session as its error and returned to the caller as well.
func (o *Orchestrator) apply(ctx context.Context, sessionID kernel.UUID, ev checkout.Event) (checkout.Session, error) {
	var rejected error
	s, err := o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
		next, err := checkout.Transition(s, ev)
		if err != nil {
			rejected = err
			next, err = checkout.Transition(s, checkout.Failed{Error: o.classify(err)})
			if err != nil {
				return s, err
			}
		}
		next.UpdatedAt = o.now()
		return next, nil
	})
	if err != nil {
		return s, err
	}
	return s, rejected
}

func (o *Orchestrator) fail(ctx context.Context, sessionID kernel.UUID, cause error) (checkout.Session, error) {
	s, err := o.sessions.Update(ctx, sessionID, func(s checkout.Session) (checkout.Session, error) {
		return checkout.Transition(s, checkout.Failed{Error: o.classify(cause)})
	})
	if err != nil {
		return s, err
	}
	return s, cause
}

func (o *Orchestrator) classify(err error) fault.Classification {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fe.Classification()
	}
	return o.classifier.Classify(err)
}

// awaitsCharge reports whether a success callback for s still has to be
// recorded: a payment was opened and no order confirms it yet.
func awaitsCharge(s checkout.Session, result payment.GatewayResult) bool {
	return result.Outcome == payment.OutcomeSuccess &&
		s.PaymentSummary != nil &&
		s.Payment.Status != payment.Idle &&
		s.Confirmation == nil
}

func needsQuotes(s checkout.Session) bool {
	return s.Step == checkout.StepDelivery && s.BuyerAddress != nil && len(s.DeliveryOptions) == 0
}

// fetchQuotes loads options for the session's current address version.
func (o *Orchestrator) fetchQuotes(ctx context.Context, s checkout.Session) (checkout.Session, error) {
	version := s.AddressVersion
	s, err := o.apply(ctx, s.ID, checkout.QuotesRequested{AddressVersion: version})
	if err != nil {
		return s, err
	}

	weight := s.Item.WeightKg()
	if weight <= 0 {
		weight = o.parcelWeightKg
	}
	q := o.quotes.GetQuotes(ctx, *s.SellerAddress, *s.BuyerAddress, weight)
	if q.IsEstimate() {
		o.logger.InfoContext(ctx, "Offering estimated delivery", "session_id", s.ID.String())
	}

	return o.apply(ctx, s.ID, checkout.QuotesLoaded{Options: q.Options, Warning: q.Warning, AddressVersion: version})
}
