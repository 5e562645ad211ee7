package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultFallbackOrdersLimit = 50

// Checkout is the session API the handlers drive.
type Checkout interface {
	Initialize(ctx context.Context, itemID, userID kernel.UUID) (checkout.Session, error)
	Get(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error)
	Advance(ctx context.Context, sessionID kernel.UUID, step checkout.Step) (checkout.Session, error)
	SelectDelivery(ctx context.Context, sessionID kernel.UUID, optionID string) (checkout.Session, error)
	EditAddress(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error)
	UpdateAddress(ctx context.Context, sessionID kernel.UUID, fields kernel.AddressFields) (checkout.Session, error)
	DismissError(ctx context.Context, sessionID kernel.UUID) (checkout.Session, error)
	StartPayment(ctx context.Context, sessionID kernel.UUID) (payment.Request, error)
	Abandon(ctx context.Context, sessionID kernel.UUID) error
}

// PaymentCallbacks settles a gateway callback for a session, whether or not
// a capture is still waiting for it.
type PaymentCallbacks interface {
	DeliverPayment(ctx context.Context, sessionID kernel.UUID, result payment.GatewayResult) error
}

type OrderByReference interface {
	Handle(ctx context.Context, query queries.GetOrderByReferenceQuery) (queries.OrderView, error)
}

type PendingFallbackOrders interface {
	Handle(ctx context.Context, query queries.GetPendingFallbackOrdersQuery) ([]queries.OrderView, error)
}

type CartSizeReader interface {
	Handle(ctx context.Context, query queries.GetCartSizeQuery) (int, error)
}

// Server handles the checkout HTTP API.
type Server struct {
	checkout  Checkout
	callbacks PaymentCallbacks

	orderByReference      OrderByReference
	pendingFallbackOrders PendingFallbackOrders
	cartSize              CartSizeReader
}

func NewServer(
	checkout Checkout,
	callbacks PaymentCallbacks,
	orderByReference OrderByReference,
	pendingFallbackOrders PendingFallbackOrders,
	cartSize CartSizeReader,
) *Server {
	return &Server{
		checkout:              checkout,
		callbacks:             callbacks,
		orderByReference:      orderByReference,
		pendingFallbackOrders: pendingFallbackOrders,
		cartSize:              cartSize,
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo, middleware ...echo.MiddlewareFunc) {
	g := e.Group("/api/v1", middleware...)

	g.POST("/checkout", s.StartCheckout)
	g.GET("/checkout/:sessionId", s.GetCheckout)
	g.DELETE("/checkout/:sessionId", s.AbandonCheckout)
	g.POST("/checkout/:sessionId/advance", s.AdvanceCheckout)
	g.POST("/checkout/:sessionId/delivery", s.SelectDelivery)
	g.POST("/checkout/:sessionId/address/edit", s.EditAddress)
	g.PUT("/checkout/:sessionId/address", s.UpdateAddress)
	g.DELETE("/checkout/:sessionId/error", s.DismissError)
	g.POST("/checkout/:sessionId/payment", s.StartPayment)
	g.POST("/checkout/:sessionId/payment/callback", s.PaymentCallback)

	g.GET("/fallback-orders", s.GetPendingFallbackOrders)
	g.GET("/orders/:reference", s.GetOrderByReference)
	g.GET("/carts/:userId/size", s.GetCartSize)
}

// StartCheckout godoc
//
//	@Summary	Start a checkout session for an item
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		StartCheckoutRequest	true	"Item and buyer"
//	@Success	201		{object}	Session
//	@Failure	422		{object}	Error
//	@Router		/api/v1/checkout [post]
func (s *Server) StartCheckout(ctx echo.Context) error {
	var req StartCheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemID, err := kernel.UUIDFromString(req.ItemID.String())
	if err != nil {
		return badRequest(ctx, "Invalid itemId: "+err.Error())
	}
	buyerID, err := kernel.UUIDFromString(req.BuyerID.String())
	if err != nil {
		return badRequest(ctx, "Invalid buyerId: "+err.Error())
	}

	session, err := s.checkout.Initialize(ctx.Request().Context(), itemID, buyerID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, sessionOf(session))
}

// GetCheckout godoc
//
//	@Summary	Get a checkout session
//	@Tags		checkout
//	@Produce	json
//	@Param		sessionId	path		string	true	"Session ID"	Format(uuid)
//	@Success	200			{object}	Session
//	@Failure	404			{object}	Error
//	@Router		/api/v1/checkout/{sessionId} [get]
func (s *Server) GetCheckout(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	session, err := s.checkout.Get(ctx.Request().Context(), id)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionOf(session))
}

// AbandonCheckout godoc
//
//	@Summary	Discard a checkout session
//	@Tags		checkout
//	@Param		sessionId	path	string	true	"Session ID"	Format(uuid)
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/api/v1/checkout/{sessionId} [delete]
func (s *Server) AbandonCheckout(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err = s.checkout.Abandon(ctx.Request().Context(), id); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceCheckout godoc
//
//	@Summary	Move the session to a step
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string			true	"Session ID"	Format(uuid)
//	@Param		body		body		AdvanceRequest	true	"Target step"
//	@Success	200			{object}	Session
//	@Failure	422			{object}	Session
//	@Router		/api/v1/checkout/{sessionId}/advance [post]
func (s *Server) AdvanceCheckout(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req AdvanceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	step, ok := checkout.ParseStep(req.Step)
	if !ok {
		return badRequest(ctx, "Unknown step "+req.Step)
	}
	return sessionResponse(ctx, http.StatusOK)(s.checkout.Advance(ctx.Request().Context(), id, step))
}

// SelectDelivery godoc
//
//	@Summary	Choose a delivery option
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string					true	"Session ID"	Format(uuid)
//	@Param		body		body		SelectDeliveryRequest	true	"Option"
//	@Success	200			{object}	Session
//	@Failure	422			{object}	Session
//	@Router		/api/v1/checkout/{sessionId}/delivery [post]
func (s *Server) SelectDelivery(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req SelectDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return sessionResponse(ctx, http.StatusOK)(s.checkout.SelectDelivery(ctx.Request().Context(), id, req.OptionID))
}

// EditAddress godoc
//
//	@Summary	Reopen address entry
//	@Tags		checkout
//	@Produce	json
//	@Param		sessionId	path		string	true	"Session ID"	Format(uuid)
//	@Success	200			{object}	Session
//	@Failure	422			{object}	Session
//	@Router		/api/v1/checkout/{sessionId}/address/edit [post]
func (s *Server) EditAddress(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return sessionResponse(ctx, http.StatusOK)(s.checkout.EditAddress(ctx.Request().Context(), id))
}

// UpdateAddress godoc
//
//	@Summary	Replace the buyer's delivery address
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		sessionId	path		string	true	"Session ID"	Format(uuid)
//	@Param		body		body		Address	true	"Address"
//	@Success	200			{object}	Session
//	@Failure	422			{object}	Session
//	@Router		/api/v1/checkout/{sessionId}/address [put]
func (s *Server) UpdateAddress(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req Address
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return sessionResponse(ctx, http.StatusOK)(s.checkout.UpdateAddress(ctx.Request().Context(), id, req.fields()))
}

// DismissError godoc
//
//	@Summary	Clear the error shown on the session
//	@Tags		checkout
//	@Produce	json
//	@Param		sessionId	path		string	true	"Session ID"	Format(uuid)
//	@Success	200			{object}	Session
//	@Failure	404			{object}	Error
//	@Router		/api/v1/checkout/{sessionId}/error [delete]
func (s *Server) DismissError(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return sessionResponse(ctx, http.StatusOK)(s.checkout.DismissError(ctx.Request().Context(), id))
}

// StartPayment godoc
//
//	@Summary	Begin the payment for the session
//	@Tags		payment
//	@Produce	json
//	@Param		sessionId	path		string	true	"Session ID"	Format(uuid)
//	@Success	202			{object}	PaymentRequest
//	@Failure	409			{object}	Error
//	@Router		/api/v1/checkout/{sessionId}/payment [post]
func (s *Server) StartPayment(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	req, err := s.checkout.StartPayment(ctx.Request().Context(), id)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusAccepted, paymentRequestOf(req))
}

// PaymentCallback godoc
//
//	@Summary	Report the gateway outcome for the session's payment
//	@Tags		payment
//	@Accept		json
//	@Param		sessionId	path	string			true	"Session ID"	Format(uuid)
//	@Param		body		body	PaymentCallback	true	"Gateway outcome"
//	@Success	202
//	@Failure	404	{object}	Error
//	@Router		/api/v1/checkout/{sessionId}/payment/callback [post]
func (s *Server) PaymentCallback(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req PaymentCallback
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	result, err := req.result()
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.callbacks.DeliverPayment(ctx.Request().Context(), id, result); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusAccepted)
}

// GetPendingFallbackOrders godoc
//
//	@Summary	List fallback orders awaiting finalisation
//	@Tags		orders
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum rows"	minimum(1)	maximum(500)	default(50)
//	@Success	200		{array}		Order
//	@Router		/api/v1/fallback-orders [get]
func (s *Server) GetPendingFallbackOrders(ctx echo.Context) error {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &limit); err != nil {
		return badRequest(ctx, "Invalid format for parameter limit: "+err.Error())
	}
	n := defaultFallbackOrdersLimit
	if limit != nil {
		n = *limit
	}

	query, err := queries.NewGetPendingFallbackOrdersQuery(n)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	views, err := s.pendingFallbackOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve fallback orders",
		})
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderOf(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderByReference godoc
//
//	@Summary	Find the order recorded for a payment reference
//	@Tags		orders
//	@Produce	json
//	@Param		reference	path		string	true	"Payment reference"
//	@Success	200			{object}	Order
//	@Failure	404			{object}	Error
//	@Router		/api/v1/orders/{reference} [get]
func (s *Server) GetOrderByReference(ctx echo.Context) error {
	var reference string
	err := runtime.BindStyledParameterWithOptions("simple", "reference", ctx.Param("reference"), &reference,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter reference: "+err.Error())
	}

	query, err := queries.NewGetOrderByReferenceQuery(reference)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.orderByReference.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderOf(view))
}

// GetCartSize godoc
//
//	@Summary	Number of items in a user's cart
//	@Tags		carts
//	@Produce	json
//	@Param		userId	path		string	true	"User ID"	Format(uuid)
//	@Success	200		{object}	CartSize
//	@Router		/api/v1/carts/{userId}/size [get]
func (s *Server) GetCartSize(ctx echo.Context) error {
	userID, err := uuidParam(ctx, "userId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetCartSizeQuery(userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	size, err := s.cartSize.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to count cart items",
		})
	}
	return ctx.JSON(http.StatusOK, CartSize{Size: size})
}

func sessionID(ctx echo.Context) (kernel.UUID, error) {
	return uuidParam(ctx, "sessionId")
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return kernel.UUIDFromString(raw.String())
}

// sessionResponse writes the session for a mutating call. When the call was
// rejected but the session recorded the error, the session is still the body.
func sessionResponse(ctx echo.Context, status int) func(checkout.Session, error) error {
	return func(session checkout.Session, err error) error {
		if err == nil {
			return ctx.JSON(status, sessionOf(session))
		}
		if session.Error != nil && session.ID.Validate() == nil {
			return ctx.JSON(http.StatusUnprocessableEntity, sessionOf(session))
		}
		return errorResponse(ctx, err)
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    fault.ValidationError.String(),
		Message: message,
	})
}

func errorResponse(ctx echo.Context, err error) error {
	status := statusOf(err)
	body := Error{Code: status, Message: err.Error()}

	var fe *fault.Error
	if errors.As(err, &fe) {
		cl := fe.Classification()
		body.Kind = cl.Kind.String()
		body.Message = cl.Message
		body.Retryable = cl.Retryable()
	}
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		body.Message = fault.GenericMessage
		body.Retryable = true
	}
	return ctx.JSON(status, body)
}

func statusOf(err error) int {
	var fe *fault.Error
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrCaptureInFlight),
		errors.Is(err, payment.ErrAlreadyCharged),
		errors.Is(err, checkout.ErrSessionNotAbandonable),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.As(err, &fe):
		if fe.Kind == fault.Timeout || fe.Kind == fault.ServiceUnavailable {
			return http.StatusServiceUnavailable
		}
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
