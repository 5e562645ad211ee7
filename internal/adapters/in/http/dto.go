package http

import (
	"time"

	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every error response.
type Error struct {
	Code      int    `json:"code"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type StartCheckoutRequest struct {
	ItemID  openapi_types.UUID `json:"itemId"`
	BuyerID openapi_types.UUID `json:"buyerId"`
}

type AdvanceRequest struct {
	Step string `json:"step"`
}

type SelectDeliveryRequest struct {
	OptionID string `json:"optionId"`
}

type Address struct {
	Street         string `json:"street"`
	City           string `json:"city"`
	Province       string `json:"province"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

func (a Address) fields() kernel.AddressFields {
	return kernel.AddressFields{
		Street:         a.Street,
		City:           a.City,
		Province:       a.Province,
		PostalCode:     a.PostalCode,
		Country:        a.Country,
		AdditionalInfo: a.AdditionalInfo,
	}
}

func addressOf(a *kernel.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Street:         a.Street(),
		City:           a.City(),
		Province:       a.Province(),
		PostalCode:     a.PostalCode(),
		Country:        a.Country(),
		AdditionalInfo: a.AdditionalInfo(),
	}
}

type PaymentCallback struct {
	Outcome       string `json:"outcome"`
	Reference     string `json:"reference"`
	Status        string `json:"status,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	Error         any    `json:"error,omitempty"`
}

func (cb PaymentCallback) result() (payment.GatewayResult, error) {
	ref, err := payment.ParseReference(cb.Reference)
	if err != nil {
		return payment.GatewayResult{}, err
	}
	switch cb.Outcome {
	case "success":
		return payment.SuccessResult(ref, cb.Status, cb.TransactionID), nil
	case "error":
		return payment.ErrorResult(ref, cb.Error), nil
	case "closed":
		return payment.ClosedResult(ref), nil
	default:
		return payment.GatewayResult{}, fault.New(fault.ValidationError, "unknown payment outcome "+cb.Outcome)
	}
}

type PaymentRequest struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata"`
}

func paymentRequestOf(r payment.Request) PaymentRequest {
	return PaymentRequest{
		Email:     r.Email,
		Amount:    r.AmountMinorUnits,
		Reference: r.Reference.String(),
		Metadata:  r.Metadata,
	}
}

type DeliveryOption struct {
	ID               string     `json:"id"`
	CourierID        string     `json:"courierId"`
	ServiceName      string     `json:"serviceName"`
	ProviderName     string     `json:"providerName,omitempty"`
	Price            string     `json:"price"`
	PriceExclVAT     string     `json:"priceExclVat,omitempty"`
	EstimatedDays    int        `json:"estimatedDays"`
	Zone             string     `json:"zone"`
	Estimate         bool       `json:"estimate"`
	CollectionCutoff *time.Time `json:"collectionCutoff,omitempty"`
	Label            string     `json:"label"`
}

func deliveryOptionOf(o delivery.Option) DeliveryOption {
	dto := DeliveryOption{
		ID:               o.ID,
		CourierID:        o.CourierID,
		ServiceName:      o.ServiceName,
		ProviderName:     o.ProviderName,
		Price:            o.Price.String(),
		EstimatedDays:    o.EstimatedDays,
		Zone:             o.Zone.String(),
		Estimate:         o.Estimate,
		CollectionCutoff: o.CollectionCutoff,
		Label:            o.Label(),
	}
	if o.PriceExclVAT != nil {
		dto.PriceExclVAT = o.PriceExclVAT.String()
	}
	return dto
}

type Summary struct {
	ItemTitle     string         `json:"itemTitle"`
	ItemPrice     string         `json:"itemPrice"`
	DeliveryPrice string         `json:"deliveryPrice"`
	TotalPrice    string         `json:"totalPrice"`
	Delivery      DeliveryOption `json:"delivery"`
	BuyerAddress  Address        `json:"buyerAddress"`
}

type Confirmation struct {
	OrderID          string    `json:"orderId"`
	PaymentReference string    `json:"paymentReference"`
	TotalPaid        string    `json:"totalPaid"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Item struct {
	ID       string  `json:"id"`
	SellerID string  `json:"sellerId"`
	Title    string  `json:"title"`
	Price    string  `json:"price"`
	WeightKg float64 `json:"weightKg"`
}

type Session struct {
	ID               string           `json:"id"`
	Step             string           `json:"step"`
	CompletedSteps   []string         `json:"completedSteps"`
	Item             Item             `json:"item"`
	SellerAddress    *Address         `json:"sellerAddress,omitempty"`
	BuyerAddress     *Address         `json:"buyerAddress,omitempty"`
	AddressEntry     bool             `json:"addressEntry"`
	DeliveryOptions  []DeliveryOption `json:"deliveryOptions"`
	SelectedDelivery *DeliveryOption  `json:"selectedDelivery,omitempty"`
	Summary          *Summary         `json:"summary,omitempty"`
	PaymentReference string           `json:"paymentReference"`
	PaymentStatus    string           `json:"paymentStatus"`
	Confirmation     *Confirmation    `json:"confirmation,omitempty"`
	NeedsSupport     bool             `json:"needsSupport"`
	Loading          bool             `json:"loading"`
	Error            *Error           `json:"error,omitempty"`
	Warning          string           `json:"warning,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func sessionOf(s checkout.Session) Session {
	dto := Session{
		ID:               s.ID.String(),
		Step:             s.Step.String(),
		CompletedSteps:   []string{},
		SellerAddress:    addressOf(s.SellerAddress),
		BuyerAddress:     addressOf(s.BuyerAddress),
		AddressEntry:     s.AddressEntry,
		DeliveryOptions:  make([]DeliveryOption, 0, len(s.DeliveryOptions)),
		PaymentReference: s.Reference().String(),
		PaymentStatus:    s.Payment.Status.String(),
		NeedsSupport:     s.NeedsSupport,
		Loading:          s.Loading,
		Warning:          s.Warning,
		UpdatedAt:        s.UpdatedAt,
	}
	for _, step := range s.CompletedSteps.Steps() {
		dto.CompletedSteps = append(dto.CompletedSteps, step.String())
	}
	if s.Item != nil {
		dto.Item = Item{
			ID:       s.Item.ID().String(),
			SellerID: s.Item.SellerID().String(),
			Title:    s.Item.Title(),
			Price:    s.Item.Price().String(),
			WeightKg: s.Item.WeightKg(),
		}
	}
	for _, o := range s.DeliveryOptions {
		dto.DeliveryOptions = append(dto.DeliveryOptions, deliveryOptionOf(o))
	}
	if s.SelectedDelivery != nil {
		selected := deliveryOptionOf(*s.SelectedDelivery)
		dto.SelectedDelivery = &selected
	}
	if s.Summary != nil {
		dto.Summary = summaryOf(*s.Summary)
	}
	if s.Confirmation != nil {
		dto.Confirmation = confirmationOf(*s.Confirmation)
	}
	if s.Error != nil {
		dto.Error = classificationOf(0, *s.Error)
	}
	return dto
}

func summaryOf(s order.Summary) *Summary {
	buyer := s.BuyerAddress()
	return &Summary{
		ItemTitle:     s.ItemTitle(),
		ItemPrice:     s.ItemPrice().String(),
		DeliveryPrice: s.DeliveryPrice().String(),
		TotalPrice:    s.TotalPrice().String(),
		Delivery:      deliveryOptionOf(s.Delivery()),
		BuyerAddress:  *addressOf(&buyer),
	}
}

func confirmationOf(c order.Confirmation) *Confirmation {
	return &Confirmation{
		OrderID:          c.OrderID().String(),
		PaymentReference: c.PaymentReference().String(),
		TotalPaid:        c.TotalPaid().String(),
		Status:           c.Status().String(),
		CreatedAt:        c.CreatedAt(),
	}
}

func classificationOf(code int, c fault.Classification) *Error {
	return &Error{Code: code, Kind: c.Kind.String(), Message: c.Message, Retryable: c.Retryable()}
}

type Order struct {
	ID               string    `json:"id"`
	PaymentReference string    `json:"paymentReference"`
	BuyerID          string    `json:"buyerId"`
	SellerID         string    `json:"sellerId"`
	ItemID           string    `json:"itemId"`
	Amount           string    `json:"amount"`
	DeliveryPrice    string    `json:"deliveryPrice"`
	DeliveryMethod   string    `json:"deliveryMethod"`
	Status           string    `json:"status"`
	Source           string    `json:"source"`
	Finalised        bool      `json:"finalised"`
	CreatedAt        time.Time `json:"createdAt"`
}

func orderOf(v queries.OrderView) Order {
	return Order{
		ID:               v.ID.String(),
		PaymentReference: v.PaymentReference.String(),
		BuyerID:          v.BuyerID.String(),
		SellerID:         v.SellerID.String(),
		ItemID:           v.ItemID.String(),
		Amount:           v.Amount.String(),
		DeliveryPrice:    v.DeliveryPrice.String(),
		DeliveryMethod:   v.DeliveryMethod,
		Status:           v.Status,
		Source:           v.Source,
		Finalised:        v.Finalised,
		CreatedAt:        v.CreatedAt,
	}
}

type CartSize struct {
	Size int `json:"size"`
}
