package order

import (
	"errors"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
)

// ErrSummaryIsNotConstructed is returned when a zero-value Summary is used.
var ErrSummaryIsNotConstructed = errors.New("Summary must be created via NewSummary constructor")

// Summary is what the buyer is about to pay for. The total is always
// derived from the item and delivery prices at construction time; there is
// no way to set it directly.
type Summary struct {
	itemID             kernel.UUID
	sellerID           kernel.UUID
	itemTitle          string
	paymentDestination string
	delivery           delivery.Option
	buyerAddress       kernel.Address
	sellerAddress      kernel.Address
	itemPrice          kernel.Money
	deliveryPrice      kernel.Money
	totalPrice         kernel.Money
	isConstructed      bool
}

// NewSummary snapshots the current item, addresses and selected option.
//
// Example:
//
//	summary, err := order.NewSummary(item, selected, buyerAddr, sellerAddr)
//	summary.TotalPrice() // item price + selected.Price
func NewSummary(it *item.Item, option delivery.Option, buyer, seller kernel.Address) (Summary, error) {
	if err := it.Validate(); err != nil {
		return Summary{}, err
	}
	if err := errors.Join(
		option.Validate(),
		buyer.Validate(),
		seller.Validate(),
	); err != nil {
		return Summary{}, err
	}

	return Summary{
		itemID:             it.ID(),
		sellerID:           it.SellerID(),
		itemTitle:          it.Title(),
		paymentDestination: it.PaymentDestination(),
		delivery:           option,
		buyerAddress:       buyer,
		sellerAddress:      seller,
		itemPrice:          it.Price(),
		deliveryPrice:      option.Price,
		totalPrice:         it.Price().Add(option.Price),
		isConstructed:      true,
	}, nil
}

func (s Summary) Validate() error {
	if !s.isConstructed {
		return ErrSummaryIsNotConstructed
	}
	return nil
}

func (s Summary) ItemID() kernel.UUID           { return s.itemID }
func (s Summary) SellerID() kernel.UUID         { return s.sellerID }
func (s Summary) ItemTitle() string             { return s.itemTitle }
func (s Summary) PaymentDestination() string    { return s.paymentDestination }
func (s Summary) Delivery() delivery.Option     { return s.delivery }
func (s Summary) BuyerAddress() kernel.Address  { return s.buyerAddress }
func (s Summary) SellerAddress() kernel.Address { return s.sellerAddress }
func (s Summary) ItemPrice() kernel.Money       { return s.itemPrice }
func (s Summary) DeliveryPrice() kernel.Money   { return s.deliveryPrice }
func (s Summary) TotalPrice() kernel.Money      { return s.totalPrice }
