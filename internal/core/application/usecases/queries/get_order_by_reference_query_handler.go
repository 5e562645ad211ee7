package queries

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByReferenceQueryHandler reads one order by payment reference.
type GetOrderByReferenceQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderByReferenceQueryHandler(db *gorm.DB) GetOrderByReferenceQueryHandler {
	return GetOrderByReferenceQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no order carries the reference.
func (h GetOrderByReferenceQueryHandler) Handle(ctx context.Context, query GetOrderByReferenceQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			payment_reference,
			buyer_id,
			seller_id,
			item_id,
			amount,
			delivery_price,
			delivery_method,
			status,
			source,
			shipping_address_encrypted,
			created_at
		FROM orders
		WHERE payment_reference = ?
		LIMIT 1
	`, query.Reference().String()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderView{}, err
		}
		return OrderView{}, errs.NewObjectNotFoundError("order", query.Reference().String())
	}

	view, err := scanOrderView(rows)
	if err != nil {
		return OrderView{}, err
	}
	return view, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (OrderView, error) {
	var (
		id, buyerID, sellerID, itemID uuid.UUID
		reference, method, source     string
		encrypted                     *string
		amount, deliveryPrice         decimal.Decimal
		status                        int
		createdAt                     time.Time
	)

	if err := row.Scan(
		&id, &reference, &buyerID, &sellerID, &itemID,
		&amount, &deliveryPrice, &method, &status, &source, &encrypted, &createdAt,
	); err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		PaymentReference: payment.Reference(reference),
		DeliveryMethod:   method,
		Status:           order.Status(status).String(),
		Source:           source,
		Finalised:        encrypted != nil && *encrypted != "",
		CreatedAt:        createdAt.UTC(),
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderView{}, err
	}
	if view.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return OrderView{}, err
	}
	if view.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
		return OrderView{}, err
	}
	if view.Amount, err = kernel.NewMoney(amount); err != nil {
		return OrderView{}, err
	}
	if view.DeliveryPrice, err = kernel.NewMoney(deliveryPrice); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

