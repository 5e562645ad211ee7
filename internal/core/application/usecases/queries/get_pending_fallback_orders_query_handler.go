package queries

import (
	"context"

	"checkout/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPendingFallbackOrdersQueryHandler lists orders the finalisation job
// has not completed yet.
type GetPendingFallbackOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingFallbackOrdersQueryHandler(db *gorm.DB) GetPendingFallbackOrdersQueryHandler {
	return GetPendingFallbackOrdersQueryHandler{db: db}
}

func (h GetPendingFallbackOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingFallbackOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]OrderView, 0)

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
		WHERE source = ?
			AND status = ?
			AND (shipping_address_encrypted IS NULL OR shipping_address_encrypted = '')
		ORDER BY created_at
		LIMIT ?
	`, string(order.SourceFallback), int(order.Paid), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
