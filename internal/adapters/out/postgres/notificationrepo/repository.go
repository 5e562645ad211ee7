// Package notificationrepo records in-app notifications. The notification
// feed itself is rendered elsewhere.
package notificationrepo

import (
	"context"
	"fmt"
	"time"

	"checkout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	KindOrderPlaced   = "order_placed"
	KindItemPurchased = "item_purchased"
)

// NotificationDTO is one notification for one user.
type NotificationDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_dedupe"`
	Kind             string    `gorm:"size:32;not null;uniqueIndex:idx_notifications_dedupe"`
	PaymentReference string    `gorm:"size:64;not null;uniqueIndex:idx_notifications_dedupe"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null"`
	Message          string    `gorm:"size:512;not null"`
	Read             bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements Notifier.
type GormNotificationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db, now: time.Now}
}

// NotifyOrderConfirmed records one notification for the buyer and one for
// the seller. Repeating it for the same payment reference changes nothing.
func (r *GormNotificationRepository) NotifyOrderConfirmed(ctx context.Context, c order.Confirmation) error {
	now := r.now().UTC()
	rows := []NotificationDTO{
		{
			ID:               uuid.New(),
			UserID:           c.BuyerID().Bytes(),
			Kind:             KindOrderPlaced,
			PaymentReference: c.PaymentReference().String(),
			OrderID:          c.OrderID().Bytes(),
			Message:          fmt.Sprintf("Your order is confirmed. Total paid %s.", c.TotalPaid().Format()),
			CreatedAt:        now,
		},
		{
			ID:               uuid.New(),
			UserID:           c.SellerID().Bytes(),
			Kind:             KindItemPurchased,
			PaymentReference: c.PaymentReference().String(),
			OrderID:          c.OrderID().Bytes(),
			Message:          "One of your items was purchased. Prepare it for collection.",
			CreatedAt:        now,
		},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// CountFor returns how many notifications a user has.
func (r *GormNotificationRepository) CountFor(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
