// Package accountrepo reads user accounts: the buyer's email and the
// seller's payment destination.
package accountrepo

import (
	"context"
	"errors"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountDTO is the accounts table row.
type AccountDTO struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"size:255;not null"`
	PaymentDestination string    `gorm:"size:128"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

// GormAccountRepository implements SellerAccounts and BuyerDirectory.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// PaymentDestination returns errs.ObjectNotFoundError when the seller has
// no account or has not configured a destination.
func (r *GormAccountRepository) PaymentDestination(ctx context.Context, sellerID kernel.UUID) (string, error) {
	dto, err := r.get(ctx, sellerID)
	if err != nil {
		return "", err
	}

	destination := strings.TrimSpace(dto.PaymentDestination)
	if destination == "" {
		return "", errs.NewObjectNotFoundError("paymentDestination", sellerID.String())
	}
	return destination, nil
}

// Email returns the account email of a user.
func (r *GormAccountRepository) Email(ctx context.Context, userID kernel.UUID) (string, error) {
	dto, err := r.get(ctx, userID)
	if err != nil {
		return "", err
	}
	return dto.Email, nil
}

// Save upserts an account.
func (r *GormAccountRepository) Save(ctx context.Context, userID kernel.UUID, email, paymentDestination string) error {
	dto := AccountDTO{UserID: userID.Bytes(), Email: email, PaymentDestination: paymentDestination}
	return r.db.WithContext(ctx).Save(&dto).Error
}

func (r *GormAccountRepository) get(ctx context.Context, userID kernel.UUID) (AccountDTO, error) {
	if err := userID.Validate(); err != nil {
		return AccountDTO{}, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccountDTO{}, errs.NewObjectNotFoundError("account", userID.String())
		}
		return AccountDTO{}, err
	}
	return dto, nil
}
