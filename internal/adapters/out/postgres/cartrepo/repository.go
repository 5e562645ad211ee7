// Package cartrepo stores carts as a Postgres text array of item ids and
// publishes every change.
package cartrepo

import (
	"context"
	"errors"
	"slices"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartDTO is one user's cart.
type CartDTO struct {
	UserID  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ItemIDs pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// Publisher receives cart changes after they are stored.
type Publisher interface {
	Publish(event cart.Changed)
}

// GormCartRepository implements CartStore.
type GormCartRepository struct {
	db        *gorm.DB
	publisher Publisher
}

func NewGormCartRepository(db *gorm.DB, publisher Publisher) *GormCartRepository {
	return &GormCartRepository{db: db, publisher: publisher}
}

// Add puts an item in the user's cart. Adding an item twice is a no-op.
func (r *GormCartRepository) Add(ctx context.Context, userID, itemID kernel.UUID) error {
	return r.mutate(ctx, userID, func(ids []string) []string {
		if slices.Contains(ids, itemID.String()) {
			return ids
		}
		return append(ids, itemID.String())
	})
}

// Remove takes an item out of the user's cart. A missing cart or item is
// not an error.
func (r *GormCartRepository) Remove(ctx context.Context, userID, itemID kernel.UUID) error {
	return r.mutate(ctx, userID, func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == itemID.String() })
	})
}

// Size returns how many items are in the user's cart.
func (r *GormCartRepository) Size(ctx context.Context, userID kernel.UUID) (int, error) {
	var dto CartDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(dto.ItemIDs), nil
}

func (r *GormCartRepository) mutate(ctx context.Context, userID kernel.UUID, fn func([]string) []string) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	var size int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto CartDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "user_id = ?", userID.Bytes()).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			dto = CartDTO{UserID: userID.Bytes(), ItemIDs: pq.StringArray{}}
		case err != nil:
			return err
		}

		dto.ItemIDs = fn(dto.ItemIDs)
		size = len(dto.ItemIDs)
		return tx.Save(&dto).Error
	})
	if err != nil {
		return err
	}

	if r.publisher != nil {
		r.publisher.Publish(cart.Changed{UserID: userID, Size: size})
	}
	return nil
}
