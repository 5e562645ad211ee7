package postgres

import (
	"checkout/internal/adapters/out/postgres/accountrepo"
	"checkout/internal/adapters/out/postgres/addressrepo"
	"checkout/internal/adapters/out/postgres/cartrepo"
	"checkout/internal/adapters/out/postgres/itemrepo"
	"checkout/internal/adapters/out/postgres/notificationrepo"
	"checkout/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&itemrepo.ItemDTO{},
		&accountrepo.AccountDTO{},
		&addressrepo.AddressDTO{},
		&addressrepo.LegacyProfileDTO{},
		&addressrepo.AddressBookEntryDTO{},
		&cartrepo.CartDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
