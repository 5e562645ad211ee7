package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/accountrepo"
	"checkout/internal/adapters/out/postgres/addressrepo"
	"checkout/internal/adapters/out/postgres/cartrepo"
	"checkout/internal/adapters/out/postgres/notificationrepo"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/pubsub"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RepositoriesIntegrationTestSuite covers the read-side adapters: address
// sources, accounts, carts and notifications.
type RepositoriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *RepositoriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *RepositoriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE accounts, user_addresses, profiles, address_book_entries, carts, notifications",
	).Error
	suite.Require().NoError(err)
}

func (suite *RepositoriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RepositoriesIntegrationTestSuite) TestCurrentSource() {
	ctx := context.Background()
	source := addressrepo.NewCurrentSource(suite.db)
	userID := kernel.NewUUID()

	book, err := source.Lookup(ctx, userID)
	suite.Require().NoError(err)
	suite.Nil(book.Pickup)
	suite.Nil(book.Shipping)

	suite.Require().NoError(source.Save(ctx, userID, addressrepo.PurposePickup, kernel.AddressFields{
		Street: "12 Long Street", City: "Cape Town", Province: "Western Cape", PostalCode: "8001",
	}))

	book, err = source.Lookup(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().NotNil(book.Pickup)
	suite.Equal("Cape Town", book.Pickup.City)
	suite.Nil(book.Shipping)
	suite.Equal("current", source.Name())
}

func (suite *RepositoriesIntegrationTestSuite) TestLegacySource() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&addressrepo.LegacyProfileDTO{
		UserID:          userID.Bytes(),
		ShippingAddress: "3 Smith St, Durban, KwaZulu-Natal, 4001, South Africa",
	}).Error)

	source := addressrepo.NewLegacySource(suite.db)

	book, err := source.Lookup(ctx, userID)
	suite.Require().NoError(err)
	suite.Nil(book.Pickup)
	suite.Require().NotNil(book.Shipping)
	suite.True(book.Shipping.IsComplete())
	suite.Equal("South Africa", book.Shipping.Country)

	empty, err := source.Lookup(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Nil(empty.Shipping)
}

func (suite *RepositoriesIntegrationTestSuite) TestBookSource_NewestEntryWins() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	now := time.Now()
	suite.Require().NoError(suite.db.Create(&[]addressrepo.AddressBookEntryDTO{
		{ID: uuid.New(), UserID: userID.Bytes(), Purpose: addressrepo.PurposeShipping, Street: "Old", City: "Pretoria",
			Province: "Gauteng", PostalCode: "0001", UpdatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), UserID: userID.Bytes(), Purpose: addressrepo.PurposeShipping, Street: "New", City: "Pretoria",
			Province: "Gauteng", PostalCode: "0002", UpdatedAt: now},
	}).Error)

	book, err := addressrepo.NewBookSource(suite.db).Lookup(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(book.Shipping)
	suite.Equal("New", book.Shipping.Street)
}

func (suite *RepositoriesIntegrationTestSuite) TestAccounts() {
	ctx := context.Background()
	repo := accountrepo.NewGormAccountRepository(suite.db)
	seller := kernel.NewUUID()
	buyer := kernel.NewUUID()
	suite.Require().NoError(repo.Save(ctx, seller, "seller@example.com", "ACCT_9"))
	suite.Require().NoError(repo.Save(ctx, buyer, "buyer@example.com", ""))

	dest, err := repo.PaymentDestination(ctx, seller)
	suite.Require().NoError(err)
	suite.Equal("ACCT_9", dest)

	_, err = repo.PaymentDestination(ctx, buyer)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = repo.PaymentDestination(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	email, err := repo.Email(ctx, buyer)
	suite.Require().NoError(err)
	suite.Equal("buyer@example.com", email)
}

func (suite *RepositoriesIntegrationTestSuite) TestCart_RemovePublishesSize() {
	ctx := context.Background()
	broker := pubsub.NewBroker[cart.Changed]()
	var events []cart.Changed
	broker.Subscribe(func(e cart.Changed) { events = append(events, e) })

	repo := cartrepo.NewGormCartRepository(suite.db, broker)
	userID := kernel.NewUUID()
	first, second := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(repo.Add(ctx, userID, first))
	suite.Require().NoError(repo.Add(ctx, userID, second))
	suite.Require().NoError(repo.Add(ctx, userID, second))
	suite.Require().NoError(repo.Remove(ctx, userID, first))

	size, err := repo.Size(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(1, size)

	suite.Require().Len(events, 4)
	suite.Equal(cart.Changed{UserID: userID, Size: 1}, events[3])

	suite.Require().NoError(repo.Remove(ctx, kernel.NewUUID(), first), "missing cart is not an error")
}

func (suite *RepositoriesIntegrationTestSuite) TestNotifications_AreIdempotent() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.db)
	confirmation := suite.confirmation()

	suite.Require().NoError(repo.NotifyOrderConfirmed(ctx, confirmation))
	suite.Require().NoError(repo.NotifyOrderConfirmed(ctx, confirmation))

	buyerCount, err := repo.CountFor(ctx, confirmation.BuyerID().Bytes())
	suite.Require().NoError(err)
	suite.Equal(int64(1), buyerCount)

	sellerCount, err := repo.CountFor(ctx, confirmation.SellerID().Bytes())
	suite.Require().NoError(err)
	suite.Equal(int64(1), sellerCount)
}

func (suite *RepositoriesIntegrationTestSuite) confirmation() order.Confirmation {
	total, _ := kernel.MoneyFromString("345.00")
	fee, _ := kernel.MoneyFromString("95.00")
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		total, fee, order.Paid, payment.NewReference(), "enc", "TCG Economy (3 days)", order.SourcePrimary, time.Now(),
	)
	suite.Require().NoError(err)
	return order.ConfirmationOf(o)
}

func TestRepositoriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoriesIntegrationTestSuite))
}
