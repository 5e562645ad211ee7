package cmd

import (
	"fmt"
	"log/slog"

	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/courier"
	"checkout/internal/adapters/out/functions"
	"checkout/internal/adapters/out/gateway"
	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/adapters/out/memory"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/accountrepo"
	"checkout/internal/adapters/out/postgres/addressrepo"
	"checkout/internal/adapters/out/postgres/cartrepo"
	"checkout/internal/adapters/out/postgres/itemrepo"
	"checkout/internal/adapters/out/postgres/notificationrepo"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/core/application/addressing"
	"checkout/internal/core/application/capture"
	"checkout/internal/core/application/orchestrator"
	"checkout/internal/core/application/quoting"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/services"
	"checkout/internal/jobs"
	"checkout/internal/pkg/pubsub"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	classifier services.ErrorClassifier
	sessions   *memory.SessionStore
	bridge     *gateway.Bridge
	functions  *functions.Client
	courier    *courier.Client
	verifier   *gateway.Verifier
	accounts   *accountrepo.GormAccountRepository
	carts      *cartrepo.GormCartRepository
	resolver   *addressing.Resolver

	cartSizeView    *queries.CartSizeView
	unsubscribeCart func()

	orchestrator *orchestrator.Orchestrator
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		logger:       logger,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		classifier:   services.NewErrorClassifier(),
		sessions:     memory.NewSessionStore(),
		bridge:       gateway.NewBridge(cfg.PaymentWindow, logger),
		accounts:     accountrepo.NewGormAccountRepository(gormDB),
		cartSizeView: queries.NewCartSizeView(),
	}

	courierHTTP, err := httpclient.New(httpclient.Config{
		Service: "courier aggregator",
		BaseURL: cfg.CourierAPIURL,
		APIKey:  cfg.CourierAPIKey,
	})
	if err != nil {
		return nil, err
	}
	c.courier = courier.NewClient(courierHTTP)

	functionsHTTP, err := httpclient.New(httpclient.Config{
		Service: "order functions",
		BaseURL: cfg.FunctionsURL,
		APIKey:  cfg.FunctionsKey,
	})
	if err != nil {
		return nil, err
	}
	c.functions = functions.NewClient(functionsHTTP)

	if cfg.GatewayAPIURL != "" && cfg.GatewaySecretKey != "" {
		gatewayHTTP, err := httpclient.New(httpclient.Config{
			Service: "payment gateway",
			BaseURL: cfg.GatewayAPIURL,
			APIKey:  cfg.GatewaySecretKey,
		})
		if err != nil {
			return nil, err
		}
		c.verifier = gateway.NewVerifier(gatewayHTTP)
	}

	cartEvents := pubsub.NewBroker[cart.Changed]()
	c.unsubscribeCart = cartEvents.Subscribe(c.cartSizeView.Apply)
	c.carts = cartrepo.NewGormCartRepository(gormDB, cartEvents)

	items := itemrepo.NewGormItemRepository(gormDB, untracked{})
	c.resolver = addressing.NewResolver(c.accounts, items, logger,
		addressrepo.NewCurrentSource(gormDB),
		addressrepo.NewLegacySource(gormDB),
		addressrepo.NewBookSource(gormDB),
	)

	c.orchestrator = orchestrator.New(orchestrator.Deps{
		Sessions:   c.sessions,
		Items:      items,
		Buyers:     c.accounts,
		Addresses:  c.resolver,
		Quotes:     c.createQuoteAggregator(),
		Payments:   c.createCaptureCoordinator(),
		Callbacks:  c.bridge,
		Cart:       c.carts,
		Notifier:   notificationrepo.NewGormNotificationRepository(gormDB),
		Classifier: c.classifier,
		Logger:     logger,
	}, orchestrator.WithParcelWeight(cfg.ParcelWeightKg))

	return c, nil
}

func (c *CompositionRoot) createQuoteAggregator() *quoting.Aggregator {
	return quoting.NewAggregator(c.courier, quoting.FlatRate{
		Price:         c.cfg.FlatRatePrice,
		EstimatedDays: c.cfg.FlatRateDays,
	}, c.cfg.QuoteTimeout, c.logger)
}

func (c *CompositionRoot) createCaptureCoordinator() *capture.Coordinator {
	var opts []capture.Option
	if c.verifier != nil {
		opts = append(opts, capture.WithVerifier(c.verifier))
	}
	return capture.NewCoordinator(
		c.bridge,
		orderrepo.NewGormOrderRepository(c.gormDB, untracked{}),
		c.functions,
		c.functions,
		c.CreateRecordFallbackOrderCommandHandler(),
		c.classifier,
		c.logger,
		opts...,
	)
}

func (c *CompositionRoot) CreateRecordFallbackOrderCommandHandler() commands.RecordFallbackOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordFallbackOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateFinalizeFallbackOrdersCommandHandler() commands.FinalizeFallbackOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinalizeFallbackOrdersCommandHandler(f, c.resolver, c.functions)
}

func (c *CompositionRoot) CreateGetOrderByReferenceQueryHandler() queries.GetOrderByReferenceQueryHandler {
	return queries.NewGetOrderByReferenceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingFallbackOrdersQueryHandler() queries.GetPendingFallbackOrdersQueryHandler {
	return queries.NewGetPendingFallbackOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartSizeQueryHandler() queries.GetCartSizeQueryHandler {
	return queries.NewGetCartSizeQueryHandler(c.cartSizeView, c.carts)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.orchestrator,
		c.orchestrator,
		c.CreateGetOrderByReferenceQueryHandler(),
		c.CreateGetPendingFallbackOrdersQueryHandler(),
		c.CreateGetCartSizeQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.sessions, c.CreateFinalizeFallbackOrdersCommandHandler(), jobs.Config{
		SessionSweepSchedule: c.cfg.SessionSweepSchedule,
		SessionIdleTTL:       c.cfg.SessionIdleTTL,
		SessionRetention:     c.cfg.SessionRetention,
		FinalizeSchedule:     c.cfg.FinalizeSchedule,
		FinalizeBatchSize:    c.cfg.FinalizeBatchSize,
	}, c.logger)
}

// Shutdown waits for payments still being captured.
func (c *CompositionRoot) Shutdown() {
	c.orchestrator.Wait()
	c.unsubscribeCart()
	c.logger.Info("Checkout stopped", "open_sessions", c.sessions.Len())
}

// DSN builds the Postgres connection string from cfg.
func (cfg Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)
}

// untracked serves repositories used outside a unit of work.
type untracked struct{}

func (untracked) TrackAggregate(kernel.UUID, any) {}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
