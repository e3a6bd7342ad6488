package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/messaging"
	"storefront/internal/infra/metrics"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logging"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("storefront", "info").Fatalf("config: %v", err)
	}
	logger := logging.New("storefront", cfg.LogLevel)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	healthRepo := infraRepo.NewHealthGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	outboxRepo := infraRepo.NewOutboxGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	reg := metrics.New()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(cfg.BcryptCost))
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), issuer, auth.SystemClock{})
	userUC := usecase.NewUserUsecase(userRepo)
	productUC := usecase.NewProductUsecase(productRepo, txm)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo,
		usecase.WithCumulativeStockCheck(cfg.CartCumulativeStockCheck),
		usecase.WithCartMetrics(reg),
	)
	checkoutUC := usecase.NewCheckoutUsecase(txm, reg)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, orderItemRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	e := server.New(cfg, logger, reg)
	server.RegisterRoutes(e, server.NewGuards(issuer, userRepo), server.Handlers{
		Health:     handler.NewHealthHandler(healthRepo),
		Auth:       handler.NewAuthHandler(registerUC, loginUC, userUC),
		User:       handler.NewUserHandler(userUC),
		Product:    handler.NewProductHandler(productUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AuditLog:   handler.NewAuditLogHandler(auditUC),
	}, reg.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// outbox relay runs only with a broker configured; rows accumulate otherwise
	relayDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		publisher := messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()

		relay := worker.NewOutboxRelay(outboxRepo, publisher, reg, logger, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
		go func() {
			relay.Run(ctx)
			close(relayDone)
		}()
	} else {
		close(relayDone)
	}

	logging.Info(logger, logging.Fields{Step: "startup", Message: "listening on " + cfg.Addr()})
	if err := server.Run(ctx, e, cfg.Addr(), shutdownTimeout); err != nil {
		logging.Error(logger, logging.Fields{Step: "server", Error: err})
	}
	stop()
	<-relayDone

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info(logger, logging.Fields{Step: "shutdown", Message: "stopped"})
}
