package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	appcosting "github.com/jhoicas/Costos-api/internal/application/costing"
	appstock "github.com/jhoicas/Costos-api/internal/application/stock"
	infrapdf "github.com/jhoicas/Costos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Costos-api/internal/interfaces/http"
	"github.com/jhoicas/Costos-api/pkg/config"
	"github.com/jhoicas/Costos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Int("average_window", cfg.Costing.AverageWindow).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas); el TxRunner crea los suyos por tx.
	rawItemRepo := postgres.NewRawItemRepository(pool)
	compositeRepo := postgres.NewCompositeEntityRepository(pool)
	compositionRepo := postgres.NewCompositionRepository(pool)
	purchaseRepo := postgres.NewPurchaseRecordRepository(pool)
	stockedRepo := postgres.NewStockedEntityRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de costeo y asesor de precios
	computeCostUC := appcosting.NewComputeCostUseCase(
		compositeRepo, rawItemRepo, compositionRepo, purchaseRepo,
		cfg.Costing.AverageWindow, cfg.Costing.MaxDepth,
	)
	advisor := appcosting.NewPricingAdvisor(
		computeCostUC, compositeRepo, log.Named("pricing"),
		decimal.NewFromFloat(cfg.Costing.DefaultMarkupPct),
	)
	costSheetUC := appcosting.NewCostSheetUseCase(
		computeCostUC, compositeRepo, infrapdf.NewMarotoCostSheetGenerator(),
	)

	// Libro de stock
	applyMovementUC := appstock.NewApplyMovementUseCase(txRunner)
	reservationUC := appstock.NewReservationUseCase(txRunner)
	historyUC := appstock.NewMovementHistoryUseCase(stockedRepo, movementRepo)
	reorderUC := appstock.NewReorderUseCase(stockedRepo)
	lowStockUC := appstock.NewLowStockUseCase(stockedRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ComputeCost:    computeCostUC,
		PricingAdvisor: advisor,
		CostSheet:      costSheetUC,
		ApplyMovement:  applyMovementUC,
		Reservation:    reservationUC,
		History:        historyUC,
		Reorder:        reorderUC,
		LowStock:       lowStockUC,
		StockRepo:      stockedRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
