package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/database"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/logger"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/repository"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/services"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var sampleStocks = []string{
	"Apple Inc.",
	"Microsoft Corporation",
	"Amazon.com Inc.",
	"Alphabet Inc.",
	"Tesla Inc.",
}

func main() {
	initOnly := flag.Bool("init-only", false, "sólo crea el esquema, sin datos de ejemplo")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	ctx := context.Background()

	// Open ya ejecuta las migraciones
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error al inicializar la base de datos")
	}
	defer db.Close()

	if *initOnly {
		log.Info().Str("driver", cfg.Database.Driver).Msg("Esquema creado")
		return
	}

	transactions := services.NewTransactionService(repository.NewTransactionRepository(db), nil, cfg.DefaultPageSize, log)

	deleted, err := transactions.Reset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error al borrar las transacciones existentes")
	}

	created, err := seed(ctx, transactions, time.Now().UTC(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Error al crear los datos de ejemplo")
	}

	log.Info().Int64("deleted", deleted).Int("created", created).Msg("Base de datos inicializada con datos de ejemplo")
}

func seed(ctx context.Context, transactions *services.TransactionService, today time.Time, log zerolog.Logger) (int, error) {
	created := 0
	for _, name := range sampleStocks {
		count := 1 + rand.IntN(3)
		for j := 0; j < count; j++ {
			req := sampleRequest(name, today)
			tx, err := transactions.Create(ctx, req)
			if err != nil {
				return created, err
			}
			log.Debug().Int64("id", tx.ID).Str("stock_name", tx.StockName).Msg("Transacción de ejemplo creada")
			created++
		}
	}
	return created, nil
}

func sampleRequest(name string, today time.Time) models.CreateTransactionRequest {
	buyDate := today.AddDate(0, 0, -(30 + rand.IntN(336)))
	buyQuantity := int64(10 + rand.IntN(91))
	buyPrice := decimal.NewFromFloat(50 + rand.Float64()*450).Round(2)
	buyDateStr := buyDate.Format(models.DateLayout)

	req := models.CreateTransactionRequest{
		StockName:        &name,
		BuyQuantity:      &buyQuantity,
		BuyPricePerStock: &buyPrice,
		BuyDate:          &buyDateStr,
	}

	// Una de cada tres compras tiene venta
	if rand.IntN(3) != 0 {
		return req
	}

	sellQuantity := 1 + rand.Int64N(buyQuantity)
	change := -0.1 + rand.Float64()*0.4
	if rand.Float64() > 0.4 {
		change = -0.3 + rand.Float64()*0.8
	}
	sellPrice := buyPrice.Mul(decimal.NewFromFloat(1 + change)).Round(2)

	sellDate := buyDate.AddDate(0, 0, 1+rand.IntN(200))
	if sellDate.After(today) {
		sellDate = today
	}
	sellDateStr := sellDate.Format(models.DateLayout)

	req.SellQuantity = &sellQuantity
	req.SellPricePerStock = &sellPrice
	req.SellDate = &sellDateStr
	return req
}
