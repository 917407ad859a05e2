package infra

import (
	"fmt"

	"github.com/rafamossetto/distributor-api/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection, migrates the schema and applies
// the idempotent SQL patches AutoMigrate cannot express.
func NewDatabase(databaseURL string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.PriceList{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Route{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := applySchemaPatches(db, log); err != nil {
		return nil, fmt.Errorf("applying schema patches: %w", err)
	}

	log.Info().Msg("database ready")
	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
// The sequences back the atomic business numbering (product codes, client
// numbers, remit document numbers) and are advanced past any pre-existing
// rows so restarts never reissue a number.
func applySchemaPatches(db *gorm.DB, log zerolog.Logger) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS products_code_seq START 1`,
		`SELECT setval('products_code_seq', GREATEST(COALESCE((SELECT MAX(code) FROM products), 0), 1), (SELECT COUNT(*) FROM products) > 0)`,

		`CREATE SEQUENCE IF NOT EXISTS clients_number_seq START 1`,
		`SELECT setval('clients_number_seq', GREATEST(COALESCE((SELECT MAX(number) FROM clients), 0), 1), (SELECT COUNT(*) FROM clients) > 0)`,

		`CREATE SEQUENCE IF NOT EXISTS orders_document_number_seq START 1`,
		`SELECT setval('orders_document_number_seq', GREATEST(COALESCE((SELECT MAX(document_number) FROM orders), 0), 1), (SELECT COUNT(*) FROM orders) > 0)`,
	}

	for _, patch := range patches {
		if err := db.Exec(patch).Error; err != nil {
			log.Error().Err(err).Str("patch", patch).Msg("schema patch failed")
			return err
		}
	}
	return nil
}
