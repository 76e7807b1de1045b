package main

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookstore/catalog-api/internal/infrastructure/db/postgres"
)

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	return postgres.Open(ctx, postgres.Config{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.URL,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
}
