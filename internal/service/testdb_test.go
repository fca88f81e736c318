package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testSchema mirrors the production migrations with sqlite-compatible
// DDL. Tests exercise the real repositories against an in-memory DB.
var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		phone_number TEXT,
		role TEXT NOT NULL DEFAULT 'technician',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT NOT NULL,
		address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE tickets (
		id TEXT PRIMARY KEY,
		ticket_number TEXT NOT NULL,
		client_id TEXT NOT NULL,
		device_type TEXT NOT NULL,
		brand TEXT NOT NULL,
		model TEXT,
		tasks TEXT,
		task_prices TEXT,
		issue TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		cost REAL NOT NULL DEFAULT 0,
		technician_id TEXT,
		passcode TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		sku TEXT,
		description TEXT,
		image_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME
	)`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		items TEXT,
		total REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT,
		payment_status TEXT NOT NULL DEFAULT 'not_paid',
		amount_paid REAL NOT NULL DEFAULT 0,
		order_date DATETIME,
		delivery_date DATETIME,
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		invoice_number TEXT NOT NULL,
		date DATETIME NOT NULL,
		client_id TEXT NOT NULL,
		items TEXT,
		subtotal REAL NOT NULL DEFAULT 0,
		tax REAL NOT NULL DEFAULT 0,
		total REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE device_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME
	)`,
	`CREATE TABLE brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME
	)`,
	`CREATE TABLE device_models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand_id TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE task_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database; pin the pool
	// to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}
