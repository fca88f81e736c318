package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		phone_number VARCHAR(50),
		role VARCHAR(32) NOT NULL DEFAULT 'technician',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(50) NOT NULL,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		ticket_number VARCHAR(16) NOT NULL,
		client_id UUID NOT NULL,
		device_type VARCHAR(100) NOT NULL,
		brand VARCHAR(100) NOT NULL,
		model VARCHAR(100),
		tasks JSONB,
		task_prices JSONB,
		issue TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		technician_id UUID,
		passcode VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_ticket_number ON tickets (ticket_number);`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_client_id ON tickets (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_technician_id ON tickets (technician_id);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0,
		sku VARCHAR(64),
		description TEXT,
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);`,
	`CREATE INDEX IF NOT EXISTS idx_products_sku ON products (sku);`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories (name);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL,
		items JSONB,
		total DOUBLE PRECISION NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(32),
		payment_status VARCHAR(20) NOT NULL DEFAULT 'not_paid',
		amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
		order_date TIMESTAMPTZ,
		delivery_date TIMESTAMPTZ,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders (client_id);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		invoice_number VARCHAR(16) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		client_id UUID NOT NULL,
		items JSONB,
		subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax DOUBLE PRECISION NOT NULL DEFAULT 0,
		total DOUBLE PRECISION NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_invoice_number ON invoices (invoice_number);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_client_id ON invoices (client_id);`,
	`CREATE TABLE IF NOT EXISTS device_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_device_types_name ON device_types (name);`,
	`CREATE TABLE IF NOT EXISTS brands (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_brands_name ON brands (name);`,
	`CREATE TABLE IF NOT EXISTS device_models (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		brand_id VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_device_models_brand_id ON device_models (brand_id);`,
	`CREATE TABLE IF NOT EXISTS task_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_task_types_name ON task_types (name);`,
}

// RunMigrations executes the schema statements in order. Every
// statement is idempotent, so running on each start is safe.
func RunMigrations(database *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	return nil
}
