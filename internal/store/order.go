// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"flowbotz/internal/models"
)

// OrderStore handles order-draft database operations. Drafts record
// add-to-cart actions and the fulfillment provider's reference; checkout
// itself happens with external collaborators.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new OrderStore with the given database connection.
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, design_id, provider, external_id, product_type, status, created_at`

func scanOrder(scanner interface{ Scan(...any) error }) (*models.OrderDraft, error) {
	var o models.OrderDraft
	err := scanner.Scan(
		&o.ID, &o.DesignID, &o.Provider, &o.ExternalID, &o.ProductType,
		&o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order draft and returns it with the generated ID.
func (s *OrderStore) Create(o *models.OrderDraft) (*models.OrderDraft, error) {
	row := s.db.QueryRow(`
		INSERT INTO order_drafts (design_id, provider, external_id, product_type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		o.DesignID, o.Provider, o.ExternalID, o.ProductType, o.Status,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("create order draft: %w", err)
	}
	return created, nil
}

// ListByDesign returns order drafts for a design, newest first.
func (s *OrderStore) ListByDesign(designID uuid.UUID) ([]models.OrderDraft, error) {
	rows, err := s.db.Query(`
		SELECT `+orderColumns+`
		FROM order_drafts
		WHERE design_id = $1
		ORDER BY created_at DESC
	`, designID)
	if err != nil {
		return nil, fmt.Errorf("list order drafts: %w", err)
	}
	defer rows.Close()

	var items []models.OrderDraft
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order draft: %w", err)
		}
		items = append(items, *o)
	}
	return items, rows.Err()
}

// Count returns the total number of order drafts.
func (s *OrderStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM order_drafts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count order drafts: %w", err)
	}
	return count, nil
}
