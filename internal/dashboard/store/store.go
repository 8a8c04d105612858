package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ApplicationRows(ctx context.Context) ([]dashboard.ApplicationRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, created_at FROM applications`)
	if err != nil {
		return nil, fmt.Errorf("listing application rows: %w", err)
	}
	defer rows.Close()

	var apps []dashboard.ApplicationRow

	for rows.Next() {
		var a dashboard.ApplicationRow

		if err := rows.Scan(&a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}

		apps = append(apps, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing application rows: %w", err)
	}

	return apps, nil
}

func (s *Store) PaymentRows(ctx context.Context) ([]dashboard.PaymentRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, amount FROM payments`)
	if err != nil {
		return nil, fmt.Errorf("listing payment rows: %w", err)
	}
	defer rows.Close()

	var payments []dashboard.PaymentRow

	for rows.Next() {
		var p dashboard.PaymentRow

		if err := rows.Scan(&p.Status, &p.Amount); err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) CountReceipts(ctx context.Context) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting receipts: %w", err)
	}

	return count, nil
}

func (s *Store) EstateRows(ctx context.Context) ([]dashboard.EstateRow, error) {
	// Unit columns may be null for estates still being set up; COALESCE keeps
	// the arithmetic downstream null-free.
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COALESCE(total_units, 0), COALESCE(available_units, 0), COALESCE(sold_units, 0)
		FROM estates
	`)
	if err != nil {
		return nil, fmt.Errorf("listing estate rows: %w", err)
	}
	defer rows.Close()

	var estates []dashboard.EstateRow

	for rows.Next() {
		var e dashboard.EstateRow

		if err := rows.Scan(&e.Name, &e.Total, &e.Available, &e.Sold); err != nil {
			return nil, fmt.Errorf("scanning estate row: %w", err)
		}

		estates = append(estates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing estate rows: %w", err)
	}

	return estates, nil
}
