package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Receipts carry no owner column of their own: ownership is derived from the
// related payment, and the paying profile is joined in for display and search.
const selectReceiptColumns = `
	r.id, r.payment_id, p.owner_id, pr.first_name || ' ' || pr.last_name AS owner_name,
	pr.email, r.amount, r.receipt_number, r.issuer_id, r.created_at
`

const receiptJoins = `
	FROM receipts r
	JOIN payments p ON r.payment_id = p.id
	JOIN profiles pr ON p.owner_id = pr.id
`

func (s *Store) ListReceipts(ctx context.Context, filter receipt.ListFilter) ([]*receipt.Receipt, error) {
	query := `SELECT ` + selectReceiptColumns + receiptJoins

	var (
		conditions []string
		args       []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("p.owner_id = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(pr.first_name ILIKE $%d OR pr.last_name ILIKE $%d OR pr.email ILIKE $%d OR r.receipt_number ILIKE $%d)",
			n, n, n, n))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*receipt.Receipt

	for rows.Next() {
		var r receipt.Receipt

		if err := rows.Scan(
			&r.ID, &r.PaymentID, &r.OwnerID, &r.OwnerName,
			&r.OwnerEmail, &r.Amount, &r.Number, &r.IssuerID, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}

		receipts = append(receipts, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	return receipts, nil
}

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	query := `
		INSERT INTO receipts (payment_id, amount, receipt_number, issuer_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.PaymentID, r.Amount, r.Number, r.IssuerID).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (s *Store) PaymentOwner(ctx context.Context, paymentID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := s.db.QueryRowContext(ctx,
		`SELECT owner_id FROM payments WHERE id = $1`, paymentID,
	).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, receipt.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("getting payment owner: %w", err)
	}

	return owner, nil
}
