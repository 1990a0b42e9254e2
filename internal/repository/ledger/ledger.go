package ledger

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CreateIfAbsent вставляет запись, если для (order, type, beneficiary) ее еще нет.
// Повторы и гонки упираются в уникальный ключ, created тогда false.
func (r *Repository) CreateIfAbsent(ctx context.Context, entry entities.LedgerEntry) (bool, error) {
	query := `
		INSERT INTO ledger_entries (order_id, entry_type, beneficiary_id, amount_minor, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id, entry_type, beneficiary_id) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.querier.QueryRow(
		ctx,
		query,
		entry.OrderID,
		entry.EntryType.String(),
		entry.BeneficiaryID,
		entry.AmountMinor,
		entry.Currency,
		entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("unexpected ledger repository create error: %w", err)
	}

	return true, nil
}
